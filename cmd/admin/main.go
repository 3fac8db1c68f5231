// Command admin bootstraps or promotes an admin account. Signup only ever
// creates role "user", so the first admin has to come from this tool.
package main

import (
	"flag"
	"os"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"shop-backend/internal/core/config"
	"shop-backend/internal/core/database"
	"shop-backend/internal/core/logger"
	"shop-backend/internal/domain"
	"shop-backend/internal/repo"
	"shop-backend/pkg/utils"
)

func main() {
	email := flag.String("email", "", "admin email")
	password := flag.String("password", "", "admin password (required when creating)")
	name := flag.String("name", "admin", "admin display name")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := logger.New(cfg.Log.Level, cfg.Log.JSON)
	defer cleanup()

	if *email == "" {
		log.Fatal("email flag is required")
	}

	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
	})
	if err != nil {
		log.Fatal("db open", zap.Error(err))
	}
	if err := db.AutoMigrate(&domain.User{}); err != nil {
		log.Fatal("automigrate failed", zap.Error(err))
	}

	users := repo.NewUserRepo(db)

	existing, err := users.FindByEmail(*email)
	if err != nil {
		log.Fatal("lookup failed", zap.Error(err))
	}

	if existing != nil {
		existing.Role = domain.RoleAdmin
		if err := users.Update(existing); err != nil {
			log.Fatal("promote failed", zap.Error(err))
		}
		log.Info("user promoted to admin", zap.String("id", existing.ID), zap.String("email", existing.Email))
		return
	}

	if *password == "" {
		log.Fatal("password flag is required when creating a new admin")
	}
	hash, err := utils.HashPassword(*password, cfg.Auth.BcryptCost)
	if err != nil {
		log.Fatal("hash failed", zap.Error(err))
	}
	u := &domain.User{
		ID:           utils.NewID(),
		Name:         *name,
		Email:        *email,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		History:      []string{},
	}
	if err := users.Create(u); err != nil {
		log.Fatal("create failed", zap.Error(err))
	}
	log.Info("admin created", zap.String("id", u.ID), zap.String("email", u.Email))
}
