package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"shop-backend/internal/core/auth"
	"shop-backend/internal/domain"
	"shop-backend/internal/transport/http/handler"
	mdw "shop-backend/internal/transport/http/middleware"
)

type Deps struct {
	Log       *zap.Logger
	JWTer     *auth.JWTer
	Users     domain.UserRepository
	UserH     *handler.UserHandler
	ProductH  *handler.ProductHandler
	UploadDir string
}

// NewAPIEngine wires the interceptor chain and the full route table. Admin
// routes share one Authenticate gate and declare their allowed roles on the
// group.
func NewAPIEngine(d Deps) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(16<<20),
		mdw.Timeout(10*time.Second),
		ginzap.RecoveryWithZap(d.Log, true),
		mdw.Metrics(),
		mdw.AccessLog(d.Log),
		cors.Default(),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.Static("/uploads", d.UploadDir)

	api := r.Group("/api")

	users := api.Group("/users")
	users.POST("/signup", d.UserH.Signup)
	users.POST("/login", d.UserH.Login)

	adminUsers := users.Group("")
	adminUsers.Use(mdw.Authenticate(d.JWTer, d.Users), mdw.Authorize(domain.RoleAdmin))
	adminUsers.GET("", d.UserH.List)
	adminUsers.GET("/:id", d.UserH.Get)
	adminUsers.PUT("/:id", d.UserH.Update)
	adminUsers.DELETE("/:id", d.UserH.Delete)

	products := api.Group("/products")
	products.GET("", d.ProductH.List)

	adminProducts := products.Group("")
	adminProducts.Use(mdw.Authenticate(d.JWTer, d.Users), mdw.Authorize(domain.RoleAdmin))
	adminProducts.POST("/new", d.ProductH.Create)
	adminProducts.PATCH("/:id", d.ProductH.Update)
	adminProducts.DELETE("/:id", d.ProductH.Delete)

	return r
}
