package domain

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Name         string    `gorm:"size:32;not null" json:"name"`
	Email        string    `gorm:"uniqueIndex;size:191;not null" json:"email"`
	PasswordHash string    `gorm:"size:100;not null" json:"-"`
	About        string    `gorm:"type:text" json:"about"`
	Role         string    `gorm:"size:16;not null;default:user" json:"role"` // "user"/"admin"
	History      []string  `gorm:"serializer:json;type:text" json:"history"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (User) TableName() string { return "users" }

type UserRepository interface {
	Create(u *User) error
	FindByID(id string) (*User, error)
	FindByEmail(email string) (*User, error)
	ListByRole(role string) ([]User, error)
	Update(u *User) error
	Delete(id string) error
}
