package service

import (
	"errors"
	"strings"

	"shop-backend/internal/apperr"
	"shop-backend/internal/core/auth"
	"shop-backend/internal/domain"
	"shop-backend/pkg/utils"
)

type UserService struct {
	users      domain.UserRepository
	jwter      *auth.JWTer
	bcryptCost int
}

func NewUserService(users domain.UserRepository, jwter *auth.JWTer, bcryptCost int) *UserService {
	return &UserService{users: users, jwter: jwter, bcryptCost: bcryptCost}
}

type SignupInput struct {
	Name     string
	Email    string
	Password string
}

// AuthResult is the signup/login response body.
type AuthResult struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Token string `json:"token"`
}

type UpdateUserInput struct {
	Name     *string
	Email    *string
	Password *string
	About    *string
	Role     *string
}

func (s *UserService) Signup(in SignupInput) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	name := strings.TrimSpace(in.Name)

	existing, err := s.users.FindByEmail(email)
	if err != nil {
		return nil, apperr.Internal("signup failed", err)
	}
	if existing != nil {
		return nil, apperr.Conflict("email already registered")
	}

	hash, err := utils.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, apperr.Internal("signup failed", err)
	}

	u := &domain.User{
		ID:           utils.NewID(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		History:      []string{},
	}
	if err := s.users.Create(u); err != nil {
		// A concurrent signup with the same email loses the unique-index
		// race here rather than at the pre-check.
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, apperr.Conflict("email already registered")
		}
		return nil, apperr.Internal("signup failed", err)
	}

	token, err := s.jwter.Issue(u.ID, u.Email)
	if err != nil {
		return nil, apperr.Internal("issue token failed", err)
	}
	return &AuthResult{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, Token: token}, nil
}

func (s *UserService) Login(email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	u, err := s.users.FindByEmail(email)
	if err != nil {
		return nil, apperr.Internal("login failed", err)
	}
	if u == nil || !utils.CheckPassword(password, u.PasswordHash) {
		return nil, apperr.InvalidCredentials()
	}

	token, err := s.jwter.Issue(u.ID, u.Email)
	if err != nil {
		return nil, apperr.Internal("issue token failed", err)
	}
	return &AuthResult{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, Token: token}, nil
}

// List returns accounts with role "user"; admins never appear and the
// password hash never leaves the struct's json:"-" field.
func (s *UserService) List() ([]domain.User, error) {
	users, err := s.users.ListByRole(domain.RoleUser)
	if err != nil {
		return nil, apperr.Internal("list users failed", err)
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, nil
}

func (s *UserService) Get(id string) (*domain.User, error) {
	if !utils.ValidID(id) {
		return nil, apperr.Validation("invalid user id")
	}
	u, err := s.users.FindByID(id)
	if err != nil {
		return nil, apperr.Internal("get user failed", err)
	}
	if u == nil {
		return nil, apperr.NotFound("no user for the provided id")
	}
	return u, nil
}

// Update merges only the supplied fields. A supplied password is re-hashed;
// an absent one stays untouched.
func (s *UserService) Update(id string, in UpdateUserInput) (*domain.User, error) {
	u, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		u.Name = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil {
		u.Email = strings.ToLower(strings.TrimSpace(*in.Email))
	}
	if in.About != nil {
		u.About = *in.About
	}
	if in.Role != nil {
		if *in.Role != domain.RoleUser && *in.Role != domain.RoleAdmin {
			return nil, apperr.Validation("unknown role")
		}
		u.Role = *in.Role
	}
	if in.Password != nil {
		hash, err := utils.HashPassword(*in.Password, s.bcryptCost)
		if err != nil {
			return nil, apperr.Internal("update user failed", err)
		}
		u.PasswordHash = hash
	}

	if err := s.users.Update(u); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, apperr.Conflict("email already registered")
		}
		return nil, apperr.Internal("update user failed", err)
	}
	return u, nil
}

func (s *UserService) Delete(id string) error {
	if !utils.ValidID(id) {
		return apperr.Validation("invalid user id")
	}
	if err := s.users.Delete(id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperr.NotFound("no user for the provided id")
		}
		return apperr.Internal("delete user failed", err)
	}
	return nil
}
