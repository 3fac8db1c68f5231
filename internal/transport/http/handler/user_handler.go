package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shop-backend/internal/service"
	"shop-backend/internal/transport/http/response"
)

type UserHandler struct {
	svc *service.UserService
	log *zap.Logger
}

func NewUserHandler(svc *service.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{svc: svc, log: log}
}

type signupReq struct {
	Name     string `json:"name" binding:"required,min=3,max=32"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

func (h *UserHandler) Signup(c *gin.Context) {
	var in signupReq
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BindError(c, err)
		return
	}
	out, err := h.svc.Signup(service.SignupInput{Name: in.Name, Email: in.Email, Password: in.Password})
	if err != nil {
		response.Fail(c, h.log, err)
		return
	}
	response.JSON(c, http.StatusCreated, out)
}

type loginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *UserHandler) Login(c *gin.Context) {
	var in loginReq
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BindError(c, err)
		return
	}
	out, err := h.svc.Login(in.Email, in.Password)
	if err != nil {
		response.Fail(c, h.log, err)
		return
	}
	response.JSON(c, http.StatusOK, out)
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.svc.List()
	if err != nil {
		response.Fail(c, h.log, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"users": users})
}

func (h *UserHandler) Get(c *gin.Context) {
	u, err := h.svc.Get(c.Param("id"))
	if err != nil {
		response.Fail(c, h.log, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"user": u})
}

type updateUserReq struct {
	Name     *string `json:"name" binding:"omitempty,min=3,max=32"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Password *string `json:"password" binding:"omitempty,min=6"`
	About    *string `json:"about"`
	Role     *string `json:"role"`
}

func (h *UserHandler) Update(c *gin.Context) {
	var in updateUserReq
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BindError(c, err)
		return
	}
	u, err := h.svc.Update(c.Param("id"), service.UpdateUserInput{
		Name:     in.Name,
		Email:    in.Email,
		Password: in.Password,
		About:    in.About,
		Role:     in.Role,
	})
	if err != nil {
		response.Fail(c, h.log, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"user": u})
}

func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Param("id")); err != nil {
		response.Fail(c, h.log, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"message": "user deleted"})
}
