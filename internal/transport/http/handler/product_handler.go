package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shop-backend/internal/apperr"
	"shop-backend/internal/service"
	"shop-backend/internal/transport/http/response"
)

type ProductHandler struct {
	svc *service.ProductService
	log *zap.Logger
}

func NewProductHandler(svc *service.ProductService, log *zap.Logger) *ProductHandler {
	return &ProductHandler{svc: svc, log: log}
}

func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.svc.List(c.Request.Context())
	if err != nil {
		response.Fail(c, h.log, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"products": products})
}

// createProductReq binds the multipart form; a non-numeric price fails the
// form bind and surfaces as a validation error.
type createProductReq struct {
	Name               string   `form:"name" binding:"required,max=30"`
	Description        string   `form:"description" binding:"required,max=255"`
	Price              float64  `form:"price" binding:"required"`
	Category           string   `form:"category"`
	ProductType        string   `form:"productType"`
	Size               []string `form:"size"`
	DiscountPercentage float64  `form:"discountPercentage"`
	Amount             *int     `form:"amount"`
}

func (h *ProductHandler) Create(c *gin.Context) {
	var in createProductReq
	if err := c.ShouldBind(&in); err != nil {
		response.BindError(c, err)
		return
	}
	fh, err := c.FormFile("image")
	if err != nil {
		response.Fail(c, h.log, apperr.Validation("image file is required"))
		return
	}
	p, err := h.svc.Create(c.Request.Context(), service.CreateProductInput{
		Name:               in.Name,
		Description:        in.Description,
		Price:              in.Price,
		Category:           in.Category,
		ProductType:        in.ProductType,
		Size:               in.Size,
		DiscountPercentage: in.DiscountPercentage,
		Amount:             in.Amount,
	}, fh)
	if err != nil {
		response.Fail(c, h.log, err)
		return
	}
	response.JSON(c, http.StatusCreated, gin.H{"product": p})
}

type updateProductReq struct {
	Name               *string  `json:"name" binding:"omitempty,max=30"`
	Description        string   `json:"description" binding:"required,max=255"`
	Price              *float64 `json:"price"`
	Category           *string  `json:"category"`
	ProductType        *string  `json:"productType"`
	Size               []string `json:"size"`
	DiscountPercentage *float64 `json:"discountPercentage"`
	Amount             *int     `json:"amount"`
	IsNewProduct       *bool    `json:"isNewProduct"`
}

func (h *ProductHandler) Update(c *gin.Context) {
	var in updateProductReq
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BindError(c, err)
		return
	}
	p, err := h.svc.Update(c.Request.Context(), c.Param("id"), service.UpdateProductInput{
		Name:               in.Name,
		Description:        in.Description,
		Price:              in.Price,
		Category:           in.Category,
		ProductType:        in.ProductType,
		Size:               in.Size,
		DiscountPercentage: in.DiscountPercentage,
		Amount:             in.Amount,
		IsNewProduct:       in.IsNewProduct,
	})
	if err != nil {
		response.Fail(c, h.log, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"product": p})
}

func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Fail(c, h.log, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"message": "product deleted successfully"})
}
