package service

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"
	"time"

	"go.uber.org/zap"

	"shop-backend/internal/apperr"
	"shop-backend/internal/core/cache"
	"shop-backend/internal/domain"
	"shop-backend/pkg/utils"
)

const productListKey = "products:all"

// ImageStore is the file collaborator behind product images.
type ImageStore interface {
	Save(fh *multipart.FileHeader) (string, error)
	Remove(ref string) error
}

type ProductService struct {
	products domain.ProductRepository
	images   ImageStore
	cache    *cache.Cache // nil disables the list cache
	listTTL  time.Duration
	log      *zap.Logger
}

func NewProductService(products domain.ProductRepository, images ImageStore, c *cache.Cache, listTTL time.Duration, log *zap.Logger) *ProductService {
	return &ProductService{products: products, images: images, cache: c, listTTL: listTTL, log: log}
}

type CreateProductInput struct {
	Name               string
	Description        string
	Price              float64
	Category           string
	ProductType        string
	Size               []string
	DiscountPercentage float64
	Amount             *int
}

type UpdateProductInput struct {
	Name               *string
	Description        string
	Price              *float64
	Category           *string
	ProductType        *string
	Size               []string
	DiscountPercentage *float64
	Amount             *int
	IsNewProduct       *bool
}

func (s *ProductService) List(ctx context.Context) ([]domain.Product, error) {
	load := func(context.Context) ([]domain.Product, error) {
		products, err := s.products.List()
		if err != nil {
			return nil, apperr.Internal("fetching products failed", err)
		}
		if products == nil {
			products = []domain.Product{}
		}
		return products, nil
	}
	if s.cache == nil {
		return load(ctx)
	}
	return cache.GetOrLoadJSON(s.cache, ctx, productListKey, s.listTTL, load)
}

func (s *ProductService) Get(id string) (*domain.Product, error) {
	if !utils.ValidID(id) {
		return nil, apperr.Validation("invalid product id")
	}
	p, err := s.products.FindByID(id)
	if err != nil {
		return nil, apperr.Internal("get product failed", err)
	}
	if p == nil {
		return nil, apperr.NotFound("no product for the provided id")
	}
	return p, nil
}

func (s *ProductService) Create(ctx context.Context, in CreateProductInput, image *multipart.FileHeader) (*domain.Product, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	if err := validateProductEnums(in.Category, in.ProductType); err != nil {
		return nil, err
	}
	if in.Price < 0 {
		return nil, apperr.Validation("price must not be negative")
	}
	if image == nil {
		return nil, apperr.Validation("image file is required")
	}

	existing, err := s.products.FindByName(in.Name)
	if err != nil {
		return nil, apperr.Internal("create product failed", err)
	}
	if existing != nil {
		return nil, apperr.Conflict("a product already exists with this name")
	}

	ref, err := s.images.Save(image)
	if err != nil {
		return nil, apperr.Internal("storing image failed", err)
	}

	p := &domain.Product{
		ID:                 utils.NewID(),
		Name:               in.Name,
		Description:        in.Description,
		Image:              ref,
		Price:              in.Price,
		Category:           in.Category,
		ProductType:        in.ProductType,
		Size:               in.Size,
		DiscountPercentage: in.DiscountPercentage,
		Amount:             in.Amount,
		IsNewProduct:       true,
	}
	if err := s.products.Create(p); err != nil {
		// The record never existed, so the stored image must not either.
		if rmErr := s.images.Remove(ref); rmErr != nil {
			s.log.Warn("orphan image cleanup failed", zap.String("image", ref), zap.Error(rmErr))
		}
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, apperr.Conflict("a product already exists with this name")
		}
		return nil, apperr.Internal("create product failed", err)
	}

	s.invalidateList(ctx)
	return p, nil
}

// Update merges supplied fields over the stored record; unset fields keep
// their existing values. Description is required on every update.
func (s *ProductService) Update(ctx context.Context, id string, in UpdateProductInput) (*domain.Product, error) {
	if strings.TrimSpace(in.Description) == "" {
		return nil, apperr.Validation("description is required")
	}
	p, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	p.Description = strings.TrimSpace(in.Description)
	if in.Name != nil {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Price != nil {
		if *in.Price < 0 {
			return nil, apperr.Validation("price must not be negative")
		}
		p.Price = *in.Price
	}
	if in.Category != nil || in.ProductType != nil {
		cat, typ := p.Category, p.ProductType
		if in.Category != nil {
			cat = *in.Category
		}
		if in.ProductType != nil {
			typ = *in.ProductType
		}
		if err := validateProductEnums(cat, typ); err != nil {
			return nil, err
		}
		p.Category, p.ProductType = cat, typ
	}
	if in.Size != nil {
		p.Size = in.Size
	}
	if in.DiscountPercentage != nil {
		p.DiscountPercentage = *in.DiscountPercentage
	}
	if in.Amount != nil {
		p.Amount = in.Amount
	}
	if in.IsNewProduct != nil {
		p.IsNewProduct = *in.IsNewProduct
	}

	if err := s.products.Update(p); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, apperr.Conflict("a product already exists with this name")
		}
		return nil, apperr.Internal("update product failed", err)
	}

	s.invalidateList(ctx)
	return p, nil
}

// Delete removes the record, then best-effort removes the stored image;
// an image removal failure is logged, never surfaced.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	p, err := s.Get(id)
	if err != nil {
		return err
	}
	if err := s.products.Delete(id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperr.NotFound("no product for the provided id")
		}
		return apperr.Internal("delete product failed", err)
	}
	if p.Image != "" {
		if err := s.images.Remove(p.Image); err != nil {
			s.log.Warn("image removal failed", zap.String("image", p.Image), zap.Error(err))
		}
	}
	s.invalidateList(ctx)
	return nil
}

func (s *ProductService) invalidateList(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, productListKey)
	}
}

func validateProductEnums(category, productType string) error {
	switch category {
	case "", domain.CategoryMen, domain.CategoryWomen, domain.CategoryChildren:
	default:
		return apperr.Validation("category must be one of men, women, children")
	}
	switch productType {
	case "", domain.TypeClothes, domain.TypeShoes:
	default:
		return apperr.Validation("productType must be one of clothes, shoes")
	}
	return nil
}
