package service

import (
	"context"

	"backend/internal/model"
	"backend/internal/repository"
	"backend/pkg/apperror"
	"backend/pkg/listing"

	"github.com/shopspring/decimal"
)

type CreateProductRequest struct {
	Name      string  `json:"name" binding:"required"`
	UnitPrice float64 `json:"unit_price" binding:"required,gt=0"`
	Unit      string  `json:"unit" binding:"required,oneof=Kg Px"`
	IsActive  *bool   `json:"is_active"`
}

type UpdateProductRequest struct {
	Name      *string  `json:"name"`
	UnitPrice *float64 `json:"unit_price"`
	Unit      *string  `json:"unit" binding:"omitempty,oneof=Kg Px"`
	IsActive  *bool    `json:"is_active"`
}

type ProductService interface {
	ListProducts(ctx context.Context, q listing.Query) (listing.Page[model.Product], error)
	GetProductByID(ctx context.Context, id int64) (*model.Product, error)
	CreateProduct(ctx context.Context, req CreateProductRequest) (*model.Product, error)
	UpdateProduct(ctx context.Context, id int64, req UpdateProductRequest) (*model.Product, error)
	DeleteProduct(ctx context.Context, id int64) (bool, error)
}

type productService struct {
	productRepo repository.ProductRepository
}

func NewProductService(productRepo repository.ProductRepository) ProductService {
	return &productService{productRepo: productRepo}
}

func (s *productService) ListProducts(ctx context.Context, q listing.Query) (listing.Page[model.Product], error) {
	return s.productRepo.List(ctx, q)
}

func (s *productService) GetProductByID(ctx context.Context, id int64) (*model.Product, error) {
	return s.productRepo.FindByID(ctx, id)
}

func (s *productService) CreateProduct(ctx context.Context, req CreateProductRequest) (*model.Product, error) {
	product := &model.Product{
		Name:      req.Name,
		UnitPrice: decimal.NewFromFloat(req.UnitPrice),
		Unit:      req.Unit,
		IsActive:  true,
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *productService) UpdateProduct(ctx context.Context, id int64, req UpdateProductRequest) (*model.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil || product == nil {
		return nil, err
	}

	fields := map[string]any{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.UnitPrice != nil {
		if *req.UnitPrice <= 0 {
			return nil, apperror.NewValidation("unit_price must be positive")
		}
		fields["unit_price"] = decimal.NewFromFloat(*req.UnitPrice)
	}
	if req.Unit != nil {
		fields["unit"] = *req.Unit
	}
	if req.IsActive != nil {
		fields["is_active"] = *req.IsActive
	}
	if err := s.productRepo.Update(ctx, id, fields); err != nil {
		return nil, err
	}
	return s.productRepo.FindByID(ctx, id)
}

func (s *productService) DeleteProduct(ctx context.Context, id int64) (bool, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil || product == nil {
		return false, err
	}
	referenced, err := s.productRepo.HasOrderItems(ctx, id)
	if err != nil {
		return false, err
	}
	if referenced {
		return false, apperror.NewConflict("product %d is referenced by order items and cannot be deleted", id)
	}
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return false, err
	}
	return true, nil
}
