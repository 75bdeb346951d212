package repository

import (
	"context"
	"errors"

	"backend/internal/model"
	"backend/pkg/listing"

	"gorm.io/gorm"
)

// productFields is the listing allowlist for products.
var productFields = listing.FieldMap{
	"id":         {Column: "id", Kind: listing.ID},
	"name":       {Column: "name", Kind: listing.Text},
	"unit_price": {Column: "unit_price", Kind: listing.Numeric},
	"unit":       {Column: "unit", Kind: listing.Text},
	"is_active":  {Column: "is_active", Kind: listing.Bool},
}

type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, id int64) (*model.Product, error)
	Update(ctx context.Context, id int64, fields map[string]any) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, q listing.Query) (listing.Page[model.Product], error)
	HasOrderItems(ctx context.Context, id int64) (bool, error)
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	return GetDB(ctx, r.db).Create(product).Error
}

func (r *productRepository) FindByID(ctx context.Context, id int64) (*model.Product, error) {
	var product model.Product
	if err := GetDB(ctx, r.db).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) Update(ctx context.Context, id int64, fields map[string]any) error {
	return GetDB(ctx, r.db).Model(&model.Product{}).Where("id = ?", id).Updates(fields).Error
}

func (r *productRepository) Delete(ctx context.Context, id int64) error {
	return GetDB(ctx, r.db).Delete(&model.Product{}, "id = ?", id).Error
}

func (r *productRepository) List(ctx context.Context, q listing.Query) (listing.Page[model.Product], error) {
	db := GetDB(ctx, r.db)
	return listing.Find[model.Product](func() *gorm.DB {
		return db.Model(&model.Product{})
	}, productFields, q)
}

func (r *productRepository) HasOrderItems(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.OrderItem{}).Where("product_id = ?", id).Count(&count).Error
	return count > 0, err
}
