package repository

import (
	"context"
	"errors"

	"backend/internal/model"
	"backend/pkg/listing"

	"gorm.io/gorm"
)

// customerFields is the listing allowlist for customers.
var customerFields = listing.FieldMap{
	"id":        {Column: "id", Kind: listing.ID},
	"name":      {Column: "name", Kind: listing.Text},
	"is_active": {Column: "is_active", Kind: listing.Bool},
}

type CustomerRepository interface {
	Create(ctx context.Context, customer *model.Customer) error
	FindByID(ctx context.Context, id int64) (*model.Customer, error)
	Update(ctx context.Context, id int64, fields map[string]any) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, q listing.Query) (listing.Page[model.Customer], error)
	HasOrders(ctx context.Context, id int64) (bool, error)
}

type customerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(ctx context.Context, customer *model.Customer) error {
	return GetDB(ctx, r.db).Create(customer).Error
}

func (r *customerRepository) FindByID(ctx context.Context, id int64) (*model.Customer, error) {
	var customer model.Customer
	if err := GetDB(ctx, r.db).First(&customer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepository) Update(ctx context.Context, id int64, fields map[string]any) error {
	return GetDB(ctx, r.db).Model(&model.Customer{}).Where("id = ?", id).Updates(fields).Error
}

func (r *customerRepository) Delete(ctx context.Context, id int64) error {
	return GetDB(ctx, r.db).Delete(&model.Customer{}, "id = ?", id).Error
}

func (r *customerRepository) List(ctx context.Context, q listing.Query) (listing.Page[model.Customer], error) {
	db := GetDB(ctx, r.db)
	return listing.Find[model.Customer](func() *gorm.DB {
		return db.Model(&model.Customer{})
	}, customerFields, q)
}

func (r *customerRepository) HasOrders(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.Order{}).Where("customer_id = ?", id).Count(&count).Error
	return count > 0, err
}
