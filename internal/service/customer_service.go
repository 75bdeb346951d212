package service

import (
	"context"

	"backend/internal/model"
	"backend/internal/repository"
	"backend/pkg/apperror"
	"backend/pkg/listing"
)

type CreateCustomerRequest struct {
	Name     string `json:"name" binding:"required"`
	IsActive *bool  `json:"is_active"`
}

type UpdateCustomerRequest struct {
	Name     *string `json:"name"`
	IsActive *bool   `json:"is_active"`
}

type CustomerService interface {
	ListCustomers(ctx context.Context, q listing.Query) (listing.Page[model.Customer], error)
	GetCustomerByID(ctx context.Context, id int64) (*model.Customer, error)
	CreateCustomer(ctx context.Context, req CreateCustomerRequest) (*model.Customer, error)
	UpdateCustomer(ctx context.Context, id int64, req UpdateCustomerRequest) (*model.Customer, error)
	DeleteCustomer(ctx context.Context, id int64) (bool, error)
}

type customerService struct {
	customerRepo repository.CustomerRepository
}

func NewCustomerService(customerRepo repository.CustomerRepository) CustomerService {
	return &customerService{customerRepo: customerRepo}
}

func (s *customerService) ListCustomers(ctx context.Context, q listing.Query) (listing.Page[model.Customer], error) {
	return s.customerRepo.List(ctx, q)
}

func (s *customerService) GetCustomerByID(ctx context.Context, id int64) (*model.Customer, error) {
	return s.customerRepo.FindByID(ctx, id)
}

func (s *customerService) CreateCustomer(ctx context.Context, req CreateCustomerRequest) (*model.Customer, error) {
	customer := &model.Customer{Name: req.Name, IsActive: true}
	if req.IsActive != nil {
		customer.IsActive = *req.IsActive
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, id int64, req UpdateCustomerRequest) (*model.Customer, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil || customer == nil {
		return nil, err
	}

	fields := map[string]any{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.IsActive != nil {
		fields["is_active"] = *req.IsActive
	}
	if err := s.customerRepo.Update(ctx, id, fields); err != nil {
		return nil, err
	}
	return s.customerRepo.FindByID(ctx, id)
}

func (s *customerService) DeleteCustomer(ctx context.Context, id int64) (bool, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil || customer == nil {
		return false, err
	}
	referenced, err := s.customerRepo.HasOrders(ctx, id)
	if err != nil {
		return false, err
	}
	if referenced {
		return false, apperror.NewConflict("customer %d has orders and cannot be deleted", id)
	}
	if err := s.customerRepo.Delete(ctx, id); err != nil {
		return false, err
	}
	return true, nil
}
