package service

import (
	"context"

	"backend/internal/model"
	"backend/internal/repository"
	"backend/pkg/apperror"
	"backend/pkg/listing"
)

type CategoryRequest struct {
	Descr string `json:"descr" binding:"required"`
}

// The two category families share shape but not tables; keeping the services
// separate mirrors the storage split and keeps the guards explicit.

type ExpenseCategoryService interface {
	ListCategories(ctx context.Context, q listing.Query) (listing.Page[model.ExpenseCategory], error)
	GetCategoryByID(ctx context.Context, id int64) (*model.ExpenseCategory, error)
	CreateCategory(ctx context.Context, req CategoryRequest) (*model.ExpenseCategory, error)
	UpdateCategory(ctx context.Context, id int64, req CategoryRequest) (*model.ExpenseCategory, error)
	DeleteCategory(ctx context.Context, id int64) (bool, error)
}

type expenseCategoryService struct {
	categoryRepo repository.ExpenseCategoryRepository
}

func NewExpenseCategoryService(categoryRepo repository.ExpenseCategoryRepository) ExpenseCategoryService {
	return &expenseCategoryService{categoryRepo: categoryRepo}
}

func (s *expenseCategoryService) ListCategories(ctx context.Context, q listing.Query) (listing.Page[model.ExpenseCategory], error) {
	return s.categoryRepo.List(ctx, q)
}

func (s *expenseCategoryService) GetCategoryByID(ctx context.Context, id int64) (*model.ExpenseCategory, error) {
	return s.categoryRepo.FindByID(ctx, id)
}

func (s *expenseCategoryService) CreateCategory(ctx context.Context, req CategoryRequest) (*model.ExpenseCategory, error) {
	category := &model.ExpenseCategory{Descr: req.Descr}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *expenseCategoryService) UpdateCategory(ctx context.Context, id int64, req CategoryRequest) (*model.ExpenseCategory, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil || category == nil {
		return nil, err
	}
	if err := s.categoryRepo.Update(ctx, id, map[string]any{"descr": req.Descr}); err != nil {
		return nil, err
	}
	return s.categoryRepo.FindByID(ctx, id)
}

func (s *expenseCategoryService) DeleteCategory(ctx context.Context, id int64) (bool, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil || category == nil {
		return false, err
	}
	referenced, err := s.categoryRepo.HasExpenses(ctx, id)
	if err != nil {
		return false, err
	}
	if referenced {
		return false, apperror.NewConflict("category %d has expenses and cannot be deleted", id)
	}
	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return false, err
	}
	return true, nil
}

type IncomeCategoryService interface {
	ListCategories(ctx context.Context, q listing.Query) (listing.Page[model.IncomeCategory], error)
	GetCategoryByID(ctx context.Context, id int64) (*model.IncomeCategory, error)
	CreateCategory(ctx context.Context, req CategoryRequest) (*model.IncomeCategory, error)
	UpdateCategory(ctx context.Context, id int64, req CategoryRequest) (*model.IncomeCategory, error)
	DeleteCategory(ctx context.Context, id int64) (bool, error)
}

type incomeCategoryService struct {
	categoryRepo repository.IncomeCategoryRepository
}

func NewIncomeCategoryService(categoryRepo repository.IncomeCategoryRepository) IncomeCategoryService {
	return &incomeCategoryService{categoryRepo: categoryRepo}
}

func (s *incomeCategoryService) ListCategories(ctx context.Context, q listing.Query) (listing.Page[model.IncomeCategory], error) {
	return s.categoryRepo.List(ctx, q)
}

func (s *incomeCategoryService) GetCategoryByID(ctx context.Context, id int64) (*model.IncomeCategory, error) {
	return s.categoryRepo.FindByID(ctx, id)
}

func (s *incomeCategoryService) CreateCategory(ctx context.Context, req CategoryRequest) (*model.IncomeCategory, error) {
	category := &model.IncomeCategory{Descr: req.Descr}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *incomeCategoryService) UpdateCategory(ctx context.Context, id int64, req CategoryRequest) (*model.IncomeCategory, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil || category == nil {
		return nil, err
	}
	if err := s.categoryRepo.Update(ctx, id, map[string]any{"descr": req.Descr}); err != nil {
		return nil, err
	}
	return s.categoryRepo.FindByID(ctx, id)
}

func (s *incomeCategoryService) DeleteCategory(ctx context.Context, id int64) (bool, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil || category == nil {
		return false, err
	}
	referenced, err := s.categoryRepo.HasIncomes(ctx, id)
	if err != nil {
		return false, err
	}
	if referenced {
		return false, apperror.NewConflict("category %d has incomes and cannot be deleted", id)
	}
	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return false, err
	}
	return true, nil
}
