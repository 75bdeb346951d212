package service

import (
	"context"
	"time"

	"backend/internal/model"
	"backend/internal/repository"
	"backend/pkg/apperror"
	"backend/pkg/listing"

	"github.com/shopspring/decimal"
)

type CreateExpenseRequest struct {
	CategoryID int64   `json:"category_id" binding:"required"`
	Timestamp  string  `json:"timestamp" binding:"required"`
	Amount     float64 `json:"amount" binding:"required,gt=0"`
	Note       *string `json:"note"`
}

type UpdateExpenseRequest struct {
	CategoryID *int64   `json:"category_id"`
	Timestamp  *string  `json:"timestamp"`
	Amount     *float64 `json:"amount"`
	Note       *string  `json:"note"`
}

type ExpenseResponse struct {
	ID         int64   `json:"id"`
	CategoryID int64   `json:"category_id"`
	Category   string  `json:"category"`
	Timestamp  string  `json:"timestamp"`
	Amount     float64 `json:"amount"`
	Note       *string `json:"note"`
}

type ExpenseService interface {
	ListExpenses(ctx context.Context, q listing.Query) (listing.Page[ExpenseResponse], error)
	GetExpenseByID(ctx context.Context, id int64) (*model.Expense, error)
	CreateExpense(ctx context.Context, req CreateExpenseRequest) (*model.Expense, error)
	UpdateExpense(ctx context.Context, id int64, req UpdateExpenseRequest) (*model.Expense, error)
	DeleteExpense(ctx context.Context, id int64) (bool, error)
}

type expenseService struct {
	expenseRepo  repository.ExpenseRepository
	categoryRepo repository.ExpenseCategoryRepository
}

func NewExpenseService(expenseRepo repository.ExpenseRepository, categoryRepo repository.ExpenseCategoryRepository) ExpenseService {
	return &expenseService{expenseRepo: expenseRepo, categoryRepo: categoryRepo}
}

func (s *expenseService) ListExpenses(ctx context.Context, q listing.Query) (listing.Page[ExpenseResponse], error) {
	page := listing.Page[ExpenseResponse]{Items: []ExpenseResponse{}}
	rows, err := s.expenseRepo.List(ctx, q)
	if err != nil {
		return page, err
	}
	page.Total = rows.Total
	for _, row := range rows.Items {
		page.Items = append(page.Items, ExpenseResponse{
			ID:         row.ID,
			CategoryID: row.CategoryID,
			Category:   row.Category,
			Timestamp:  row.Timestamp.Format(dateLayout),
			Amount:     row.Amount.InexactFloat64(),
			Note:       row.Note,
		})
	}
	return page, nil
}

func (s *expenseService) GetExpenseByID(ctx context.Context, id int64) (*model.Expense, error) {
	return s.expenseRepo.FindByID(ctx, id)
}

func (s *expenseService) CreateExpense(ctx context.Context, req CreateExpenseRequest) (*model.Expense, error) {
	timestamp, err := time.Parse(dateLayout, req.Timestamp)
	if err != nil {
		return nil, apperror.NewValidation("invalid timestamp: %s", req.Timestamp)
	}
	if err := s.requireCategory(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	expense := &model.Expense{
		CategoryID: req.CategoryID,
		Timestamp:  timestamp,
		Amount:     decimal.NewFromFloat(req.Amount),
		Note:       req.Note,
	}
	if err := s.expenseRepo.Create(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

func (s *expenseService) UpdateExpense(ctx context.Context, id int64, req UpdateExpenseRequest) (*model.Expense, error) {
	expense, err := s.expenseRepo.FindByID(ctx, id)
	if err != nil || expense == nil {
		return nil, err
	}

	fields := map[string]any{}
	if req.CategoryID != nil {
		if err := s.requireCategory(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
		fields["category_id"] = *req.CategoryID
	}
	if req.Timestamp != nil {
		timestamp, err := time.Parse(dateLayout, *req.Timestamp)
		if err != nil {
			return nil, apperror.NewValidation("invalid timestamp: %s", *req.Timestamp)
		}
		fields["timestamp"] = timestamp
	}
	if req.Amount != nil {
		if *req.Amount <= 0 {
			return nil, apperror.NewValidation("amount must be positive")
		}
		fields["amount"] = decimal.NewFromFloat(*req.Amount)
	}
	if req.Note != nil {
		fields["note"] = *req.Note
	}
	if err := s.expenseRepo.Update(ctx, id, fields); err != nil {
		return nil, err
	}
	return s.expenseRepo.FindByID(ctx, id)
}

func (s *expenseService) DeleteExpense(ctx context.Context, id int64) (bool, error) {
	expense, err := s.expenseRepo.FindByID(ctx, id)
	if err != nil || expense == nil {
		return false, err
	}
	if err := s.expenseRepo.Delete(ctx, id); err != nil {
		return false, err
	}
	return true, nil
}

func (s *expenseService) requireCategory(ctx context.Context, id int64) error {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if category == nil {
		return apperror.NewReferenceNotFound("expense category %d not found", id)
	}
	return nil
}
