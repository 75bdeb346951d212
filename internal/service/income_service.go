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

type CreateIncomeRequest struct {
	CategoryID int64   `json:"category_id" binding:"required"`
	Timestamp  string  `json:"timestamp" binding:"required"`
	Amount     float64 `json:"amount" binding:"required,gt=0"`
	Note       *string `json:"note"`
}

type UpdateIncomeRequest struct {
	CategoryID *int64   `json:"category_id"`
	Timestamp  *string  `json:"timestamp"`
	Amount     *float64 `json:"amount"`
	Note       *string  `json:"note"`
}

type IncomeResponse struct {
	ID         int64   `json:"id"`
	CategoryID int64   `json:"category_id"`
	Category   string  `json:"category"`
	Timestamp  string  `json:"timestamp"`
	Amount     float64 `json:"amount"`
	Note       *string `json:"note"`
}

type IncomeService interface {
	ListIncomes(ctx context.Context, q listing.Query) (listing.Page[IncomeResponse], error)
	GetIncomeByID(ctx context.Context, id int64) (*model.Income, error)
	CreateIncome(ctx context.Context, req CreateIncomeRequest) (*model.Income, error)
	UpdateIncome(ctx context.Context, id int64, req UpdateIncomeRequest) (*model.Income, error)
	DeleteIncome(ctx context.Context, id int64) (bool, error)
}

type incomeService struct {
	incomeRepo   repository.IncomeRepository
	categoryRepo repository.IncomeCategoryRepository
}

func NewIncomeService(incomeRepo repository.IncomeRepository, categoryRepo repository.IncomeCategoryRepository) IncomeService {
	return &incomeService{incomeRepo: incomeRepo, categoryRepo: categoryRepo}
}

func (s *incomeService) ListIncomes(ctx context.Context, q listing.Query) (listing.Page[IncomeResponse], error) {
	page := listing.Page[IncomeResponse]{Items: []IncomeResponse{}}
	rows, err := s.incomeRepo.List(ctx, q)
	if err != nil {
		return page, err
	}
	page.Total = rows.Total
	for _, row := range rows.Items {
		page.Items = append(page.Items, IncomeResponse{
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

func (s *incomeService) GetIncomeByID(ctx context.Context, id int64) (*model.Income, error) {
	return s.incomeRepo.FindByID(ctx, id)
}

func (s *incomeService) CreateIncome(ctx context.Context, req CreateIncomeRequest) (*model.Income, error) {
	timestamp, err := time.Parse(dateLayout, req.Timestamp)
	if err != nil {
		return nil, apperror.NewValidation("invalid timestamp: %s", req.Timestamp)
	}
	if err := s.requireCategory(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	income := &model.Income{
		CategoryID: req.CategoryID,
		Timestamp:  timestamp,
		Amount:     decimal.NewFromFloat(req.Amount),
		Note:       req.Note,
	}
	if err := s.incomeRepo.Create(ctx, income); err != nil {
		return nil, err
	}
	return income, nil
}

func (s *incomeService) UpdateIncome(ctx context.Context, id int64, req UpdateIncomeRequest) (*model.Income, error) {
	income, err := s.incomeRepo.FindByID(ctx, id)
	if err != nil || income == nil {
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
	if err := s.incomeRepo.Update(ctx, id, fields); err != nil {
		return nil, err
	}
	return s.incomeRepo.FindByID(ctx, id)
}

func (s *incomeService) DeleteIncome(ctx context.Context, id int64) (bool, error) {
	income, err := s.incomeRepo.FindByID(ctx, id)
	if err != nil || income == nil {
		return false, err
	}
	if err := s.incomeRepo.Delete(ctx, id); err != nil {
		return false, err
	}
	return true, nil
}

func (s *incomeService) requireCategory(ctx context.Context, id int64) error {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if category == nil {
		return apperror.NewReferenceNotFound("income category %d not found", id)
	}
	return nil
}
