package repository

import (
	"context"
	"errors"
	"time"

	"backend/internal/model"
	"backend/pkg/listing"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// expenseFields is the listing allowlist for expenses. timestamp_after is
// strictly-after here, matching the historical behavior of this endpoint.
var expenseFields = listing.FieldMap{
	"id":               {Column: "expenses.id", Kind: listing.ID},
	"category_id":      {Column: "expenses.category_id", Kind: listing.ID},
	"category":         {Column: "expenses_categories.descr", Kind: listing.Text},
	"timestamp":        {Column: "expenses.timestamp", Kind: listing.Text},
	"amount":           {Column: "expenses.amount", Kind: listing.Numeric},
	"note":             {Column: "expenses.note", Kind: listing.Text},
	"timestamp_after":  {Column: "expenses.timestamp", Kind: listing.DateStrictlyAfter},
	"timestamp_before": {Column: "expenses.timestamp", Kind: listing.DateBefore},
	"min_amount":       {Column: "expenses.amount", Kind: listing.MinNumeric},
	"max_amount":       {Column: "expenses.amount", Kind: listing.MaxNumeric},
}

// ExpenseRow is an expense decorated with its category description.
type ExpenseRow struct {
	ID         int64           `json:"id"`
	CategoryID int64           `json:"category_id"`
	Category   string          `json:"category"`
	Timestamp  time.Time       `json:"timestamp"`
	Amount     decimal.Decimal `json:"amount"`
	Note       *string         `json:"note"`
}

type ExpenseRepository interface {
	Create(ctx context.Context, expense *model.Expense) error
	FindByID(ctx context.Context, id int64) (*model.Expense, error)
	Update(ctx context.Context, id int64, fields map[string]any) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, q listing.Query) (listing.Page[ExpenseRow], error)
}

type expenseRepository struct {
	db *gorm.DB
}

func NewExpenseRepository(db *gorm.DB) ExpenseRepository {
	return &expenseRepository{db: db}
}

func (r *expenseRepository) Create(ctx context.Context, expense *model.Expense) error {
	return GetDB(ctx, r.db).Create(expense).Error
}

func (r *expenseRepository) FindByID(ctx context.Context, id int64) (*model.Expense, error) {
	var expense model.Expense
	if err := GetDB(ctx, r.db).First(&expense, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &expense, nil
}

func (r *expenseRepository) Update(ctx context.Context, id int64, fields map[string]any) error {
	return GetDB(ctx, r.db).Model(&model.Expense{}).Where("id = ?", id).Updates(fields).Error
}

func (r *expenseRepository) Delete(ctx context.Context, id int64) error {
	return GetDB(ctx, r.db).Delete(&model.Expense{}, "id = ?", id).Error
}

func (r *expenseRepository) List(ctx context.Context, q listing.Query) (listing.Page[ExpenseRow], error) {
	db := GetDB(ctx, r.db)
	return listing.Find[ExpenseRow](func() *gorm.DB {
		return db.Model(&model.Expense{}).
			Select("expenses.id, expenses.category_id, expenses_categories.descr AS category, expenses.timestamp, expenses.amount, expenses.note").
			Joins("JOIN expenses_categories ON expenses_categories.id = expenses.category_id")
	}, expenseFields, q)
}
