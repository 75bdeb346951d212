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

// incomeFields mirrors expenseFields; "category" filters on the joined
// category description.
var incomeFields = listing.FieldMap{
	"id":               {Column: "incomes.id", Kind: listing.ID},
	"category_id":      {Column: "incomes.category_id", Kind: listing.ID},
	"category":         {Column: "incomes_categories.descr", Kind: listing.Text},
	"timestamp":        {Column: "incomes.timestamp", Kind: listing.Text},
	"amount":           {Column: "incomes.amount", Kind: listing.Numeric},
	"note":             {Column: "incomes.note", Kind: listing.Text},
	"timestamp_after":  {Column: "incomes.timestamp", Kind: listing.DateStrictlyAfter},
	"timestamp_before": {Column: "incomes.timestamp", Kind: listing.DateBefore},
	"min_amount":       {Column: "incomes.amount", Kind: listing.MinNumeric},
	"max_amount":       {Column: "incomes.amount", Kind: listing.MaxNumeric},
}

// IncomeRow is an income decorated with its category description.
type IncomeRow struct {
	ID         int64           `json:"id"`
	CategoryID int64           `json:"category_id"`
	Category   string          `json:"category"`
	Timestamp  time.Time       `json:"timestamp"`
	Amount     decimal.Decimal `json:"amount"`
	Note       *string         `json:"note"`
}

type IncomeRepository interface {
	Create(ctx context.Context, income *model.Income) error
	FindByID(ctx context.Context, id int64) (*model.Income, error)
	Update(ctx context.Context, id int64, fields map[string]any) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, q listing.Query) (listing.Page[IncomeRow], error)
}

type incomeRepository struct {
	db *gorm.DB
}

func NewIncomeRepository(db *gorm.DB) IncomeRepository {
	return &incomeRepository{db: db}
}

func (r *incomeRepository) Create(ctx context.Context, income *model.Income) error {
	return GetDB(ctx, r.db).Create(income).Error
}

func (r *incomeRepository) FindByID(ctx context.Context, id int64) (*model.Income, error) {
	var income model.Income
	if err := GetDB(ctx, r.db).First(&income, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &income, nil
}

func (r *incomeRepository) Update(ctx context.Context, id int64, fields map[string]any) error {
	return GetDB(ctx, r.db).Model(&model.Income{}).Where("id = ?", id).Updates(fields).Error
}

func (r *incomeRepository) Delete(ctx context.Context, id int64) error {
	return GetDB(ctx, r.db).Delete(&model.Income{}, "id = ?", id).Error
}

func (r *incomeRepository) List(ctx context.Context, q listing.Query) (listing.Page[IncomeRow], error) {
	db := GetDB(ctx, r.db)
	return listing.Find[IncomeRow](func() *gorm.DB {
		return db.Model(&model.Income{}).
			Select("incomes.id, incomes.category_id, incomes_categories.descr AS category, incomes.timestamp, incomes.amount, incomes.note").
			Joins("JOIN incomes_categories ON incomes_categories.id = incomes.category_id")
	}, incomeFields, q)
}
