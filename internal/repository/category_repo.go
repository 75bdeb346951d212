package repository

import (
	"context"
	"errors"

	"backend/internal/model"
	"backend/pkg/listing"

	"gorm.io/gorm"
)

var categoryFields = listing.FieldMap{
	"id":    {Column: "id", Kind: listing.ID},
	"descr": {Column: "descr", Kind: listing.Text},
}

// ExpenseCategoryRepository and IncomeCategoryRepository are intentionally
// parallel: the two category tables are identical in shape but must stay
// separate so referential guards stay per-kind.

type ExpenseCategoryRepository interface {
	Create(ctx context.Context, category *model.ExpenseCategory) error
	FindByID(ctx context.Context, id int64) (*model.ExpenseCategory, error)
	Update(ctx context.Context, id int64, fields map[string]any) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, q listing.Query) (listing.Page[model.ExpenseCategory], error)
	HasExpenses(ctx context.Context, id int64) (bool, error)
}

type expenseCategoryRepository struct {
	db *gorm.DB
}

func NewExpenseCategoryRepository(db *gorm.DB) ExpenseCategoryRepository {
	return &expenseCategoryRepository{db: db}
}

func (r *expenseCategoryRepository) Create(ctx context.Context, category *model.ExpenseCategory) error {
	return GetDB(ctx, r.db).Create(category).Error
}

func (r *expenseCategoryRepository) FindByID(ctx context.Context, id int64) (*model.ExpenseCategory, error) {
	var category model.ExpenseCategory
	if err := GetDB(ctx, r.db).First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *expenseCategoryRepository) Update(ctx context.Context, id int64, fields map[string]any) error {
	return GetDB(ctx, r.db).Model(&model.ExpenseCategory{}).Where("id = ?", id).Updates(fields).Error
}

func (r *expenseCategoryRepository) Delete(ctx context.Context, id int64) error {
	return GetDB(ctx, r.db).Delete(&model.ExpenseCategory{}, "id = ?", id).Error
}

func (r *expenseCategoryRepository) List(ctx context.Context, q listing.Query) (listing.Page[model.ExpenseCategory], error) {
	db := GetDB(ctx, r.db)
	return listing.Find[model.ExpenseCategory](func() *gorm.DB {
		return db.Model(&model.ExpenseCategory{})
	}, categoryFields, q)
}

func (r *expenseCategoryRepository) HasExpenses(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.Expense{}).Where("category_id = ?", id).Count(&count).Error
	return count > 0, err
}

type IncomeCategoryRepository interface {
	Create(ctx context.Context, category *model.IncomeCategory) error
	FindByID(ctx context.Context, id int64) (*model.IncomeCategory, error)
	Update(ctx context.Context, id int64, fields map[string]any) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, q listing.Query) (listing.Page[model.IncomeCategory], error)
	HasIncomes(ctx context.Context, id int64) (bool, error)
}

type incomeCategoryRepository struct {
	db *gorm.DB
}

func NewIncomeCategoryRepository(db *gorm.DB) IncomeCategoryRepository {
	return &incomeCategoryRepository{db: db}
}

func (r *incomeCategoryRepository) Create(ctx context.Context, category *model.IncomeCategory) error {
	return GetDB(ctx, r.db).Create(category).Error
}

func (r *incomeCategoryRepository) FindByID(ctx context.Context, id int64) (*model.IncomeCategory, error) {
	var category model.IncomeCategory
	if err := GetDB(ctx, r.db).First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *incomeCategoryRepository) Update(ctx context.Context, id int64, fields map[string]any) error {
	return GetDB(ctx, r.db).Model(&model.IncomeCategory{}).Where("id = ?", id).Updates(fields).Error
}

func (r *incomeCategoryRepository) Delete(ctx context.Context, id int64) error {
	return GetDB(ctx, r.db).Delete(&model.IncomeCategory{}, "id = ?", id).Error
}

func (r *incomeCategoryRepository) List(ctx context.Context, q listing.Query) (listing.Page[model.IncomeCategory], error) {
	db := GetDB(ctx, r.db)
	return listing.Find[model.IncomeCategory](func() *gorm.DB {
		return db.Model(&model.IncomeCategory{})
	}, categoryFields, q)
}

func (r *incomeCategoryRepository) HasIncomes(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.Income{}).Where("category_id = ?", id).Count(&count).Error
	return count > 0, err
}
