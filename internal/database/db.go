package database

import (
	"backend/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewConnection initializes a new connection pool using GORM.
// TranslateError turns driver-level unique violations into
// gorm.ErrDuplicatedKey so the handler layer can map them to 409.
func NewConnection(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate applies the schema. Order matters: referenced tables first.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Customer{},
		&model.Product{},
		&model.Lot{},
		&model.Order{},
		&model.OrderItem{},
		&model.ExpenseCategory{},
		&model.IncomeCategory{},
		&model.Expense{},
		&model.Income{},
		&model.Note{},
	)
}
