package service

import (
	"context"
	"testing"

	"backend/internal/database"
	"backend/internal/model"
	"backend/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// deps bundles everything the service tests wire against an in-memory store.
type deps struct {
	db        *gorm.DB
	txManager repository.TransactionManager

	customers  repository.CustomerRepository
	products   repository.ProductRepository
	orders     repository.OrderRepository
	lots       repository.LotRepository
	expCats    repository.ExpenseCategoryRepository
	incCats    repository.IncomeCategoryRepository
	expenses   repository.ExpenseRepository
	incomes    repository.IncomeRepository
	notes      repository.NoteRepository
	reports    repository.ReportRepository
}

func newDeps(t *testing.T) *deps {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	return &deps{
		db:        db,
		txManager: repository.NewTransactionManager(db),
		customers: repository.NewCustomerRepository(db),
		products:  repository.NewProductRepository(db),
		orders:    repository.NewOrderRepository(db),
		lots:      repository.NewLotRepository(db),
		expCats:   repository.NewExpenseCategoryRepository(db),
		incCats:   repository.NewIncomeCategoryRepository(db),
		expenses:  repository.NewExpenseRepository(db),
		incomes:   repository.NewIncomeRepository(db),
		notes:     repository.NewNoteRepository(db),
		reports:   repository.NewReportRepository(db),
	}
}

func (d *deps) orderService() OrderService {
	return NewOrderService(d.orders, d.customers, d.products, d.txManager)
}

func (d *deps) lotService() LotService {
	return NewLotService(d.lots, d.orders, d.txManager)
}

func (d *deps) reportService() ReportService {
	return NewReportService(d.reports, d.customers)
}

func (d *deps) seedCustomer(t *testing.T, name string) *model.Customer {
	t.Helper()
	customer := &model.Customer{Name: name, IsActive: true}
	require.NoError(t, d.customers.Create(context.Background(), customer))
	return customer
}

func (d *deps) seedProduct(t *testing.T, name string, price float64, unit string) *model.Product {
	t.Helper()
	product := &model.Product{Name: name, UnitPrice: decimal.NewFromFloat(price), Unit: unit, IsActive: true}
	require.NoError(t, d.products.Create(context.Background(), product))
	return product
}

func f64(v float64) *float64 { return &v }
func i64(v int64) *int64     { return &v }
func str(v string) *string { return &v }
