package repository

import (
	"context"
	"time"

	"backend/internal/model"

	"gorm.io/gorm"
)

// discountedRevenue is the per-line realized revenue expression shared by the
// customer-sales and cashflow aggregates.
const discountedRevenue = "order_items.quantity * order_items.unit_price * (1 - COALESCE(orders.applied_discount, 0) / 100.0)"

// ProductSalesRow aggregates one product's sales inside a window.
type ProductSalesRow struct {
	ProductID   int64   `json:"product_id"`
	ProductName string  `json:"product_name"`
	Unit        string  `json:"unit"`
	TotalQty    float64 `json:"total_qty"`
	Revenue     float64 `json:"revenue"`
}

// CategoryRollupRow aggregates one category's expense or income activity.
// Categories with zero activity in the window still appear with amount=0,
// count=0.
type CategoryRollupRow struct {
	CategoryID    int64   `json:"category_id"`
	CategoryDescr string  `json:"category_descr"`
	Amount        float64 `json:"amount"`
	Count         int64   `gorm:"column:records_count" json:"count"`
}

// CustomerSalesRow aggregates one product's discount-adjusted sales to a
// single customer.
type CustomerSalesRow struct {
	ProductID   int64   `json:"product_id"`
	ProductName string  `json:"product_name"`
	Unit        string  `json:"unit"`
	AvgDiscount float64 `json:"avg_discount"`
	TotalQty    float64 `json:"total_qty"`
	Revenue     float64 `json:"revenue"`
}

// CashOrderEntryRow is one delivered order's realized revenue.
type CashOrderEntryRow struct {
	OrderID int64     `json:"order_id"`
	Date    time.Time `json:"date"`
	Amount  float64   `json:"amount"`
}

// CashRecordRow is one income or expense row inside the window.
type CashRecordRow struct {
	ID     int64     `json:"id"`
	Date   time.Time `gorm:"column:timestamp" json:"date"`
	Amount float64   `json:"amount"`
	Note   *string   `json:"note"`
}

// DailyTotalRow is one product's total quantity on one delivery day.
type DailyTotalRow struct {
	Day         time.Time
	ProductID   int64
	ProductName string
	ProductUnit string
	TotalQty    float64
}

// DailyBreakdownRow splits a day/product total by customer and order status.
type DailyBreakdownRow struct {
	Day          time.Time
	ProductID    int64
	CustomerID   int64
	CustomerName string
	OrderStatus  string
	Qty          float64
}

// ReportRepository holds the read-side aggregate queries. All windows are
// inclusive on both ends and run as single queries.
type ReportRepository interface {
	ProductSales(ctx context.Context, start, end time.Time, productIDs []int64) ([]ProductSalesRow, error)
	ExpenseCategoriesRollup(ctx context.Context, start, end time.Time, categoryIDs []int64) ([]CategoryRollupRow, error)
	IncomeCategoriesRollup(ctx context.Context, start, end time.Time, categoryIDs []int64) ([]CategoryRollupRow, error)
	CustomerSalesPerProduct(ctx context.Context, customerID int64, start, end time.Time) ([]CustomerSalesRow, error)
	CustomerSalesTotal(ctx context.Context, customerID int64, start, end time.Time) (float64, error)
	DeliveredOrderEntries(ctx context.Context, start, end time.Time) ([]CashOrderEntryRow, error)
	IncomesInWindow(ctx context.Context, start, end time.Time) ([]CashRecordRow, error)
	ExpensesInWindow(ctx context.Context, start, end time.Time) ([]CashRecordRow, error)
	DailyTotals(ctx context.Context, start, end time.Time) ([]DailyTotalRow, error)
	DailyBreakdown(ctx context.Context, start, end time.Time) ([]DailyBreakdownRow, error)
}

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

// ProductSales intentionally applies no order-status filter; see the cashflow
// queries for the delivered-only view.
func (r *reportRepository) ProductSales(ctx context.Context, start, end time.Time, productIDs []int64) ([]ProductSalesRow, error) {
	rows := []ProductSalesRow{}
	stmt := GetDB(ctx, r.db).Model(&model.Product{}).
		Select("products.id AS product_id, products.name AS product_name, products.unit AS unit, SUM(order_items.quantity) AS total_qty, SUM(order_items.quantity * order_items.unit_price) AS revenue").
		Joins("JOIN order_items ON order_items.product_id = products.id").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.delivery_date BETWEEN ? AND ?", start, end).
		Group("products.id, products.name, products.unit").
		Order("products.name ASC")
	if len(productIDs) > 0 {
		stmt = stmt.Where("products.id IN ?", productIDs)
	}
	err := stmt.Find(&rows).Error
	return rows, err
}

func (r *reportRepository) ExpenseCategoriesRollup(ctx context.Context, start, end time.Time, categoryIDs []int64) ([]CategoryRollupRow, error) {
	rows := []CategoryRollupRow{}
	stmt := GetDB(ctx, r.db).Model(&model.ExpenseCategory{}).
		Select("expenses_categories.id AS category_id, expenses_categories.descr AS category_descr, COALESCE(SUM(expenses.amount), 0) AS amount, COUNT(expenses.id) AS records_count").
		Joins("LEFT JOIN expenses ON expenses.category_id = expenses_categories.id AND expenses.timestamp >= ? AND expenses.timestamp <= ?", start, end).
		Group("expenses_categories.id, expenses_categories.descr").
		Order("expenses_categories.id ASC")
	if len(categoryIDs) > 0 {
		stmt = stmt.Where("expenses_categories.id IN ?", categoryIDs)
	}
	err := stmt.Find(&rows).Error
	return rows, err
}

func (r *reportRepository) IncomeCategoriesRollup(ctx context.Context, start, end time.Time, categoryIDs []int64) ([]CategoryRollupRow, error) {
	rows := []CategoryRollupRow{}
	stmt := GetDB(ctx, r.db).Model(&model.IncomeCategory{}).
		Select("incomes_categories.id AS category_id, incomes_categories.descr AS category_descr, COALESCE(SUM(incomes.amount), 0) AS amount, COUNT(incomes.id) AS records_count").
		Joins("LEFT JOIN incomes ON incomes.category_id = incomes_categories.id AND incomes.timestamp >= ? AND incomes.timestamp <= ?", start, end).
		Group("incomes_categories.id, incomes_categories.descr").
		Order("incomes_categories.id ASC")
	if len(categoryIDs) > 0 {
		stmt = stmt.Where("incomes_categories.id IN ?", categoryIDs)
	}
	err := stmt.Find(&rows).Error
	return rows, err
}

func (r *reportRepository) CustomerSalesPerProduct(ctx context.Context, customerID int64, start, end time.Time) ([]CustomerSalesRow, error) {
	rows := []CustomerSalesRow{}
	err := GetDB(ctx, r.db).Model(&model.Product{}).
		Select("products.id AS product_id, products.name AS product_name, products.unit AS unit, AVG(COALESCE(orders.applied_discount, 0)) AS avg_discount, SUM(order_items.quantity) AS total_qty, SUM("+discountedRevenue+") AS revenue").
		Joins("JOIN order_items ON order_items.product_id = products.id").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.customer_id = ? AND orders.delivery_date BETWEEN ? AND ?", customerID, start, end).
		Group("products.id, products.name, products.unit").
		Order("products.name ASC").
		Find(&rows).Error
	return rows, err
}

// CustomerSalesTotal computes the customer's total revenue independently of
// the per-product rows so the two can be cross-checked.
func (r *reportRepository) CustomerSalesTotal(ctx context.Context, customerID int64, start, end time.Time) (float64, error) {
	var result struct {
		Total float64
	}
	err := GetDB(ctx, r.db).Model(&model.Order{}).
		Select("COALESCE(SUM(" + discountedRevenue + "), 0) AS total").
		Joins("JOIN order_items ON order_items.order_id = orders.id").
		Where("orders.customer_id = ? AND orders.delivery_date BETWEEN ? AND ?", customerID, start, end).
		Take(&result).Error
	return result.Total, err
}

// DeliveredOrderEntries is the realized-revenue side of the cashflow report:
// only delivered orders count.
func (r *reportRepository) DeliveredOrderEntries(ctx context.Context, start, end time.Time) ([]CashOrderEntryRow, error) {
	rows := []CashOrderEntryRow{}
	err := GetDB(ctx, r.db).Model(&model.Order{}).
		Select("orders.id AS order_id, orders.delivery_date AS date, SUM("+discountedRevenue+") AS amount").
		Joins("JOIN order_items ON order_items.order_id = orders.id").
		Where("orders.delivery_date BETWEEN ? AND ?", start, end).
		Where("orders.status = ?", model.OrderStatusDelivered).
		Group("orders.id, orders.delivery_date").
		Order("orders.delivery_date ASC, orders.id ASC").
		Find(&rows).Error
	return rows, err
}

func (r *reportRepository) IncomesInWindow(ctx context.Context, start, end time.Time) ([]CashRecordRow, error) {
	rows := []CashRecordRow{}
	err := GetDB(ctx, r.db).Model(&model.Income{}).
		Select("id, timestamp, amount, note").
		Where("timestamp BETWEEN ? AND ?", start, end).
		Order("timestamp ASC, id ASC").
		Find(&rows).Error
	return rows, err
}

func (r *reportRepository) ExpensesInWindow(ctx context.Context, start, end time.Time) ([]CashRecordRow, error) {
	rows := []CashRecordRow{}
	err := GetDB(ctx, r.db).Model(&model.Expense{}).
		Select("id, timestamp, amount, note").
		Where("timestamp BETWEEN ? AND ?", start, end).
		Order("timestamp ASC, id ASC").
		Find(&rows).Error
	return rows, err
}

func (r *reportRepository) DailyTotals(ctx context.Context, start, end time.Time) ([]DailyTotalRow, error) {
	rows := []DailyTotalRow{}
	err := GetDB(ctx, r.db).Model(&model.Order{}).
		Select("orders.delivery_date AS day, products.id AS product_id, products.name AS product_name, products.unit AS product_unit, SUM(order_items.quantity) AS total_qty").
		Joins("JOIN order_items ON order_items.order_id = orders.id").
		Joins("JOIN products ON products.id = order_items.product_id").
		Where("orders.delivery_date BETWEEN ? AND ?", start, end).
		Group("orders.delivery_date, products.id, products.name, products.unit").
		Order("orders.delivery_date ASC, products.name ASC").
		Find(&rows).Error
	return rows, err
}

func (r *reportRepository) DailyBreakdown(ctx context.Context, start, end time.Time) ([]DailyBreakdownRow, error) {
	rows := []DailyBreakdownRow{}
	err := GetDB(ctx, r.db).Model(&model.Order{}).
		Select("orders.delivery_date AS day, products.id AS product_id, customers.id AS customer_id, customers.name AS customer_name, orders.status AS order_status, SUM(order_items.quantity) AS qty").
		Joins("JOIN order_items ON order_items.order_id = orders.id").
		Joins("JOIN products ON products.id = order_items.product_id").
		Joins("JOIN customers ON customers.id = orders.customer_id").
		Where("orders.delivery_date BETWEEN ? AND ?", start, end).
		Group("orders.delivery_date, products.id, customers.id, customers.name, orders.status").
		Order("orders.delivery_date ASC, products.name ASC, customers.name ASC, orders.status ASC").
		Find(&rows).Error
	return rows, err
}
