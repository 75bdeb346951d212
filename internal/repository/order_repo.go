package repository

import (
	"context"
	"errors"
	"time"

	"backend/internal/model"
	"backend/pkg/listing"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// orderFields is the listing allowlist for orders. customer_name filters and
// sorts on the joined customers table.
var orderFields = listing.FieldMap{
	"id":                   {Column: "orders.id", Kind: listing.ID},
	"customer_id":          {Column: "orders.customer_id", Kind: listing.ID},
	"delivery_date":        {Column: "orders.delivery_date", Kind: listing.Text},
	"created_at":           {Column: "orders.created_at", Kind: listing.Text},
	"customer_name":        {Column: "customers.name", Kind: listing.Text},
	"status":               {Column: "orders.status", Kind: listing.Text},
	"delivery_date_after":  {Column: "orders.delivery_date", Kind: listing.DateAfter},
	"delivery_date_before": {Column: "orders.delivery_date", Kind: listing.DateBefore},
}

// OrderRow is an order joined with its customer name. The total is computed
// by the service once items are attached.
type OrderRow struct {
	ID              int64
	CustomerID      int64
	DeliveryDate    time.Time
	CreatedAt       time.Time
	AppliedDiscount decimal.Decimal
	Status          string
	CustomerName    string
}

// OrderItemRow is an order item joined with its product name and unit.
type OrderItemRow struct {
	ID          int64
	OrderID     int64
	ProductID   int64
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	LotID       *int64
	ProductName string
	Unit        string
}

type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	FindByID(ctx context.Context, id int64) (*model.Order, error)
	FindRowByID(ctx context.Context, id int64) (*OrderRow, error)
	List(ctx context.Context, q listing.Query) (listing.Page[OrderRow], error)
	ItemRowsForOrders(ctx context.Context, orderIDs []int64) ([]OrderItemRow, error)
	UpdateScalars(ctx context.Context, id int64, fields map[string]any) error
	ItemPricesForUpdate(ctx context.Context, orderID int64) (map[int64]decimal.Decimal, error)
	DeleteItems(ctx context.Context, orderID int64) error
	CreateItems(ctx context.Context, items []model.OrderItem) error
	Delete(ctx context.Context, id int64) error
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	return GetDB(ctx, r.db).Create(order).Error
}

func (r *orderRepository) FindByID(ctx context.Context, id int64) (*model.Order, error) {
	var order model.Order
	if err := GetDB(ctx, r.db).First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) FindRowByID(ctx context.Context, id int64) (*OrderRow, error) {
	var row OrderRow
	err := r.baseRowQuery(GetDB(ctx, r.db)).Where("orders.id = ?", id).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// List leaves size semantics to the caller: a negative size lists everything,
// which the calendar view relies on.
func (r *orderRepository) List(ctx context.Context, q listing.Query) (listing.Page[OrderRow], error) {
	db := GetDB(ctx, r.db)
	return listing.FindUnbounded[OrderRow](func() *gorm.DB {
		return r.baseRowQuery(db)
	}, orderFields, q)
}

func (r *orderRepository) baseRowQuery(db *gorm.DB) *gorm.DB {
	return db.Model(&model.Order{}).
		Select("orders.id, orders.customer_id, orders.delivery_date, orders.created_at, orders.applied_discount, orders.status, customers.name AS customer_name").
		Joins("JOIN customers ON customers.id = orders.customer_id")
}

func (r *orderRepository) ItemRowsForOrders(ctx context.Context, orderIDs []int64) ([]OrderItemRow, error) {
	rows := []OrderItemRow{}
	if len(orderIDs) == 0 {
		return rows, nil
	}
	err := GetDB(ctx, r.db).Model(&model.OrderItem{}).
		Select("order_items.id, order_items.order_id, order_items.product_id, order_items.quantity, order_items.unit_price, order_items.lot_id, products.name AS product_name, products.unit AS unit").
		Joins("JOIN products ON products.id = order_items.product_id").
		Where("order_items.order_id IN ?", orderIDs).
		Find(&rows).Error
	return rows, err
}

func (r *orderRepository) UpdateScalars(ctx context.Context, id int64, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return GetDB(ctx, r.db).Model(&model.Order{}).Where("id = ?", id).Updates(fields).Error
}

// ItemPricesForUpdate reads the current snapshot price per product for an
// order, locking the rows so two concurrent full replacements of the same
// order's items serialize instead of losing one of the writes. SQLite has no
// row locks; its single-writer model covers the same race there.
func (r *orderRepository) ItemPricesForUpdate(ctx context.Context, orderID int64) (map[int64]decimal.Decimal, error) {
	db := GetDB(ctx, r.db)
	stmt := db.Model(&model.OrderItem{}).Where("order_id = ?", orderID)
	if db.Dialector.Name() == "postgres" {
		stmt = stmt.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var items []model.OrderItem
	if err := stmt.Find(&items).Error; err != nil {
		return nil, err
	}

	prices := make(map[int64]decimal.Decimal, len(items))
	for _, item := range items {
		prices[item.ProductID] = item.UnitPrice
	}
	return prices, nil
}

func (r *orderRepository) DeleteItems(ctx context.Context, orderID int64) error {
	return GetDB(ctx, r.db).Delete(&model.OrderItem{}, "order_id = ?", orderID).Error
}

func (r *orderRepository) CreateItems(ctx context.Context, items []model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return GetDB(ctx, r.db).Create(&items).Error
}

// Delete removes the order's items and the order itself. The item delete is
// explicit so the cascade holds on stores without FK enforcement.
func (r *orderRepository) Delete(ctx context.Context, id int64) error {
	db := GetDB(ctx, r.db)
	if err := db.Delete(&model.OrderItem{}, "order_id = ?", id).Error; err != nil {
		return err
	}
	return db.Delete(&model.Order{}, "id = ?", id).Error
}
