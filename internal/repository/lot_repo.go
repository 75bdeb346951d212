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

var lotFields = listing.FieldMap{
	"id":              {Column: "id", Kind: listing.ID},
	"name":            {Column: "name", Kind: listing.Text},
	"lot_date":        {Column: "lot_date", Kind: listing.Text},
	"description":     {Column: "description", Kind: listing.Text},
	"lot_date_after":  {Column: "lot_date", Kind: listing.DateAfter},
	"lot_date_before": {Column: "lot_date", Kind: listing.DateBefore},
}

// LotItemRow is an order item attached to a lot, decorated with order,
// product and customer context for traceability views.
type LotItemRow struct {
	ID           int64
	OrderID      int64
	LotID        int64
	OrderDate    time.Time
	ProductID    int64
	Quantity     decimal.Decimal
	UnitPrice    decimal.Decimal
	ProductName  string
	ProductUnit  string
	CustomerID   int64
	CustomerName string
}

type LotRepository interface {
	Create(ctx context.Context, lot *model.Lot) error
	FindByID(ctx context.Context, id int64) (*model.Lot, error)
	Update(ctx context.Context, id int64, fields map[string]any) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, q listing.Query) (listing.Page[model.Lot], error)
	ItemRowsForLots(ctx context.Context, lotIDs []int64) ([]LotItemRow, error)
	ResolveItemIDs(ctx context.Context, itemIDs []int64, orderID *int64) ([]int64, error)
	ItemIDsForOrder(ctx context.Context, orderID int64) ([]int64, error)
	DetachItems(ctx context.Context, lotID int64) error
	AttachItems(ctx context.Context, itemIDs []int64, lotID int64) error
}

type lotRepository struct {
	db *gorm.DB
}

func NewLotRepository(db *gorm.DB) LotRepository {
	return &lotRepository{db: db}
}

func (r *lotRepository) Create(ctx context.Context, lot *model.Lot) error {
	return GetDB(ctx, r.db).Create(lot).Error
}

func (r *lotRepository) FindByID(ctx context.Context, id int64) (*model.Lot, error) {
	var lot model.Lot
	if err := GetDB(ctx, r.db).First(&lot, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &lot, nil
}

func (r *lotRepository) Update(ctx context.Context, id int64, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return GetDB(ctx, r.db).Model(&model.Lot{}).Where("id = ?", id).Updates(fields).Error
}

func (r *lotRepository) Delete(ctx context.Context, id int64) error {
	return GetDB(ctx, r.db).Delete(&model.Lot{}, "id = ?", id).Error
}

// List uses unbounded size semantics like orders: size<0 lists every lot.
func (r *lotRepository) List(ctx context.Context, q listing.Query) (listing.Page[model.Lot], error) {
	db := GetDB(ctx, r.db)
	return listing.FindUnbounded[model.Lot](func() *gorm.DB {
		return db.Model(&model.Lot{})
	}, lotFields, q)
}

func (r *lotRepository) ItemRowsForLots(ctx context.Context, lotIDs []int64) ([]LotItemRow, error) {
	rows := []LotItemRow{}
	if len(lotIDs) == 0 {
		return rows, nil
	}
	err := GetDB(ctx, r.db).Model(&model.OrderItem{}).
		Select("order_items.id, order_items.order_id, order_items.lot_id, orders.delivery_date AS order_date, order_items.product_id, order_items.quantity, order_items.unit_price, products.name AS product_name, products.unit AS product_unit, customers.id AS customer_id, customers.name AS customer_name").
		Joins("JOIN products ON products.id = order_items.product_id").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Joins("JOIN customers ON customers.id = orders.customer_id").
		Where("order_items.lot_id IN ?", lotIDs).
		Find(&rows).Error
	return rows, err
}

// ResolveItemIDs returns which of the requested item ids exist, optionally
// restricted to one order. The caller diffs the result against the request
// to report missing ids.
func (r *lotRepository) ResolveItemIDs(ctx context.Context, itemIDs []int64, orderID *int64) ([]int64, error) {
	found := []int64{}
	if len(itemIDs) == 0 {
		return found, nil
	}
	stmt := GetDB(ctx, r.db).Model(&model.OrderItem{}).Where("id IN ?", itemIDs)
	if orderID != nil {
		stmt = stmt.Where("order_id = ?", *orderID)
	}
	err := stmt.Pluck("id", &found).Error
	return found, err
}

func (r *lotRepository) ItemIDsForOrder(ctx context.Context, orderID int64) ([]int64, error) {
	ids := []int64{}
	err := GetDB(ctx, r.db).Model(&model.OrderItem{}).
		Where("order_id = ?", orderID).
		Pluck("id", &ids).Error
	return ids, err
}

func (r *lotRepository) DetachItems(ctx context.Context, lotID int64) error {
	return GetDB(ctx, r.db).Model(&model.OrderItem{}).
		Where("lot_id = ?", lotID).
		Update("lot_id", nil).Error
}

func (r *lotRepository) AttachItems(ctx context.Context, itemIDs []int64, lotID int64) error {
	if len(itemIDs) == 0 {
		return nil
	}
	return GetDB(ctx, r.db).Model(&model.OrderItem{}).
		Where("id IN ?", itemIDs).
		Update("lot_id", lotID).Error
}
