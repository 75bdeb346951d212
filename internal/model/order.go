package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus enum constants. Only delivered orders count as realized
// entries in the cashflow report.
const (
	OrderStatusCreated   = "created"
	OrderStatusDelivered = "delivered"
)

// Order groups order items for one customer on one delivery date.
// The total amount is never stored: it is derived from the items and the
// applied discount at read time.
type Order struct {
	ID              int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerID      int64           `gorm:"not null;index" json:"customer_id"`
	DeliveryDate    time.Time       `gorm:"type:date;not null;index:ix_orders_delivery_date_id,priority:1" json:"delivery_date"`
	CreatedAt       time.Time       `json:"created_at"`
	AppliedDiscount decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;check:applied_discount >= 0 AND applied_discount <= 100" json:"applied_discount"`
	Status          string          `gorm:"type:varchar(16);not null;default:'created';check:status IN ('created', 'delivered')" json:"status"`

	Customer *Customer   `gorm:"foreignKey:CustomerID;constraint:OnDelete:RESTRICT" json:"customer,omitempty"`
	Items    []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// OrderItem is one line of an order. The unit price is a point-in-time
// snapshot taken when the line was written, never re-derived from the
// product afterwards. An item belongs to at most one lot.
type OrderItem struct {
	ID        int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   int64           `gorm:"not null;uniqueIndex:uq_orderitem_order_product,priority:1" json:"order_id"`
	ProductID int64           `gorm:"not null;index;uniqueIndex:uq_orderitem_order_product,priority:2" json:"product_id"`
	Quantity  decimal.Decimal `gorm:"type:decimal(12,3);not null;check:quantity > 0" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	LotID     *int64          `gorm:"index" json:"lot_id"`

	Product *Product `gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT" json:"product,omitempty"`
	Lot     *Lot     `gorm:"foreignKey:LotID;constraint:OnDelete:SET NULL" json:"lot,omitempty"`
}
