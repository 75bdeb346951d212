package model

import "github.com/shopspring/decimal"

// Unit enum constants
const (
	UnitKg = "Kg" // sold by weight
	UnitPx = "Px" // sold by count
)

// Product is the catalog entry referenced by order items. The price stored
// here is the current price; order items snapshot it at order time.
type Product struct {
	ID        int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string          `gorm:"type:varchar(200);uniqueIndex;not null" json:"name"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	Unit      string          `gorm:"type:varchar(8);not null;check:unit IN ('Kg', 'Px')" json:"unit"`
	IsActive  bool            `gorm:"not null;default:true" json:"is_active"`
}
