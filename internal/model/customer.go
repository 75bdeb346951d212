package model

// Customer owns orders. It cannot be deleted while an order references it.
type Customer struct {
	ID       int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string `gorm:"type:varchar(200);uniqueIndex;not null" json:"name"`
	IsActive bool   `gorm:"not null;default:true" json:"is_active"`

	Orders []Order `gorm:"foreignKey:CustomerID;constraint:OnDelete:RESTRICT" json:"-"`
}
