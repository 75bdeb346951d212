package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Income is a dated revenue entry outside the order flow (e.g. market sales).
type Income struct {
	ID         int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	CategoryID int64           `gorm:"not null;index" json:"category_id"`
	Timestamp  time.Time       `gorm:"type:date;not null;index" json:"timestamp"`
	Amount     decimal.Decimal `gorm:"type:decimal(12,2);not null;check:amount > 0" json:"amount"`
	Note       *string         `gorm:"type:varchar(500)" json:"note"`

	Category *IncomeCategory `gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT" json:"category,omitempty"`
}
