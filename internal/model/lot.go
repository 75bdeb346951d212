package model

import "time"

// Lot is a traceability batch. Order items point at it via a nullable FK;
// deleting a lot detaches the items, never deletes them.
//
// The name is canonical: "YYYYMMDD <location>". Callers may supply a name
// but it only survives when it already equals the canonical form.
type Lot struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	LotDate     time.Time `gorm:"type:date;not null;index" json:"lot_date"`
	Name        string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"name"`
	Location    string    `gorm:"type:varchar(200);not null;default:''" json:"location"`
	Description *string   `gorm:"type:text" json:"description"`

	Items []OrderItem `gorm:"foreignKey:LotID;constraint:OnDelete:SET NULL" json:"-"`
}
