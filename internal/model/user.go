package model

import "time"

// User is an API account. The tracker is effectively single-tenant: accounts
// are created through a registration endpoint guarded by a shared secret.
type User struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"type:varchar(200);not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
