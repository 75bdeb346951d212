package model

import "time"

// Note is a free-form annotation. UpdatedAt is touched on every mutation.
type Note struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Text      string    `gorm:"type:text;not null" json:"text"`
}
