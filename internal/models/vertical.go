package models

import "time"

// Vertical is a product line (autos, properties, stores, food). Slots and
// listings belong to exactly one vertical.
type Vertical struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"uniqueIndex;size:50;not null" json:"key"`
	Title     string    `gorm:"size:100;not null" json:"title"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Vertical) TableName() string {
	return "verticals"
}
