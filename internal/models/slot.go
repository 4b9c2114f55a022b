package models

import "time"

// Slot is a promotional placement (home carousel, category tab, profile page).
// Reference data: seeded at startup, administered out of band, read-only to
// the boost engine.
type Slot struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	VerticalID          uint      `gorm:"not null;uniqueIndex:idx_slots_vertical_key" json:"vertical_id"`
	Key                 string    `gorm:"size:50;not null;uniqueIndex:idx_slots_vertical_key" json:"key"`
	Title               string    `gorm:"size:100;not null" json:"title"`
	Description         string    `gorm:"size:255" json:"description"`
	Placement           string    `gorm:"size:50" json:"placement"`
	MaxActive           *int      `json:"max_active"`            // nil = unbounded capacity
	DefaultDurationDays *int      `json:"default_duration_days"` // nil = open-ended by default
	PriceCents          *int64    `json:"price_cents"`
	Currency            string    `gorm:"size:3;default:'CLP'" json:"currency"`
	IsActive            bool      `gorm:"default:true;index" json:"is_active"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`

	Vertical Vertical `gorm:"foreignKey:VerticalID" json:"-"`
}

func (Slot) TableName() string {
	return "boost_slots"
}
