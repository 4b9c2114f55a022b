package models

import (
	"time"

	"gorm.io/gorm"
)

// Listing is the marketplace item a boost promotes. The boost engine treats
// the payload as opaque beyond ownership and display fields; the full CRUD
// surface lives in the marketplace apps.
type Listing struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	VerticalID  uint           `gorm:"not null;index" json:"vertical_id"`
	UserID      uint           `gorm:"not null;index" json:"user_id"`
	CompanyID   *uint          `gorm:"index" json:"company_id"`
	Title       string         `gorm:"size:255;not null" json:"title"`
	ListingType string         `gorm:"size:50;index" json:"listing_type"` // e.g. sale, rent, auction
	Status      string         `gorm:"size:20;not null;default:'published'" json:"status"`
	PriceCents  int64          `json:"price_cents"`
	Currency    string         `gorm:"size:3;default:'CLP'" json:"currency"`
	Metadata    string         `gorm:"type:text" json:"metadata"` // JSON
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Vertical Vertical `gorm:"foreignKey:VerticalID" json:"-"`
}

func (Listing) TableName() string {
	return "listings"
}
