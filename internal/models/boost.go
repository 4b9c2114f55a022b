package models

import "time"

// Boost is a grant of promotional eligibility for exactly one listing within
// a time window. Rows are never hard-deleted; the status moves
// pending -> active -> ended/cancelled. At most one boost per
// (listing, status) is enforced by lookup-before-insert in the service layer.
type Boost struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	ListingID uint       `gorm:"not null;index:idx_boosts_listing_status" json:"listing_id"`
	CompanyID *uint      `gorm:"index" json:"company_id"`
	UserID    *uint      `gorm:"index" json:"user_id"`
	Status    string     `gorm:"size:20;not null;index:idx_boosts_listing_status" json:"status"`
	StartsAt  time.Time  `gorm:"not null" json:"starts_at"`
	EndsAt    *time.Time `gorm:"index" json:"ends_at"` // nil = open-ended
	Metadata  string     `gorm:"type:text" json:"metadata"` // JSON provenance, e.g. {"plan_id":1}
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	Listing Listing `gorm:"foreignKey:ListingID" json:"-"`
}

func (Boost) TableName() string {
	return "listing_boosts"
}
