package models

import "time"

// SlotAssignment binds one boost to one slot for a concrete listing and time
// window. The table is an insert-only audit log: removal flips IsActive and
// stamps EndsAt, it never deletes. ListingID is denormalized so the read path
// joins straight to listings without going through the boost.
type SlotAssignment struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	BoostID   uint       `gorm:"not null;index" json:"boost_id"`
	SlotID    uint       `gorm:"not null;index" json:"slot_id"`
	ListingID uint       `gorm:"not null;index" json:"listing_id"`
	Priority  int        `gorm:"default:0" json:"priority"`
	StartsAt  time.Time  `gorm:"not null;index" json:"starts_at"`
	EndsAt    *time.Time `json:"ends_at"`
	IsActive  bool       `gorm:"default:true;index" json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	Boost   Boost   `gorm:"foreignKey:BoostID" json:"-"`
	Slot    Slot    `gorm:"foreignKey:SlotID" json:"-"`
	Listing Listing `gorm:"foreignKey:ListingID" json:"-"`
}

func (SlotAssignment) TableName() string {
	return "listing_boost_slots"
}
