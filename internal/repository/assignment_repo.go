package repository

import (
	"time"

	"impulso/internal/models"

	"gorm.io/gorm"
)

type AssignmentRepository struct {
	db *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

// ListActiveByListing returns every active assignment for a listing,
// regardless of which boost created it. Reconciliation diffs against this set
// so assignments left over from a replaced boost are still removal candidates.
func (r *AssignmentRepository) ListActiveByListing(listingID uint) ([]models.SlotAssignment, error) {
	var rows []models.SlotAssignment
	err := r.db.Where("listing_id = ? AND is_active = ?", listingID, true).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// DeactivateByIDs soft-removes assignments in one batched update: rows are
// flagged inactive and stamped with endsAt, never deleted.
func (r *AssignmentRepository) DeactivateByIDs(ids []uint, endsAt time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.Model(&models.SlotAssignment{}).
		Where("id IN ?", ids).
		Updates(map[string]interface{}{"is_active": false, "ends_at": endsAt}).Error
}

// DeactivateByBoost soft-removes every active assignment of one boost.
func (r *AssignmentRepository) DeactivateByBoost(boostID uint, endsAt time.Time) (int64, error) {
	res := r.db.Model(&models.SlotAssignment{}).
		Where("boost_id = ? AND is_active = ?", boostID, true).
		Updates(map[string]interface{}{"is_active": false, "ends_at": endsAt})
	return res.RowsAffected, res.Error
}

// DeactivateExpired soft-removes active assignments whose window has closed.
func (r *AssignmentRepository) DeactivateExpired(now time.Time) (int64, error) {
	res := r.db.Model(&models.SlotAssignment{}).
		Where("is_active = ? AND ends_at IS NOT NULL AND ends_at <= ?", true, now).
		Update("is_active", false)
	return res.RowsAffected, res.Error
}

func (r *AssignmentRepository) CreateBatch(rows []models.SlotAssignment) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.Create(&rows).Error
}

// LatestByListingAndSlot returns the most recent assignment for the pair, or
// nil when the listing has never occupied the slot. Used by the cooldown check.
func (r *AssignmentRepository) LatestByListingAndSlot(listingID, slotID uint) (*models.SlotAssignment, error) {
	var rows []models.SlotAssignment
	err := r.db.Where("listing_id = ? AND slot_id = ?", listingID, slotID).
		Order("starts_at DESC").
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// BoostedRow is one entry of a slot's current contents: the assignment window
// and ranking plus the promoted listing.
type BoostedRow struct {
	AssignmentID uint           `json:"assignment_id"`
	SlotID       uint           `json:"slot_id"`
	Priority     int            `json:"priority"`
	StartsAt     time.Time      `json:"starts_at"`
	EndsAt       *time.Time     `json:"ends_at"`
	Listing      models.Listing `json:"listing"`
}

// BoostedFilters narrows the read path by listing attributes. Zero values
// mean "no filter".
type BoostedFilters struct {
	ListingType string
	UserID      uint
	CompanyID   uint
	Limit       int
}

// FetchBoostedBySlot returns the active assignments of a slot joined with
// their listings, ordered by priority descending. Ties break by ascending
// assignment id so the order is stable across calls.
func (r *AssignmentRepository) FetchBoostedBySlot(slotID uint, f BoostedFilters) ([]BoostedRow, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = 10
	}

	q := r.db.Model(&models.SlotAssignment{}).
		Select("listing_boost_slots.*").
		Joins("INNER JOIN listings l ON l.id = listing_boost_slots.listing_id AND l.deleted_at IS NULL").
		Where("listing_boost_slots.slot_id = ? AND listing_boost_slots.is_active = ?", slotID, true)

	if f.ListingType != "" {
		q = q.Where("l.listing_type = ?", f.ListingType)
	}
	if f.UserID != 0 {
		q = q.Where("l.user_id = ?", f.UserID)
	}
	if f.CompanyID != 0 {
		q = q.Where("l.company_id = ?", f.CompanyID)
	}

	var assignments []models.SlotAssignment
	err := q.Order("listing_boost_slots.priority DESC, listing_boost_slots.id ASC").
		Limit(limit).
		Preload("Listing").
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}

	rows := make([]BoostedRow, 0, len(assignments))
	for _, a := range assignments {
		rows = append(rows, BoostedRow{
			AssignmentID: a.ID,
			SlotID:       a.SlotID,
			Priority:     a.Priority,
			StartsAt:     a.StartsAt,
			EndsAt:       a.EndsAt,
			Listing:      a.Listing,
		})
	}
	return rows, nil
}
