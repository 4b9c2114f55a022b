package repository

import (
	"errors"

	"impulso/internal/models"

	"gorm.io/gorm"
)

type SlotRepository struct {
	db *gorm.DB
}

func NewSlotRepository(db *gorm.DB) *SlotRepository {
	return &SlotRepository{db: db}
}

// ResolveActive returns the active slot for (slotKey, verticalKey), or nil
// when no such slot exists. Absence is not an error: callers treat a nil slot
// as "nothing to do".
func (r *SlotRepository) ResolveActive(slotKey, verticalKey string) (*models.Slot, error) {
	var s models.Slot
	err := r.db.
		Select("boost_slots.*").
		Joins("INNER JOIN verticals v ON v.id = boost_slots.vertical_id").
		Where("boost_slots.key = ? AND v.key = ? AND boost_slots.is_active = ?", slotKey, verticalKey, true).
		First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// ListActiveByVertical returns the active slots of a vertical ordered by
// price descending. Ties (and null prices, which sort last) break by
// ascending id, i.e. creation order, so the catalog order is deterministic.
func (r *SlotRepository) ListActiveByVertical(verticalKey string) ([]models.Slot, error) {
	var slots []models.Slot
	err := r.db.
		Select("boost_slots.*").
		Joins("INNER JOIN verticals v ON v.id = boost_slots.vertical_id").
		Where("v.key = ? AND boost_slots.is_active = ?", verticalKey, true).
		Order("boost_slots.price_cents IS NULL, boost_slots.price_cents DESC, boost_slots.id ASC").
		Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

// GetActiveByIDs returns the active slots among ids, in no particular order.
func (r *SlotRepository) GetActiveByIDs(ids []uint) ([]models.Slot, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var slots []models.Slot
	err := r.db.Where("id IN ? AND is_active = ?", ids, true).Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}
