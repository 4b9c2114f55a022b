package repository

import (
	"errors"
	"time"

	"impulso/internal/domain"
	"impulso/internal/models"

	"gorm.io/gorm"
)

type BoostRepository struct {
	db *gorm.DB
}

func NewBoostRepository(db *gorm.DB) *BoostRepository {
	return &BoostRepository{db: db}
}

func (r *BoostRepository) Create(b *models.Boost) error {
	return r.db.Create(b).Error
}

func (r *BoostRepository) GetByID(id uint) (*models.Boost, error) {
	var b models.Boost
	err := r.db.First(&b, id).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// GetByListingAndStatus returns the boost for (listingID, status), or nil when
// none exists. The pair is treated as unique by the service layer.
func (r *BoostRepository) GetByListingAndStatus(listingID uint, status string) (*models.Boost, error) {
	var b models.Boost
	err := r.db.Where("listing_id = ? AND status = ?", listingID, status).First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BoostRepository) UpdateStatus(id uint, status string) error {
	return r.db.Model(&models.Boost{}).Where("id = ?", id).Update("status", status).Error
}

// ExpireDue moves active boosts whose window has closed to ended and returns
// how many rows changed.
func (r *BoostRepository) ExpireDue(now time.Time) (int64, error) {
	res := r.db.Model(&models.Boost{}).
		Where("status = ? AND ends_at IS NOT NULL AND ends_at <= ?", domain.BoostStatusActive, now).
		Update("status", domain.BoostStatusEnded)
	return res.RowsAffected, res.Error
}
