package repository

import (
	"impulso/internal/models"

	"gorm.io/gorm"
)

type VerticalRepository struct {
	db *gorm.DB
}

func NewVerticalRepository(db *gorm.DB) *VerticalRepository {
	return &VerticalRepository{db: db}
}

func (r *VerticalRepository) GetByID(id uint) (*models.Vertical, error) {
	var v models.Vertical
	err := r.db.First(&v, id).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *VerticalRepository) GetByKey(key string) (*models.Vertical, error) {
	var v models.Vertical
	err := r.db.Where("key = ?", key).First(&v).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}
