package postgres

import (
	"context"
	"errors"

	"github.com/gigante-rh/talent-intake/internal/access"

	"gorm.io/gorm"
)

type AccessRepository struct {
	db *gorm.DB
}

func NewAccessRepository(db *gorm.DB) *AccessRepository {
	return &AccessRepository{db: db}
}

func (r *AccessRepository) GetRecord(ctx context.Context, userID int64) (*access.AccessRecord, error) {
	var record access.AccessRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Take(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *AccessRepository) GetCityGrants(ctx context.Context, userID int64) ([]string, error) {
	var cities []string
	err := r.db.WithContext(ctx).
		Table("city_grants").
		Where("user_id = ?", userID).
		Order("city ASC").
		Pluck("city", &cities).Error
	if err != nil {
		return nil, err
	}
	return cities, nil
}

func (r *AccessRepository) GetStoreGrants(ctx context.Context, userID int64) ([]string, error) {
	var stores []string
	err := r.db.WithContext(ctx).
		Table("store_grants").
		Where("user_id = ?", userID).
		Order("store ASC").
		Pluck("store", &stores).Error
	if err != nil {
		return nil, err
	}
	return stores, nil
}
