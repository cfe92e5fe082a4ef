package postgres

import (
	"context"

	"github.com/gigante-rh/talent-intake/internal/access"
	"github.com/gigante-rh/talent-intake/internal/user"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&user.Identity{}).
		Where("LOWER(email) = LOWER(?)", email).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *UserRepository) CreateIdentity(ctx context.Context, identity *user.Identity) error {
	return r.db.WithContext(ctx).Create(identity).Error
}

func (r *UserRepository) CreateAccessRecord(ctx context.Context, record *access.AccessRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *UserRepository) ListAccounts(ctx context.Context) ([]user.Account, error) {
	var records []access.AccessRecord
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	accounts := make([]user.Account, 0, len(records))
	for _, record := range records {
		account := user.Account{
			UserID:    record.UserID,
			Email:     record.Email,
			Role:      record.Role,
			IsActive:  record.IsActive,
			Cities:    []string{},
			Stores:    []string{},
			CreatedAt: record.CreatedAt,
		}

		if err := r.db.WithContext(ctx).
			Table("city_grants").
			Where("user_id = ?", record.UserID).
			Order("city ASC").
			Pluck("city", &account.Cities).Error; err != nil {
			return nil, err
		}
		if err := r.db.WithContext(ctx).
			Table("store_grants").
			Where("user_id = ?", record.UserID).
			Order("store ASC").
			Pluck("store", &account.Stores).Error; err != nil {
			return nil, err
		}

		accounts = append(accounts, account)
	}

	return accounts, nil
}

func (r *UserRepository) SetActive(ctx context.Context, userID int64, isActive bool) error {
	result := r.db.WithContext(ctx).
		Model(&access.AccessRecord{}).
		Where("user_id = ?", userID).
		Update("is_active", isActive)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return user.ErrNotFound
	}
	return nil
}

// ReplaceCityGrants swaps the full grant set in one transaction so a
// concurrent access resolution never sees a half-written set.
func (r *UserRepository) ReplaceCityGrants(ctx context.Context, userID int64, cities []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Table("city_grants").Where("user_id = ?", userID).Delete(nil).Error; err != nil {
			return err
		}
		for _, city := range cities {
			if err := tx.Table("city_grants").Create(map[string]interface{}{
				"user_id": userID,
				"city":    city,
			}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *UserRepository) ReplaceStoreGrants(ctx context.Context, userID int64, stores []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Table("store_grants").Where("user_id = ?", userID).Delete(nil).Error; err != nil {
			return err
		}
		for _, store := range stores {
			if err := tx.Table("store_grants").Create(map[string]interface{}{
				"user_id": userID,
				"store":   store,
			}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
