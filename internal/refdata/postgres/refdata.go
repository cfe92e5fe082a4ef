package postgres

import (
	"context"
	"fmt"

	"github.com/gigante-rh/talent-intake/internal/refdata"

	"gorm.io/gorm"
)

type RefdataRepository struct {
	db *gorm.DB
}

func NewRefdataRepository(db *gorm.DB) *RefdataRepository {
	return &RefdataRepository{db: db}
}

// tableFor maps a kind onto its table. Kinds are validated by the service,
// so an unknown kind here is a programming error.
func tableFor(kind refdata.Kind) string {
	switch kind {
	case refdata.KindCities:
		return "cities"
	case refdata.KindJobTitles:
		return "job_titles"
	case refdata.KindStores:
		return "stores"
	}
	panic(fmt.Sprintf("refdata: no table for kind %q", kind))
}

func (r *RefdataRepository) List(ctx context.Context, kind refdata.Kind) ([]refdata.ReferenceItem, error) {
	var items []refdata.ReferenceItem
	err := r.db.WithContext(ctx).
		Table(tableFor(kind)).
		Order("name ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *RefdataRepository) ExistsByName(ctx context.Context, kind refdata.Kind, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table(tableFor(kind)).
		Where("LOWER(name) = LOWER(?)", name).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *RefdataRepository) Create(ctx context.Context, kind refdata.Kind, item *refdata.ReferenceItem) error {
	return r.db.WithContext(ctx).
		Table(tableFor(kind)).
		Create(item).Error
}

func (r *RefdataRepository) Delete(ctx context.Context, kind refdata.Kind, id int64) error {
	result := r.db.WithContext(ctx).
		Table(tableFor(kind)).
		Where("id = ?", id).
		Delete(&refdata.ReferenceItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return refdata.ErrNotFound
	}
	return nil
}
