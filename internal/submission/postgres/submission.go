package postgres

import (
	"context"
	"errors"

	"github.com/gigante-rh/talent-intake/internal/submission"

	"gorm.io/gorm"
)

type SubmissionRepository struct {
	db *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

func (r *SubmissionRepository) Create(ctx context.Context, sub *submission.Submission) error {
	return r.db.WithContext(ctx).Create(sub).Error
}

func (r *SubmissionRepository) List(ctx context.Context, filter submission.Filter) ([]submission.Submission, error) {
	query := r.db.WithContext(ctx).Model(&submission.Submission{})

	if filter.Cities != nil {
		query = query.Where("city IN ?", filter.Cities)
	}
	if filter.City != "" {
		query = query.Where("city = ?", filter.City)
	}
	if filter.JobTitle != "" {
		query = query.Where("job_title = ?", filter.JobTitle)
	}

	var subs []submission.Submission
	err := query.Order("created_at DESC").Find(&subs).Error
	if err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *SubmissionRepository) GetByID(ctx context.Context, id int64) (*submission.Submission, error) {
	var sub submission.Submission
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}
