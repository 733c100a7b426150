package repository

import (
	"context"

	"golang-sentiment-tracker/internal/entity"

	"gorm.io/gorm"
)

// JobRunRepository defines the interface for persisted job run history.
type JobRunRepository interface {
	Create(ctx context.Context, run *entity.JobRun) error
	Update(ctx context.Context, run *entity.JobRun) error
	FindRecent(ctx context.Context, limit int) ([]entity.JobRun, error)
}

// NewJobRunRepository creates a new instance of JobRunRepository.
func NewJobRunRepository(db *gorm.DB) JobRunRepository {
	return &jobRunRepository{db: db}
}

type jobRunRepository struct {
	db *gorm.DB
}

func (r *jobRunRepository) Create(ctx context.Context, run *entity.JobRun) error {
	return r.db.WithContext(ctx).Create(run).Error
}

func (r *jobRunRepository) Update(ctx context.Context, run *entity.JobRun) error {
	return r.db.WithContext(ctx).Save(run).Error
}

func (r *jobRunRepository) FindRecent(ctx context.Context, limit int) ([]entity.JobRun, error) {
	var runs []entity.JobRun
	err := r.db.WithContext(ctx).
		Order("started_at DESC").
		Limit(limit).
		Find(&runs).Error
	return runs, err
}
