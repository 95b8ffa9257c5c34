package sqldb

import (
	"context"

	"github.com/yoockh/hirea/internal/models"
	"gorm.io/gorm"
)

type JobFieldRepository interface {
	ListByJob(ctx context.Context, jobID int64) ([]models.JobField, error)
}

type jobFieldRepo struct {
	db *gorm.DB
}

func NewJobFieldRepo(db *gorm.DB) JobFieldRepository {
	return &jobFieldRepo{db: db}
}

func (r *jobFieldRepo) ListByJob(ctx context.Context, jobID int64) ([]models.JobField, error) {
	var rows []models.JobField
	err := r.db.WithContext(ctx).
		Where("job_id = ?", jobID).
		Order("id ASC").
		Find(&rows).Error
	return rows, err
}
