package sqldb

import (
	"context"
	"errors"

	"github.com/yoockh/hirea/internal/models"
	"github.com/yoockh/hirea/internal/utils"
	"gorm.io/gorm"
)

type JobRepository interface {
	// CreateWithFields inserts the job and its field settings in one
	// transaction; fields get the new job id.
	CreateWithFields(ctx context.Context, job *models.Job, fields []models.JobField) error
	GetByID(ctx context.Context, id int64) (*models.Job, error)
	List(ctx context.Context) ([]models.Job, error)
	ListByStatus(ctx context.Context, status models.JobStatus) ([]models.Job, error)
	IncrementCandidateCount(ctx context.Context, id int64, delta int64) error
}

type jobRepo struct {
	db *gorm.DB
}

func NewJobRepo(db *gorm.DB) JobRepository {
	return &jobRepo{db: db}
}

func (r *jobRepo) CreateWithFields(ctx context.Context, job *models.Job, fields []models.JobField) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(job).Error; err != nil {
			return err
		}
		if len(fields) == 0 {
			return nil
		}
		for i := range fields {
			fields[i].JobID = job.ID
		}
		return tx.Create(&fields).Error
	})
}

func (r *jobRepo) GetByID(ctx context.Context, id int64) (*models.Job, error) {
	var j models.Job
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&j).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &j, nil
}

// newest first
func (r *jobRepo) List(ctx context.Context) ([]models.Job, error) {
	var rows []models.Job
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Find(&rows).Error
	return rows, err
}

func (r *jobRepo) ListByStatus(ctx context.Context, status models.JobStatus) ([]models.Job, error) {
	var rows []models.Job
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at DESC").
		Order("id DESC").
		Find(&rows).Error
	return rows, err
}

func (r *jobRepo) IncrementCandidateCount(ctx context.Context, id int64, delta int64) error {
	res := r.db.WithContext(ctx).
		Model(&models.Job{}).
		Where("id = ?", id).
		UpdateColumn("candidate_count", gorm.Expr("candidate_count + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.ErrNotFound
	}
	return nil
}
