package sqldb

import (
	"context"

	"github.com/yoockh/hirea/internal/models"
	"gorm.io/gorm"
)

type ApplicationRepository interface {
	CreateWithAnswers(ctx context.Context, app *models.Application, answers []models.Answer) error
	ListByJob(ctx context.Context, jobID int64) ([]models.Application, error)
}

type applicationRepo struct {
	db *gorm.DB
}

func NewApplicationRepo(db *gorm.DB) ApplicationRepository {
	return &applicationRepo{db: db}
}

func (r *applicationRepo) CreateWithAnswers(ctx context.Context, app *models.Application, answers []models.Answer) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(app).Error; err != nil {
			return err
		}
		if len(answers) == 0 {
			return nil
		}
		for i := range answers {
			answers[i].ApplicationID = app.ID
		}
		return tx.Create(&answers).Error
	})
}

func (r *applicationRepo) ListByJob(ctx context.Context, jobID int64) ([]models.Application, error) {
	var rows []models.Application
	err := r.db.WithContext(ctx).
		Where("job_id = ?", jobID).
		Order("id ASC").
		Find(&rows).Error
	return rows, err
}
