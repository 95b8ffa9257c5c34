package sqldb

import (
	"context"

	"github.com/yoockh/hirea/internal/models"
	"gorm.io/gorm"
)

type AnswerRepository interface {
	// ListByApplicationIDs loads the answers of many applications in one
	// query, oldest row first.
	ListByApplicationIDs(ctx context.Context, ids []int64) ([]models.Answer, error)
}

type answerRepo struct {
	db *gorm.DB
}

func NewAnswerRepo(db *gorm.DB) AnswerRepository {
	return &answerRepo{db: db}
}

func (r *answerRepo) ListByApplicationIDs(ctx context.Context, ids []int64) ([]models.Answer, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []models.Answer
	err := r.db.WithContext(ctx).
		Where("application_id IN ?", ids).
		Order("id ASC").
		Find(&rows).Error
	return rows, err
}
