package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/art-lint/artlint-api/internal/models"
)

// HistoryRepository defines data operations for the submission history.
// The history is append-only; there is no update or delete.
type HistoryRepository interface {
	Append(ctx context.Context, record *models.SubmissionRecord) error
	List(ctx context.Context) ([]models.SubmissionRecord, error)
	ListByLesson(ctx context.Context, lessonID string) ([]models.SubmissionRecord, error)
}

type historyRepository struct {
	db *gorm.DB
}

// NewHistoryRepository instantiates the repository.
func NewHistoryRepository(db *gorm.DB) HistoryRepository {
	return &historyRepository{db: db}
}

func (r *historyRepository) Append(ctx context.Context, record *models.SubmissionRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *historyRepository) List(ctx context.Context) ([]models.SubmissionRecord, error) {
	var records []models.SubmissionRecord
	if err := r.db.WithContext(ctx).
		Order("created_at ASC, id ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

func (r *historyRepository) ListByLesson(ctx context.Context, lessonID string) ([]models.SubmissionRecord, error) {
	var records []models.SubmissionRecord
	if err := r.db.WithContext(ctx).
		Where("lesson_id = ?", lessonID).
		Order("created_at ASC, id ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}
