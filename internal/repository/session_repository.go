//go:generate mockery --name SessionRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"go_vocab_game/internal/middleware"
	"go_vocab_game/internal/model"
)

// SessionRepository はゲームセッション記録 (LearningRecord) の永続化
type SessionRepository interface {
	Create(ctx context.Context, db *gorm.DB, record *model.LearningRecord) error
	FindByLearner(ctx context.Context, db *gorm.DB, learnerID uuid.UUID, limit int) ([]*model.LearningRecord, error)
}

type gormSessionRepository struct{}

func NewGormSessionRepository() SessionRepository {
	return &gormSessionRepository{}
}

func (r *gormSessionRepository) Create(ctx context.Context, db *gorm.DB, record *model.LearningRecord) error {
	logger := middleware.GetLogger(ctx)
	result := db.WithContext(ctx).Create(record)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			logger.Warn("Duplicate learning record", "error", result.Error, "record_id", record.RecordID.String())
			return model.ErrConflict
		}
		logger.Error("Error creating learning record in DB",
			"error", result.Error,
			"learner_id", record.LearnerID.String(),
			"game_type", record.GameType,
		)
		return fmt.Errorf("gormSessionRepository.Create: %w", result.Error)
	}
	return nil
}

// FindByLearner は新しい順に返します。limit <= 0 なら全件。
func (r *gormSessionRepository) FindByLearner(ctx context.Context, db *gorm.DB, learnerID uuid.UUID, limit int) ([]*model.LearningRecord, error) {
	logger := middleware.GetLogger(ctx)
	records := make([]*model.LearningRecord, 0)
	query := db.WithContext(ctx).Where("learner_id = ?", learnerID).Order("timestamp DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if result := query.Find(&records); result.Error != nil {
		logger.Error("Error finding learning records in DB", "error", result.Error, "learner_id", learnerID.String())
		return nil, fmt.Errorf("gormSessionRepository.FindByLearner: %w", result.Error)
	}
	return records, nil
}
