//go:generate mockery --name TextbookRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"go_vocab_game/internal/middleware"
	"go_vocab_game/internal/model"
)

// TextbookRepository は取り込んだ教材の永続化。本体は JSON 列です。
type TextbookRepository interface {
	Save(ctx context.Context, db *gorm.DB, tb *model.StoredTextbook) error
	FindByID(ctx context.Context, db *gorm.DB, learnerID uuid.UUID, textbookID string) (*model.StoredTextbook, error)
	FindByLearner(ctx context.Context, db *gorm.DB, learnerID uuid.UUID) ([]*model.StoredTextbook, error)
}

type gormTextbookRepository struct{}

func NewGormTextbookRepository() TextbookRepository {
	return &gormTextbookRepository{}
}

// Save は同じIDの教材があれば上書きします
func (r *gormTextbookRepository) Save(ctx context.Context, db *gorm.DB, tb *model.StoredTextbook) error {
	logger := middleware.GetLogger(ctx)
	result := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "textbook_id"}, {Name: "learner_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "word_count", "body"}),
	}).Create(tb)
	if result.Error != nil {
		logger.Error("Error saving textbook in DB", "error", result.Error, "textbook_id", tb.TextbookID)
		return fmt.Errorf("gormTextbookRepository.Save: %w", result.Error)
	}
	return nil
}

func (r *gormTextbookRepository) FindByID(ctx context.Context, db *gorm.DB, learnerID uuid.UUID, textbookID string) (*model.StoredTextbook, error) {
	logger := middleware.GetLogger(ctx)
	var tb model.StoredTextbook
	result := db.WithContext(ctx).Where("learner_id = ? AND textbook_id = ?", learnerID, textbookID).First(&tb)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding textbook in DB", "error", result.Error, "textbook_id", textbookID)
		return nil, fmt.Errorf("gormTextbookRepository.FindByID: %w", result.Error)
	}
	return &tb, nil
}

// FindByLearner は本体 (body) を除いたメタ情報のみ返します
func (r *gormTextbookRepository) FindByLearner(ctx context.Context, db *gorm.DB, learnerID uuid.UUID) ([]*model.StoredTextbook, error) {
	logger := middleware.GetLogger(ctx)
	textbooks := make([]*model.StoredTextbook, 0)
	result := db.WithContext(ctx).
		Select("textbook_id", "learner_id", "name", "word_count", "created_at").
		Where("learner_id = ?", learnerID).
		Order("created_at DESC").
		Find(&textbooks)
	if result.Error != nil {
		logger.Error("Error finding textbooks in DB", "error", result.Error, "learner_id", learnerID.String())
		return nil, fmt.Errorf("gormTextbookRepository.FindByLearner: %w", result.Error)
	}
	return textbooks, nil
}
