//go:generate mockery --name WordbookRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"go_vocab_game/internal/middleware"
	"go_vocab_game/internal/model"
)

// WordbookRepository は単語帳 (苦手単語) の永続化
type WordbookRepository interface {
	FindByWord(ctx context.Context, db *gorm.DB, learnerID uuid.UUID, word string) (*model.WordbookEntry, error)
	FindByLearner(ctx context.Context, db *gorm.DB, learnerID uuid.UUID) ([]*model.WordbookEntry, error)
	Create(ctx context.Context, tx *gorm.DB, entry *model.WordbookEntry) error
	Update(ctx context.Context, tx *gorm.DB, learnerID uuid.UUID, word string, updates map[string]interface{}) error
	Delete(ctx context.Context, tx *gorm.DB, learnerID uuid.UUID, word string) error
}

type gormWordbookRepository struct{}

func NewGormWordbookRepository() WordbookRepository {
	return &gormWordbookRepository{}
}

func (r *gormWordbookRepository) FindByWord(ctx context.Context, db *gorm.DB, learnerID uuid.UUID, word string) (*model.WordbookEntry, error) {
	logger := middleware.GetLogger(ctx)
	var entry model.WordbookEntry
	result := db.WithContext(ctx).Where("learner_id = ? AND word = ?", learnerID, word).First(&entry)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding wordbook entry in DB", "error", result.Error, "learner_id", learnerID.String(), "word", word)
		return nil, fmt.Errorf("gormWordbookRepository.FindByWord: %w", result.Error)
	}
	return &entry, nil
}

// FindByLearner は追加日時の新しい順に返します
func (r *gormWordbookRepository) FindByLearner(ctx context.Context, db *gorm.DB, learnerID uuid.UUID) ([]*model.WordbookEntry, error) {
	logger := middleware.GetLogger(ctx)
	entries := make([]*model.WordbookEntry, 0)
	result := db.WithContext(ctx).Where("learner_id = ?", learnerID).Order("added_at DESC").Find(&entries)
	if result.Error != nil {
		logger.Error("Error finding wordbook entries in DB", "error", result.Error, "learner_id", learnerID.String())
		return nil, fmt.Errorf("gormWordbookRepository.FindByLearner: %w", result.Error)
	}
	return entries, nil
}

func (r *gormWordbookRepository) Create(ctx context.Context, tx *gorm.DB, entry *model.WordbookEntry) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(entry)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			logger.Warn("Duplicate wordbook entry", "error", result.Error, "word", entry.Word)
			return model.ErrConflict
		}
		logger.Error("Error creating wordbook entry in DB", "error", result.Error, "word", entry.Word)
		return fmt.Errorf("gormWordbookRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormWordbookRepository) Update(ctx context.Context, tx *gorm.DB, learnerID uuid.UUID, word string, updates map[string]interface{}) error {
	logger := middleware.GetLogger(ctx)
	if len(updates) == 0 {
		return nil
	}
	result := tx.WithContext(ctx).Model(&model.WordbookEntry{}).
		Where("learner_id = ? AND word = ?", learnerID, word).
		Updates(updates)
	if result.Error != nil {
		logger.Error("Error updating wordbook entry in DB", "error", result.Error, "word", word)
		return fmt.Errorf("gormWordbookRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormWordbookRepository) Delete(ctx context.Context, tx *gorm.DB, learnerID uuid.UUID, word string) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Where("learner_id = ? AND word = ?", learnerID, word).Delete(&model.WordbookEntry{})
	if result.Error != nil {
		logger.Error("Error deleting wordbook entry in DB", "error", result.Error, "word", word)
		return fmt.Errorf("gormWordbookRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

// MasteryUpdates は習得状態の変更時に更新するカラム
func MasteryUpdates(mastered bool, now time.Time) map[string]interface{} {
	return map[string]interface{}{
		"mastered":         mastered,
		"last_reviewed_at": now,
		"review_count":     gorm.Expr("review_count + ?", 1),
	}
}
