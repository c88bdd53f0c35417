//go:generate mockery --name HistoryRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"go_vocab_game/internal/middleware"
	"go_vocab_game/internal/model"
)

// HistoryRepository はインポート履歴の永続化
type HistoryRepository interface {
	Create(ctx context.Context, db *gorm.DB, h *model.ImportHistory) error
	FindByLearner(ctx context.Context, db *gorm.DB, learnerID uuid.UUID, limit int) ([]*model.ImportHistory, error)
	Delete(ctx context.Context, db *gorm.DB, learnerID, historyID uuid.UUID) error
	Stats(ctx context.Context, db *gorm.DB, learnerID uuid.UUID, since time.Time) (*HistoryAggregate, error)
}

// HistoryAggregate はSQLで集計した履歴統計。日別の集計はDB方言に依存しないよう CreatedAt を返します。
type HistoryAggregate struct {
	TotalRecords int
	TotalWords   int
	BySource     map[model.SourceType]int
	RecentTimes  []time.Time
}

type sourceCount struct {
	SourceType model.SourceType
	Count      int
}

type gormHistoryRepository struct{}

func NewGormHistoryRepository() HistoryRepository {
	return &gormHistoryRepository{}
}

func (r *gormHistoryRepository) Create(ctx context.Context, db *gorm.DB, h *model.ImportHistory) error {
	logger := middleware.GetLogger(ctx)
	if result := db.WithContext(ctx).Create(h); result.Error != nil {
		logger.Error("Error creating import history in DB",
			"error", result.Error,
			"learner_id", h.LearnerID.String(),
			"source_type", h.SourceType,
		)
		return fmt.Errorf("gormHistoryRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormHistoryRepository) FindByLearner(ctx context.Context, db *gorm.DB, learnerID uuid.UUID, limit int) ([]*model.ImportHistory, error) {
	logger := middleware.GetLogger(ctx)
	histories := make([]*model.ImportHistory, 0)
	query := db.WithContext(ctx).Where("learner_id = ?", learnerID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if result := query.Find(&histories); result.Error != nil {
		logger.Error("Error finding import histories in DB", "error", result.Error, "learner_id", learnerID.String())
		return nil, fmt.Errorf("gormHistoryRepository.FindByLearner: %w", result.Error)
	}
	return histories, nil
}

func (r *gormHistoryRepository) Delete(ctx context.Context, db *gorm.DB, learnerID, historyID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)
	result := db.WithContext(ctx).Where("learner_id = ? AND history_id = ?", learnerID, historyID).Delete(&model.ImportHistory{})
	if result.Error != nil {
		logger.Error("Error deleting import history in DB", "error", result.Error, "history_id", historyID.String())
		return fmt.Errorf("gormHistoryRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormHistoryRepository) Stats(ctx context.Context, db *gorm.DB, learnerID uuid.UUID, since time.Time) (*HistoryAggregate, error) {
	logger := middleware.GetLogger(ctx)
	agg := &HistoryAggregate{BySource: make(map[model.SourceType]int)}

	var counts []sourceCount
	err := db.WithContext(ctx).Model(&model.ImportHistory{}).
		Select("source_type, count(*) AS count").
		Where("learner_id = ?", learnerID).
		Group("source_type").
		Scan(&counts).Error
	if err != nil {
		logger.Error("Error aggregating import histories by source", "error", err, "learner_id", learnerID.String())
		return nil, fmt.Errorf("gormHistoryRepository.Stats: %w", err)
	}
	for _, c := range counts {
		agg.BySource[c.SourceType] = c.Count
		agg.TotalRecords += c.Count
	}

	var totalWords int64
	err = db.WithContext(ctx).Model(&model.ImportHistory{}).
		Select("COALESCE(SUM(word_count), 0)").
		Where("learner_id = ?", learnerID).
		Scan(&totalWords).Error
	if err != nil {
		logger.Error("Error summing imported words", "error", err, "learner_id", learnerID.String())
		return nil, fmt.Errorf("gormHistoryRepository.Stats: %w", err)
	}
	agg.TotalWords = int(totalWords)

	err = db.WithContext(ctx).Model(&model.ImportHistory{}).
		Where("learner_id = ? AND created_at >= ?", learnerID, since).
		Pluck("created_at", &agg.RecentTimes).Error
	if err != nil {
		logger.Error("Error finding recent import histories", "error", err, "learner_id", learnerID.String())
		return nil, fmt.Errorf("gormHistoryRepository.Stats: %w", err)
	}
	return agg, nil
}
