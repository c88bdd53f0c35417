//go:generate mockery --name LearningService --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"go_vocab_game/internal/middleware"
	"go_vocab_game/internal/model"
	"go_vocab_game/internal/store"
)

const defaultSessionLimit = 50

// LearningService は学習記録と単語帳 (苦手単語) を扱います
type LearningService interface {
	ListSessions(ctx context.Context, learnerID uuid.UUID, limit int) ([]*model.LearningRecord, error)
	ListWordbook(ctx context.Context, learnerID uuid.UUID) ([]*model.WordbookEntry, error)
	SetMastered(ctx context.Context, learnerID uuid.UUID, word string, mastered bool) (*model.WordbookEntry, error)
	DeleteWord(ctx context.Context, learnerID uuid.UUID, word string) error
	Health(ctx context.Context) error
}

type learningService struct {
	store store.Store
}

func NewLearningService(st store.Store) LearningService {
	return &learningService{store: st}
}

func (s *learningService) ListSessions(ctx context.Context, learnerID uuid.UUID, limit int) ([]*model.LearningRecord, error) {
	if limit <= 0 {
		limit = defaultSessionLimit
	}
	records, err := s.store.ListSessions(ctx, learnerID, limit)
	if err != nil {
		middleware.GetLogger(ctx).Error("Failed to list learning records", "error", err, "learner_id", learnerID)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "获取学习记录失败。", "", err)
	}
	return records, nil
}

func (s *learningService) ListWordbook(ctx context.Context, learnerID uuid.UUID) ([]*model.WordbookEntry, error) {
	entries, err := s.store.ListDifficultWords(ctx, learnerID)
	if err != nil {
		middleware.GetLogger(ctx).Error("Failed to list wordbook", "error", err, "learner_id", learnerID)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "获取单词本失败。", "", err)
	}
	return entries, nil
}

func wordbookError(ctx context.Context, err error, word string) error {
	if errors.Is(err, model.ErrNotFound) {
		return model.NewAppError("NOT_FOUND", "单词本中没有这个单词。", "word", err)
	}
	middleware.GetLogger(ctx).Error("Wordbook operation failed", "error", err, "word", word)
	return model.NewAppError("INTERNAL_SERVER_ERROR", "单词本操作失败。", "", err)
}

func (s *learningService) SetMastered(ctx context.Context, learnerID uuid.UUID, word string, mastered bool) (*model.WordbookEntry, error) {
	word = strings.TrimSpace(word)
	entry, err := s.store.SetMastered(ctx, learnerID, word, mastered)
	if err != nil {
		return nil, wordbookError(ctx, err, word)
	}
	middleware.GetLogger(ctx).Info("Wordbook mastery updated", "word", word, "mastered", mastered)
	return entry, nil
}

func (s *learningService) DeleteWord(ctx context.Context, learnerID uuid.UUID, word string) error {
	word = strings.TrimSpace(word)
	if err := s.store.DeleteDifficultWord(ctx, learnerID, word); err != nil {
		return wordbookError(ctx, err, word)
	}
	return nil
}

func (s *learningService) Health(ctx context.Context) error {
	if err := s.store.Ping(ctx); err != nil {
		middleware.GetLogger(ctx).Error("Store ping failed", "error", err)
		return model.NewAppError("STORE_UNAVAILABLE", "存储不可用。", "", err)
	}
	return nil
}
