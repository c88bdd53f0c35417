// internal/store/gorm_store.go
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"go_vocab_game/internal/middleware"
	"go_vocab_game/internal/model"
	"go_vocab_game/internal/repository"
)

type gormStore struct {
	db        *gorm.DB
	now       Clock
	sessions  repository.SessionRepository
	wordbook  repository.WordbookRepository
	histories repository.HistoryRepository
	textbooks repository.TextbookRepository
}

// NewGormStore はGORM (PostgreSQL / SQLite) 上のストアを返します。テーブルは作成済みであること。
func NewGormStore(db *gorm.DB, now Clock) Store {
	return &gormStore{
		db:        db,
		now:       nowOrDefault(now),
		sessions:  repository.NewGormSessionRepository(),
		wordbook:  repository.NewGormWordbookRepository(),
		histories: repository.NewGormHistoryRepository(),
		textbooks: repository.NewGormTextbookRepository(),
	}
}

func (s *gormStore) SaveSession(ctx context.Context, rec *model.LearningRecord) error {
	if rec.RecordID == uuid.Nil {
		rec.RecordID = uuid.New()
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = s.now()
	}
	return s.sessions.Create(ctx, s.db, rec)
}

func (s *gormStore) ListSessions(ctx context.Context, learnerID uuid.UUID, limit int) ([]*model.LearningRecord, error) {
	return s.sessions.FindByLearner(ctx, s.db, learnerID, limit)
}

func (s *gormStore) UpsertDifficultWord(ctx context.Context, learnerID uuid.UUID, word model.Word, difficulty model.Difficulty) (*model.WordbookEntry, error) {
	logger := middleware.GetLogger(ctx).With("learner_id", learnerID, "word", word.English)

	var saved *model.WordbookEntry
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.wordbook.FindByWord(ctx, tx, learnerID, word.English)
		if err != nil && !errors.Is(err, model.ErrNotFound) {
			return err
		}
		if existing == nil {
			entry := &model.WordbookEntry{
				EntryID:     uuid.New(),
				LearnerID:   learnerID,
				Word:        word.English,
				Translation: word.Chinese,
				Difficulty:  difficulty,
				AddedAt:     s.now(),
			}
			if err := s.wordbook.Create(ctx, tx, entry); err != nil {
				return err
			}
			logger.Debug("Wordbook entry created")
			saved = entry
			return nil
		}

		updates := map[string]interface{}{
			"translation": word.Chinese,
			"difficulty":  difficulty,
		}
		if err := s.wordbook.Update(ctx, tx, learnerID, word.English, updates); err != nil {
			return err
		}
		existing.Translation = word.Chinese
		existing.Difficulty = difficulty
		saved = existing
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("gormStore.UpsertDifficultWord: %w", err)
	}
	return saved, nil
}

func (s *gormStore) ListDifficultWords(ctx context.Context, learnerID uuid.UUID) ([]*model.WordbookEntry, error) {
	return s.wordbook.FindByLearner(ctx, s.db, learnerID)
}

func (s *gormStore) DeleteDifficultWord(ctx context.Context, learnerID uuid.UUID, word string) error {
	return s.wordbook.Delete(ctx, s.db, learnerID, word)
}

func (s *gormStore) SetMastered(ctx context.Context, learnerID uuid.UUID, word string, mastered bool) (*model.WordbookEntry, error) {
	var entry *model.WordbookEntry
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.wordbook.Update(ctx, tx, learnerID, word, repository.MasteryUpdates(mastered, s.now())); err != nil {
			return err
		}
		var err error
		entry, err = s.wordbook.FindByWord(ctx, tx, learnerID, word)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("gormStore.SetMastered: %w", err)
	}
	return entry, nil
}

func (s *gormStore) SaveHistory(ctx context.Context, h *model.ImportHistory) error {
	if h.HistoryID == uuid.Nil {
		h.HistoryID = uuid.New()
	}
	if h.CreatedAt.IsZero() {
		h.CreatedAt = s.now()
	}
	return s.histories.Create(ctx, s.db, h)
}

func (s *gormStore) ListHistory(ctx context.Context, learnerID uuid.UUID, limit int) ([]*model.ImportHistory, error) {
	return s.histories.FindByLearner(ctx, s.db, learnerID, limit)
}

func (s *gormStore) DeleteHistory(ctx context.Context, learnerID, historyID uuid.UUID) error {
	return s.histories.Delete(ctx, s.db, learnerID, historyID)
}

func (s *gormStore) HistoryStats(ctx context.Context, learnerID uuid.UUID) (*model.HistoryStats, error) {
	now := s.now()
	agg, err := s.histories.Stats(ctx, s.db, learnerID, recentSince(now))
	if err != nil {
		return nil, err
	}
	return buildStats(agg.TotalRecords, agg.TotalWords, agg.BySource, agg.RecentTimes, now), nil
}

func (s *gormStore) SaveTextbook(ctx context.Context, learnerID uuid.UUID, tb *model.TextbookData) error {
	body, err := json.Marshal(tb)
	if err != nil {
		return fmt.Errorf("gormStore.SaveTextbook: %w", err)
	}
	return s.textbooks.Save(ctx, s.db, &model.StoredTextbook{
		TextbookID: tb.Info.ID,
		LearnerID:  learnerID,
		Name:       tb.Info.Name,
		WordCount:  tb.WordCount(),
		Body:       datatypes.JSON(body),
		CreatedAt:  s.now(),
	})
}

func (s *gormStore) GetTextbook(ctx context.Context, learnerID uuid.UUID, textbookID string) (*model.TextbookData, error) {
	stored, err := s.textbooks.FindByID(ctx, s.db, learnerID, textbookID)
	if err != nil {
		return nil, err
	}
	var tb model.TextbookData
	if err := json.Unmarshal(stored.Body, &tb); err != nil {
		return nil, fmt.Errorf("gormStore.GetTextbook: decode body: %w", err)
	}
	return &tb, nil
}

func (s *gormStore) ListTextbooks(ctx context.Context, learnerID uuid.UUID) ([]model.TextbookInfo, error) {
	stored, err := s.textbooks.FindByLearner(ctx, s.db, learnerID)
	if err != nil {
		return nil, err
	}
	infos := make([]model.TextbookInfo, 0, len(stored))
	for _, st := range stored {
		infos = append(infos, model.TextbookInfo{ID: st.TextbookID, Name: st.Name})
	}
	return infos, nil
}

func (s *gormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *gormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
