// internal/store/memory_store.go
package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"go_vocab_game/internal/model"
)

type wordKey struct {
	learner uuid.UUID
	word    string
}

type textbookKey struct {
	learner uuid.UUID
	id      string
}

type storedTextbook struct {
	data  *model.TextbookData
	order int
}

// memoryStore はプロセス内のみのストア。再起動で消えます。
type memoryStore struct {
	mu        sync.RWMutex
	now       Clock
	sessions  []*model.LearningRecord
	wordbook  map[wordKey]*model.WordbookEntry
	histories []*model.ImportHistory
	textbooks map[textbookKey]storedTextbook
	seq       int
}

func NewMemoryStore(now Clock) Store {
	return &memoryStore{
		now:       nowOrDefault(now),
		wordbook:  make(map[wordKey]*model.WordbookEntry),
		textbooks: make(map[textbookKey]storedTextbook),
	}
}

func (s *memoryStore) SaveSession(ctx context.Context, rec *model.LearningRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec.RecordID == uuid.Nil {
		rec.RecordID = uuid.New()
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = s.now()
	}
	for _, r := range s.sessions {
		if r.RecordID == rec.RecordID {
			return model.ErrConflict
		}
	}
	cp := *rec
	s.sessions = append(s.sessions, &cp)
	return nil
}

func (s *memoryStore) ListSessions(ctx context.Context, learnerID uuid.UUID, limit int) ([]*model.LearningRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.LearningRecord, 0)
	for i := len(s.sessions) - 1; i >= 0; i-- {
		if r := s.sessions[i]; r.LearnerID == learnerID {
			cp := *r
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return truncate(out, limit), nil
}

func (s *memoryStore) UpsertDifficultWord(ctx context.Context, learnerID uuid.UUID, word model.Word, difficulty model.Difficulty) (*model.WordbookEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := wordKey{learnerID, word.English}
	entry, ok := s.wordbook[key]
	if !ok {
		entry = &model.WordbookEntry{
			EntryID:   uuid.New(),
			LearnerID: learnerID,
			Word:      word.English,
			AddedAt:   s.now(),
		}
		s.wordbook[key] = entry
	}
	entry.Translation = word.Chinese
	entry.Difficulty = difficulty
	cp := *entry
	return &cp, nil
}

func (s *memoryStore) ListDifficultWords(ctx context.Context, learnerID uuid.UUID) ([]*model.WordbookEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.WordbookEntry, 0)
	for k, e := range s.wordbook {
		if k.learner == learnerID {
			cp := *e
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AddedAt.Equal(out[j].AddedAt) {
			return out[i].Word < out[j].Word
		}
		return out[i].AddedAt.After(out[j].AddedAt)
	})
	return out, nil
}

func (s *memoryStore) DeleteDifficultWord(ctx context.Context, learnerID uuid.UUID, word string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := wordKey{learnerID, word}
	if _, ok := s.wordbook[key]; !ok {
		return model.ErrNotFound
	}
	delete(s.wordbook, key)
	return nil
}

func (s *memoryStore) SetMastered(ctx context.Context, learnerID uuid.UUID, word string, mastered bool) (*model.WordbookEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.wordbook[wordKey{learnerID, word}]
	if !ok {
		return nil, model.ErrNotFound
	}
	now := s.now()
	entry.Mastered = mastered
	entry.ReviewCount++
	entry.LastReviewedAt = &now
	cp := *entry
	return &cp, nil
}

func (s *memoryStore) SaveHistory(ctx context.Context, h *model.ImportHistory) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if h.HistoryID == uuid.Nil {
		h.HistoryID = uuid.New()
	}
	if h.CreatedAt.IsZero() {
		h.CreatedAt = s.now()
	}
	cp := *h
	s.histories = append(s.histories, &cp)
	return nil
}

func (s *memoryStore) ListHistory(ctx context.Context, learnerID uuid.UUID, limit int) ([]*model.ImportHistory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.ImportHistory, 0)
	for i := len(s.histories) - 1; i >= 0; i-- {
		if h := s.histories[i]; h.LearnerID == learnerID {
			cp := *h
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return truncate(out, limit), nil
}

func (s *memoryStore) DeleteHistory(ctx context.Context, learnerID, historyID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, h := range s.histories {
		if h.HistoryID == historyID && h.LearnerID == learnerID {
			s.histories = append(s.histories[:i], s.histories[i+1:]...)
			return nil
		}
	}
	return model.ErrNotFound
}

func (s *memoryStore) HistoryStats(ctx context.Context, learnerID uuid.UUID) (*model.HistoryStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	now := s.now()
	since := recentSince(now)
	total, words := 0, 0
	bySource := make(map[model.SourceType]int)
	var recent []time.Time
	for _, h := range s.histories {
		if h.LearnerID != learnerID {
			continue
		}
		total++
		words += h.WordCount
		bySource[h.SourceType]++
		if !h.CreatedAt.Before(since) {
			recent = append(recent, h.CreatedAt)
		}
	}
	return buildStats(total, words, bySource, recent, now), nil
}

func (s *memoryStore) SaveTextbook(ctx context.Context, learnerID uuid.UUID, tb *model.TextbookData) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := textbookKey{learnerID, tb.Info.ID}
	order := s.seq
	if prev, ok := s.textbooks[key]; ok {
		order = prev.order
	} else {
		s.seq++
	}
	s.textbooks[key] = storedTextbook{data: tb, order: order}
	return nil
}

func (s *memoryStore) GetTextbook(ctx context.Context, learnerID uuid.UUID, textbookID string) (*model.TextbookData, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.textbooks[textbookKey{learnerID, textbookID}]
	if !ok {
		return nil, model.ErrNotFound
	}
	return st.data, nil
}

// ListTextbooks は新しく保存した順に返します
func (s *memoryStore) ListTextbooks(ctx context.Context, learnerID uuid.UUID) ([]model.TextbookInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored := make([]storedTextbook, 0)
	for k, st := range s.textbooks {
		if k.learner == learnerID {
			stored = append(stored, st)
		}
	}
	sort.Slice(stored, func(i, j int) bool { return stored[i].order > stored[j].order })
	infos := make([]model.TextbookInfo, 0, len(stored))
	for _, st := range stored {
		infos = append(infos, model.TextbookInfo{ID: st.data.Info.ID, Name: st.data.Info.Name})
	}
	return infos, nil
}

func (s *memoryStore) Ping(ctx context.Context) error { return ctx.Err() }

func (s *memoryStore) Close() error { return nil }

func truncate[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}
