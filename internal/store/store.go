// internal/store/store.go
package store

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"go_vocab_game/internal/config"
	"go_vocab_game/internal/model"
	"go_vocab_game/internal/repository"
)

// Store はセッション記録・単語帳・インポート履歴・取り込み教材の永続化層です。
// バックエンド (memory / sqlite / postgres) は設定で選択します。
type Store interface {
	SaveSession(ctx context.Context, rec *model.LearningRecord) error
	ListSessions(ctx context.Context, learnerID uuid.UUID, limit int) ([]*model.LearningRecord, error)

	// UpsertDifficultWord は既存エントリの added_at と復習回数を保持し、訳と難易度のみ更新します
	UpsertDifficultWord(ctx context.Context, learnerID uuid.UUID, word model.Word, difficulty model.Difficulty) (*model.WordbookEntry, error)
	ListDifficultWords(ctx context.Context, learnerID uuid.UUID) ([]*model.WordbookEntry, error)
	DeleteDifficultWord(ctx context.Context, learnerID uuid.UUID, word string) error
	SetMastered(ctx context.Context, learnerID uuid.UUID, word string, mastered bool) (*model.WordbookEntry, error)

	SaveHistory(ctx context.Context, h *model.ImportHistory) error
	ListHistory(ctx context.Context, learnerID uuid.UUID, limit int) ([]*model.ImportHistory, error)
	DeleteHistory(ctx context.Context, learnerID, historyID uuid.UUID) error
	HistoryStats(ctx context.Context, learnerID uuid.UUID) (*model.HistoryStats, error)

	SaveTextbook(ctx context.Context, learnerID uuid.UUID, tb *model.TextbookData) error
	GetTextbook(ctx context.Context, learnerID uuid.UUID, textbookID string) (*model.TextbookData, error)
	ListTextbooks(ctx context.Context, learnerID uuid.UUID) ([]model.TextbookInfo, error)

	Ping(ctx context.Context) error
	Close() error
}

// Clock は現在時刻の取得元 (テストで固定するため)
type Clock func() time.Time

const (
	DriverMemory   = "memory"
	recentActivity = 7 // 直近何日分を集計するか
)

// New は設定に従ってストアを生成します
func New(cfg config.DatabaseConfig, logger *slog.Logger) (Store, error) {
	switch cfg.Driver {
	case DriverMemory:
		logger.Info("Using in-memory store")
		return NewMemoryStore(nil), nil
	case repository.DriverPostgres, repository.DriverSQLite:
		db, err := repository.NewDB(cfg.Driver, cfg.URL, logger)
		if err != nil {
			return nil, fmt.Errorf("store.New: %w", err)
		}
		if err := repository.Migrate(db); err != nil {
			return nil, fmt.Errorf("store.New: %w", err)
		}
		return NewGormStore(db, nil), nil
	default:
		return nil, fmt.Errorf("store.New: unsupported driver %q", cfg.Driver)
	}
}

// buildStats は直近 recentActivity 日の日別件数を含む統計を組み立てます (古い日付から順)
func buildStats(total, words int, bySource map[model.SourceType]int, recent []time.Time, now time.Time) *model.HistoryStats {
	stats := &model.HistoryStats{
		TotalRecords:       total,
		TotalWords:         words,
		SourceDistribution: bySource,
		RecentActivity:     make([]model.DailyCount, 0, recentActivity),
	}
	index := make(map[string]int, recentActivity)
	for i := recentActivity - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i).Format(time.DateOnly)
		index[day] = len(stats.RecentActivity)
		stats.RecentActivity = append(stats.RecentActivity, model.DailyCount{Date: day})
	}
	for _, t := range recent {
		if i, ok := index[t.In(now.Location()).Format(time.DateOnly)]; ok {
			stats.RecentActivity[i].Count++
		}
	}
	return stats
}

// recentSince は集計対象期間の開始時刻 (6日前の0時)
func recentSince(now time.Time) time.Time {
	y, m, d := now.AddDate(0, 0, -(recentActivity - 1)).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location())
}

func nowOrDefault(c Clock) Clock {
	if c == nil {
		return time.Now
	}
	return c
}
