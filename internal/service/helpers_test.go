// internal/service/helpers_test.go
package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"time"

	"go_vocab_game/internal/game"
	"go_vocab_game/internal/model"
	"go_vocab_game/internal/store"
)

var testStart = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testWords(n int) []model.Word {
	words := make([]model.Word, 0, n)
	for i := 0; i < n; i++ {
		words = append(words, model.Word{
			ID:      fmt.Sprintf("w%d", i),
			English: fmt.Sprintf("word%d", i),
			Chinese: fmt.Sprintf("词%d", i),
		})
	}
	return words
}

func seededRand() func() *rand.Rand {
	return func() *rand.Rand { return rand.New(rand.NewPCG(1, 2)) }
}

func newTestGameService(st store.Store) (GameService, *game.ManualScheduler) {
	sched := game.NewManualScheduler(testStart)
	svc := NewGameService(st, GameOptions{
		Match:     game.DefaultMatchConfig(),
		Spell:     game.DefaultSpellConfig(),
		Scoring:   game.DefaultScoringPolicy(),
		TTL:       time.Hour,
		Scheduler: sched,
		NewRand:   seededRand(),
	}, testLogger())
	return svc, sched
}

// fixedClock は store の時計を固定します
func fixedClock() time.Time { return testStart }

var ctx = context.Background()
