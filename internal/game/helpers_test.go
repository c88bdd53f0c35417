// internal/game/helpers_test.go
package game

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"time"

	"go_vocab_game/internal/model"
)

var testStart = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

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

func testEnv(sched Scheduler) Env {
	return Env{
		Scheduler: sched,
		Rand:      rand.New(rand.NewPCG(1, 2)),
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}
