// internal/game/env.go
package game

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"strings"

	"go_vocab_game/internal/model"
)

// Cue は効果音の種類
type Cue string

const (
	CueFlip    Cue = "flip"
	CueMatch   Cue = "match"
	CueSuccess Cue = "success"
	CueCorrect Cue = "correct"
	CueWrong   Cue = "wrong"
)

// CuePlayer は効果音の再生です。失敗してもゲームの状態遷移には影響しません。
type CuePlayer interface {
	Play(cue Cue) error
}

// CueFunc は関数を CuePlayer として使うためのアダプタ
type CueFunc func(cue Cue) error

func (f CueFunc) Play(cue Cue) error { return f(cue) }

type nopCuePlayer struct{}

func (nopCuePlayer) Play(Cue) error { return nil }

// Env はゲームが外部とやり取りするための依存です。ゼロ値のフィールドはデフォルトで埋めます。
type Env struct {
	Scheduler Scheduler
	Rand      *rand.Rand
	Cues      CuePlayer
	Logger    *slog.Logger
}

func (e Env) withDefaults() Env {
	if e.Scheduler == nil {
		e.Scheduler = NewScheduler()
	}
	if e.Rand == nil {
		e.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if e.Cues == nil {
		e.Cues = nopCuePlayer{}
	}
	if e.Logger == nil {
		e.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return e
}

// playCues はロックの外で呼びます。panic も含めて失敗はログに残すだけです。
func playCues(p CuePlayer, logger *slog.Logger, cues []Cue) {
	for _, c := range cues {
		func() {
			defer func() {
				if r := recover(); r != nil {
					logger.Warn("Cue player panicked", slog.String("cue", string(c)), slog.Any("panic", r))
				}
			}()
			if err := p.Play(c); err != nil {
				logger.Warn("Failed to play cue", slog.String("cue", string(c)), slog.Any("error", err))
			}
		}()
	}
}

// validateWords はゲームに渡す単語リストをチェックします。ID の重複はペア判定を壊すのでエラー。
func validateWords(words []model.Word) error {
	if len(words) == 0 {
		return fmt.Errorf("%w: word list is empty", model.ErrInvalidInput)
	}
	seen := make(map[string]struct{}, len(words))
	for i, w := range words {
		if strings.TrimSpace(w.English) == "" {
			return fmt.Errorf("%w: words[%d].english is empty", model.ErrInvalidInput, i)
		}
		if w.ID == "" {
			return fmt.Errorf("%w: words[%d].id is empty", model.ErrInvalidInput, i)
		}
		if _, dup := seen[w.ID]; dup {
			return fmt.Errorf("%w: duplicate word id %q", model.ErrInvalidInput, w.ID)
		}
		seen[w.ID] = struct{}{}
	}
	return nil
}
