package service

import (
	"go_vocab_game/internal/config"
	"go_vocab_game/internal/game"
)

// ScoringFromConfig は設定値から採点ポリシーを作ります
func ScoringFromConfig(cfg config.ScoringConfig) game.ScoringPolicy {
	return game.ScoringPolicy{
		AccuracyWeight:         cfg.AccuracyWeight,
		TimeWeight:             cfg.TimeWeight,
		BaselineSecondsPerWord: cfg.BaselineSecondsPerWord,
		PenaltyPerSecond:       cfg.PenaltyPerSecond,
	}
}

// GameOptionsFromConfig は設定値からゲームの設定を作ります。Scheduler などの実行環境は呼び出し側で設定します。
func GameOptionsFromConfig(cfg *config.Config) GameOptions {
	scoring := ScoringFromConfig(cfg.Scoring)
	return GameOptions{
		Match: game.MatchConfig{
			GridPairs:     cfg.Game.MatchGridPairs,
			ConfirmDelay:  cfg.Game.MatchConfirmDelay,
			MismatchDelay: cfg.Game.MatchMismatchDelay,
		},
		Spell: game.SpellConfig{
			MaxAttempts:  cfg.Game.SpellMaxAttempts,
			CorrectDelay: cfg.Game.SpellCorrectDelay,
			WrongDelay:   cfg.Game.SpellWrongDelay,
			Scoring:      scoring,
		},
		Scoring: scoring,
		TTL:     cfg.Game.SessionTTL,
	}
}
