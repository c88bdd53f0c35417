package main

import (
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/lmittmann/tint"

	"go_vocab_game/internal/config"
)

// parseLevel は "debug" "info" "warn" "error" を受け付け、それ以外は INFO とします
func parseLevel(s string) (slog.Level, bool) {
	if strings.EqualFold(s, "warning") {
		s = "warn"
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, false
	}
	return lvl, true
}

// newLogger は dev 環境か format=text なら tint、それ以外は JSON のハンドラを使います
func newLogger(cfg config.LogConfig, appEnv string, w io.Writer) *slog.Logger {
	lvl, ok := parseLevel(cfg.Level)

	var handler slog.Handler
	if strings.EqualFold(appEnv, "dev") || strings.EqualFold(cfg.Format, "text") {
		handler = tint.NewHandler(w, &tint.Options{Level: lvl, TimeFormat: time.RFC3339})
	} else {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl, AddSource: true})
	}
	logger := slog.New(handler)
	if !ok && cfg.Level != "" {
		logger.Warn("Unknown log level specified in config, defaulting to INFO", slog.String("level", cfg.Level))
	}
	return logger
}
