// internal/config/constants.go
package config

import "time"

// アプリケーション情報
const (
	AppName    = "go_vocab_game"
	AppVersion = "0.3.0"
)

// デフォルト設定値
const (
	DefaultServerPort     = ":8080"
	DefaultDatabaseDriver = "memory"
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "json"

	DefaultMatchGridPairs     = 8 // 4x4 の盤面
	DefaultMatchConfirmDelay  = 500 * time.Millisecond
	DefaultMatchMismatchDelay = 1000 * time.Millisecond
	DefaultSpellMaxAttempts   = 2
	DefaultSpellCorrectDelay  = 1500 * time.Millisecond
	DefaultSpellWrongDelay    = 2000 * time.Millisecond
	DefaultSessionTTL         = 2 * time.Hour

	DefaultAccuracyWeight         = 70.0
	DefaultTimeWeight             = 30.0
	DefaultBaselineSecondsPerWord = 10.0
	DefaultPenaltyPerSecond       = 2.0

	DefaultHistoryLimit = 100
	DefaultFetchTimeout = 30 * time.Second
	DefaultMaxBodyBytes = 10 * 1024 * 1024 // 10 MB
)
