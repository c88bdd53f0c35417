// internal/config/config.go
package config

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"` // postgres | sqlite | memory
	URL    string `mapstructure:"url"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

// GameConfig はゲームの盤面サイズ・演出用の待ち時間など
type GameConfig struct {
	MatchGridPairs     int           `mapstructure:"match_grid_pairs"`
	MatchConfirmDelay  time.Duration `mapstructure:"match_confirm_delay"`
	MatchMismatchDelay time.Duration `mapstructure:"match_mismatch_delay"`
	SpellMaxAttempts   int           `mapstructure:"spell_max_attempts"`
	SpellCorrectDelay  time.Duration `mapstructure:"spell_correct_delay"`
	SpellWrongDelay    time.Duration `mapstructure:"spell_wrong_delay"`
	SessionTTL         time.Duration `mapstructure:"session_ttl"`
}

// ScoringConfig は採点ポリシーの定数。プロダクト調整値なので設定で変更可能にしています。
type ScoringConfig struct {
	AccuracyWeight         float64 `mapstructure:"accuracy_weight"`
	TimeWeight             float64 `mapstructure:"time_weight"`
	BaselineSecondsPerWord float64 `mapstructure:"baseline_seconds_per_word"`
	PenaltyPerSecond       float64 `mapstructure:"penalty_per_second"`
}

type ImportConfig struct {
	HistoryLimit int           `mapstructure:"history_limit"`
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"`
	MaxBodyBytes int64         `mapstructure:"max_body_bytes"`
}

type PhoneticsConfig struct {
	DictPath string `mapstructure:"dict_path"`
}

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Log       LogConfig       `mapstructure:"log"`
	CORS      CORSConfig      `mapstructure:"cors"`
	Game      GameConfig      `mapstructure:"game"`
	Scoring   ScoringConfig   `mapstructure:"scoring"`
	Import    ImportConfig    `mapstructure:"import"`
	Phonetics PhoneticsConfig `mapstructure:"phonetics"`
}

var Cfg Config

func LoadConfig(path string) error {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(path)
	v.AddConfigPath(".")

	// 例: APP_DATABASE_URL, APP_GAME_SESSION_TTL
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.BindEnv("database.url", "DATABASE_URL")
	v.BindEnv("database.driver", "DATABASE_DRIVER")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("Warning: Config file not found. Using default settings or environment variables if available.")
		} else {
			log.Printf("Error reading config file: %s\n", err)
			return err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Printf("Error unmarshalling config: %s\n", err)
		return err
	}
	ApplyDefaults(&cfg)
	Cfg = cfg

	log.Println("Config loaded successfully")
	log.Printf("Server Port: %s", Cfg.Server.Port)
	log.Printf("Database Driver: %s", Cfg.Database.Driver)

	return nil
}

// ApplyDefaults は未設定・不正な値をデフォルト値で埋めます
func ApplyDefaults(c *Config) {
	if c.Server.Port == "" {
		c.Server.Port = DefaultServerPort
	}
	if c.Database.Driver == "" {
		c.Database.Driver = DefaultDatabaseDriver
	}
	if c.Database.Driver != "memory" && c.Database.URL == "" {
		log.Println("Warning: Database URL is not set in config, falling back to the in-memory store.")
		c.Database.Driver = "memory"
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}
	if len(c.CORS.AllowedOrigins) == 0 {
		c.CORS.AllowedOrigins = []string{"*"}
	}
	if len(c.CORS.AllowedMethods) == 0 {
		c.CORS.AllowedMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	}
	if len(c.CORS.AllowedHeaders) == 0 {
		c.CORS.AllowedHeaders = []string{"Accept", "Content-Type", "X-Learner-ID", "X-Request-ID"}
	}

	g := &c.Game
	if g.MatchGridPairs <= 0 {
		g.MatchGridPairs = DefaultMatchGridPairs
	}
	if g.MatchConfirmDelay <= 0 {
		g.MatchConfirmDelay = DefaultMatchConfirmDelay
	}
	if g.MatchMismatchDelay <= 0 {
		g.MatchMismatchDelay = DefaultMatchMismatchDelay
	}
	if g.SpellMaxAttempts <= 0 {
		g.SpellMaxAttempts = DefaultSpellMaxAttempts
	}
	if g.SpellCorrectDelay <= 0 {
		g.SpellCorrectDelay = DefaultSpellCorrectDelay
	}
	if g.SpellWrongDelay <= 0 {
		g.SpellWrongDelay = DefaultSpellWrongDelay
	}
	if g.SessionTTL <= 0 {
		g.SessionTTL = DefaultSessionTTL
	}

	s := &c.Scoring
	if s.AccuracyWeight <= 0 {
		s.AccuracyWeight = DefaultAccuracyWeight
	}
	if s.TimeWeight <= 0 {
		s.TimeWeight = DefaultTimeWeight
	}
	if s.BaselineSecondsPerWord <= 0 {
		s.BaselineSecondsPerWord = DefaultBaselineSecondsPerWord
	}
	if s.PenaltyPerSecond <= 0 {
		s.PenaltyPerSecond = DefaultPenaltyPerSecond
	}

	if c.Import.HistoryLimit <= 0 {
		c.Import.HistoryLimit = DefaultHistoryLimit
	}
	if c.Import.FetchTimeout <= 0 {
		c.Import.FetchTimeout = DefaultFetchTimeout
	}
	if c.Import.MaxBodyBytes <= 0 {
		c.Import.MaxBodyBytes = DefaultMaxBodyBytes
	}
}
