package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"go_vocab_game/internal/catalog"
	"go_vocab_game/internal/config"
	"go_vocab_game/internal/fileparse"
	"go_vocab_game/internal/game"
	"go_vocab_game/internal/middleware"
	"go_vocab_game/internal/model"
	"go_vocab_game/internal/phonetics"
	"go_vocab_game/internal/service"
	"go_vocab_game/internal/store"
)

type tuiOptions struct {
	configDir string
	file      string
	textbook  string
	unit      string
	lesson    string
	level     string
	count     int
	learner   string
	logFile   string
}

func newRootCommand() *cobra.Command {
	opts := &tuiOptions{}

	cmd := &cobra.Command{
		Use:           "vocabtui",
		Short:         "Terminal spelling game",
		Version:       config.AppVersion,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configDir, "config", "c", "configs", "Directory containing config.yaml")
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Vocabulary file (.txt, .json, .csv)")
	cmd.Flags().StringVar(&opts.textbook, "textbook", "", "Built-in textbook ID")
	cmd.Flags().StringVar(&opts.unit, "unit", "", "Unit ID within --textbook")
	cmd.Flags().StringVar(&opts.lesson, "lesson", "", "Lesson ID within --unit")
	cmd.Flags().StringVar(&opts.level, "level", string(model.LevelMixed), "Level for random words")
	cmd.Flags().IntVar(&opts.count, "count", 10, "Number of random words")
	cmd.Flags().StringVar(&opts.learner, "learner", "", "Learner UUID used to namespace saved records")
	cmd.Flags().StringVar(&opts.logFile, "log", "", "Write logs to this file (the terminal is used by the game)")

	return cmd
}

// newLogger は画面を崩さないようにファイルか破棄先へ出力します
func newLogger(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := slog.New(tint.NewHandler(f, &tint.Options{Level: slog.LevelDebug, TimeFormat: time.RFC3339, NoColor: true}))
	return logger, func() { f.Close() }, nil
}

func loadWords(opts *tuiOptions) ([]model.Word, error) {
	if opts.file != "" {
		data, err := os.ReadFile(opts.file)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", opts.file, err)
		}
		return fileparse.ParseFile(filepath.Base(opts.file), data)
	}
	cat, err := catalog.Load()
	if err != nil {
		return nil, err
	}
	if opts.textbook != "" {
		return cat.Words(opts.textbook, opts.unit, opts.lesson)
	}
	return cat.RandomWords(model.Level(opts.level), opts.count, nil)
}

func run(cmd *cobra.Command, opts *tuiOptions) error {
	logger, closeLog, err := newLogger(opts.logFile)
	if err != nil {
		return err
	}
	defer closeLog()

	if err := config.LoadConfig(opts.configDir); err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	learnerID := uuid.Nil
	if opts.learner != "" {
		if learnerID, err = uuid.Parse(opts.learner); err != nil {
			return fmt.Errorf("invalid --learner: %w", err)
		}
	}

	words, err := loadWords(opts)
	if err != nil {
		return err
	}
	if len(words) == 0 {
		return fmt.Errorf("no words to play: %w", model.ErrNoWordsFound)
	}
	filler, err := phonetics.NewFiller(config.Cfg.Phonetics.DictPath)
	if err != nil {
		logger.Warn("Pronunciation dictionary not loaded", slog.Any("error", err))
		filler = phonetics.Nop{}
	}
	words = filler.Fill(words)

	st, err := store.New(config.Cfg.Database, logger)
	if err != nil {
		return err
	}
	defer st.Close()

	gameOpts := service.GameOptionsFromConfig(&config.Cfg)
	gameOpts.Scheduler = game.NewScheduler()
	svc := service.NewGameService(st, gameOpts, logger)

	ctx := middleware.WithLogger(cmd.Context(), logger)
	view, err := svc.StartSpell(ctx, learnerID, words)
	if err != nil {
		return err
	}

	p := tea.NewProgram(newSpellModel(ctx, svc, learnerID, view), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(spellModel); ok && m.view != nil && m.view.Save.Status == model.SaveStatusFailed {
		return fmt.Errorf("session not saved: %s", m.view.Save.Error)
	}
	return nil
}
