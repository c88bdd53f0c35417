// cmd/main.go
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"

	"go_vocab_game/internal/catalog"
	"go_vocab_game/internal/config"
	"go_vocab_game/internal/game"
	"go_vocab_game/internal/handlers"
	"go_vocab_game/internal/middleware"
	"go_vocab_game/internal/phonetics"
	"go_vocab_game/internal/service"
	"go_vocab_game/internal/store"
	"go_vocab_game/internal/webfetch"
	"go_vocab_game/internal/webutil"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// セッションの期限切れチェック間隔
const sweepInterval = time.Minute

func main() {
	// 設定ファイル読み込み用の一時的なロガー設定
	tempLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(tempLogger)
	log.Println("Log Config Loading...")

	configDir := os.Getenv("CONFIG_DIR")
	if configDir == "" {
		configDir = "configs"
	}
	if err := config.LoadConfig(configDir); err != nil {
		slog.Error("Error loading configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := newLogger(config.Cfg.Log, os.Getenv("APP_ENV"), os.Stderr)
	log.Println("Log Config Loaded...")

	slog.SetDefault(logger)
	slog.Info("Application starting...", slog.String("version", config.AppVersion))

	// 1. Store
	st, err := store.New(config.Cfg.Database, logger)
	if err != nil {
		slog.Error("Error initializing store", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := st.Close(); err != nil {
			slog.Error("Error closing store", slog.Any("error", err))
		} else {
			slog.Info("Store closed.")
		}
	}()

	// 2. 組み込みカタログと発音辞書
	cat, err := catalog.Load()
	if err != nil {
		slog.Error("Error loading embedded catalog", slog.Any("error", err))
		os.Exit(1)
	}
	filler, err := phonetics.NewFiller(config.Cfg.Phonetics.DictPath)
	if err != nil {
		// 発音辞書はなくても動くので警告のみ
		slog.Warn("Pronunciation dictionary not loaded", slog.String("path", config.Cfg.Phonetics.DictPath), slog.Any("error", err))
		filler = phonetics.Nop{}
	}

	webutil.MaxJSONBodyBytes = config.Cfg.Import.MaxBodyBytes

	// 3. Dependency Injection
	importService := service.NewImportService(service.ImportDeps{
		Store:        st,
		Catalog:      cat,
		Fetcher:      webfetch.NewReadabilityFetcher(config.Cfg.Import.FetchTimeout, config.Cfg.Import.MaxBodyBytes),
		Filler:       filler,
		HistoryLimit: config.Cfg.Import.HistoryLimit,
	})
	textbookService := service.NewTextbookService(st, cat)
	learningService := service.NewLearningService(st)

	gameOpts := service.GameOptionsFromConfig(&config.Cfg)
	gameOpts.Scheduler = game.NewScheduler()
	gameService := service.NewGameService(st, gameOpts, logger)

	api := &handlers.API{
		Import:   handlers.NewImportHandler(importService, logger),
		Textbook: handlers.NewTextbookHandler(textbookService, logger),
		Game:     handlers.NewGameHandler(gameService, logger),
		Learning: handlers.NewLearningHandler(learningService, logger),
	}

	// 4. Setup Router
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.LoggingMiddleware(logger))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   config.Cfg.CORS.AllowedOrigins,
		AllowedMethods:   config.Cfg.CORS.AllowedMethods,
		AllowedHeaders:   config.Cfg.CORS.AllowedHeaders,
		ExposedHeaders:   config.Cfg.CORS.ExposedHeaders,
		AllowCredentials: config.Cfg.CORS.AllowCredentials,
		MaxAge:           config.Cfg.CORS.MaxAge,
		Debug:            false,
	})
	r.Use(corsHandler.Handler)

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))
	r.Use(middleware.LearnerContextMiddleware)

	r.Route("/api/v1", api.Routes)

	// ロードバランサ用
	r.Get("/health", api.Learning.Health)

	// 5. 期限切れセッションの掃除
	sweepCtx, stopSweeper := context.WithCancel(context.Background())
	defer stopSweeper()
	go service.RunSweeper(sweepCtx, gameService, sweepInterval)

	// 6. Start Server
	server := &http.Server{
		Addr:         config.Cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("Server listening", slog.String("port", config.Cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Could not listen on port", slog.String("port", config.Cfg.Server.Port), slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", slog.Any("error", err))
	}

	log.Println("Server exiting")
}
