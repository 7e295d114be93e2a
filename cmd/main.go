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
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/rs/cors"

	"go_10x_cards/internal/config"
	"go_10x_cards/internal/handlers"
	"go_10x_cards/internal/middleware"
	"go_10x_cards/internal/openrouter"
	"go_10x_cards/internal/repository"
	"go_10x_cards/internal/service"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

func main() {
	//　設定ファイル読み込み用の一時的なロガー設定
	tempLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(tempLogger)

	// .env があれば読み込む (無くてもエラーにしない)
	if err := godotenv.Load(); err == nil {
		log.Println(".env file loaded")
	}

	// Configを読み込み
	if err := config.LoadConfig("configs"); err != nil {
		slog.Error("Error loading configuration", slog.Any("error", err))
		os.Exit(1)
	}

	// === 設定に基づいて slog ロガーを初期化 ===
	logLevel := new(slog.LevelVar)
	switch strings.ToLower(config.Cfg.Log.Level) {
	case "debug":
		logLevel.Set(slog.LevelDebug)
	case "info":
		logLevel.Set(slog.LevelInfo)
	case "warn", "warning":
		logLevel.Set(slog.LevelWarn)
	case "error":
		logLevel.Set(slog.LevelError)
	default:
		logLevel.Set(slog.LevelInfo)
		slog.Warn("Unknown log level specified in config, defaulting to INFO", slog.String("level", config.Cfg.Log.Level))
	}
	var handler slog.Handler
	appEnv := os.Getenv("APP_ENV")
	if strings.ToLower(appEnv) == "dev" {
		// 開発時は色付きの tint Handler を使用
		tintOpts := &tint.Options{
			Level:      logLevel,
			TimeFormat: time.RFC3339,
		}
		handler = tint.NewHandler(os.Stderr, tintOpts)
		tempLogger.Info("Using TINT log handler", slog.String("APP_ENV", appEnv))
	} else {
		jsonOpts := &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		}
		handler = slog.NewJSONHandler(os.Stderr, jsonOpts)
		tempLogger.Info("Using JSON log handler", slog.String("APP_ENV", appEnv))
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	slog.Info("Application starting...")

	// Database (GORM)
	db, err := repository.NewDB(config.Cfg.Database.URL, logger)
	if err != nil {
		slog.Error("Error initializing database", slog.Any("error", err))
		os.Exit(1)
	}
	sqlDB, err := db.DB()
	if err != nil {
		slog.Error("Error getting underlying sql.DB from GORM", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			slog.Error("Error closing database connection", slog.Any("error", err))
		} else {
			slog.Info("Database connection closed.")
		}
	}()

	// OpenRouterクライアント (シングルトンにせず、ここで生成してDIする)
	llmClient, err := openrouter.New(openrouter.Config{
		APIKey:      config.Cfg.OpenRouter.APIKey,
		BaseURL:     config.Cfg.OpenRouter.BaseURL,
		Model:       config.Cfg.OpenRouter.Model,
		Temperature: config.Cfg.OpenRouter.Temperature,
		Timeout:     config.Cfg.OpenRouterTimeout(),
		MaxRetries:  config.Cfg.OpenRouter.MaxRetries,
	})
	if err != nil {
		slog.Error("Error initializing OpenRouter client", slog.Any("error", err))
		os.Exit(1)
	}

	// Dependency Injection
	generationRepo := repository.NewGormGenerationRepository()
	flashcardRepo := repository.NewGormFlashcardRepository()
	errorLogRepo := repository.NewGormGenerationErrorLogRepository()

	generationService := service.NewGenerationService(db, generationRepo, errorLogRepo, llmClient, &config.Cfg)
	flashcardService := service.NewFlashcardService(db, flashcardRepo, generationRepo)

	generationHandler := handlers.NewGenerationHandler(generationService, logger)
	flashcardHandler := handlers.NewFlashcardHandler(flashcardService, logger)

	// Router
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.LoggingMiddleware(logger))

	// CORS 設定と適用 (設定ファイルから読み込んだ値を使用)
	corsOptions := cors.Options{
		AllowedOrigins:   config.Cfg.CORS.AllowedOrigins,
		AllowedMethods:   config.Cfg.CORS.AllowedMethods,
		AllowedHeaders:   config.Cfg.CORS.AllowedHeaders,
		ExposedHeaders:   config.Cfg.CORS.ExposedHeaders,
		AllowCredentials: config.Cfg.CORS.AllowCredentials,
		MaxAge:           config.Cfg.CORS.MaxAge,
		Debug:            false,
	}
	corsHandler := cors.New(corsOptions)
	r.Use(corsHandler.Handler)

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// API Routes
	r.Route("/api/v1", func(r chi.Router) {
		if config.Cfg.Auth.Enabled {
			slog.Info("Applying Supabase JWT authentication middleware")
			r.Use(middleware.JWTAuthMiddleware(&config.Cfg))
		} else {
			// ローカル開発用。X-User-ID ヘッダまたは既定ユーザーで動作する
			slog.Warn("Authentication is DISABLED. Using development user context middleware")
			r.Use(middleware.DevUserContextMiddleware)
		}

		r.Post("/generations", generationHandler.PostGeneration)

		r.Route("/flashcards", func(r chi.Router) {
			r.Post("/", flashcardHandler.PostFlashcards)
			r.Get("/", flashcardHandler.GetFlashcards)
			r.Patch("/{flashcard_id}", flashcardHandler.PatchFlashcard)
			r.Delete("/{flashcard_id}", flashcardHandler.DeleteFlashcard)
		})
	})

	// Health Check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if err := sqlDB.PingContext(ctx); err != nil {
			slog.ErrorContext(ctx, "Health check failed: could not ping DB", slog.Any("error", err))
			http.Error(w, "Health check failed", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Start Server
	server := &http.Server{
		Addr:         config.Cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 120 * time.Second, // LLM呼び出し(リトライ込み)がReadより長いため大きめに取る
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
