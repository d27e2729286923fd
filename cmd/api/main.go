// Package main is the entry point for the Travel Match API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	"github.com/pkordes/travel-match/backend/internal/account"
	"github.com/pkordes/travel-match/backend/internal/config"
	"github.com/pkordes/travel-match/backend/internal/directory"
	"github.com/pkordes/travel-match/backend/internal/handler"
	"github.com/pkordes/travel-match/backend/internal/middleware"
	"github.com/pkordes/travel-match/backend/internal/presence"
	"github.com/pkordes/travel-match/backend/internal/repo"
	"github.com/pkordes/travel-match/backend/internal/service"
	"github.com/pkordes/travel-match/backend/internal/session"
	"github.com/pkordes/travel-match/backend/migrations"
)

// suggestionCacheTTL bounds how stale the suggestion list may be.
const suggestionCacheTTL = time.Minute

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		// Use plain stderr before the logger is configured.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	ctx := context.Background()

	// --- Database ---------------------------------------------------------
	// New() does not open connections immediately; the first query does.
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	slog.Info("database connection established")

	if err := migrate(ctx, pool); err != nil {
		slog.Error("failed to apply migrations", "error", err)
		os.Exit(1)
	}

	// --- Redis ------------------------------------------------------------
	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		slog.Error("invalid REDIS_URL", "error", err)
		os.Exit(1)
	}
	rdb := redis.NewClient(redisOpts)
	defer rdb.Close()

	if err := rdb.Ping(ctx).Err(); err != nil {
		slog.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	slog.Info("redis connection established")

	// --- Services ---------------------------------------------------------
	resolver := presence.NewResolver(presence.SystemClock, cfg.Location(), cfg.DefaultCountry)
	sessions := session.NewStore(rdb, cfg.SessionTTL)

	planRepo := repo.NewPlanRepo(pool)
	userRepo := repo.NewUserRepo(pool)
	entryRepo := repo.NewCustomEntryRepo(pool)

	presenceSvc := service.NewPresenceService(userRepo, planRepo, resolver)
	suggestionSvc := service.NewSuggestionService(entryRepo, suggestionCacheTTL, logger)
	accounts := account.NewClient(cfg.AccountURL, account.WithLogger(logger))

	svc := handler.Services{
		Plans:       service.NewPlanService(planRepo),
		Presence:    presenceSvc,
		Export:      service.NewExportService(planRepo, resolver),
		Sessions:    service.NewSelectionService(sessions, suggestionSvc, logger),
		Suggestions: suggestionSvc,
		Search:      service.NewSearchService(presenceSvc, sessions, newSearcher(cfg, logger)),
		Signup:      service.NewRegistrationService(sessions, accounts, presenceSvc.Today, logger),
	}

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer
	// → CORS → body limit.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))

	r.Mount("/", handler.NewServer(svc, logger).Routes())

	// --- HTTP Server ------------------------------------------------------
	// WriteTimeout leaves room for directory retries behind POST /search.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr, "directory", cfg.DirectoryBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// migrate applies every pending embedded migration.
func migrate(ctx context.Context, pool *pgxpool.Pool) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return err
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return err
	}
	for _, res := range results {
		slog.Info("migration applied", "version", res.Source.Version, "duration", res.Duration)
	}
	return nil
}

// newSearcher picks the directory backend named by DIRECTORY_BACKEND.
func newSearcher(cfg config.Config, logger *slog.Logger) service.Searcher {
	if cfg.DirectoryBackend == config.DirectoryTypesense {
		return directory.NewTypesenseSearcher(cfg.TypesenseURL, cfg.TypesenseAPIKey, cfg.TypesenseCollection, logger)
	}
	return directory.NewHTTPSearcher(cfg.DirectoryURL, directory.Options{
		CacheTTL: cfg.SearchCacheTTL,
		Logger:   logger,
	})
}
