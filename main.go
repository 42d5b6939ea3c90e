package main

import (
	"context"
	"embed"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mvp-board/internal/config"
	"mvp-board/internal/scoring"
	"mvp-board/internal/store"
	"mvp-board/internal/web"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

//go:embed templates static
var content embed.FS

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	logger := newLogger(cfg)
	log.Logger = logger

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logger.WithContext(ctx)

	templates, err := web.NewTemplates(content)
	if err != nil {
		logger.Fatal().Err(err).Msg("templates")
	}
	appStore, err := openStore(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("store")
	}
	defer appStore.Close()

	scoringClient := scoring.NewClient(cfg.ScoringBaseURL, &http.Client{Timeout: cfg.ScoringTimeout})
	server := web.NewServer(ctx, appStore, templates, scoringClient, web.Options{
		ViewTTL:     cfg.ViewTTL,
		CORSOrigins: cfg.CORSAllowedOrigins,
		IsDev:       cfg.IsDev(),
	})
	defer server.Close()

	staticFS, err := fs.Sub(content, "static")
	if err != nil {
		logger.Fatal().Err(err).Msg("static fs")
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(web.RequestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	r.Mount("/", server.Routes())

	if cfg.IsLambda() {
		logger.Info().Str("function", cfg.LambdaFunctionName).Msg("starting in lambda mode")
		adapter := httpadapter.New(r)
		lambda.Start(adapter.ProxyWithContext)
		return
	}

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("shutdown")
		}
	}()

	logger.Info().
		Str("addr", cfg.HTTPAddr).
		Str("scoring", cfg.ScoringBaseURL).
		Msg("listening")
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal().Err(err).Msg("serve")
	}
}

func newLogger(cfg config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	var logger zerolog.Logger
	if cfg.IsDev() && !cfg.IsLambda() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	} else {
		logger = zerolog.New(os.Stderr)
	}
	return logger.Level(level).With().Timestamp().Logger()
}

// openStore picks the published-query backend: Postgres, then SQLite, then
// Redis, falling back to memory.
func openStore(ctx context.Context, cfg config.Config) (store.Store, error) {
	opts := store.Options{TTL: cfg.QueryTTL}
	switch {
	case cfg.PostgresDSN != "":
		opts.MigrationsDir = cfg.PostgresMigrationsDir
		pgStore, err := store.NewPostgresStore(cfg.PostgresDSN, opts)
		if err != nil {
			return nil, err
		}
		return pgStore, nil
	case cfg.DBPath != "":
		opts.MigrationsDir = cfg.DBMigrationsDir
		sqliteStore, err := store.NewSQLiteStore(cfg.DBPath, opts)
		if err != nil {
			return nil, err
		}
		return sqliteStore, nil
	case cfg.RedisAddr != "":
		redisStore, err := store.NewRedisStore(ctx, store.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			TTL:      cfg.QueryTTL,
		})
		if err != nil {
			return nil, err
		}
		return redisStore, nil
	}
	return store.NewMemoryStore(opts), nil
}
