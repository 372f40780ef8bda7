package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fluxcontent/internal/auth"
	"fluxcontent/internal/config"
	"fluxcontent/internal/content"
	"fluxcontent/internal/db"
	"fluxcontent/internal/eventlog"
	httpx "fluxcontent/internal/http"
	"fluxcontent/internal/publish"
	"fluxcontent/internal/schedule"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

func main() {
	cfg, _ := config.Load()

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()

	gdb, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("db connect")
	}
	if err := db.AutoMigrateAndIndexes(gdb); err != nil {
		log.Fatal().Err(err).Msg("db migrate")
	}

	jwtSvc := auth.NewJWT(cfg.JWTSecret)

	httpClient := &http.Client{Timeout: cfg.PublishTimeout}
	registry := publish.NewRegistry()
	registry.Register("buffer", &publish.Buffer{
		Token:   cfg.BufferAPIKey,
		BaseURL: cfg.BufferBaseURL,
		HTTP:    httpClient,
		Limiter: rate.NewLimiter(rate.Limit(1), 3),
	})
	registry.Register("webhook", &publish.Webhook{
		URL:  cfg.WebhookURL,
		HTTP: httpClient,
	})

	repo := &schedule.Repo{DB: gdb}
	lookup := &content.Lookup{DB: gdb}
	worker := &schedule.Worker{
		ID:             "worker-" + uuid.NewString()[:8],
		Store:          repo,
		Content:        lookup,
		Backends:       registry,
		Events:         &eventlog.Recorder{DB: gdb},
		BatchLimit:     cfg.WorkerBatchLimit,
		PublishTimeout: cfg.PublishTimeout,
		ClaimTimeout:   cfg.ClaimTimeout,
		Log:            log.With().Str("component", "worker").Logger(),
	}

	r := httpx.NewRouter(cfg, httpx.Deps{
		DB:        gdb,
		JWT:       jwtSvc,
		Repo:      repo,
		Content:   lookup,
		Platforms: registry,
		Worker:    worker,
	})

	ctx, cancel := context.WithCancel(context.Background())

	c := cron.New()
	if _, err := c.AddFunc(cfg.WorkerSchedule, func() {
		if _, err := worker.Tick(ctx); err != nil {
			log.Error().Err(err).Msg("worker tick")
		}
	}); err != nil {
		log.Fatal().Err(err).Str("schedule", cfg.WorkerSchedule).Msg("invalid worker schedule")
	}
	c.Start()

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server")
		}
	}()

	// graceful shutdown
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch

	<-c.Stop().Done()
	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)
}
