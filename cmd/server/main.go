package main

import (
	"context"
	"log"
	"net/http"

	"go.uber.org/zap"

	webAdapter "workshop-manager/internal/adapters/web"
	"workshop-manager/internal/ai"
	"workshop-manager/internal/app"
	"workshop-manager/internal/config"
	"workshop-manager/internal/core"
	"workshop-manager/internal/metrics"
	"workshop-manager/internal/persistence"
	"workshop-manager/internal/persistence/postgres"
	"workshop-manager/internal/persistence/sqlite"
	"workshop-manager/internal/scheduler"
	"workshop-manager/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zlog := logger.Must(logger.New())
	defer func() { _ = zlog.Sync() }()

	ctx := context.Background()
	adapter, err := newAdapter(ctx, cfg.Store)
	if err != nil {
		zlog.Fatal("persistence", zap.Error(err))
	}
	defer func() { _ = adapter.Close() }()

	store, err := core.NewStore(ctx, adapter, logger.Named(zlog, "store"))
	if err != nil {
		zlog.Fatal("store", zap.Error(err))
	}

	var agent ai.AgentService
	if cfg.AI.OpenAIKey != "" {
		agent = ai.NewAgent(cfg.AI.OpenAIKey)
	} else {
		zlog.Warn("OPENAI_API_KEY is not set, entry proposals disabled")
	}

	svc := app.NewAppService(store, agent)

	sched := scheduler.NewScheduler(cfg.Reminder, store, logger.Named(zlog, "scheduler"))
	sched.Start()
	defer sched.Stop()

	registry := metrics.NewRegistry(store)
	handler := webAdapter.NewHandler(svc, logger.Named(zlog, "web"), cfg.Server.AllowedOrigins, registry)

	zlog.Info("server starting",
		zap.String("port", cfg.Server.Port),
		zap.String("backend", cfg.Store.Backend))
	if err := http.ListenAndServe(":"+cfg.Server.Port, handler); err != nil {
		zlog.Fatal("server", zap.Error(err))
	}
}

func newAdapter(ctx context.Context, cfg config.StoreConfig) (persistence.Adapter, error) {
	switch cfg.Backend {
	case "postgres":
		return postgres.New(ctx, cfg.DatabaseURL)
	case "memory":
		return persistence.NewMemory(), nil
	default:
		return sqlite.New(cfg.SQLitePath)
	}
}
