package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/cdce-console/internal/api/http"
	"github.com/spec-kit/cdce-console/internal/api/http/handlers"
	"github.com/spec-kit/cdce-console/internal/archive"
	"github.com/spec-kit/cdce-console/internal/clock"
	"github.com/spec-kit/cdce-console/internal/config"
	"github.com/spec-kit/cdce-console/internal/events"
	"github.com/spec-kit/cdce-console/internal/gemini"
	"github.com/spec-kit/cdce-console/internal/observability"
	"github.com/spec-kit/cdce-console/internal/persistence"
	"github.com/spec-kit/cdce-console/internal/report"
	"github.com/spec-kit/cdce-console/internal/repository"
	"github.com/spec-kit/cdce-console/internal/service"
	"github.com/spec-kit/cdce-console/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	profile, err := config.LoadProfile(cfg.Institution.ProfilePath)
	if err != nil {
		logger.Fatal("failed to load institution profile", zap.Error(err))
	}

	store, err := persistence.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to open slot store", zap.Error(err))
	}
	defer store.Close() //nolint:errcheck

	state := service.NewState(ctx,
		repository.NewTicketRepository(store, logger),
		repository.NewInventoryRepository(store, logger),
		logger)

	dispatcher := events.NewInMemoryDispatcher(logger)
	metrics := observability.NewMetrics()
	notificationService := service.NewNotificationService(dispatcher, logger)
	worker.StartNotificationWorker(notificationService)
	worker.StartMetricsWorker(dispatcher, metrics)

	deps := service.Dependencies{
		State:      state,
		Profile:    profile,
		Clock:      clock.Real(),
		Dispatcher: dispatcher,
		Logger:     logger,
	}
	loc := cfg.App.Location()

	var archiver service.Archiver
	if cfg.Archive.Enabled() {
		a, err := archive.NewMinioArchiver(ctx, cfg.Archive, logger)
		if err != nil {
			logger.Fatal("failed to init backup archive", zap.Error(err))
		}
		archiver = a
	}

	composer := report.NewComposer(newGenerator(cfg.Report, logger), profile, cfg.Report.Timeout(), logger)

	env := handlers.Env{Clock: deps.Clock, Location: loc}

	app := fiber.New(fiber.Config{AppName: cfg.App.Name, Immutable: true})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:        handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, cfg.Storage.Backend, profile, store),
		Tickets:       handlers.NewTicketsHandler(service.NewTicketService(deps), env),
		Inventory:     handlers.NewInventoryHandler(service.NewInventoryService(deps), env),
		Reports:       handlers.NewReportHandler(service.NewReportService(deps, composer, loc), profile),
		Backup:        handlers.NewBackupHandler(service.NewBackupService(deps, archiver)),
		Dashboard:     handlers.NewDashboardHandler(service.NewDashboardService(deps), profile),
		Notifications: handlers.NewNotificationsHandler(notificationService),
		Metrics:       metrics.Handler(),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

// newGenerator returns nil when no API key is configured, which makes
// reports carry the missing-key message.
func newGenerator(cfg config.ReportConfig, logger *zap.Logger) report.Generator {
	if cfg.APIKey == "" {
		logger.Warn("API_KEY not set, reports will not be generated")
		return nil
	}
	client, err := gemini.NewClient(cfg.APIKey, gemini.WithBaseURL(cfg.BaseURL), gemini.WithModel(cfg.Model))
	if err != nil {
		logger.Fatal("failed to init report generator", zap.Error(err))
	}
	return client
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
