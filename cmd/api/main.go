package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"oceanview/internal/api"
	"oceanview/internal/config"
	"oceanview/internal/database"
	"oceanview/internal/domain"
	"oceanview/internal/events"
	"oceanview/internal/export"
	"oceanview/internal/logging"
	"oceanview/internal/metrics"
	"oceanview/internal/notify"
	"oceanview/internal/repository"
	"oceanview/internal/service"
	"oceanview/internal/worker"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const sessionTTL = 12 * time.Hour

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	cfg, logger, closer, err := loadConfigAndLogger()
	if err != nil {
		return err
	}
	if closer != nil {
		defer (func() { _ = closer.Close() })()
	}

	db, err := database.NewDB(cfg.Database.Path, &logger)
	if err != nil {
		logger.Error().Err(err).Str("db_path", cfg.Database.Path).Msg("init database")
		return err
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	redisClient := initRedis(cfg, &logger)
	if redisClient != nil {
		defer redisClient.Close()
	}
	sessions := initSessions(redisClient, &logger)

	bus := events.NewEventBus()

	reservations := service.NewReservationService(db, bus, &logger)
	billing := service.NewBillingService(db, bus, &logger)
	rooms := service.NewRoomService(db, &logger)
	reports := service.NewReportService(db, &logger)
	users := service.NewUserService(db, sessions, &logger)

	if err := rooms.Seed(ctx, cfg.Rooms); err != nil {
		logger.Error().Err(err).Msg("seed rooms")
		return err
	}

	startNotifications(ctx, cfg, bus, &logger)
	startBackups(ctx, cfg, &logger)
	startMetrics(ctx, cfg, &logger)

	httpServer := api.NewHTTPServer(cfg.API, api.Services{
		Reservations: reservations,
		Billing:      billing,
		Rooms:        rooms,
		Reports:      reports,
		Users:        users,
		Sessions:     sessions,
		Exporter:     export.NewExporter(cfg.Exports.Path, &logger),
	}, &logger)

	return serve(ctx, httpServer, &logger)
}

func loadConfigAndLogger() (*config.Config, zerolog.Logger, io.Closer, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, zerolog.Logger{}, nil, fmt.Errorf("load config: %w", err)
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return nil, zerolog.Logger{}, nil, fmt.Errorf("init logger: %w", err)
	}
	logger := baseLogger.With().Str("component", "api-main").Logger()

	return cfg, logger, closer, nil
}

func initRedis(cfg *config.Config, logger *zerolog.Logger) *redis.Client {
	if cfg.Redis.Address == "" {
		return nil
	}

	redisClient := repository.NewRedisClient(cfg.Redis)
	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		logger.Warn().Err(err).Msg("redis connection failed, continuing without redis")
		return nil
	}

	logger.Info().Str("addr", cfg.Redis.Address).Msg("redis connected")
	return redisClient
}

// initSessions prefers redis-backed sessions with an in-memory fallback.
// Without redis the in-memory store runs alone, which is fine for a single
// process.
func initSessions(client *redis.Client, logger *zerolog.Logger) domain.SessionRepository {
	memory := repository.NewMemorySessionRepository(sessionTTL)
	if client == nil {
		return memory
	}
	return repository.NewFailoverSessionRepository(
		repository.NewRedisSessionRepository(client, sessionTTL),
		memory,
		logger,
	)
}

func startNotifications(ctx context.Context, cfg *config.Config, bus *events.EventBus, logger *zerolog.Logger) {
	notifier, err := notify.NewTelegramNotifier(cfg.Notifications.Telegram, logger)
	if err != nil {
		logger.Warn().Err(err).Msg("telegram init failed, continuing without notifications")
	}
	if notifier == nil {
		return
	}

	w := worker.NewNotifyWorker(notifier, worker.DefaultRetryPolicy(), logger)
	w.Subscribe(bus)
	go w.Start(ctx)
}

func startBackups(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) {
	if !cfg.Backup.Enabled {
		return
	}
	svc := database.NewBackupService(cfg.Database.Path, cfg.Backup, logger)
	go svc.Start(ctx)
}

func startMetrics(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) {
	if !cfg.Monitoring.PrometheusEnabled {
		return
	}

	metrics.Register()
	port := cfg.Monitoring.PrometheusPort
	if port == 0 {
		port = 9090
	}
	go startMetricsServer(ctx, port, logger)
}

func startMetricsServer(ctx context.Context, port int, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("metrics server error")
	}
}

func serve(ctx context.Context, httpServer *api.HTTPServer, logger *zerolog.Logger) error {
	go func() {
		if err := httpServer.Start(); err != nil {
			logger.Error().Err(err).Msg("http server stopped")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown")
	}

	logger.Info().Msg("API server stopped")
	return nil
}
