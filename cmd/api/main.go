package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"

	"github.com/novadent/dental-console/internal/api/router"
	appconfig "github.com/novadent/dental-console/internal/config"
	"github.com/novadent/dental-console/internal/dental"
	"github.com/novadent/dental-console/internal/expenses"
	"github.com/novadent/dental-console/internal/http/handlers"
	"github.com/novadent/dental-console/internal/mirror"
	"github.com/novadent/dental-console/internal/observability/metrics"
	"github.com/novadent/dental-console/internal/slots"
	"github.com/novadent/dental-console/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting dental-console API server",
		"env", cfg.Env,
		"port", cfg.Port,
		"backend", cfg.BackendBaseURL,
	)

	client := dental.NewClient(cfg.BackendBaseURL,
		dental.WithAuthToken(cfg.BackendAuthToken),
		dental.WithLogger(logger),
	)

	var cache *mirror.SnapshotCache
	if cfg.RedisEnabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			logger.Warn("redis unreachable, snapshot cache disabled", "error", err)
		} else {
			cache = mirror.NewSnapshotCache(rdb, otel.Tracer("dental-console/mirror"))
		}
	}

	syncMetrics := metrics.NewSyncMetrics(nil)

	m, err := mirror.New(mirror.Config{
		Upstream: client,
		Logger:   logger,
		Metrics:  syncMetrics,
		Cache:    cache,
	})
	if err != nil {
		logger.Error("failed to build mirror", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.RefreshEnabled {
		refresher, err := mirror.NewRefresher(mirror.RefresherConfig{
			Mirror:   m,
			Interval: cfg.RefreshInterval,
		})
		if err != nil {
			logger.Error("failed to build refresher", "error", err)
			os.Exit(1)
		}
		go refresher.Start(ctx)
	} else {
		m.Prime(ctx)
	}

	loc := cfg.Location()
	picker := slots.NewPicker(client, logger)
	expenseRepo := expenses.NewInMemoryRepository()

	r := router.New(&router.Config{
		Logger:             logger,
		Appointments:       handlers.NewAppointmentsHandler(m, picker, loc, logger),
		Patients:           handlers.NewPatientsHandler(m, logger),
		Doctors:            handlers.NewDoctorsHandler(m, logger),
		Stats:              handlers.NewStatsHandler(m, expenseRepo, logger),
		Expenses:           handlers.NewExpensesHandler(expenseRepo, logger),
		Auth:               handlers.NewAuthHandler(),
		Events:             handlers.NewEventsHandler(m, logger),
		SessionJWTSecret:   cfg.SessionJWTSecret,
		MetricsHandler:     promhttp.Handler(),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
	fmt.Println("Server exited gracefully")
}
