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

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"

	"github.com/disikoX/saka-backend/internal/config"
	"github.com/disikoX/saka-backend/internal/handler"
	"github.com/disikoX/saka-backend/internal/health"
	"github.com/disikoX/saka-backend/internal/infra/dispenserecorder"
	"github.com/disikoX/saka-backend/internal/infra/repository"
	"github.com/disikoX/saka-backend/internal/observability"
	"github.com/disikoX/saka-backend/internal/observability/logging"
	"github.com/disikoX/saka-backend/internal/observability/metrics"
	"github.com/disikoX/saka-backend/internal/service/device"
	"github.com/disikoX/saka-backend/internal/service/dispense"
	"github.com/disikoX/saka-backend/internal/service/history"
	"github.com/disikoX/saka-backend/internal/service/schedule"
	"github.com/disikoX/saka-backend/internal/service/settings"
	"github.com/disikoX/saka-backend/internal/service/watch"
)

// Version is set via ldflags at build time
var Version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		return 1
	}

	logging.Setup(cfg.LogLevel)

	if err := config.ValidateForRun(cfg); err != nil {
		slog.Error("configuration validation error", slog.String("error", err.Error()))
		return 1
	}

	shutdownTelemetry, err := observability.Setup(ctx)
	if err != nil {
		slog.Error("failed to initialize observability", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			slog.Warn("observability shutdown error", slog.String("error", err.Error()))
		}
	}()

	feederMetrics, err := metrics.NewFeederMetrics()
	if err != nil {
		slog.Error("failed to initialize feeder metrics", slog.String("error", err.Error()))
		return 1
	}

	recorderCfg := dispenserecorder.LoadConfig()
	recorder, err := dispenserecorder.NewRecorder(ctx, recorderCfg)
	if err != nil {
		slog.Error("failed to initialize dispense recorder", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		if err := recorder.Close(); err != nil {
			slog.Warn("failed to close dispense recorder", slog.String("error", err.Error()))
		}
	}()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	if err := redisotel.InstrumentTracing(redisClient); err != nil {
		slog.Error("failed to instrument redis tracing",
			slog.String("event", "redis.otel.tracing.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}

	if err := redisotel.InstrumentMetrics(redisClient); err != nil {
		slog.Error("failed to instrument redis metrics",
			slog.String("event", "redis.otel.metrics.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}

	if err := redisClient.Ping(ctx).Err(); err != nil {
		slog.Error("failed to connect redis",
			slog.String("event", "redis.connect.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}

	defer func() {
		if err := redisClient.Close(); err != nil {
			slog.Warn("failed to close redis client", slog.String("error", err.Error()))
		}
	}()

	slog.Info("redis connected",
		slog.String("addr", cfg.Redis.Addr),
	)

	store := repository.NewKeyedStore(redisClient)

	scheduleService := schedule.NewService(store)
	settingsService := settings.NewService(store)
	deviceService := device.NewService(store)
	historyService := history.NewService(store)
	observer := watch.NewObserver(store, feederMetrics)
	dispatcher := dispense.NewDispatcher(store, recorder, feederMetrics)

	distributorHandler := handler.NewDistributorHandler(
		deviceService,
		settingsService,
		observer,
		dispatcher,
		historyService,
	)
	planningHandler := handler.NewPlanningHandler(scheduleService)

	r := gin.New()
	r.Use(gin.Recovery())

	healthChecker := health.NewChecker(redisClient, Version)
	r.GET("/health/live", healthChecker.LiveHandler())
	r.GET("/health/ready", healthChecker.ReadyHandler())
	r.GET("/health", healthChecker.ReadyHandler())

	v1 := r.Group("/api/v1")
	v1.Use(handler.AuthMiddleware(cfg.JWTSecret))
	{
		v1.GET("/distributors", distributorHandler.HandleList)
		v1.POST("/distributors/:id/assignment", distributorHandler.HandleAssign)
		v1.GET("/distributors/:id/status", distributorHandler.HandleStatus)
		v1.GET("/distributors/:id/capacity", distributorHandler.HandleCapacity)
		v1.GET("/distributors/:id/weight", distributorHandler.HandleCurrentWeight)
		v1.GET("/distributors/:id/weight/stream", distributorHandler.HandleWeightStream)
		v1.POST("/distributors/:id/trigger", distributorHandler.HandleTrigger)

		v1.GET("/distributors/:id/settings/quantity", distributorHandler.HandleGetQuantity)
		v1.PUT("/distributors/:id/settings/quantity", distributorHandler.HandleSetQuantity)
		v1.GET("/distributors/:id/settings/threshold", distributorHandler.HandleGetThreshold)
		v1.PUT("/distributors/:id/settings/threshold", distributorHandler.HandleSetThreshold)

		v1.GET("/distributors/:id/history/stats", distributorHandler.HandleHistoryStats)
		v1.POST("/distributors/:id/history", distributorHandler.HandleRecordHistory)

		v1.GET("/distributors/:id/planning", planningHandler.HandleListSlots)
		v1.POST("/distributors/:id/planning", planningHandler.HandleCreateSlot)
		v1.PUT("/distributors/:id/planning/:slotId", planningHandler.HandleUpdateSlot)
		v1.DELETE("/distributors/:id/planning/:slotId", planningHandler.HandleDeleteSlot)
		v1.GET("/distributors/:id/planning/break", planningHandler.HandleGetBreak)
		v1.PUT("/distributors/:id/planning/break", planningHandler.HandleSetBreak)
		v1.GET("/distributors/:id/planning/next", planningHandler.HandleNextDistribution)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Port),
		)
		serverErr <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shutdown server", slog.String("error", err.Error()))
			return 1
		}

		slog.Info("server exited properly")
		return 0

	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return 0
		}
		slog.Error("server exited with error", slog.String("error", err.Error()))
		return 1
	}
}
