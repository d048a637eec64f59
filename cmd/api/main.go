package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/iot-kit/sensor-gateway/internal/api/http"
	"github.com/iot-kit/sensor-gateway/internal/api/http/handlers"
	"github.com/iot-kit/sensor-gateway/internal/auth"
	"github.com/iot-kit/sensor-gateway/internal/config"
	"github.com/iot-kit/sensor-gateway/internal/events"
	"github.com/iot-kit/sensor-gateway/internal/heartbeat"
	"github.com/iot-kit/sensor-gateway/internal/observability"
	"github.com/iot-kit/sensor-gateway/internal/persistence"
	"github.com/iot-kit/sensor-gateway/internal/service"
	"github.com/iot-kit/sensor-gateway/internal/storage"
	"github.com/iot-kit/sensor-gateway/internal/worker"
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

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	fileStore, err := storage.NewFileStore(cfg.Storage.FilesDir)
	if err != nil {
		logger.Fatal("failed to init file store", zap.Error(err))
	}
	sensorConfigStore, err := storage.NewFileStore(cfg.Storage.SensorConfigDir)
	if err != nil {
		logger.Fatal("failed to init sensor config store", zap.Error(err))
	}

	credentials, err := auth.NewCredentialStore(cfg.Auth.Users, cfg.Auth.BcryptCost)
	if err != nil {
		logger.Fatal("failed to load credentials", zap.Error(err))
	}

	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()

	authService := service.NewAuthService(cfg.Auth, credentials, dispatcher)
	sensorService := service.NewSensorService(sensorConfigStore, redis, logger)
	fileService := service.NewFileService(fileStore)
	auditService := service.NewAuditService(dispatcher, logger)
	worker.StartAuditWorker(auditService)

	gate := auth.NewGate(nil, logger, metrics, dispatcher)
	roles := auth.NewRolePredicate(authService, logger, metrics, dispatcher)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, gate, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:   handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, redis),
		Docs:     handlers.NewDocsHandler(cfg.App.Name, cfg.App.Version),
		Auth:     handlers.NewAuthHandler(authService),
		Sensors:  handlers.NewSensorsHandler(sensorService),
		Files:    handlers.NewFilesHandler(fileService),
		Firmware: handlers.NewFirmwareHandler(cfg.Storage),
		Roles:    roles,
	})

	if cfg.Heartbeat.PeerAddr != "" {
		sender, err := heartbeat.NewSender(cfg.Heartbeat.PeerAddr)
		if err != nil {
			logger.Fatal("failed to init heartbeat sender", zap.Error(err))
		}
		defer sender.Close()
		go worker.RunHeartbeat(ctx, sender, cfg.Heartbeat.Interval(), cfg.Heartbeat.GPIOKey, logger)
	}

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
