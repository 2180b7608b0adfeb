package main

import (
	"context"
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/piresc/finstorage/internal/pkg/circuitbreaker"
	"github.com/piresc/finstorage/internal/pkg/config"
	"github.com/piresc/finstorage/internal/pkg/constants"
	"github.com/piresc/finstorage/internal/pkg/database"
	"github.com/piresc/finstorage/internal/pkg/health"
	"github.com/piresc/finstorage/internal/pkg/lock"
	"github.com/piresc/finstorage/internal/pkg/logger"
	"github.com/piresc/finstorage/internal/pkg/metrics"
	"github.com/piresc/finstorage/internal/pkg/middleware"
	"github.com/piresc/finstorage/internal/pkg/nats"
	nrpkg "github.com/piresc/finstorage/internal/pkg/newrelic"
	"github.com/piresc/finstorage/internal/pkg/nsq"
	"github.com/piresc/finstorage/internal/pkg/retry"
	"github.com/piresc/finstorage/internal/pkg/server"
	"github.com/piresc/finstorage/services/transactions"
	"github.com/piresc/finstorage/services/transactions/gateway"
	"github.com/piresc/finstorage/services/transactions/handler"
	"github.com/piresc/finstorage/services/transactions/repository"
	"github.com/piresc/finstorage/services/transactions/usecase"
)

func main() {
	appName := "mod-finance-storage"
	configPath := "config/finance.env"
	configs := config.InitConfig(configPath)

	// Initialize New Relic and Zap logger
	nrApp := nrpkg.InitNewRelic(configs)

	zapLogger, err := logger.InitZapLoggerFromConfig(configs, nrApp)
	if err != nil {
		log.Fatalf("Failed to create Zap logger: %v", err)
	}
	defer zapLogger.Close()

	logger.SetGlobalLogger(zapLogger)

	logger.Info("Starting application",
		logger.String("app", appName),
		logger.String("version", configs.App.Version),
		logger.String("environment", configs.App.Environment),
	)

	postgresClient, err := database.NewPostgresClient(configs.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to PostgreSQL", logger.Err(err))
	}

	redisClient, err := database.NewRedisClient(configs.Redis)
	if err != nil {
		zapLogger.Fatal("Failed to connect to Redis", logger.Err(err))
	}

	checkers := map[string]health.Checker{
		"postgres": postgresClient,
		"redis":    redisClient,
	}
	var closers []func(context.Context) error

	// Committed events are optional, the commit engine works without a broker
	var eventGW transactions.EventGW
	if configs.Events.Enabled {
		publisher, checker, closeFn := initPublisher(configs.Events.Broker, configs.NATS.URL, configs.NSQ.Address, zapLogger)
		checkers[configs.Events.Broker] = checker
		closers = append(closers, closeFn)
		eventGW = gateway.NewEventGW(
			publisher,
			configs.Events.Broker,
			configs.Events.Topic,
			circuitbreaker.New(circuitbreaker.FromConfig("events-"+configs.Events.Broker, configs.Breaker), zapLogger),
			retry.New(retry.FromConfig(configs.Retry), zapLogger),
		)
	}

	var collector *metrics.Collector
	if configs.Metrics.Enabled {
		collector = metrics.New("finance_storage")
	}

	// Initialize repository
	transactionRepo := repository.NewTransactionRepository(configs, postgresClient.GetDB())

	// Initialize gateways
	lockGW := gateway.NewLockGW(lock.NewManager(redisClient.GetClient(), configs.Lock, zapLogger))

	// Initialize usecase
	transactionUC := usecase.NewTransactionUC(configs, transactionRepo, lockGW, eventGW, collector)

	// Initialize handlers
	transactionHandler := handler.NewHandler(transactionUC, collector, configs.Metrics.Path)

	e := echo.New()
	e.HideBanner = true

	// panic recovery first so it also covers the other middlewares
	e.Use(middleware.PanicRecoveryWithZapMiddleware(zapLogger))
	e.Use(echomw.RequestID())
	e.Use(nrpkg.Middleware(nrApp))
	e.Use(logger.ZapEchoMiddleware(zapLogger))

	health.RegisterHealthEndpoints(e, appName, checkers)

	transactionHandler.RegisterRoutes(e, middleware.OkapiMiddleware(middleware.OkapiConfig{
		ServiceName:   appName,
		DefaultTenant: configs.Tenant.Default,
		Auth:          configs.Auth,
	}))

	srv := server.NewGracefulServer(e, zapLogger, configs.Server)
	for _, closeFn := range closers {
		srv.OnShutdown(closeFn)
	}
	srv.OnShutdown(func(context.Context) error { return redisClient.Close() })
	srv.OnShutdown(func(context.Context) error { return postgresClient.Close() })
	if nrApp != nil {
		srv.OnShutdown(func(context.Context) error {
			nrApp.Shutdown(10 * time.Second)
			return nil
		})
	}

	if err := srv.Start(); err != nil {
		zapLogger.Error("Server stopped with error", logger.Err(err))
	}
}

// initPublisher connects to the configured broker and returns the publisher
// with its readiness check and cleanup
func initPublisher(broker, natsURL, nsqAddress string, zapLogger *logger.ZapLogger) (gateway.Publisher, health.Checker, func(context.Context) error) {
	switch broker {
	case "nsq":
		producer, err := nsq.NewProducer(nsqAddress)
		if err != nil {
			zapLogger.Fatal("Failed to connect to NSQ", logger.Err(err))
		}
		return producer, producer, func(context.Context) error {
			producer.Stop()
			return nil
		}
	default:
		natsClient, err := nats.NewClient(natsURL)
		if err != nil {
			zapLogger.Fatal("Failed to connect to NATS with JetStream", logger.Err(err))
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := natsClient.EnsureStream(ctx, nats.DefaultStreamConfig(constants.StreamFinance, constants.SubjectFinanceAll)); err != nil {
			zapLogger.Fatal("Failed to ensure JetStream stream", logger.Err(err))
		}
		logger.Info("JetStream client initialized successfully",
			logger.String("url", natsURL),
			logger.String("stream", constants.StreamFinance))
		return natsClient, natsClient, func(context.Context) error {
			natsClient.Close()
			return nil
		}
	}
}
