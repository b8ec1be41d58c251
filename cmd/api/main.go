package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/fuelmywork/fuelmywork-backend/api/routes"
	"github.com/fuelmywork/fuelmywork-backend/internal/creators"
	"github.com/fuelmywork/fuelmywork-backend/internal/payments"
	"github.com/fuelmywork/fuelmywork-backend/internal/support"
	"github.com/fuelmywork/fuelmywork-backend/pkg/config"
	"github.com/fuelmywork/fuelmywork-backend/pkg/db"
	"github.com/fuelmywork/fuelmywork-backend/pkg/logger"
	"github.com/fuelmywork/fuelmywork-backend/pkg/metrics"
	"github.com/fuelmywork/fuelmywork-backend/pkg/migrate"
	"github.com/fuelmywork/fuelmywork-backend/pkg/razorpay"
	"github.com/fuelmywork/fuelmywork-backend/pkg/redis"
	"github.com/fuelmywork/fuelmywork-backend/pkg/security"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	codec, err := security.NewCodec(cfg.Credentials)
	if err != nil {
		logg.Error(context.Background(), "failed to initialize credential codec", err)
		os.Exit(1)
	}
	if codec.Passthrough() {
		logg.Warn(context.Background(), "credential encryption disabled: gateway secrets stored as provided")
	}

	registry := prometheus.NewRegistry()
	paymentMetrics := metrics.NewPaymentMetrics(registry)

	gatewayClient, err := razorpay.NewClient(cfg.Gateway, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to initialize gateway client", err)
		os.Exit(1)
	}

	creatorsService, err := creators.NewService(creators.NewRepository(dbClient.DB()), codec)
	if err != nil {
		logg.Error(context.Background(), "failed to create creators service", err)
		os.Exit(1)
	}

	supportService, err := support.NewService(support.NewRepository(dbClient.DB()), paymentMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create support service", err)
		os.Exit(1)
	}

	paymentsService, err := payments.NewService(payments.ServiceParams{
		Creators: creatorsService,
		Ledger:   supportService,
		Gateway:  gatewayClient,
		Metrics:  paymentMetrics,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create payments service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.RouterParams{
			Config:          cfg,
			Logger:          logg,
			DB:              dbClient,
			Redis:           redisClient,
			MetricsRegistry: registry,
			Creators:        creatorsService,
			Support:         supportService,
			Payments:        paymentsService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
