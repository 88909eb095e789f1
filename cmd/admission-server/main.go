package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/flowforge/diskgate/pkg/admission"
	"github.com/flowforge/diskgate/pkg/apiserver"
	"github.com/flowforge/diskgate/pkg/auth"
	"github.com/flowforge/diskgate/pkg/capacity"
	"github.com/flowforge/diskgate/pkg/category"
	"github.com/flowforge/diskgate/pkg/config"
	"github.com/flowforge/diskgate/pkg/eventbus"
	"github.com/flowforge/diskgate/pkg/logging"
	"github.com/flowforge/diskgate/pkg/metrics"
	"github.com/flowforge/diskgate/pkg/mountflag"
	redisclient "github.com/flowforge/diskgate/pkg/store/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	policy, err := admission.PolicyFromConfig(cfg.Admission)
	if err != nil {
		logger.Fatal("invalid admission config", zap.Error(err))
	}

	prober := capacity.TimeoutProber{Prober: capacity.StatfsProber{}, Timeout: cfg.Admission.ProbeTimeout}
	gate := admission.NewGate(prober, logger)
	registry := category.NewRegistry()

	var (
		store admission.CategoryStore
		bus   admission.Publisher
	)
	if cfg.Redis.Enabled() {
		redis, err := redisclient.NewClient(context.Background(), &cfg.Redis)
		if err != nil {
			logger.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer redis.Close()

		store = redis.Categories()
		bus = eventbus.NewBus(redis.Client())
	} else {
		logger.Info("redis not configured, categories kept in memory only")
	}

	ctrl := admission.NewController(gate, mountflag.StatfsChecker{}, registry, policy, store, bus, logger)
	if err := ctrl.RestoreCategories(context.Background()); err != nil {
		logger.Fatal("failed to restore categories", zap.Error(err))
	}

	if len(cfg.Admission.MonitoredPaths) > 0 {
		prometheus.MustRegister(metrics.NewCapacityCollector(prober, cfg.Admission.MonitoredPaths, logger))
	}

	var tokens *auth.TokenManager
	if cfg.Auth.JWTSecret != "" {
		tokens = auth.NewTokenManager([]byte(cfg.Auth.JWTSecret), cfg.Auth.TokenTTL)
	} else {
		logger.Warn("auth.jwt_secret not set, bearer tokens are not verified")
	}

	api := apiserver.NewServer(ctrl, prober, tokens, logger)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.HTTPPort),
		Handler:      api.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.ReadTimeout * 2,
	}

	go func() {
		logger.Info("starting admission server",
			zap.Int("port", cfg.Server.HTTPPort),
			zap.String("default_path", policy.DefaultPath),
			zap.Uint64("threshold_bytes", policy.Threshold),
			zap.Bool("capacity_supported", capacity.Supported),
			zap.Bool("mount_flags_supported", mountflag.Supported),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("admission server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down admission server")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("admission server forced to shutdown", zap.Error(err))
	}
}
