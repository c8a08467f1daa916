package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"

	"github.com/darrylwest/service-uptime/internal/config"
	"github.com/darrylwest/service-uptime/internal/httpserver"
	"github.com/darrylwest/service-uptime/internal/httpserver/deps"
	"github.com/darrylwest/service-uptime/internal/logger"
	"github.com/darrylwest/service-uptime/internal/metrics"
	"github.com/darrylwest/service-uptime/internal/redis"
	"github.com/darrylwest/service-uptime/internal/scheduler"
	redisstore "github.com/darrylwest/service-uptime/internal/store/redis"
	"github.com/darrylwest/service-uptime/pkg/status"
	"github.com/darrylwest/service-uptime/pkg/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	status      status.ServiceStatus
	server      *httpserver.Server
	redisClient *goredis.Client
	reporter    *scheduler.Reporter
}

func New() (*App, error) {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog).
		With(logger.String("service", cfg.ServiceName), logger.String("instance_id", cfg.InstanceID))

	// The status starts here: uptime is measured from process initialization.
	st := status.Create()

	d := deps.Deps{
		Logger:       loggerClient,
		Status:       st,
		ServiceName:  cfg.ServiceName,
		InstanceID:   cfg.InstanceID,
		Version:      version.Version,
		Commit:       version.Commit,
		BuildDate:    version.BuildDate,
		GoVersion:    version.GoVersion,
		AllowedCIDRS: cfg.AllowedCIDRS,
		AllowedHosts: cfg.AllowedHosts,
		TrustProxy:   cfg.TrustProxy,
		RateLimit: deps.RateLimit{
			Burst:     cfg.RateLimitBurst,
			PerMinute: cfg.RateLimitPerMinute,
		},
	}

	// Optional snapshot store - fail fast if configured but unreachable
	var (
		redisClient *goredis.Client
		publisher   scheduler.SnapshotPublisher
	)
	if cfg.RedisEnabled() {
		var err error
		redisClient, err = redis.New(context.Background(), redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			RedisDB:        cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, loggerClient)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		store := redisstore.NewStore(redisClient)
		publisher = store
		d.Store = store
	} else {
		loggerClient.Info("redis not configured, snapshot publishing disabled")
	}

	if cfg.MetricsEnabled {
		reg, err := metrics.NewRegistry(metrics.NewStatusCollector(st, metrics.DefaultNamespace, cfg.ServiceName))
		if err != nil {
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
		d.Metrics = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	}

	reporter := scheduler.NewReporter(st, publisher, loggerClient, cfg.InstanceID, cfg.ReportInterval)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		status:      st,
		server:      httpserver.New(cfg, loggerClient, d),
		redisClient: redisClient,
		reporter:    reporter,
	}, nil
}

// Handler exposes the HTTP handler, mainly for tests.
func (a *App) Handler() http.Handler {
	return a.server.Handler()
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting statusd %s on %s", version.String(), a.cfg.ListenPort)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.reporter.Start(ctx); err != nil {
		return fmt.Errorf("failed to start status reporter: %w", err)
	}
	a.logger.Info("status reporter started",
		logger.Duration("interval", a.cfg.ReportInterval))

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case runErr = <-errCh:
		a.status.Errors.Incr()
	}

	a.reporter.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil && runErr == nil {
		runErr = fmt.Errorf("failed to stop server: %w", err)
	}

	if err := a.reporter.Retire(shutdownCtx); err != nil {
		a.logger.Warn("failed to retire snapshot", logger.Error(err))
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}

	a.logger.Info("✅ statusd stopped", logger.Stringer("final_status", a.status))
	_ = a.logger.Sync()
	return runErr
}
