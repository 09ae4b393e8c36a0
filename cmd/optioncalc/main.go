package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/optioncalc/internal/options/application"
	"github.com/wyfcoding/optioncalc/internal/options/domain"
	answercache "github.com/wyfcoding/optioncalc/internal/options/infrastructure/cache"
	"github.com/wyfcoding/optioncalc/internal/options/infrastructure/messaging"
	httphandler "github.com/wyfcoding/optioncalc/internal/options/interfaces/http"
	"github.com/wyfcoding/optioncalc/pkg/cache"
	"github.com/wyfcoding/optioncalc/pkg/config"
	"github.com/wyfcoding/optioncalc/pkg/logger"
	"github.com/wyfcoding/optioncalc/pkg/metrics"
	"github.com/wyfcoding/optioncalc/pkg/mq"
)

const BootstrapName = "optioncalc"

func main() {
	configPath := flag.String("config", "configs/optioncalc.toml", "path to the TOML config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", BootstrapName, err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if err := logger.Init(logger.Config{
		Level:      cfg.Logger.Level,
		Format:     cfg.Logger.Format,
		Output:     cfg.Logger.Output,
		FilePath:   cfg.Logger.FilePath,
		MaxSize:    cfg.Logger.MaxSize,
		MaxBackups: cfg.Logger.MaxBackups,
		MaxAge:     cfg.Logger.MaxAge,
		Compress:   cfg.Logger.Compress,
		WithCaller: cfg.Logger.WithCaller,
	}); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		m         *metrics.Metrics
		collector metrics.Collector = metrics.Nop{}
	)
	if cfg.Metrics.Enabled {
		m = metrics.New(cfg.ServiceName)
		collector = m
	}

	publisher, closePublisher := initPublisher(cfg)
	defer closePublisher()

	answers, closeCache, err := initCache(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeCache()

	svc := application.NewOptionsService(publisher, answers, collector)

	if cfg.Environment == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := httphandler.NewRouter(httphandler.NewOptionsHandler(svc), httphandler.RouterOptions{
		ServiceName: cfg.ServiceName,
		Version:     cfg.Version,
		Metrics:     m,
		MetricsPath: cfg.Metrics.Path,
		RateLimit:   cfg.RateLimit,
	})

	srv := &http.Server{
		Addr:         cfg.HTTP.Addr(),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeout) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info(ctx, "HTTP server listening", "service", cfg.ServiceName, "addr", srv.Addr, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info(context.Background(), "shutting down", "service", cfg.ServiceName)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownTimeout)*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}

// initPublisher kafka 未启用时返回 nil，事件不发布
func initPublisher(cfg *config.Config) (domain.EventPublisher, func()) {
	if !cfg.Kafka.Enabled {
		return nil, func() {}
	}
	producer := mq.NewProducer(mq.KafkaConfig{
		Brokers:      cfg.Kafka.Brokers,
		MaxRetries:   cfg.Kafka.MaxRetries,
		RetryBackoff: cfg.Kafka.RetryBackoff,
	})
	closeFn := func() {
		if err := producer.Close(); err != nil {
			logger.Error(context.Background(), "failed to close kafka producer", "error", err)
		}
	}
	return messaging.NewKafkaEventPublisher(producer, cfg.Kafka.Topic, cfg.ServiceName), closeFn
}

// initCache redis 未启用时返回 nil，不缓存计算结果
func initCache(ctx context.Context, cfg *config.Config) (domain.AnswerCache, func(), error) {
	if !cfg.Redis.Enabled {
		return nil, func() {}, nil
	}
	rc, err := cache.New(ctx, cache.Config{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		MaxPoolSize:  cfg.Redis.MaxPoolSize,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("init redis: %w", err)
	}
	closeFn := func() {
		if err := rc.Close(); err != nil {
			logger.Error(context.Background(), "failed to close redis", "error", err)
		}
	}
	return answercache.NewRedisAnswerCache(rc, cfg.Redis.KeyPrefix, cfg.Redis.TTLDuration()), closeFn, nil
}
