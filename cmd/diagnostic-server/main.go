// cmd/diagnostic-server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"monpro-diagnostic/internal/common/aws"
	"monpro-diagnostic/internal/common/config"
	"monpro-diagnostic/internal/common/database"
	"monpro-diagnostic/internal/common/logger"
	"monpro-diagnostic/internal/common/observability"
	"monpro-diagnostic/internal/diagnostic/battlecard"
	"monpro-diagnostic/internal/diagnostic/cooldown"
	"monpro-diagnostic/internal/diagnostic/delivery"
	"monpro-diagnostic/internal/diagnostic/pipeline"
	"monpro-diagnostic/internal/server"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting diagnostic server...",
		zap.String("environment", cfg.App.Environment),
		zap.String("version", cfg.App.Version),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Cooldown store ---
	var cooldownStore cooldown.Store
	window := time.Duration(cfg.Cooldown.WindowDays) * 24 * time.Hour
	if window <= 0 {
		window = cooldown.DefaultWindow
	}

	var redisClient *database.RedisClient
	if cfg.Cooldown.Backend == "redis" {
		err = retryWithBackoff(func() error {
			var err error
			redisClient, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			return redisClient.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")
		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer redisClient.Close()
		cooldownStore = cooldown.NewRedisStore(redisClient.Client, window)
		zapLog.Info("Redis cooldown store connected")
	} else {
		cooldownStore = cooldown.NewMemoryStore(window)
		zapLog.Info("In-memory cooldown store selected")
	}

	// --- Delivery sinks ---
	var sinks []delivery.Sink

	if cfg.Database.Postgres.Host != "" {
		var pg *database.PostgresClient
		err = retryWithBackoff(func() error {
			var err error
			pg, err = database.NewPostgres(cfg.Database.Postgres)
			if err != nil {
				return err
			}
			return pg.Ping(ctx)
		}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
		if err != nil {
			zapLog.Fatal("postgres failed after retries", zap.Error(err))
		}
		defer pg.Close()

		vault := delivery.NewVaultSink(pg.GetDB(), log)
		if err := vault.EnsureSchema(ctx); err != nil {
			zapLog.Fatal("vault schema setup failed", zap.Error(err))
		}
		sinks = append(sinks, vault)
		zapLog.Info("PostgreSQL vault sink connected")
	} else {
		zapLog.Warn("PostgreSQL not configured, battlecards will not be persisted")
	}

	sinks = append(sinks, delivery.NewWebhookSink(cfg.Webhook, log))
	if cfg.Webhook.URL == "" {
		zapLog.Warn("Webhook URL not configured, PDF delivery disabled")
	}

	if cfg.Notifications.Email.Enabled || cfg.Notifications.SMS.Enabled {
		sesClient, err := aws.NewSESClient(ctx, cfg.Notifications.AWS.Region)
		if err != nil {
			zapLog.Fatal("SES client init failed", zap.Error(err))
		}
		snsClient, err := aws.NewSNSClient(ctx, cfg.Notifications.AWS.Region)
		if err != nil {
			zapLog.Fatal("SNS client init failed", zap.Error(err))
		}
		sinks = append(sinks, delivery.NewNotifierSink(cfg.Notifications, sesClient, snsClient, log))
		zapLog.Info("Admin notifier sink enabled")
	}

	if cfg.Database.Elasticsearch.Enabled {
		var esClient *database.ElasticsearchClient
		err = retryWithBackoff(func() error {
			var err error
			esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			return esClient.Ping()
		}, 15, 2*time.Second, zapLog, "Elasticsearch connection")
		if err != nil {
			zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
		}
		sinks = append(sinks, delivery.NewSearchSink(esClient.Client, cfg.Database.Elasticsearch.Index, log))
		zapLog.Info("Elasticsearch search sink connected")
	}

	// --- Background pipeline ---
	generator := battlecard.NewGenerator(battlecard.FromApp(cfg.LLM), log)
	fanout := delivery.NewFanout(log, sinks...)

	pipe := pipeline.New(pipeline.Config{
		Workers:    cfg.Pipeline.Workers,
		QueueSize:  cfg.Pipeline.QueueSize,
		DrainGrace: time.Duration(cfg.Pipeline.DrainGrace) * time.Millisecond,
	}, generator, fanout, obs, log)
	pipe.Start()

	// --- HTTP server ---
	handler := server.NewHandler(cooldownStore, pipe, log)
	router := server.NewRouter(handler, log)

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      http.MaxBytesHandler(router, cfg.Server.MaxRequestBody),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Millisecond,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Millisecond,
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("http server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, draining...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("http shutdown error", zap.Error(err))
	}

	// Accepted submissions already acknowledged to leads are processed
	// before exit.
	pipe.Stop()

	zapLog.Info("Diagnostic server stopped")
}
