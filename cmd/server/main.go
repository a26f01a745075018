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
	"github.com/redis/go-redis/v9"

	"github.com/alexmorbo/slackhook/application/usecase"
	"github.com/alexmorbo/slackhook/infrastructure/config"
	"github.com/alexmorbo/slackhook/infrastructure/valkey"
	"github.com/alexmorbo/slackhook/infrastructure/webhook"
	httpInterface "github.com/alexmorbo/slackhook/interface/http"
	"github.com/alexmorbo/slackhook/interface/http/handler"
	"github.com/alexmorbo/slackhook/pkg/logger"
)

func main() {
	log := logger.New("info")
	slog.SetDefault(log)

	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	log = logger.New(cfg.Server.LogLevel)
	slog.SetDefault(log)

	fileCfg, err := config.LoadFromFile(cfg.ConfigPath)
	if err != nil {
		log.Error("failed to load file config", "error", err)
		os.Exit(1)
	}
	cfg.ApplyFileConfig(fileCfg)

	log.Info("starting slackhook", "addr", cfg.Server.Addr(), "webhook_timeout", cfg.Webhook.Timeout.String())

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		cancel()
		log.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	cancel()
	log.Info("connected to valkey", "addr", cfg.Redis.Addr)

	deliveryRepo := valkey.NewDeliveryRepository(redisClient, cfg.Delivery.TTL, log.With("component", "valkey"))

	webhookClient := webhook.NewClient(cfg.Webhook.URL, fileCfg.ClientAttributes(), log.With("component", "webhook_client"))
	webhookClient.SetHTTPClient(&http.Client{
		Timeout: cfg.Webhook.Timeout,
		Transport: &http.Transport{
			MaxIdleConns:        20,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	})

	relayUC := usecase.NewRelayMessageUseCase(
		webhookClient,
		deliveryRepo,
		fileCfg,
		log.With("component", "relay_message_usecase"),
	)

	messageHandler := handler.NewMessageHandler(relayUC, log.With("component", "message_handler"))
	healthHandler := handler.NewHealthHandler(deliveryRepo)

	gin.SetMode(gin.ReleaseMode)
	router := httpInterface.NewRouter(log, messageHandler, healthHandler)

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      cfg.Webhook.Timeout + 30*time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	log.Info("server started", "addr", cfg.Server.Addr())

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Error("server error", "error", err)
	case <-quit:
		log.Info("shutting down...")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
	}

	if err := redisClient.Close(); err != nil {
		log.Error("failed to close redis client", "error", err)
	}

	log.Info("server stopped")
}
