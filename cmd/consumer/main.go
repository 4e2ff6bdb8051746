package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/max3tmk/ImageGallery/activity/internal/api"
	"github.com/max3tmk/ImageGallery/activity/internal/application/factories/infrastructure"
	"github.com/max3tmk/ImageGallery/activity/internal/config"
	"github.com/max3tmk/ImageGallery/activity/internal/consumer"
	"github.com/max3tmk/ImageGallery/activity/internal/logger"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	if err := logger.Init(cfg.Log.Level); err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	infraFactory := infrastructure.NewFactory(cfg, logger.Named("infrastructure"))
	defer func() {
		closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer closeCancel()
		infraFactory.Close(closeCtx)
	}()

	stores, err := infraFactory.Stores(ctx)
	if err != nil {
		logger.Fatal("failed to open store", zap.String("backend", cfg.Store.Backend), zap.Error(err))
	}

	// Ops server
	srv := &http.Server{
		Addr:              ":" + cfg.HTTP.Port,
		Handler:           api.NewRouter(infraFactory),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info("Ops server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("ops server failed", zap.Error(err))
		}
	}()

	activityConsumer := consumer.NewActivityConsumer(stores.Likes, stores.Comments, logger.Named("activity-consumer"))
	bindings := activityConsumer.Bindings(cfg.Kafka.LikeTopic, cfg.Kafka.CommentTopic, cfg.Kafka.GroupID)

	listener := consumer.NewListener(func(topic, groupID string) consumer.MessageSource {
		return infraFactory.NewReader(topic, groupID)
	}, cfg.Kafka.Concurrency, logger.Named("listener"))

	logger.Info("Activity Consumer Started",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("group_id", cfg.Kafka.GroupID),
		zap.Strings("topics", []string{cfg.Kafka.LikeTopic, cfg.Kafka.CommentTopic}),
		zap.Int("concurrency", cfg.Kafka.Concurrency),
	)

	if err := listener.Run(ctx, bindings...); err != nil {
		logger.Error("listener stopped with error", zap.Error(err))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("error during ops server shutdown", zap.Error(err))
	}

	logger.Info("consumer exited")
}
