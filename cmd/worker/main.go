package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"subpipe/internal/adapters/audio/ffmpeg"
	"subpipe/internal/adapters/eventbroker/nats"
	kvredis "subpipe/internal/adapters/keyvalue/redis"
	"subpipe/internal/adapters/repository/postgres"
	"subpipe/internal/adapters/storage/minio"
	"subpipe/internal/adapters/transcriber/whisper"
	"subpipe/internal/config"
	"subpipe/internal/core/service/accessor"
	"subpipe/internal/core/service/cache"
	"subpipe/internal/core/service/dedup"
	"subpipe/internal/core/service/jobqueue"
	"subpipe/internal/core/service/lock"
	"subpipe/internal/core/service/media"
	"subpipe/internal/core/service/pipeline"
	"subpipe/internal/core/service/storageevent"

	"github.com/robfig/cron/v3"
)

func main() {

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := postgres.Connect(ctx, cfg.Database)
	if err != nil {
		logger.Error("failed to init database", "error", err)
		os.Exit(1)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}(db)
	logger.Info("db connection established")

	kv, err := kvredis.NewAdapter(ctx, cfg.Redis, logger)
	if err != nil {
		logger.Error("failed to init redis", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := kv.Close(); err != nil {
			logger.Error("failed to close redis", "error", err)
		}
	}()

	minioAdapter, err := minio.NewAdapter(ctx, cfg.Minio, logger)
	if err != nil {
		logger.Error("failed to init minio", "error", err)
		os.Exit(1)
	}
	logger.Info("minio adapter initialized")

	extractor, err := ffmpeg.NewAdapter(cfg.Audio, logger)
	if err != nil {
		logger.Error("failed to init audio extractor", "error", err)
		os.Exit(1)
	}
	transcriber := whisper.NewAdapter(cfg.Transcriber, logger)

	mediaRepo := postgres.NewSQLMediaRepository(db)
	subtitleRepo := postgres.NewSQLSubtitleRepository(db)

	metadataCache := cache.New(kv, cfg.Cache, logger)
	locker := lock.New(kv, cfg.Lock, logger)
	acc := accessor.New(metadataCache, locker, cfg.Lock, logger)

	dedupStore := dedup.New(kv, mediaRepo, minioAdapter, cfg.Cache, logger)
	queue := jobqueue.New(kv, kv, cfg.Jobs, logger)

	mediaService := media.NewMediaService(mediaRepo, minioAdapter, dedupStore, acc, metadataCache, cfg.Upload, cfg.Cache, logger)
	eventService := storageevent.NewStorageEventService(minioAdapter, mediaRepo, mediaService, logger)

	// Upload finalization rides on bucket notifications
	natsConsumer, err := nats.NewNATSConsumer(cfg.NATS, logger)
	if err != nil {
		logger.Error("failed to create NATS consumer", "error", err)
		os.Exit(1)
	}
	if err := natsConsumer.Subscribe(ctx, eventService); err != nil {
		logger.Error("failed to subscribe to NATS", "error", err)
		os.Exit(1)
	}
	logger.Info("NATS subscription active")

	// Periodic dedup sweep drops stale fingerprints
	scheduler := cron.New()
	_, err = scheduler.AddFunc(cfg.Jobs.SweepSchedule, func() {
		if _, sweepErr := dedupStore.Sweep(ctx); sweepErr != nil {
			logger.Error("dedup sweep failed", "error", sweepErr)
		}
	})
	if err != nil {
		logger.Error("failed to schedule dedup sweep", "error", err)
		os.Exit(1)
	}
	scheduler.Start()

	pipe := pipeline.New(mediaRepo, subtitleRepo, minioAdapter, extractor, transcriber, dedupStore, metadataCache, cfg.Jobs.WorkDir, logger)

	logger.Info("starting workers", "count", cfg.Jobs.Workers)
	if err := queue.RunWorkers(ctx, pipe); err != nil {
		logger.Error("worker pool stopped with error", "error", err)
	}

	logger.Info("gracefully shutting down worker")

	cronCtx := scheduler.Stop()
	select {
	case <-cronCtx.Done():
	case <-time.After(10 * time.Second):
		logger.Info("sweep shutdown timeout exceeded")
	}

	if err := natsConsumer.Close(); err != nil {
		logger.Error("failed to close NATS consumer during shutdown", "error", err)
	}

	logger.Info("worker shutdown complete")
}
