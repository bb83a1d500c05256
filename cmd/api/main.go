package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"subpipe/internal/adapters/handlers/http/chi"
	media2 "subpipe/internal/adapters/handlers/http/chi/v1/media"
	subtitle2 "subpipe/internal/adapters/handlers/http/chi/v1/subtitle"
	kvredis "subpipe/internal/adapters/keyvalue/redis"
	"subpipe/internal/adapters/repository/postgres"
	"subpipe/internal/adapters/storage/minio"
	"subpipe/internal/config"
	"subpipe/internal/core/service/accessor"
	"subpipe/internal/core/service/cache"
	"subpipe/internal/core/service/dedup"
	"subpipe/internal/core/service/jobqueue"
	"subpipe/internal/core/service/lock"
	"subpipe/internal/core/service/media"
	"subpipe/internal/core/service/subtitle"
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

	//key-value backend
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

	//storage
	minioAdapter, err := minio.NewAdapter(ctx, cfg.Minio, logger)
	if err != nil {
		logger.Error("failed to init minio", "error", err)
		os.Exit(1)
	}

	//repositories
	mediaRepo := postgres.NewSQLMediaRepository(db)
	subtitleRepo := postgres.NewSQLSubtitleRepository(db)

	//read-through cache plumbing
	metadataCache := cache.New(kv, cfg.Cache, logger)
	locker := lock.New(kv, cfg.Lock, logger)
	acc := accessor.New(metadataCache, locker, cfg.Lock, logger)

	dedupStore := dedup.New(kv, mediaRepo, minioAdapter, cfg.Cache, logger)
	queue := jobqueue.New(kv, kv, cfg.Jobs, logger)

	mediaService := media.NewMediaService(mediaRepo, minioAdapter, dedupStore, acc, metadataCache, cfg.Upload, cfg.Cache, logger)
	subtitleService := subtitle.NewSubtitleService(subtitleRepo, mediaRepo, minioAdapter, queue, acc, metadataCache, cfg.Cache, logger)

	//http
	mediaHandler := media2.NewMediaHandlerV1(mediaService, logger)
	subtitleHandler := subtitle2.NewSubtitleHandlerV1(subtitleService, logger)

	router := chi.NewRouter(logger, mediaHandler, subtitleHandler, cfg.Env.Env)
	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler: router,
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.Info("starting server", "host", cfg.Server.Host, "port", cfg.Server.Port)
		servErr := server.ListenAndServe()
		if servErr != nil && !errors.Is(servErr, http.ErrServerClosed) {
			logger.Error("failed to start server", "error", servErr)
			stop()
		}
	}()

	//wait for context cancel
	<-ctx.Done()
	logger.Info("gracefully shutting down app")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shutdown server", "error", err)
	} else {
		logger.Info("server gracefully shutdown complete")
	}

	wg.Wait()
	logger.Info("app shutdown complete")
}
