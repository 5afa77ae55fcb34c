package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/hszk-dev/gocatalog/internal/api/handler"
	"github.com/hszk-dev/gocatalog/internal/api/middleware"
	"github.com/hszk-dev/gocatalog/internal/config"
	"github.com/hszk-dev/gocatalog/internal/domain/model"
	"github.com/hszk-dev/gocatalog/internal/infrastructure/cache"
	"github.com/hszk-dev/gocatalog/internal/infrastructure/events"
	"github.com/hszk-dev/gocatalog/internal/infrastructure/postgres"
	"github.com/hszk-dev/gocatalog/internal/infrastructure/queue"
	"github.com/hszk-dev/gocatalog/internal/infrastructure/storage"
	"github.com/hszk-dev/gocatalog/internal/usecase"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Initialize infrastructure clients
	pgClient, err := postgres.NewClient(ctx, postgres.DefaultClientConfig(cfg.Database.DSN()))
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	defer pgClient.Close()
	logger.Info("connected to PostgreSQL")

	storageClient, err := storage.NewClient(ctx, storage.ClientConfig{
		Endpoint:  cfg.MinIO.Endpoint,
		AccessKey: cfg.MinIO.AccessKey,
		SecretKey: cfg.MinIO.SecretKey,
		Bucket:    cfg.MinIO.Bucket,
		UseSSL:    cfg.MinIO.UseSSL,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to MinIO: %w", err)
	}
	logger.Info("connected to MinIO")

	queueClient, err := queue.NewClient(ctx, queue.DefaultClientConfig(cfg.RabbitMQ.URL()))
	if err != nil {
		return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	defer queueClient.Close()
	logger.Info("connected to RabbitMQ")

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	logger.Info("connected to Redis")

	// Domain event dispatch: media-uploaded events go out to the broker
	// before the owning transaction commits.
	registry := events.NewRegistry()
	registry.Register(model.EventKindVideoMediaUploaded, events.NewMediaUploadedForwarder(queueClient))

	// Repositories and services
	pool := pgClient.Pool()
	videoRepo := postgres.NewVideoRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	genreRepo := postgres.NewGenreRepository(pool)
	castMemberRepo := postgres.NewCastMemberRepository(pool)
	uowFactory := postgres.NewUnitOfWorkFactory(pool, registry)

	videoCache := cache.NewRedisVideoCache(redisClient)

	videoSvc := usecase.NewCachedVideoService(
		usecase.NewVideoService(videoRepo, categoryRepo, genreRepo, castMemberRepo, storageClient, uowFactory),
		videoCache,
		usecase.CachedVideoServiceConfig{CacheTTL: cfg.Cache.TTL},
	)
	categorySvc := usecase.NewCategoryService(categoryRepo)
	genreSvc := usecase.NewGenreService(genreRepo, categoryRepo)
	castMemberSvc := usecase.NewCastMemberService(castMemberRepo)

	r := setupRouter(logger, routerDeps{
		video:      handler.NewVideoHandler(videoSvc, cfg.Server.DownloadExpiry),
		category:   handler.NewCategoryHandler(categorySvc),
		genre:      handler.NewGenreHandler(genreSvc),
		castMember: handler.NewCastMemberHandler(castMemberSvc),
		health: handler.NewHealthHandler(map[string]handler.Pinger{
			"postgres": handler.PingerFunc(pgClient.Ping),
			"minio":    storageClient,
			"redis": handler.PingerFunc(func(ctx context.Context) error {
				return redisClient.Ping(ctx).Err()
			}),
		}),
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("server error: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("shutting down server", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

type routerDeps struct {
	video      *handler.VideoHandler
	category   *handler.CategoryHandler
	genre      *handler.GenreHandler
	castMember *handler.CastMemberHandler
	health     *handler.HealthHandler
}

func setupRouter(logger *slog.Logger, deps routerDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))

	r.Get("/health", deps.health.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Route("/videos", func(r chi.Router) {
			r.Post("/", deps.video.Create)
			r.Get("/", deps.video.List)
			r.Get("/{id}", deps.video.Get)
			r.Put("/{id}", deps.video.Update)
			r.Delete("/{id}", deps.video.Delete)
			r.Post("/{id}/medias", deps.video.UploadMedias)
			r.Get("/{id}/medias/{field}/download", deps.video.Download)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Post("/", deps.category.Create)
			r.Get("/", deps.category.List)
			r.Get("/{id}", deps.category.Get)
			r.Delete("/{id}", deps.category.Delete)
		})

		r.Route("/genres", func(r chi.Router) {
			r.Post("/", deps.genre.Create)
			r.Get("/", deps.genre.List)
			r.Get("/{id}", deps.genre.Get)
			r.Delete("/{id}", deps.genre.Delete)
		})

		r.Route("/cast-members", func(r chi.Router) {
			r.Post("/", deps.castMember.Create)
			r.Get("/", deps.castMember.List)
			r.Get("/{id}", deps.castMember.Get)
			r.Delete("/{id}", deps.castMember.Delete)
		})
	})

	return r
}
