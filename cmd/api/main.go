package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/nrehman/cart-service/internal/config"
	httphandler "github.com/nrehman/cart-service/internal/delivery/http"
	"github.com/nrehman/cart-service/internal/delivery/kafka"
	"github.com/nrehman/cart-service/internal/logger"
	"github.com/nrehman/cart-service/internal/repository"
	"github.com/nrehman/cart-service/internal/session"
	"github.com/nrehman/cart-service/internal/usecase"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		bootLog := zerolog.New(os.Stderr)
		bootLog.Fatal().Err(err).Msg("failed to load config")
	}

	log := logger.New(logger.Options{
		ServiceName: "cart-api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Console:     cfg.App.IsDev(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	catalog, closeCatalog, err := buildCatalog(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build catalog")
	}
	defer closeCatalog()

	sessions, closeSessions, err := buildSessionStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build session store")
	}
	defer closeSessions()

	var events usecase.EventPublisher = kafka.NewNoopPublisher()
	var kafkaClient *kgo.Client
	if cfg.Kafka.Enabled {
		kafkaClient, err = kgo.NewClient(
			kgo.SeedBrokers(cfg.Kafka.BrokerList()...),
			kgo.ClientID(cfg.Kafka.ClientID),
		)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create kafka client")
		}
		if err := kafka.EnsureTopics(ctx, kafkaClient, cfg.Kafka); err != nil {
			log.Warn().Err(err).Msg("failed to ensure topics")
		}
		events = kafka.NewPublisher(kafkaClient)
	}

	service := usecase.NewCartService(catalog, sessions, events, log)
	handler := httphandler.NewHandler(service)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	handler.Routes(r)

	srv := &http.Server{
		Addr:    ":" + cfg.App.Port,
		Handler: r,
	}

	wg := sync.WaitGroup{}
	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Info().Str("port", cfg.App.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown error")
	}

	if kafkaClient != nil {
		kafkaClient.Close()
	}

	wg.Wait()
	log.Info().Msg("shutdown complete")
}

func buildCatalog(ctx context.Context, cfg *config.Config, log zerolog.Logger) (repository.Catalog, func(), error) {
	switch cfg.Catalog.Backend {
	case config.CatalogBackendPostgres:
		pool, err := pgxpool.New(ctx, cfg.DB.DSN())
		if err != nil {
			return nil, nil, fmt.Errorf("unable to create connection pool: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("unable to ping database: %w", err)
		}
		if err := repository.RunMigrations(ctx, pool, cfg.DB.MigrationsDir, log); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return repository.NewPostgresCatalog(pool), pool.Close, nil
	case config.CatalogBackendStatic:
		return repository.NewStaticCatalog(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown catalog backend %q", cfg.Catalog.Backend)
	}
}

func buildSessionStore(ctx context.Context, cfg *config.Config) (session.Store, func(), error) {
	switch cfg.Session.Backend {
	case config.SessionBackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("unable to ping redis: %w", err)
		}
		return session.NewRedisStore(client, cfg.Session.TTL), func() { client.Close() }, nil
	case config.SessionBackendMemory:
		return session.NewMemoryStore(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown session backend %q", cfg.Session.Backend)
	}
}
