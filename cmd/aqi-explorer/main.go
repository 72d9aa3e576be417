package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	"github.com/i474232898/aqi-explorer/internal/airquality"
	"github.com/i474232898/aqi-explorer/internal/airquality/sources"
	httpapi "github.com/i474232898/aqi-explorer/internal/api/http"
	"github.com/i474232898/aqi-explorer/internal/config"
	"github.com/i474232898/aqi-explorer/internal/scheduler"
	"github.com/i474232898/aqi-explorer/internal/store"
)

func main() {
	// Load configuration; this also reads .env when present.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Derived-series cache: Redis when configured and reachable, memory otherwise.
	cache := newCache(cfg)

	// Sources in priority order; the built-in sample is the last resort.
	var srcs []airquality.Source
	if cfg.DatabaseURL != "" {
		pg := sources.NewPostgresSource(cfg.DatabaseURL, cfg.DatabaseTable, sources.DefaultBackoff)
		defer pg.Close()
		srcs = append(srcs, pg)
	}
	srcs = append(srcs, sources.NewCSVSource(cfg.DataCSVPath, sources.DefaultBackoff))

	service := airquality.NewService(cache, srcs, sources.SampleRecords())

	loadCtx, cancelLoad := context.WithTimeout(context.Background(), cfg.LoadTimeout)
	err = service.Reload(loadCtx)
	cancelLoad()
	if err != nil {
		log.Fatalf("failed to load dataset: %v", err)
	}

	sessions := store.NewSessionStore(cfg.Layout.NewController)

	// Scheduler that periodically reloads data and drops idle sessions.
	sched := scheduler.New(scheduler.Config{
		ReloadInterval: cfg.ReloadInterval,
		LoadTimeout:    cfg.LoadTimeout,
		SessionIdle:    cfg.SessionIdleTimeout,
	}, service, sessions)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "aqi-explorer",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler:          httpapi.ErrorHandler,
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		ds := service.Dataset()
		return c.JSON(fiber.Map{
			"status":     "ok",
			"service":    "aqi-explorer",
			"source":     ds.Source(),
			"rows":       ds.Len(),
			"skipped":    ds.Skipped(),
			"generation": service.Generation(),
			"sessions":   sessions.Len(),
		})
	})

	httpapi.RegisterRoutes(app, service, sessions, cfg.Layout)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}

func newCache(cfg *config.AppConfig) airquality.Cache {
	if cfg.RedisAddr == "" {
		return store.NewMemoryCache(cfg.CacheMaxEntries, cfg.CacheMaxAge)
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("ERROR: redis %s unreachable, using in-memory cache: %v", cfg.RedisAddr, err)
		client.Close()
		return store.NewMemoryCache(cfg.CacheMaxEntries, cfg.CacheMaxAge)
	}

	log.Printf("INFO: caching derived series in redis at %s", cfg.RedisAddr)
	return store.NewRedisCache(client, cfg.CacheMaxAge)
}
