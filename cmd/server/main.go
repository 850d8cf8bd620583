package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/roamio/globetrotter/internal/config"
	"github.com/roamio/globetrotter/internal/database"
	"github.com/roamio/globetrotter/internal/migrations"
	"github.com/roamio/globetrotter/internal/server"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	// --- SQLite ---
	db, err := database.Open(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("connecting to sqlite: %w", err)
	}
	defer db.Close()

	if err := migrations.Run(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	logger.Info("connected to sqlite", "path", cfg.DBPath)

	store := server.NewSQLiteStore(db)

	if err := server.SeedCatalog(ctx, logger, store); err != nil {
		return fmt.Errorf("seeding catalog: %w", err)
	}
	if err := server.SeedAdmin(ctx, logger, store, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		return fmt.Errorf("seeding admin: %w", err)
	}

	checks := map[string]server.Checker{
		"sqlite": dbChecker{db},
	}

	// --- Redis (optional catalog cache) ---
	var catalog server.Catalog = store
	if cfg.RedisURL != "" {
		rdb, err := openRedis(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}
		defer rdb.Close()
		logger.Info("connected to redis, catalog cache enabled", "ttl", cfg.CatalogTTL)

		catalog = server.NewCachedCatalog(rdb, store, cfg.CatalogTTL)
		checks["redis"] = redisChecker{rdb}
	}

	// --- HTTP Server ---
	srv := server.New(cfg.HTTPAddr, logger, server.Deps{
		Store:   store,
		Admin:   store,
		Catalog: catalog,
		Checks:  checks,
	})

	// --- Run ---
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting http server", "addr", cfg.HTTPAddr)
		return srv.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")
		return srv.Shutdown(context.Background())
	})

	return g.Wait()
}

func openRedis(ctx context.Context, rawURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}
	return rdb, nil
}

// dbChecker adapts *sql.DB to server.Checker.
type dbChecker struct{ db *sql.DB }

func (d dbChecker) Check(ctx context.Context) error { return d.db.PingContext(ctx) }

// redisChecker adapts *redis.Client to server.Checker.
type redisChecker struct{ client *redis.Client }

func (r redisChecker) Check(ctx context.Context) error { return r.client.Ping(ctx).Err() }
