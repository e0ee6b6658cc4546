// Command migrate applies or inspects the embedded database migrations.
//
// Usage:
//
//	migrate [up|down|status]
//
// The default command is "up". Requires the same configuration as the server
// (CONFIG_PATH or DATABASE_DSN and AUTH_JWT_SECRET).
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/cvo-backend/internal/adapter/postgres"
	"github.com/heartmarshall/cvo-backend/internal/app"
	"github.com/heartmarshall/cvo-backend/internal/config"
	"github.com/heartmarshall/cvo-backend/migrations"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: migrate [up|down|status]")
	}
	flag.Parse()

	command := "up"
	if flag.NArg() > 0 {
		command = flag.Arg(0)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	if err := run(ctx, command, pool, logger); err != nil {
		logger.Error("migrate failed", slog.String("command", command), slog.String("error", err.Error()))
		pool.Close()
		os.Exit(1)
	}
}

func run(ctx context.Context, command string, pool *pgxpool.Pool, logger *slog.Logger) error {
	switch command {
	case "up":
		return postgres.Migrate(ctx, pool, migrations.FS, logger)
	case "down", "status":
	default:
		flag.Usage()
		return fmt.Errorf("unknown command %q", command)
	}

	provider, closeDB, err := postgres.NewMigrator(pool, migrations.FS)
	if err != nil {
		return err
	}
	defer func() { _ = closeDB() }()

	if command == "down" {
		res, err := provider.Down(ctx)
		if err != nil {
			return fmt.Errorf("goose down: %w", err)
		}
		logger.Info("migration rolled back",
			slog.Int64("version", res.Source.Version),
			slog.Duration("duration", res.Duration),
		)
		return nil
	}

	statuses, err := provider.Status(ctx)
	if err != nil {
		return fmt.Errorf("goose status: %w", err)
	}
	for _, s := range statuses {
		applied := "pending"
		if !s.AppliedAt.IsZero() {
			applied = s.AppliedAt.Format(time.RFC3339)
		}
		fmt.Printf("%05d  %-8s  %s\n", s.Source.Version, s.State, applied)
	}
	return nil
}
