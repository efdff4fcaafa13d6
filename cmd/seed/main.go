// Command seed loads a YAML catalog into the storefront database.
//
//	go run ./cmd/seed -file catalog.yaml
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/utafrali/EcommerceGo/storefront/internal/config"
	"github.com/utafrali/EcommerceGo/storefront/internal/seed"
	"github.com/utafrali/EcommerceGo/storefront/migrations"
	"github.com/utafrali/EcommerceGo/storefront/pkg/database"
	"github.com/utafrali/EcommerceGo/storefront/pkg/logger"
)

func main() {
	file := flag.String("file", "catalog.yaml", "path of the YAML catalog")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall deadline")
	flag.Parse()

	cfg, err := config.Load(".env")
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	log := logger.New("storefront-seed", cfg.LogLevel)

	if err := run(cfg, *file, *timeout, log); err != nil {
		log.Error("seed failed", slog.String("file", *file), slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(cfg *config.Config, file string, timeout time.Duration, log *slog.Logger) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	ctx, cancelTimeout := context.WithTimeout(ctx, timeout)
	defer cancelTimeout()

	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	catalog, err := seed.Parse(f)
	if err != nil {
		return err
	}

	pool, err := database.NewPostgresPool(ctx, cfg.Postgres(), log)
	if err != nil {
		return err
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := database.RunMigrations(ctx, pool, migrations.FS, log); err != nil {
			return err
		}
	}

	_, err = seed.NewLoader(pool, log).Load(ctx, catalog)
	return err
}
