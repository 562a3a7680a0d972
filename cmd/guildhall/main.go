// Package main provides the guildhall binary: the character and guild HTTP
// API, its schema migrations, and roster seeding.
//
// Usage:
//
//	guildhall [serve] [-config path]
//	guildhall migrate [-config path] [-direction up|down] [-steps n]
//	guildhall seed [-config path] -file roster.yaml
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/guildhall/internal/config"
	"github.com/cory-johannsen/guildhall/internal/observability"
	"github.com/cory-johannsen/guildhall/internal/seed"
	"github.com/cory-johannsen/guildhall/internal/storage/postgres"
)

const defaultConfigPath = "configs/dev.yaml"

func main() {
	cmd, args := "serve", os.Args[1:]
	if len(args) > 0 && args[0] != "" && args[0][0] != '-' {
		cmd, args = args[0], args[1:]
	}

	var err error
	switch cmd {
	case "serve":
		err = runServe(args)
	case "migrate":
		err = runMigrate(args)
	case "seed":
		err = runSeed(args)
	default:
		err = fmt.Errorf("unknown command %q: must be serve, migrate, or seed", cmd)
	}
	if err != nil {
		log.Fatalf("%s: %v", cmd, err)
	}
}

// setup loads configuration and builds the logger.
func setup(configPath string) (config.Config, *zap.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("loading config: %w", err)
	}
	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("initializing logger: %w", err)
	}
	return cfg, logger, nil
}

func runServe(args []string) error {
	start := time.Now()
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "path to configuration file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, logger, err := setup(*configPath)
	if err != nil {
		return err
	}
	defer logger.Sync()

	logger.Info("starting guildhall",
		zap.String("http_addr", cfg.HTTP.Addr()),
		zap.String("cache_backend", cfg.Cache.Backend),
	)

	app, cleanup, err := initializeApp(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("initializing application", zap.Error(err))
		return err
	}
	defer cleanup()

	logger.Info("guildhall ready", zap.Duration("startup", time.Since(start)))
	return app.Lifecycle.Run(context.Background())
}

func runMigrate(args []string) error {
	start := time.Now()
	fs := flag.NewFlagSet("migrate", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "path to configuration file")
	direction := fs.String("direction", "up", "migration direction: up or down")
	steps := fs.Int("steps", 0, "number of steps (0 = all)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *steps < 0 {
		return fmt.Errorf("invalid steps %d: must not be negative", *steps)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	dsn := cfg.Database.DSN()

	var res postgres.MigrationResult
	switch {
	case *direction == "up":
		res, err = postgres.Migrate(dsn, *steps)
	case *direction == "down" && *steps > 0:
		res, err = postgres.Migrate(dsn, -*steps)
	case *direction == "down":
		res, err = postgres.MigrateDown(dsn)
	default:
		return fmt.Errorf("invalid direction %q: must be 'up' or 'down'", *direction)
	}
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	elapsed := time.Since(start)
	if !res.Changed {
		fmt.Fprintf(os.Stdout, "no changes (version=%d dirty=%v) [%s]\n", res.Version, res.Dirty, elapsed)
	} else {
		fmt.Fprintf(os.Stdout, "migrated %s to version=%d dirty=%v [%s]\n", *direction, res.Version, res.Dirty, elapsed)
	}
	return nil
}

func runSeed(args []string) error {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "path to configuration file")
	file := fs.String("file", "configs/roster.yaml", "path to roster YAML file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	roster, err := seed.Load(*file)
	if err != nil {
		return err
	}
	cfg, logger, err := setup(*configPath)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx := context.Background()
	svcs, cleanup, err := initializeServices(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	res, err := seed.Apply(ctx, roster, svcs.Characters, svcs.Guilds, logger)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "seeded %d guilds, %d characters, %d memberships (%d skipped)\n",
		res.GuildsCreated, res.CharactersCreated, res.Memberships, res.Skipped)
	return nil
}
