package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"loginflow/config"
	logs "loginflow/internal/infra/log"
	"loginflow/internal/infra/persistence/migrations"

	"github.com/pkg/errors"
	pgLib "github.com/slighter12/go-lib/database/postgres"
)

// Supported subcommands:
// - up:      Apply all pending migrations
// - down:    Roll back migrations
// - version: Print the applied version

type migrator interface {
	Up() error
	Down(n int) error
	Version() (uint, bool, error)
}

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(1)
	}

	manager, closeDB, err := openManager()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	err = run(os.Args[1:], manager, os.Stdout)
	closeDB()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func openManager() (*migrations.Manager, func(), error) {
	cfg, err := config.New()
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to load config")
	}
	if cfg.Postgres == nil {
		return nil, nil, errors.New("postgres configuration is required")
	}

	logger, err := logs.New(logs.Params{Config: cfg})
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to create logger")
	}

	db, err := pgLib.New(cfg.Postgres)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to connect to PostgreSQL")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to get PostgreSQL sql.DB")
	}

	return migrations.NewManager(sqlDB, logger), func() { _ = sqlDB.Close() }, nil
}

func run(args []string, m migrator, out io.Writer) error {
	if len(args) == 0 {
		printUsage(out)

		return errors.New("missing subcommand")
	}

	switch args[0] {
	case "up":
		upCmd := flag.NewFlagSet("up", flag.ContinueOnError)
		if err := upCmd.Parse(args[1:]); err != nil {
			return errors.Wrap(err, "failed to parse up flags")
		}

		return m.Up()

	case "down":
		downCmd := flag.NewFlagSet("down", flag.ContinueOnError)
		steps := downCmd.Int("steps", 1, "Number of migrations to roll back (0 rolls back everything)")
		if err := downCmd.Parse(args[1:]); err != nil {
			return errors.Wrap(err, "failed to parse down flags")
		}
		if *steps < 0 {
			return errors.New("steps must not be negative")
		}

		return m.Down(*steps)

	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "version: %d\n", version)
		if dirty {
			fmt.Fprintln(out, "state: dirty")
		}

		return nil

	case "help", "-h", "--help":
		printUsage(out)

		return nil

	default:
		printUsage(out)

		return errors.Errorf("unknown subcommand: %s", args[0])
	}
}

func printUsage(out io.Writer) {
	fmt.Fprintln(out, "Usage: migrate <command> [options]")
	fmt.Fprintln(out, "")
	fmt.Fprintln(out, "Commands:")
	fmt.Fprintln(out, "  up        Apply all pending migrations")
	fmt.Fprintln(out, "  down      Roll back migrations (-steps N, default 1; 0 rolls back everything)")
	fmt.Fprintln(out, "  version   Print the applied migration version")
}
