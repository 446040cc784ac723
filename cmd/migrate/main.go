// Command migrate manages the postgres schema for the packsource
// backend. Subcommands cover applying, rolling back, inspecting, and
// scaffolding migrations.
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/packsource/backend/internal/infrastructure/config"
	"github.com/packsource/backend/internal/infrastructure/logger"
	"github.com/packsource/backend/internal/infrastructure/migration"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

const defaultMigrationsDir = "migrations"

type cli struct {
	log  *zap.Logger
	dir  string
	args []string
}

func main() {
	var (
		dir      string
		logLevel string
	)
	flag.StringVar(&dir, "path", "", "migrations directory (default: ./migrations)")
	flag.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() == 0 {
		usage()
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{
		Level:  logLevel,
		Format: "console",
		Output: "stdout",
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync(log) }()

	if dir == "" {
		dir = locateMigrationsDir()
	}
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}

	c := &cli{log: log, dir: dir, args: flag.Args()}
	if err := c.run(); err != nil {
		log.Fatal("command failed", zap.String("command", c.args[0]), zap.Error(err))
	}
}

func (c *cli) run() error {
	command := c.args[0]
	c.log.Info("migration cli",
		zap.String("command", command),
		zap.String("migrations_dir", c.dir),
	)

	// create and list never touch the database.
	switch command {
	case "create":
		return c.create()
	case "list":
		return c.list()
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	m, err := migration.New(db, c.dir, c.log)
	if err != nil {
		return err
	}
	defer m.Close()

	switch command {
	case "up":
		return m.Up()
	case "down":
		return m.Down()
	case "step":
		n, err := c.intArg("step count")
		if err != nil {
			return err
		}
		return m.Steps(n)
	case "goto":
		v, err := c.uintArg("target version")
		if err != nil {
			return err
		}
		return m.GoTo(v)
	case "version":
		return c.version(m)
	case "force":
		v, err := c.intArg("version")
		if err != nil {
			return err
		}
		c.log.Warn("forcing schema version", zap.Int("version", v))
		return m.Force(v)
	case "drop":
		if !c.confirmed() {
			return fmt.Errorf("drop removes every object in the database, re-run with -confirm")
		}
		return m.Drop()
	default:
		usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func (c *cli) create() error {
	if len(c.args) < 2 {
		return fmt.Errorf("usage: migrate create <name> [description]")
	}
	description := ""
	if len(c.args) > 2 {
		description = c.args[2]
	}
	mf, err := migration.CreateMigration(c.dir, c.args[1], description)
	if err != nil {
		return err
	}
	c.log.Info("migration created",
		zap.String("version", mf.Version),
		zap.String("up_file", mf.UpPath),
		zap.String("down_file", mf.DownPath),
	)
	return nil
}

func (c *cli) list() error {
	migrations, err := migration.ListMigrations(c.dir)
	if err != nil {
		return err
	}
	if len(migrations) == 0 {
		c.log.Info("no migrations found")
		return nil
	}
	c.log.Info("available migrations", zap.Int("count", len(migrations)))
	for _, m := range migrations {
		fmt.Println("  -", m)
	}
	return nil
}

func (c *cli) version(m *migration.Migrator) error {
	version, dirty, err := m.Version()
	if err != nil {
		return err
	}
	if version == 0 {
		c.log.Info("no migrations applied")
		return nil
	}
	c.log.Info("current schema version", zap.Uint("version", version), zap.Bool("dirty", dirty))
	return nil
}

func (c *cli) intArg(what string) (int, error) {
	if len(c.args) < 2 {
		return 0, fmt.Errorf("%s required", what)
	}
	n, err := strconv.Atoi(c.args[1])
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", what, c.args[1])
	}
	return n, nil
}

func (c *cli) uintArg(what string) (uint, error) {
	if len(c.args) < 2 {
		return 0, fmt.Errorf("%s required", what)
	}
	v, err := strconv.ParseUint(c.args[1], 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", what, c.args[1])
	}
	return uint(v), nil
}

func (c *cli) confirmed() bool {
	for _, arg := range c.args[1:] {
		if arg == "-confirm" || arg == "--confirm" {
			return true
		}
	}
	return false
}

// locateMigrationsDir prefers ./migrations and falls back to the
// directory two levels above the executable, matching the repo layout.
func locateMigrationsDir() string {
	if _, err := os.Stat(defaultMigrationsDir); err == nil {
		return defaultMigrationsDir
	}
	if execPath, err := os.Executable(); err == nil {
		candidate := filepath.Join(filepath.Dir(execPath), "..", "..", defaultMigrationsDir)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return defaultMigrationsDir
}

func usage() {
	fmt.Println(`PackSource schema migration tool

Usage:
  migrate [flags] <command> [arguments]

Commands:
  up                    apply all pending migrations
  down                  roll back all migrations
  step <n>              apply n migrations (negative rolls back)
  goto <version>        migrate to a specific version
  version               show the current schema version
  force <version>       overwrite the recorded version
  drop -confirm         drop every object in the database
  create <name> [desc]  scaffold an up/down migration pair
  list                  list migration files

Flags:
  -path string          migrations directory (default: ./migrations)
  -log-level string     log level (default: info)`)
}
