package main

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	_ "github.com/lib/pq"
	"github.com/shopadmin/backend/internal/infrastructure/migration"
	"github.com/shopadmin/backend/internal/infrastructure/persistence"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var errSQLiteMigrations = errors.New("sqlite databases only support 'migrate up'")

func newMigrateCommand(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	withMigrator := func(fn func(m *migration.Migrator, args []string) error) func(*cobra.Command, []string) error {
		return func(_ *cobra.Command, args []string) error {
			if e.cfg.Database.Driver == "sqlite" {
				return errSQLiteMigrations
			}
			m, closeFn, err := e.openMigrator()
			if err != nil {
				return err
			}
			defer closeFn()
			return fn(m, args)
		}
	}

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			if e.cfg.Database.Driver == "sqlite" {
				return e.autoMigrate()
			}
			return withMigrator(func(m *migration.Migrator, _ []string) error {
				return m.Up()
			})(c, args)
		},
	}

	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back all migrations",
		Args:  cobra.NoArgs,
		RunE: withMigrator(func(m *migration.Migrator, _ []string) error {
			return m.Down()
		}),
	}

	steps := &cobra.Command{
		Use:   "steps <n>",
		Short: "Apply n migrations (negative rolls back)",
		Args:  cobra.ExactArgs(1),
		RunE: withMigrator(func(m *migration.Migrator, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid step count %q", args[0])
			}
			return m.Steps(n)
		}),
	}

	gotoCmd := &cobra.Command{
		Use:   "goto <version>",
		Short: "Migrate to a specific version",
		Args:  cobra.ExactArgs(1),
		RunE: withMigrator(func(m *migration.Migrator, args []string) error {
			version, err := strconv.ParseUint(args[0], 10, 32)
			if err != nil {
				return fmt.Errorf("invalid version %q", args[0])
			}
			return m.GoTo(uint(version))
		}),
	}

	version := &cobra.Command{
		Use:   "version",
		Short: "Show the current migration version",
		Args:  cobra.NoArgs,
		RunE: withMigrator(func(m *migration.Migrator, _ []string) error {
			status, err := m.Status()
			if err != nil {
				return err
			}
			if status.Version == 0 {
				e.log.Info("No migrations applied")
				return nil
			}
			e.log.Info("Current migration version",
				zap.Uint("version", status.Version),
				zap.Bool("dirty", status.Dirty),
			)
			return nil
		}),
	}

	force := &cobra.Command{
		Use:   "force <version>",
		Short: "Set the migration version without running migrations",
		Args:  cobra.ExactArgs(1),
		RunE: withMigrator(func(m *migration.Migrator, args []string) error {
			v, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid version %q", args[0])
			}
			e.log.Warn("Forcing migration version", zap.Int("version", v))
			return m.Force(v)
		}),
	}

	var confirm bool
	drop := &cobra.Command{
		Use:   "drop",
		Short: "Drop every database object",
		Args:  cobra.NoArgs,
		RunE: withMigrator(func(m *migration.Migrator, _ []string) error {
			if !confirm {
				return errors.New("drop cancelled, pass --confirm to drop all database objects")
			}
			return m.Drop()
		}),
	}
	drop.Flags().BoolVar(&confirm, "confirm", false, "Confirm dropping all database objects")

	create := &cobra.Command{
		Use:   "create <name>",
		Short: "Create an empty up/down migration pair",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			f, err := migration.Create(e.migrationsPath, args[0], time.Now())
			if err != nil {
				return err
			}
			e.log.Info("Migration created",
				zap.Uint("version", f.Version),
				zap.String("up_file", f.UpPath),
				zap.String("down_file", f.DownPath),
			)
			return nil
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List available migrations",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			files, err := migration.List(e.migrationsPath)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				e.log.Info("No migrations found")
				return nil
			}
			for _, f := range files {
				fmt.Fprintf(c.OutOrStdout(), "  - %06d_%s\n", f.Version, f.Name)
			}
			return nil
		},
	}

	cmd.AddCommand(up, down, steps, gotoCmd, version, force, drop, create, list)
	return cmd
}

func (e *env) openMigrator() (*migration.Migrator, func(), error) {
	db, err := sql.Open("postgres", e.cfg.Database.DSN())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}
	m, err := migration.New(db, e.migrationsPath, e.log)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	e.log.Info("Migrator ready", zap.String("migrations_path", e.migrationsPath))
	return m, func() {
		_ = m.Close()
		_ = db.Close()
	}, nil
}

func (e *env) autoMigrate() error {
	db, err := persistence.NewDatabase(&e.cfg.Database, e.log)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := persistence.AutoMigrate(db.DB); err != nil {
		return fmt.Errorf("failed to create sqlite schema: %w", err)
	}
	e.log.Info("SQLite schema is up to date", zap.String("path", e.cfg.Database.SQLitePath))
	return nil
}
