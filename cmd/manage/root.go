package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopadmin/backend/internal/infrastructure/config"
	"github.com/shopadmin/backend/internal/infrastructure/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const defaultMigrationsPath = "migrations"

// env carries what every subcommand needs once the root has run
type env struct {
	migrationsPath string
	logLevel       string

	cfg *config.Config
	log *zap.Logger
}

func newRootCommand() *cobra.Command {
	e := &env{}
	root := &cobra.Command{
		Use:           "manage",
		Short:         "Shop administration tasks",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return e.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			if e.log != nil {
				_ = logger.Sync(e.log)
			}
		},
	}
	root.PersistentFlags().StringVar(&e.migrationsPath, "path", "", "Path to migrations directory (default: ./migrations)")
	root.PersistentFlags().StringVar(&e.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	root.AddCommand(newMigrateCommand(e), newCreateSuperuserCommand(e))
	return root
}

func (e *env) init() error {
	log, err := logger.New(&logger.Config{
		Level:      e.logLevel,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	e.log = log

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	e.cfg = cfg

	path, err := filepath.Abs(resolveMigrationsPath(e.migrationsPath))
	if err != nil {
		return fmt.Errorf("failed to resolve migrations path: %w", err)
	}
	e.migrationsPath = path
	return nil
}

// resolveMigrationsPath prefers the flag, then ./migrations, then the
// repository root relative to the binary.
func resolveMigrationsPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if _, err := os.Stat(defaultMigrationsPath); err == nil {
		return defaultMigrationsPath
	}
	if execPath, err := os.Executable(); err == nil {
		candidate := filepath.Join(filepath.Dir(execPath), "..", "..", defaultMigrationsPath)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return defaultMigrationsPath
}
