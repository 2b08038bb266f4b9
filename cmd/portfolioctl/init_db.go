package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/khoahotran/portfolio-builder/adapters/persistence"
	"github.com/khoahotran/portfolio-builder/pkg/logger"
)

var errDatabaseNotConfigured = errors.New("DATABASE_URL is required")

var initDBTimeout time.Duration

var initDBCmd = &cobra.Command{
	Use:   "init-db",
	Short: "Create the portfolio tables and indexes",
	Long: `Create the portfolio tables and indexes.

Every statement is idempotent, so running it against an already provisioned
database is safe.

Example:
  DATABASE_URL=postgres://localhost/portfolio portfolioctl init-db`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if !cfg.DurableConfigured() {
			return errDatabaseNotConfigured
		}

		log := logger.NewZapLogger(cfg.App.Env)
		defer log.Sync()

		ctx, cancel := contextWithTimeout(cmd, initDBTimeout)
		defer cancel()

		pool, err := persistence.NewPostgresPool(ctx, cfg)
		if err != nil {
			return err
		}
		defer pool.Close()

		if err := persistence.ConnectAndProvision(ctx, pool, log); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Database schema is up to date")
		return nil
	},
}

func init() {
	initDBCmd.Flags().DurationVar(&initDBTimeout, "timeout", 30*time.Second, "give up after this long")
	rootCmd.AddCommand(initDBCmd)
}
