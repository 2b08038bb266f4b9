package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/khoahotran/portfolio-builder/adapters/persistence"
	"github.com/khoahotran/portfolio-builder/pkg/logger"
)

var healthTimeout time.Duration

type healthReport struct {
	Configured bool   `json:"configured"`
	Reachable  bool   `json:"reachable"`
	Error      string `json:"error,omitempty"`
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check whether the portfolio database is reachable",
	Long: `Check whether the portfolio database is reachable.

Prints a JSON report and exits non-zero when a configured database cannot be
reached. An unconfigured database is reported but is not an error, since the
server then runs on memory storage.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		ctx, cancel := contextWithTimeout(cmd, healthTimeout)
		defer cancel()

		store := persistence.NewFallbackStore(nil, persistence.NewMemoryPortfolioRepo(), logger.NewNopLogger())
		if cfg.DurableConfigured() {
			pool, err := persistence.NewPostgresPool(ctx, cfg)
			if err != nil {
				return err
			}
			defer pool.Close()
			store = persistence.NewFallbackStore(
				persistence.NewPostgresPortfolioRepo(pool, logger.NewNopLogger()),
				persistence.NewMemoryPortfolioRepo(),
				logger.NewNopLogger(),
			)
		}

		status := store.Status(ctx)
		report := healthReport{Configured: status.Configured, Reachable: status.Reachable, Error: status.Error}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
		if status.Configured && !status.Reachable {
			return fmt.Errorf("database unreachable: %s", status.Error)
		}
		return nil
	},
}

func init() {
	healthCmd.Flags().DurationVar(&healthTimeout, "timeout", 5*time.Second, "give up after this long")
	rootCmd.AddCommand(healthCmd)
}

func contextWithTimeout(cmd *cobra.Command, d time.Duration) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, d)
}
