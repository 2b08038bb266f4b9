// Command portfolioctl runs operational tasks against the portfolio database.
//
//	# Create tables and indexes (idempotent)
//	portfolioctl init-db
//
//	# Report database reachability
//	portfolioctl health
//
// Both commands read the same configuration as the API server: config.yaml and
// .env from --config-dir, overridden by DATABASE_URL.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/khoahotran/portfolio-builder/internal/config"
)

var configDir string

var rootCmd = &cobra.Command{
	Use:          "portfolioctl",
	Short:        "Operate the portfolio builder database",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", ".", "directory holding config.yaml and .env")
}

func loadConfig() (config.Config, error) {
	return config.LoadConfig(configDir)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
