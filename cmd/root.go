package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/driveline-group/showroom-cli/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "showroom-cli",
	Short: "Vehicle finance calculators and catalog matching",
	Long:  "Runs loan, lease, affordability, and depreciation calculations, matches catalog vehicles to shopper preferences, and serves the same operations over HTTP.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
