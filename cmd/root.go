package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Davazzzz/eBay-car-parts-automation-tool/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "carparts",
	Short: "Used car parts resale analyzer",
	Long: `carparts prices used auto parts for resale: it looks up what a part
costs at the junkyard, pulls sold eBay listings to see what it actually
sells for, and ranks parts by ROI so you know what is worth pulling.`,
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
