package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/cre-datagen/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "cre-datagen",
	Short: "Synthetic commercial real estate test data generator",
	Long:  "Generates rent rolls, comparables, operating expenses, tenant rosters, NOI series and market analyses with edge cases and invalid variants for testing data pipelines.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return eris.Wrap(err, "load config")
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return eris.Wrap(err, "init logger")
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
