package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/m-aljasem/Sample-Size-Calculator/internal/calc"
	"github.com/m-aljasem/Sample-Size-Calculator/internal/config"
	"github.com/m-aljasem/Sample-Size-Calculator/internal/store"
)

var (
	cfg     *config.Config
	noColor bool
)

var rootCmd = &cobra.Command{
	Use:   "samplesize",
	Short: "Sample size and power calculations for study design",
	Long: "Computes required sample sizes, event counts and post-hoc power for common " +
		"estimation and hypothesis-testing designs, with input advisories, sensitivity " +
		"sweeps and side-by-side scenario comparison.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		if noColor {
			color.NoColor = true
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

// engine returns the calculator engine selected by engine.exact_quantiles.
func engine() *calc.Engine {
	if cfg != nil && cfg.Engine.ExactQuantiles {
		return calc.NewEngine(calc.ExactQuantiles{})
	}
	return calc.Default
}

// initStore opens the configured store, failing when persistence is disabled.
func initStore(ctx context.Context) (store.Store, error) {
	if err := cfg.Validate(config.ModeStore); err != nil {
		return nil, err
	}
	return store.Open(ctx, cfg.Store)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
