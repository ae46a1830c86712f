// Package main provides the CLI entry point for xtabrecon.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/joaomendes-ine/etl-workflow/internal/logger"
	"github.com/joaomendes-ine/etl-workflow/pkg/recon"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configPath string
	jsonLogs   bool
	verbose    bool

	appLog = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "xtabrecon",
	Short: "Reconcile published crosstab spreadsheets against recreated ones",
	Long: `xtabrecon compares statistical tables published as spreadsheets with
their recreations. It locates the data grid of every sheet, resolves the row
and column headers of each value and reports matches, value differences and
points missing on either side.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		l, err := logger.New(logger.Options{
			JSON:    jsonLogs,
			Verbose: verbose,
			Output:  cmd.ErrOrStderr(),
		})
		if err != nil {
			return err
		}
		appLog = l
		return nil
	},
	PersistentPostRun: func(*cobra.Command, []string) {
		_ = appLog.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "TOML config file (env overrides use the XTABRECON_ prefix)")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "log-json", false, "Emit logs as JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the config file and applies the flags shared by commands.
func loadConfig(cmd *cobra.Command) (recon.Config, error) {
	cfg, err := recon.LoadConfig(configPath)
	if err != nil {
		return recon.Config{}, err
	}
	if f := cmd.Flags().Lookup("tolerance"); f != nil && f.Changed {
		cfg.NumericTolerance, _ = cmd.Flags().GetFloat64("tolerance")
	}
	if f := cmd.Flags().Lookup("workers"); f != nil && f.Changed {
		cfg.Workers, _ = cmd.Flags().GetInt("workers")
	}
	return cfg.WithLogger(appLog), nil
}
