// Package cli provides the gedpaths command tree: batch mapping computation,
// edit path generation, and statistics export.
package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mlai-bonn/GEDPaths/pkg/config"
)

// Version is set at build time.
var Version = "0.1.0"

var (
	configFile string

	cfg        config.Config
	logger     *slog.Logger
	logCleanup func() error
)

var rootCmd = &cobra.Command{
	Use:   "gedpaths",
	Short: "Graph edit distance mappings, edit paths and path statistics",
	Long: `gedpaths computes pairwise graph edit distance mappings over a graph
dataset, derives edit paths from the validated mappings, and aggregates
statistics over the resulting paths.`,
	Version:       Version,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configFile)
		if err != nil {
			return err
		}
		cfg = loaded
		applyGlobalFlags(cmd)
		logger, logCleanup = config.SetupLogger(cfg.LogFile, config.ParseLogLevel(cfg.LogLevel))
		slog.SetDefault(logger)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCleanup != nil {
			_ = logCleanup()
		}
	},
}

// applyGlobalFlags lets explicitly set flags win over file and environment
func applyGlobalFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	if flags.Changed("dataset") {
		cfg.Dataset, _ = flags.GetString("dataset")
	}
	if flags.Changed("processed") {
		cfg.ProcessedDir, _ = flags.GetString("processed")
	}
	if flags.Changed("log-file") {
		cfg.LogFile, _ = flags.GetString("log-file")
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "YAML config file")
	rootCmd.PersistentFlags().String("dataset", "", "dataset name")
	rootCmd.PersistentFlags().String("processed", "", "processed dataset directory")
	rootCmd.PersistentFlags().String("log-file", "", "JSON log file (in addition to stderr)")
	rootCmd.PersistentFlags().String("log-level", "", "log level (DEBUG|INFO|WARN|ERROR)")
}

// Execute runs the command tree
func Execute() error {
	return rootCmd.Execute()
}
