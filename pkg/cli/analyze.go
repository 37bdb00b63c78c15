package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mlai-bonn/GEDPaths/pkg/analysis"
	"github.com/mlai-bonn/GEDPaths/pkg/editpath"
	"github.com/mlai-bonn/GEDPaths/pkg/mapping"
	"github.com/mlai-bonn/GEDPaths/pkg/solver"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Export statistics over mappings or edit paths",
}

var analyzePathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "Aggregate statistics over previously written edit paths",
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		pathsDir, _ := flags.GetString("paths")
		if pathsDir == "" {
			pathsDir = cfg.PathsDir
		}
		method, _ := flags.GetString("method")
		if method == "" {
			method = cfg.Method
		}
		buckets, _ := flags.GetInt("buckets")
		if !flags.Changed("buckets") {
			buckets = cfg.BucketCount
		}

		dir := mapping.ResultDir(pathsDir, solver.Method(method), cfg.Dataset)
		paths, err := editpath.ReadPaths(
			editpath.PathsFilePath(dir, cfg.Dataset),
			editpath.OperationsFilePath(dir, cfg.Dataset),
		)
		if err != nil {
			return err
		}

		stats, err := analysis.Aggregate(paths, buckets)
		if err != nil {
			return err
		}
		outDir := filepath.Join(dir, "Evaluation")
		if err := analysis.ExportStatistics(outDir, stats.ValueStats()); err != nil {
			return err
		}
		if err := analysis.ExportPositions(outDir, stats); err != nil {
			return err
		}
		logger.Info("edit path statistics written", "paths", len(paths), "dir", outDir)
		return nil
	},
}

var analyzeMappingsCmd = &cobra.Command{
	Use:   "mappings",
	Short: "Summarize distances, bounds and runtimes of a canonical result set",
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		mappingsDir, _ := flags.GetString("mappings")
		if mappingsDir == "" {
			mappingsDir = cfg.MappingsDir
		}
		method, _ := flags.GetString("method")
		if method == "" {
			method = cfg.Method
		}

		canonical := mapping.CanonicalPath(mappingsDir, solver.Method(method), cfg.Dataset)
		results, err := mapping.ReadResults(canonical)
		if err != nil {
			return err
		}
		if invalid := mapping.CheckValidity(results); len(invalid) > 0 {
			for _, idx := range invalid {
				logger.Warn("invalid mapping in canonical set", "pair", results[idx].Pair.String())
			}
		} else {
			logger.Info("all mappings valid")
		}

		outDir := filepath.Join(mapping.ResultDir(mappingsDir, solver.Method(method), cfg.Dataset), "Evaluation")
		if err := analysis.ExportStatistics(outDir, analysis.MappingStatistics(results)); err != nil {
			return err
		}
		logger.Info("mapping statistics written", "results", len(results), "dir", outDir)
		return nil
	},
}

func init() {
	analyzePathsCmd.Flags().String("paths", "", "edit path output root")
	analyzePathsCmd.Flags().String("method", "", "solver method")
	analyzePathsCmd.Flags().Int("buckets", analysis.DefaultBucketCount, "number of position buckets")

	analyzeMappingsCmd.Flags().String("mappings", "", "mapping output root")
	analyzeMappingsCmd.Flags().String("method", "", "solver method")

	analyzeCmd.AddCommand(analyzePathsCmd)
	analyzeCmd.AddCommand(analyzeMappingsCmd)
	rootCmd.AddCommand(analyzeCmd)
}
