package cli

import (
	"fmt"
	"math/rand"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/mlai-bonn/GEDPaths/pkg/dataset"
	"github.com/mlai-bonn/GEDPaths/pkg/editpath"
	"github.com/mlai-bonn/GEDPaths/pkg/mapping"
	"github.com/mlai-bonn/GEDPaths/pkg/models"
	"github.com/mlai-bonn/GEDPaths/pkg/solver"
)

var pathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "Create edit paths from computed mappings",
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		mappingsDir, _ := flags.GetString("mappings")
		if mappingsDir == "" {
			mappingsDir = cfg.MappingsDir
		}
		pathsDir, _ := flags.GetString("paths")
		if pathsDir == "" {
			pathsDir = cfg.PathsDir
		}
		method, _ := flags.GetString("method")
		if method == "" {
			method = cfg.Method
		}
		strategyName, _ := flags.GetString("strategy")
		if strategyName == "" {
			strategyName = cfg.Strategy
		}
		seed, _ := flags.GetInt64("seed")
		if !flags.Changed("seed") {
			seed = cfg.Seed
		}
		numMappings, _ := flags.GetInt("num-mappings")
		connectedOnly, _ := flags.GetBool("connected-only")
		source, _ := flags.GetInt("source")
		target, _ := flags.GetInt("target")

		ds, err := dataset.Load(cfg.Dataset, cfg.ProcessedDir)
		if err != nil {
			return err
		}
		strategy, err := editpath.StrategyFromString(strategyName, seed)
		if err != nil {
			return err
		}

		canonical := mapping.CanonicalPath(mappingsDir, solver.Method(method), ds.Name)
		results, err := mapping.ReadResults(canonical)
		if err != nil {
			return err
		}

		valid := filterValid(results)
		if len(valid) == 0 {
			return fmt.Errorf("no valid mappings in %s", canonical)
		}

		if source >= 0 && target >= 0 {
			pair := models.NewPairKey(source, target)
			idx := -1
			for i := range valid {
				if valid[i].Pair == pair {
					idx = i
					break
				}
			}
			if idx < 0 {
				return fmt.Errorf("no valid mapping found for pair %s", pair)
			}
			valid = valid[idx : idx+1]
		} else if numMappings > 0 && numMappings < len(valid) {
			rng := rand.New(rand.NewSource(seed))
			rng.Shuffle(len(valid), func(i, j int) { valid[i], valid[j] = valid[j], valid[i] })
			valid = valid[:numMappings]
			sort.Slice(valid, func(i, j int) bool { return valid[i].Pair.Less(valid[j].Pair) })
		}
		logger.Info("creating edit paths", "mappings", len(valid), "strategy", strategy.Name())

		paths, err := editpath.BuildAll(valid, ds, editpath.BuildAllConfig{
			Strategy:      strategy,
			ConnectedOnly: connectedOnly,
			Logger:        logger,
		})
		if err != nil {
			return err
		}

		outDir := mapping.ResultDir(pathsDir, solver.Method(method), ds.Name)
		if err := os.MkdirAll(outDir, 0755); err != nil {
			return fmt.Errorf("create edit path directory %s: %w", outDir, err)
		}
		if err := editpath.WritePaths(editpath.PathsFilePath(outDir, ds.Name), ds.Name, paths); err != nil {
			return err
		}
		if err := editpath.WriteOperationsCSV(editpath.OperationsFilePath(outDir, ds.Name), paths); err != nil {
			return err
		}
		logger.Info("edit paths written", "paths", len(paths), "dir", outDir)
		return nil
	},
}

// filterValid drops corrupt results, naming every skipped pair
func filterValid(results []models.MappingResult) []models.MappingResult {
	invalid := mapping.CheckValidity(results)
	if len(invalid) == 0 {
		logger.Info("all loaded mappings are valid")
		return results
	}
	skip := make(map[int]struct{}, len(invalid))
	for _, idx := range invalid {
		logger.Warn("skipping invalid mapping", "pair", results[idx].Pair.String())
		skip[idx] = struct{}{}
	}
	valid := make([]models.MappingResult, 0, len(results)-len(invalid))
	for i := range results {
		if _, ok := skip[i]; !ok {
			valid = append(valid, results[i])
		}
	}
	return valid
}

func init() {
	flags := pathsCmd.Flags()
	flags.String("mappings", "", "mapping output root")
	flags.String("paths", "", "edit path output root")
	flags.String("method", "", "solver method the mappings were computed with")
	flags.String("strategy", "", "edit ordering strategy (canonical|random)")
	flags.Int64("seed", 42, "seed for sampling and the random strategy")
	flags.Int("num-mappings", -1, "number of mappings to build paths for (-1 = all)")
	flags.Bool("connected-only", false, "skip pairs with disconnected source or target")
	flags.Int("source", -1, "build the path for this source graph id only")
	flags.Int("target", -1, "build the path for this target graph id only")
	rootCmd.AddCommand(pathsCmd)
}
