package analysis

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mlai-bonn/GEDPaths/pkg/models"
)

// ExportStatistics writes one CSV per metric into dir, header "value", one
// row per sample
func ExportStatistics(dir string, stats []ValueStatistics) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create statistics directory %s: %w", dir, err)
	}
	for _, s := range stats {
		path := filepath.Join(dir, s.Name+".csv")
		file, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create statistics file %s: %w", path, err)
		}
		writer := csv.NewWriter(file)
		if err := writer.Write([]string{"value"}); err != nil {
			file.Close()
			return fmt.Errorf("write header to %s: %w", path, err)
		}
		for _, v := range s.Values {
			if err := writer.Write([]string{strconv.FormatFloat(v, 'g', -1, 64)}); err != nil {
				file.Close()
				return fmt.Errorf("write row to %s: %w", path, err)
			}
		}
		writer.Flush()
		if err := writer.Error(); err != nil {
			file.Close()
			return fmt.Errorf("flush statistics file %s: %w", path, err)
		}
		if err := file.Close(); err != nil {
			return fmt.Errorf("close statistics file %s: %w", path, err)
		}
	}
	return nil
}

// ExportPositions writes one positions CSV per operation category into dir,
// header "positions", one comma-joined row per path (empty row when the
// category never occurred in that path)
func ExportPositions(dir string, s *PathStatistics) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create statistics directory %s: %w", dir, err)
	}
	for c := 0; c < models.NumCategories; c++ {
		path := filepath.Join(dir, models.CategoryNames[c]+"_Positions.csv")
		file, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create positions file %s: %w", path, err)
		}
		writer := csv.NewWriter(file)
		if err := writer.Write([]string{"positions"}); err != nil {
			file.Close()
			return fmt.Errorf("write header to %s: %w", path, err)
		}
		for _, steps := range s.Positions[c] {
			joined := make([]string, len(steps))
			for i, step := range steps {
				joined[i] = strconv.Itoa(step)
			}
			if err := writer.Write([]string{strings.Join(joined, ",")}); err != nil {
				file.Close()
				return fmt.Errorf("write row to %s: %w", path, err)
			}
		}
		writer.Flush()
		if err := writer.Error(); err != nil {
			file.Close()
			return fmt.Errorf("flush positions file %s: %w", path, err)
		}
		if err := file.Close(); err != nil {
			return fmt.Errorf("close positions file %s: %w", path, err)
		}
	}
	return nil
}
