package mapping

import (
	"encoding/csv"
	"encoding/gob"
	"fmt"
	"os"
	"strconv"

	"github.com/mlai-bonn/GEDPaths/pkg/models"
)

// MappingFileSuffix marks shard and canonical mapping result files.
const MappingFileSuffix = "_ged_mapping.bin"

// WriteResults stores mapping results as one binary record file
func WriteResults(path string, results []models.MappingResult) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create result file %s: %w", path, err)
	}
	defer file.Close()

	if err := gob.NewEncoder(file).Encode(results); err != nil {
		return fmt.Errorf("encode results to %s: %w", path, err)
	}
	return nil
}

// ReadResults loads a binary result file written by WriteResults
func ReadResults(path string) ([]models.MappingResult, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open result file %s: %w", path, err)
	}
	defer file.Close()

	var results []models.MappingResult
	if err := gob.NewDecoder(file).Decode(&results); err != nil {
		return nil, fmt.Errorf("decode results from %s: %w", path, err)
	}
	return results, nil
}

// WriteResultsCSV writes the human-readable tabular export mirroring the
// canonical binary file
func WriteResultsCSV(path string, results []models.MappingResult) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{"id1", "id2", "distance", "lowerBound", "upperBound", "runtime"}); err != nil {
		return fmt.Errorf("write csv header to %s: %w", path, err)
	}
	for _, r := range results {
		row := []string{
			strconv.Itoa(r.Pair.A),
			strconv.Itoa(r.Pair.B),
			formatFloat(r.Distance),
			formatFloat(r.LowerBound),
			formatFloat(r.UpperBound),
			formatFloat(r.RuntimeSeconds),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write csv row to %s: %w", path, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv file %s: %w", path, err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
