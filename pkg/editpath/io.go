package editpath

import (
	"encoding/csv"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/mlai-bonn/GEDPaths/pkg/models"
)

// PathsFileSuffix marks aggregate edit path files.
const PathsFileSuffix = "_edit_paths.bin"

// OperationsFileSuffix marks the operation side files aligned to snapshot
// boundaries.
const OperationsFileSuffix = "_edit_operations.csv"

// PathsFilePath returns the aggregate snapshot file location for a dataset
func PathsFilePath(dir, dataset string) string {
	return filepath.Join(dir, dataset+PathsFileSuffix)
}

// OperationsFilePath returns the operation side file location for a dataset
func OperationsFilePath(dir, dataset string) string {
	return filepath.Join(dir, dataset+OperationsFileSuffix)
}

// archive is the on-disk layout: all snapshots concatenated in path order,
// with pair keys and per-path operation counts to recover the boundaries.
type archive struct {
	Dataset   string
	Pairs     []models.PairKey
	Lengths   []int
	Snapshots []models.Graph
}

// WritePaths stores all edit paths of one dataset/method as a single binary
// file of concatenated snapshots
func WritePaths(path, dataset string, paths []*models.EditPath) error {
	arc := archive{Dataset: dataset}
	for _, p := range paths {
		arc.Pairs = append(arc.Pairs, p.Pair)
		arc.Lengths = append(arc.Lengths, p.Length())
		arc.Snapshots = append(arc.Snapshots, p.Snapshots...)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create edit path file %s: %w", path, err)
	}
	defer file.Close()

	if err := gob.NewEncoder(file).Encode(arc); err != nil {
		return fmt.Errorf("encode edit paths to %s: %w", path, err)
	}
	return nil
}

// WriteOperationsCSV stores the per-step operation records, one row per
// step, aligned to the snapshot boundaries of the aggregate file
func WriteOperationsCSV(path string, paths []*models.EditPath) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create operations file %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{"sourceId", "stepIndex", "targetId", "operation"}); err != nil {
		return fmt.Errorf("write operations header to %s: %w", path, err)
	}
	for _, p := range paths {
		for _, op := range p.Operations {
			row := []string{
				strconv.Itoa(op.SourceID),
				strconv.Itoa(op.Step),
				strconv.Itoa(op.TargetID),
				op.String(),
			}
			if err := writer.Write(row); err != nil {
				return fmt.Errorf("write operations row to %s: %w", path, err)
			}
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush operations file %s: %w", path, err)
	}
	return nil
}

// ReadPaths reconstructs edit paths from the aggregate snapshot file and its
// operation side file
func ReadPaths(pathsFile, operationsFile string) ([]*models.EditPath, error) {
	file, err := os.Open(pathsFile)
	if err != nil {
		return nil, fmt.Errorf("open edit path file %s: %w", pathsFile, err)
	}
	defer file.Close()

	var arc archive
	if err := gob.NewDecoder(file).Decode(&arc); err != nil {
		return nil, fmt.Errorf("decode edit paths from %s: %w", pathsFile, err)
	}

	ops, err := readOperations(operationsFile)
	if err != nil {
		return nil, err
	}

	paths := make([]*models.EditPath, 0, len(arc.Pairs))
	snapshotCursor, opCursor := 0, 0
	for i, pair := range arc.Pairs {
		length := arc.Lengths[i]
		if snapshotCursor+length+1 > len(arc.Snapshots) || opCursor+length > len(ops) {
			return nil, fmt.Errorf("edit path file %s is truncated at pair %v", pathsFile, pair)
		}
		path := &models.EditPath{
			Pair:       pair,
			Snapshots:  arc.Snapshots[snapshotCursor : snapshotCursor+length+1],
			Operations: ops[opCursor : opCursor+length],
		}
		for _, op := range path.Operations {
			if op.SourceID != pair.A || op.TargetID != pair.B {
				return nil, fmt.Errorf("operation file %s does not align with %s at pair %v", operationsFile, pathsFile, pair)
			}
		}
		paths = append(paths, path)
		snapshotCursor += length + 1
		opCursor += length
	}
	return paths, nil
}

func readOperations(path string) ([]models.EditOperation, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open operations file %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read operations file %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("operations file %s has no header", path)
	}

	ops := make([]models.EditOperation, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) != 4 {
			return nil, fmt.Errorf("operations file %s: malformed row %v", path, row)
		}
		sourceID, err := strconv.Atoi(row[0])
		if err != nil {
			return nil, fmt.Errorf("operations file %s: %w", path, err)
		}
		step, err := strconv.Atoi(row[1])
		if err != nil {
			return nil, fmt.Errorf("operations file %s: %w", path, err)
		}
		targetID, err := strconv.Atoi(row[2])
		if err != nil {
			return nil, fmt.Errorf("operations file %s: %w", path, err)
		}
		category, err := models.CategoryFromString(row[3])
		if err != nil {
			return nil, fmt.Errorf("operations file %s: %w", path, err)
		}
		kind, editType, err := models.OperationFromCategory(category)
		if err != nil {
			return nil, fmt.Errorf("operations file %s: %w", path, err)
		}
		ops = append(ops, models.EditOperation{
			Kind:     kind,
			Type:     editType,
			SourceID: sourceID,
			Step:     step,
			TargetID: targetID,
		})
	}
	return ops, nil
}
