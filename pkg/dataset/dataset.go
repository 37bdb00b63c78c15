// Package dataset loads and stores preprocessed graph datasets. Raw exchange
// formats are converted once by external tooling; this package only handles
// the preprocessed binary representation.
package dataset

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mlai-bonn/GEDPaths/pkg/models"
)

// FileSuffix is the extension of preprocessed dataset files.
const FileSuffix = ".graphs"

// Path returns the location of a preprocessed dataset inside dir
func Path(name, dir string) string {
	return filepath.Join(dir, name+FileSuffix)
}

// Load reads a preprocessed dataset from dir. The returned dataset is
// immutable by convention and may be shared across goroutines.
func Load(name, dir string) (*models.GraphDataset, error) {
	path := Path(name, dir)
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset %s: %w", path, err)
	}
	defer file.Close()

	var ds models.GraphDataset
	if err := gob.NewDecoder(file).Decode(&ds); err != nil {
		return nil, fmt.Errorf("decode dataset %s: %w", path, err)
	}
	if err := validate(&ds); err != nil {
		return nil, fmt.Errorf("dataset %s: %w", path, err)
	}
	return &ds, nil
}

// Save writes a preprocessed dataset into dir, creating it if needed
func Save(ds *models.GraphDataset, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create dataset directory %s: %w", dir, err)
	}
	path := Path(ds.Name, dir)
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create dataset file %s: %w", path, err)
	}
	defer file.Close()

	if err := gob.NewEncoder(file).Encode(ds); err != nil {
		return fmt.Errorf("encode dataset %s: %w", path, err)
	}
	return nil
}

// validate checks basic structural integrity of a loaded dataset
func validate(ds *models.GraphDataset) error {
	if ds.Name == "" {
		return fmt.Errorf("dataset has no name")
	}
	for id := range ds.Graphs {
		g := &ds.Graphs[id]
		for _, e := range g.Edges {
			if e.U < 0 || e.U >= g.Nodes() || e.V < 0 || e.V >= g.Nodes() {
				return fmt.Errorf("graph %d: edge (%d,%d) references missing node", id, e.U, e.V)
			}
			if e.U >= e.V {
				return fmt.Errorf("graph %d: edge (%d,%d) is not normalized", id, e.U, e.V)
			}
		}
	}
	return nil
}
