package catalog

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// CSVLoader reads one CSV file per table from a directory.
type CSVLoader struct {
	dir string
}

func NewCSVLoader(dir string) *CSVLoader {
	return &CSVLoader{dir: dir}
}

func (l *CSVLoader) Source() string {
	return "csv:" + l.dir
}

func (l *CSVLoader) Load(ctx context.Context) (*Snapshot, error) {
	tables := map[string]*table{}
	for _, name := range []string{TableVendors, TableItems, TableVendorItems, TableRecipes, TableRecipeItems} {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		path := filepath.Join(l.dir, name+".csv")
		t, err := readCSVTable(name, path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		tables[name] = t
	}
	return buildSnapshot(tables)
}

func readCSVTable(name, path string) (*table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parseCSV(name, f)
}

func parseCSV(name string, r io.Reader) (*table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: reading csv: %w", name, err)
	}
	return newTable(name, records)
}
