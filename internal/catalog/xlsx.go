package catalog

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// XLSXLoader reads a workbook holding one sheet per table.
type XLSXLoader struct {
	path string
}

func NewXLSXLoader(path string) *XLSXLoader {
	return &XLSXLoader{path: path}
}

func (l *XLSXLoader) Source() string {
	return "xlsx:" + l.path
}

func (l *XLSXLoader) Load(ctx context.Context) (*Snapshot, error) {
	file, err := excelize.OpenFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer file.Close()

	sheets := map[string]bool{}
	for _, sheet := range file.GetSheetList() {
		sheets[sheet] = true
	}

	tables := map[string]*table{}
	for _, name := range []string{TableVendors, TableItems, TableVendorItems, TableRecipes, TableRecipeItems} {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !sheets[name] {
			continue
		}
		rows, err := file.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("%s: reading sheet: %w", name, err)
		}
		t, err := newTable(name, rows)
		if err != nil {
			return nil, err
		}
		tables[name] = t
	}
	return buildSnapshot(tables)
}
