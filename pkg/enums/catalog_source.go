package enums

import "fmt"

// CatalogSource selects where the reference tables are loaded from.
type CatalogSource string

const (
	CatalogSourceCSV  CatalogSource = "csv"
	CatalogSourceXLSX CatalogSource = "xlsx"
	CatalogSourceDB   CatalogSource = "db"
)

var validCatalogSources = []CatalogSource{
	CatalogSourceCSV,
	CatalogSourceXLSX,
	CatalogSourceDB,
}

// String implements fmt.Stringer.
func (c CatalogSource) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CatalogSource.
func (c CatalogSource) IsValid() bool {
	for _, candidate := range validCatalogSources {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCatalogSource converts raw input into a CatalogSource.
func ParseCatalogSource(value string) (CatalogSource, error) {
	for _, candidate := range validCatalogSources {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid catalog source %q", value)
}
