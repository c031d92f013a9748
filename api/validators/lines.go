package validators

import (
	"net/http"
	"sort"
	"strings"

	pkgerrors "github.com/angelmondragon/bestprice-backend/pkg/errors"
)

const maxLineNameLen = 64

// ParseLines reads a comma-separated list of product lines from key. Blank
// entries are dropped and duplicates collapsed; an empty result means all lines.
func ParseLines(r *http.Request, key string) []string {
	values := r.URL.Query()[key]
	seen := map[string]struct{}{}
	var lines []string
	for _, raw := range values {
		for _, part := range strings.Split(raw, ",") {
			line := clip(part, maxLineNameLen)
			if line == "" {
				continue
			}
			if _, dup := seen[line]; dup {
				continue
			}
			seen[line] = struct{}{}
			lines = append(lines, line)
		}
	}
	sort.Strings(lines)
	return lines
}

// Output formats accepted by table endpoints.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// ParseFormat reads the format query parameter, defaulting to json.
func ParseFormat(r *http.Request) (string, error) {
	format := strings.ToLower(clip(r.URL.Query().Get("format"), 8))
	switch format {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatCSV:
		return FormatCSV, nil
	}
	return "", pkgerrors.New(pkgerrors.CodeValidation, "unsupported format").
		WithDetails(map[string]any{"field": "format", "allowed": []string{FormatJSON, FormatCSV}})
}
