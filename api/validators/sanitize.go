package validators

import (
	"strings"

	pkgerrors "github.com/angelmondragon/bestprice-backend/pkg/errors"
)

const maxPathIDLen = 64

// PathID cleans an identifier taken from the URL path. Blank or oversized
// ids are rejected rather than truncated.
func PathID(raw, field string) (string, error) {
	id := strings.TrimSpace(raw)
	if id == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, field+" required").
			WithDetails(map[string]any{"field": field})
	}
	if len(id) > maxPathIDLen {
		return "", pkgerrors.New(pkgerrors.CodeValidation, field+" too long").
			WithDetails(map[string]any{"field": field, "max": maxPathIDLen})
	}
	return id, nil
}

func clip(input string, maxLen int) string {
	trimmed := strings.TrimSpace(input)
	if maxLen > 0 && len(trimmed) > maxLen {
		return trimmed[:maxLen]
	}
	return trimmed
}
