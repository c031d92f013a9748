package validators

import (
	"net/http"
	"strconv"
	"strings"

	pkgerrors "github.com/angelmondragon/bestprice-backend/pkg/errors"
)

const qtyParam = "qty"

// ParseQty reads the desired purchase quantity from ?qty. A missing value
// yields defaultQty; non-integers and values outside 1..maxQty are rejected.
func ParseQty(r *http.Request, defaultQty, maxQty int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(qtyParam))
	if raw == "" {
		return defaultQty, nil
	}
	qty, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "qty must be a whole number").
			WithDetails(map[string]any{"field": qtyParam, "value": clip(raw, 32)})
	}
	if qty < 1 || qty > maxQty {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "qty out of range").
			WithDetails(map[string]any{"field": qtyParam, "min": 1, "max": maxQty})
	}
	return qty, nil
}
