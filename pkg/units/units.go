// Package units converts recipe quantities between unit symbols.
package units

import (
	"fmt"
	"strings"

	pkgerrors "github.com/angelmondragon/bestprice-backend/pkg/errors"
)

type pair struct {
	from string
	to   string
}

// factors lists each known conversion once; the inverse direction divides.
var factors = map[pair]float64{
	{from: "kg", to: "g"}:  1000,
	{from: "L", to: "mL"}:  1000,
	{from: "lb", to: "oz"}: 16,
}

var aliases = map[string]string{
	"l":  "L",
	"ml": "mL",
	"ML": "mL",
}

// Result describes a single conversion.
type Result struct {
	Qty float64
	// Fallback is true when no factor was known and the quantity passed through unchanged.
	Fallback bool
}

// Converter converts quantities with the fixed factor table. In strict mode
// an unknown pair is an error; otherwise units are assumed equivalent.
type Converter struct {
	strict bool
}

func NewConverter(strict bool) *Converter {
	return &Converter{strict: strict}
}

// Strict reports whether unknown pairs fail.
func (c *Converter) Strict() bool {
	return c != nil && c.strict
}

// Convert returns qty expressed in the to unit.
func (c *Converter) Convert(qty float64, from, to string) (Result, error) {
	from, to = Normalize(from), Normalize(to)
	if from == to {
		return Result{Qty: qty}, nil
	}
	if factor, ok := factors[pair{from: from, to: to}]; ok {
		return Result{Qty: qty * factor}, nil
	}
	if factor, ok := factors[pair{from: to, to: from}]; ok {
		return Result{Qty: qty / factor}, nil
	}
	if c.Strict() {
		return Result{}, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown unit conversion %s -> %s", from, to)).
			WithDetails(map[string]any{"from": from, "to": to})
	}
	return Result{Qty: qty, Fallback: true}, nil
}

// Normalize trims a unit symbol and folds the litre spellings.
func Normalize(unit string) string {
	unit = strings.TrimSpace(unit)
	if alias, ok := aliases[unit]; ok {
		return alias
	}
	return unit
}

// Known reports whether a conversion between the two units is tabulated.
func Known(from, to string) bool {
	from, to = Normalize(from), Normalize(to)
	if from == to {
		return true
	}
	_, direct := factors[pair{from: from, to: to}]
	_, inverse := factors[pair{from: to, to: from}]
	return direct || inverse
}
