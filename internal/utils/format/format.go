// Package format holds the cell formatters used by the report exports.
package format

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// idWidth is the fixed left-padding applied to identifiers in report cells.
const idWidth = 6

// ID zero-pads an identifier to the fixed report width, e.g. 123 -> "000123".
func ID(id int64) string {
	return fmt.Sprintf("%0*d", idWidth, id)
}

// Monetary renders an amount with the given number of decimal places.
func Monetary(value decimal.Decimal, places int32) string {
	return value.StringFixed(places)
}

// SimNao renders a boolean as the localized yes/no used in reports.
func SimNao(v bool) string {
	if v {
		return "Sim"
	}
	return "Não"
}
