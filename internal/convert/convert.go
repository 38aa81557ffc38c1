// Package convert provides cell-level conversions for spreadsheet data.
//
// These functions handle the messy reality of user-provided files:
//   - Currency symbols and thousand separators in numbers
//   - Accounting format (parentheses for negative)
//   - Excel formula prefixes (="value")
//   - Stray quotes and whitespace
//
// All Parse* functions report ok=false for values they cannot interpret;
// the import layer decides whether that means "skip" or "use the default".
package convert

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// numericRegex validates that a string is a valid numeric format after
// cleanup. Matches integers, decimals, and scientific notation.
var numericRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// CleanCell removes common spreadsheet artifacts from a cell value:
// trims whitespace, removes the Excel formula prefix (="..."), and strips
// surrounding quotes.
func CleanCell(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "=\"") && strings.HasSuffix(s, "\"") {
		s = s[2 : len(s)-1]
	} else if strings.HasPrefix(s, "=") {
		s = s[1:]
	}

	s = strings.Trim(s, `"'`)

	return strings.TrimSpace(s)
}

// cleanNumber strips currency symbols and thousands separators and converts
// accounting-style negatives "(123.45)" to a leading minus sign.
func cleanNumber(s string) string {
	s = strings.TrimSpace(s)

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, "€", "") // Euro
	s = strings.ReplaceAll(s, "£", "") // Pound
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	if negative {
		s = "-" + s
	}
	return s
}

// ParseCost converts a cell to a decimal cost value.
// Handles currency symbols, thousands separators, and accounting negatives.
// Reports ok=false for empty or non-numeric input.
func ParseCost(s string) (decimal.Decimal, bool) {
	s = cleanNumber(s)
	if s == "" || !numericRegex.MatchString(s) {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// ParseQuantity converts a cell to an integer quantity. Fractional values
// are truncated toward zero ("10.5" becomes 10), matching how the catalogue
// has always coerced quantities. Reports ok=false for empty or non-numeric
// input.
func ParseQuantity(s string) (int64, bool) {
	d, ok := ParseCost(s)
	if !ok {
		return 0, false
	}
	return d.IntPart(), true
}
