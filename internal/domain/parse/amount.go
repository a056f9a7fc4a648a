package parse

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// Amount reads a currency-formatted number such as "$1,250,000".
// Currency symbols, grouping commas and spaces are stripped before the
// remainder is parsed as a decimal. Anything else, including "N/A" or an
// empty string, yields an error wrapping ErrUnparseable.
func Amount(s string) (float64, error) {
	cleaned := strings.Map(func(r rune) rune {
		if r == ',' || unicode.IsSpace(r) || unicode.Is(unicode.Sc, r) {
			return -1
		}
		return r
	}, s)
	if cleaned == "" {
		return 0, fmt.Errorf("%w: empty amount %q", ErrUnparseable, s)
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, fmt.Errorf("%w: amount %q", ErrUnparseable, s)
	}
	f, _ := d.Float64()
	return f, nil
}
