// Package parse reads the loosely formatted scalar values found in the raw
// player dataset.
package parse

import (
	"fmt"
	"strings"
	"time"
)

// dateLayouts are tried in order. Numeric forms put the day before the
// month; year-first forms are unambiguous and accepted as-is.
var dateLayouts = []string{
	"2006-01-02",
	"2006-1-2",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2006/01/02",
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"2-1-2006",
	"02.01.2006",
	"2.1.2006",
	"02/01/06",
	"2/1/06",
	"02-01-06",
	"2 Jan 2006",
	"2 January 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2-Jan-2006",
}

// Date parses a birth date written in any of the supported layouts,
// reading ambiguous numeric dates day-first. Unparseable input returns an
// error wrapping ErrUnparseable; it never panics.
func Date(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty date", ErrUnparseable)
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: date %q", ErrUnparseable, s)
}
