// Package model contains the table types passed between pipeline stages.
package model

import (
	"strconv"
	"time"
)

// DateLayout is the canonical rendering of date cells.
const DateLayout = "2006-01-02"

// Kind is the declared type of a column.
type Kind uint8

// Column kinds.
const (
	KindText Kind = iota
	KindInt
	KindFloat
	KindDate
)

// String returns the data type name shown in null reports.
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindDate:
		return "date"
	default:
		return "text"
	}
}

// Numeric reports whether cells of this kind carry a number.
func (k Kind) Numeric() bool {
	return k == KindInt || k == KindFloat
}

// Cell is a nullable table value. A cell with Valid unset is absent,
// which is distinct from zero and from the empty string.
type Cell struct {
	Text  string    // raw or rendered text
	Num   float64   // set for numeric cells
	Time  time.Time // set for date cells
	Valid bool
}

// Null returns an absent cell.
func Null() Cell { return Cell{} }

// Text returns a present text cell.
func Text(s string) Cell { return Cell{Text: s, Valid: true} }

// Number returns a present numeric cell. Text carries the shortest
// decimal rendering so the cell also reads correctly in a text column.
func Number(f float64) Cell {
	return Cell{Text: FormatFloat(f), Num: f, Valid: true}
}

// Date returns a present date cell truncated to the calendar day.
func Date(t time.Time) Cell {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return Cell{Text: d.Format(DateLayout), Time: d, Valid: true}
}

// Format renders the cell for a column of the given kind. Absent cells
// render as the empty string.
func (c Cell) Format(k Kind) string {
	if !c.Valid {
		return ""
	}
	switch k {
	case KindInt, KindFloat:
		return FormatFloat(c.Num)
	case KindDate:
		return c.Time.Format(DateLayout)
	default:
		return c.Text
	}
}

// FormatFloat renders f with the fewest digits that round-trip.
func FormatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
