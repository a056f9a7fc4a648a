package model

import "fmt"

// Column is a named, typed sequence of cells.
type Column struct {
	Name  string
	Kind  Kind
	Cells []Cell
}

// NewColumn creates a column. The cells slice is owned by the column.
func NewColumn(name string, kind Kind, cells []Cell) *Column {
	return &Column{Name: name, Kind: kind, Cells: cells}
}

// Clone returns a deep copy that can be modified without affecting c.
func (c *Column) Clone() *Column {
	cells := make([]Cell, len(c.Cells))
	copy(cells, c.Cells)
	return &Column{Name: c.Name, Kind: c.Kind, Cells: cells}
}

// Nulls counts absent cells.
func (c *Column) Nulls() int {
	n := 0
	for _, cell := range c.Cells {
		if !cell.Valid {
			n++
		}
	}
	return n
}

// Numbers returns the numeric payload of every present cell in order.
func (c *Column) Numbers() []float64 {
	out := make([]float64, 0, len(c.Cells))
	for _, cell := range c.Cells {
		if cell.Valid {
			out = append(out, cell.Num)
		}
	}
	return out
}

// Table is an ordered set of equal-length columns; row i across all
// columns is one player-year observation.
//
// A Table is a snapshot: columns reachable from it are never modified in
// place. Stages clone the columns they change and publish them through
// WithColumn, which returns a new Table sharing the untouched columns.
type Table struct {
	columns []*Column
	index   map[string]int
	rows    int
}

// NewTable builds a table from columns of equal length.
func NewTable(columns ...*Column) (*Table, error) {
	t := &Table{
		columns: make([]*Column, 0, len(columns)),
		index:   make(map[string]int, len(columns)),
		rows:    -1,
	}
	for _, col := range columns {
		if _, dup := t.index[col.Name]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateColumn, col.Name)
		}
		if t.rows >= 0 && len(col.Cells) != t.rows {
			return nil, fmt.Errorf("%w: %s has %d rows, want %d", ErrLengthMismatch, col.Name, len(col.Cells), t.rows)
		}
		t.rows = len(col.Cells)
		t.index[col.Name] = len(t.columns)
		t.columns = append(t.columns, col)
	}
	if t.rows < 0 {
		t.rows = 0
	}
	return t, nil
}

// Len returns the number of rows.
func (t *Table) Len() int { return t.rows }

// Columns returns the columns in schema order.
func (t *Table) Columns() []*Column {
	out := make([]*Column, len(t.columns))
	copy(out, t.columns)
	return out
}

// Names returns the column names in schema order.
func (t *Table) Names() []string {
	out := make([]string, len(t.columns))
	for i, c := range t.columns {
		out[i] = c.Name
	}
	return out
}

// Has reports whether the table has a column named name.
func (t *Table) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Column returns the named column. Callers must Clone it before editing.
func (t *Table) Column(name string) (*Column, error) {
	i, ok := t.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrColumnNotFound, name)
	}
	return t.columns[i], nil
}

// WithColumn returns a new table where col replaces the column of the
// same name, or is appended when no such column exists.
func (t *Table) WithColumn(col *Column) (*Table, error) {
	if len(t.columns) > 0 && len(col.Cells) != t.rows {
		return nil, fmt.Errorf("%w: %s has %d rows, want %d", ErrLengthMismatch, col.Name, len(col.Cells), t.rows)
	}
	columns := make([]*Column, len(t.columns), len(t.columns)+1)
	copy(columns, t.columns)
	if i, ok := t.index[col.Name]; ok {
		columns[i] = col
	} else {
		columns = append(columns, col)
	}
	return NewTable(columns...)
}

// Row returns the cells of row i in schema order.
func (t *Table) Row(i int) []Cell {
	row := make([]Cell, len(t.columns))
	for j, c := range t.columns {
		row[j] = c.Cells[i]
	}
	return row
}
