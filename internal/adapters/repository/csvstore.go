package repository

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/okian/fifaclean/internal/domain/model"
)

// ctxCheckEvery is how many records are processed between context checks.
const ctxCheckEvery = 4096

// CSVStore keeps a table in a delimited text file with a header row.
//
// Column kinds are inferred on load: int when every present cell is an
// integer and none is absent, float when every present cell is numeric
// (or the column is entirely absent), text otherwise.
type CSVStore struct {
	path       string
	delimiter  rune
	nullTokens map[string]struct{}
}

// NewCSVStore creates a store for the file at path.
func NewCSVStore(path string, opts ...Option) *CSVStore {
	s := &CSVStore{path: path, delimiter: ','}
	WithNullTokens(DefaultNullTokens)(s)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the backing file path.
func (s *CSVStore) Path() string { return s.path }

// Load reads the file into a table.
func (s *CSVStore) Load(ctx context.Context) (*model.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRead, s.path, err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.Comma = s.delimiter
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %s", ErrEmptyInput, s.path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRead, s.path, err)
	}
	header = uniqueNames(header)

	raw := make([][]string, len(header))
	for n := 1; ; n++ {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrRead, s.path, err)
		}
		if len(rec) > len(header) {
			return nil, fmt.Errorf("%w: %s line %d has %d fields, header has %d", ErrMalformed, s.path, n+1, len(rec), len(header))
		}
		for i := range header {
			v := ""
			if i < len(rec) {
				v = rec[i]
			}
			raw[i] = append(raw[i], v)
		}
		if n%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
	}

	cols := make([]*model.Column, len(header))
	for i, name := range header {
		cols[i] = s.inferColumn(name, raw[i])
	}
	t, err := model.NewTable(cols...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRead, s.path, err)
	}
	return t, nil
}

// Save writes t to the file, replacing any existing content.
func (s *CSVStore) Save(ctx context.Context, t *model.Table) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, s.path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: %s: %w", ErrWrite, s.path, cerr)
		}
	}()

	w := csv.NewWriter(f)
	w.Comma = s.delimiter

	if err := w.Write(t.Names()); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, s.path, err)
	}

	cols := t.Columns()
	rec := make([]string, len(cols))
	for i := 0; i < t.Len(); i++ {
		for j, c := range cols {
			rec[j] = c.Cells[i].Format(c.Kind)
		}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrWrite, s.path, err)
		}
		if (i+1)%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, s.path, err)
	}
	return nil
}

func (s *CSVStore) isNull(v string) bool {
	_, ok := s.nullTokens[v]
	return ok
}

func (s *CSVStore) inferColumn(name string, values []string) *model.Column {
	cells := make([]model.Cell, len(values))
	isInt, isFloat, nulls := true, true, 0

	for i, v := range values {
		if s.isNull(v) {
			nulls++
			continue
		}
		trimmed := strings.TrimSpace(v)
		if n, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
			cells[i] = model.Cell{Text: v, Num: float64(n), Valid: true}
			continue
		}
		isInt = false
		if x, err := strconv.ParseFloat(trimmed, 64); err == nil {
			cells[i] = model.Cell{Text: v, Num: x, Valid: true}
			continue
		}
		isFloat = false
		cells[i] = model.Text(v)
	}

	switch {
	case !isFloat:
		// Numbers seen before the first non-numeric cell keep their text.
		for i, c := range cells {
			if c.Valid {
				cells[i] = model.Text(c.Text)
			}
		}
		return model.NewColumn(name, model.KindText, cells)
	case isInt && nulls == 0 && len(values) > 0:
		return model.NewColumn(name, model.KindInt, cells)
	default:
		return model.NewColumn(name, model.KindFloat, cells)
	}
}

// uniqueNames suffixes repeated header names with ".1", ".2", ...
func uniqueNames(header []string) []string {
	out := make([]string, len(header))
	used := make(map[string]bool, len(header))
	for i, name := range header {
		candidate := name
		for n := 1; used[candidate]; n++ {
			candidate = fmt.Sprintf("%s.%d", name, n)
		}
		used[candidate] = true
		out[i] = candidate
	}
	return out
}
