// Package impute reconstructs missing player attributes from the other
// rows of the combined dataset.
//
// Every stage takes a table snapshot and returns a new one; the input is
// never modified. Stages run in a fixed order set by the caller and each
// reports what it changed in a Result.
package impute

import (
	"context"
	"fmt"

	"github.com/okian/fifaclean/internal/domain/model"
)

// Result summarises the cells a stage touched, keyed by column name.
type Result struct {
	// Changed counts cells given a new value.
	Changed map[string]int
	// Failed counts present cells that could not be parsed and became absent.
	Failed map[string]int
}

func newResult() Result {
	return Result{Changed: map[string]int{}, Failed: map[string]int{}}
}

// Total returns the number of changed cells across columns.
func (r Result) Total() int {
	n := 0
	for _, v := range r.Changed {
		n += v
	}
	return n
}

// Imputer holds the fill policy shared by the stages.
type Imputer struct {
	goalkeeperPrefix string
	goalkeeperMarker string
	workRateFallback string
}

// New creates an Imputer with configuration options.
func New(opts ...Option) *Imputer {
	im := defaults()
	for _, opt := range opts {
		opt(im)
	}
	return im
}

// ImputeBirthDate fills absent birth dates with the player's first known one.
func (im *Imputer) ImputeBirthDate(_ context.Context, t *model.Table) (*model.Table, Result, error) {
	return fillStage(t, model.ColBirthDate, FirstValid)
}

// ImputePositions fills absent positions with the player's most frequent one.
func (im *Imputer) ImputePositions(_ context.Context, t *model.Table) (*model.Table, Result, error) {
	return fillTextStage(t, model.ColPreferredPositions, MostFrequent)
}

// ImputeWorkRate fills absent work rates with the player's most frequent
// one, or the configured fallback when the player never reports one.
func (im *Imputer) ImputeWorkRate(_ context.Context, t *model.Table) (*model.Table, Result, error) {
	return fillTextStage(t, model.ColWorkRate, MostFrequentOr(im.workRateFallback))
}

// ImputeValue normalizes the value column to numbers and fills absent
// values with the player's mean value.
func (im *Imputer) ImputeValue(_ context.Context, t *model.Table) (*model.Table, Result, error) {
	normalized, res, err := NormalizeValues(t)
	if err != nil {
		return nil, res, err
	}
	out, filled, err := FillByPlayer(normalized, model.ColValue, Mean)
	if err != nil {
		return nil, res, err
	}
	res.Changed[model.ColValue] += filled
	return out, res, nil
}

func fillStage(t *model.Table, column string, reduce Reducer) (*model.Table, Result, error) {
	res := newResult()
	out, filled, err := FillByPlayer(t, column, reduce)
	if err != nil {
		return nil, res, err
	}
	res.Changed[column] = filled
	return out, res, nil
}

// fillTextStage is fillStage for columns holding labels. A label column
// with no present cell loads as float; it is retyped to text first so the
// filled labels are persisted as written.
func fillTextStage(t *model.Table, column string, reduce Reducer) (*model.Table, Result, error) {
	retyped, err := asText(t, column)
	if err != nil {
		return nil, newResult(), err
	}
	return fillStage(retyped, column, reduce)
}

func asText(t *model.Table, column string) (*model.Table, error) {
	src, err := t.Column(column)
	if err != nil {
		return nil, err
	}
	if src.Kind == model.KindText {
		return t, nil
	}
	col := src.Clone()
	col.Kind = model.KindText
	for i, c := range col.Cells {
		if c.Valid {
			col.Cells[i] = model.Text(c.Format(src.Kind))
		}
	}
	out, err := t.WithColumn(col)
	if err != nil {
		return nil, fmt.Errorf("retype %s: %w", column, err)
	}
	return out, nil
}

// FillByPlayer fills the absent cells of column with a per-player
// representative. The first pass groups the present cells by Fullname and
// reduces each group; the second pass writes the representative into that
// player's absent cells. Rows without a Fullname are left untouched, as are
// players for whom reduce reports no representative.
func FillByPlayer(t *model.Table, column string, reduce Reducer) (*model.Table, int, error) {
	names, err := t.Column(model.ColFullName)
	if err != nil {
		return nil, 0, err
	}
	src, err := t.Column(column)
	if err != nil {
		return nil, 0, err
	}

	groups := make(map[string][]model.Cell)
	for i, name := range names.Cells {
		if !name.Valid {
			continue
		}
		g := groups[name.Text]
		if cell := src.Cells[i]; cell.Valid {
			g = append(g, cell)
		}
		groups[name.Text] = g
	}

	reps := make(map[string]model.Cell, len(groups))
	for name, cells := range groups {
		if rep, ok := reduce(cells); ok {
			reps[name] = rep
		}
	}

	col := src.Clone()
	filled := 0
	for i, cell := range col.Cells {
		if cell.Valid || !names.Cells[i].Valid {
			continue
		}
		if rep, ok := reps[names.Cells[i].Text]; ok {
			col.Cells[i] = rep
			filled++
		}
	}
	if filled == 0 {
		return t, 0, nil
	}

	out, err := t.WithColumn(col)
	if err != nil {
		return nil, 0, fmt.Errorf("fill %s: %w", column, err)
	}
	return out, filled, nil
}
