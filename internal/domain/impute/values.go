package impute

import (
	"fmt"

	"github.com/okian/fifaclean/internal/domain/model"
	"github.com/okian/fifaclean/internal/domain/parse"
)

// NormalizeValues converts the value column into numbers using
// parse.Amount. Unparseable cells become absent and are counted in
// Result.Failed.
func NormalizeValues(t *model.Table) (*model.Table, Result, error) {
	res := newResult()
	src, err := t.Column(model.ColValue)
	if err != nil {
		return nil, res, err
	}

	col := model.NewColumn(src.Name, model.KindFloat, make([]model.Cell, len(src.Cells)))
	for i, cell := range src.Cells {
		if !cell.Valid {
			continue
		}
		v, err := parse.Amount(cell.Text)
		if err != nil {
			res.Failed[src.Name]++
			continue
		}
		col.Cells[i] = model.Number(v)
	}

	out, err := t.WithColumn(col)
	if err != nil {
		return nil, res, fmt.Errorf("normalize values: %w", err)
	}
	return out, res, nil
}
