package impute

import (
	"context"
	"fmt"
	"strings"

	"github.com/okian/fifaclean/internal/domain/model"
)

// IsGoalkeeper reports whether a preferred_positions cell names a
// goalkeeper. Absent positions do not.
func (im *Imputer) IsGoalkeeper(positions model.Cell) bool {
	if !positions.Valid {
		return false
	}
	return strings.Contains(strings.ToLower(positions.Text), strings.ToLower(im.goalkeeperMarker))
}

// ResetGoalkeeperFields sets every goalkeeper attribute to exactly 0 on rows
// that are not goalkeepers, overwriting present and imputed values alike.
// Rows without preferred_positions count as outfield players.
func (im *Imputer) ResetGoalkeeperFields(_ context.Context, t *model.Table) (*model.Table, Result, error) {
	res := newResult()

	outfield := make([]bool, t.Len())
	if positions, err := t.Column(model.ColPreferredPositions); err == nil {
		for i, cell := range positions.Cells {
			outfield[i] = !im.IsGoalkeeper(cell)
		}
	} else {
		for i := range outfield {
			outfield[i] = true
		}
	}

	zero := model.Number(0)
	out := t
	for _, src := range t.Columns() {
		if !strings.HasPrefix(src.Name, im.goalkeeperPrefix) {
			continue
		}
		col := src.Clone()
		for i := range col.Cells {
			if !outfield[i] || (col.Cells[i].Valid && col.Cells[i].Num == 0) {
				continue
			}
			col.Cells[i] = zero
			res.Changed[col.Name]++
		}
		var err error
		if out, err = out.WithColumn(col); err != nil {
			return nil, res, fmt.Errorf("reset %s: %w", col.Name, err)
		}
	}
	return out, res, nil
}
