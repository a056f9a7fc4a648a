package impute

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/okian/fifaclean/internal/domain/model"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"
)

// ImputeGlobalNumeric fills the absent cells of every numeric,
// non-goalkeeper column with that column's mean over the whole table.
// Columns with no present value are left as they are.
func (im *Imputer) ImputeGlobalNumeric(ctx context.Context, t *model.Table) (*model.Table, Result, error) {
	res := newResult()

	var targets []*model.Column
	for _, col := range t.Columns() {
		if !col.Kind.Numeric() || strings.HasPrefix(col.Name, im.goalkeeperPrefix) {
			continue
		}
		if col.Nulls() > 0 {
			targets = append(targets, col)
		}
	}
	if len(targets) == 0 {
		return t, res, nil
	}

	// Means are read-only over shared columns; compute them in parallel.
	means := make([]float64, len(targets))
	defined := make([]bool, len(targets))
	g, gctx := errgroup.WithContext(ctx)
	for i, col := range targets {
		i, col := i, col
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			nums := col.Numbers()
			if len(nums) == 0 {
				return nil
			}
			means[i] = stat.Mean(nums, nil)
			defined[i] = true
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, res, fmt.Errorf("column means: %w", err)
	}

	out := t
	for i, src := range targets {
		if !defined[i] {
			continue
		}
		col := src.Clone()
		fill := model.Number(means[i])
		for j, cell := range col.Cells {
			if !cell.Valid {
				col.Cells[j] = fill
				res.Changed[col.Name]++
			}
		}
		if col.Kind == model.KindInt && means[i] != math.Trunc(means[i]) {
			col.Kind = model.KindFloat
		}
		var err error
		if out, err = out.WithColumn(col); err != nil {
			return nil, res, fmt.Errorf("fill %s: %w", col.Name, err)
		}
	}
	return out, res, nil
}
