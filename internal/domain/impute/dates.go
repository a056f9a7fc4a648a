package impute

import (
	"context"
	"fmt"

	"github.com/okian/fifaclean/internal/domain/model"
	"github.com/okian/fifaclean/internal/domain/parse"
)

// NormalizeDates parses the birth_date column into date cells. Values that
// cannot be parsed become absent and are counted in Result.Failed.
func (im *Imputer) NormalizeDates(_ context.Context, t *model.Table) (*model.Table, Result, error) {
	res := newResult()
	src, err := t.Column(model.ColBirthDate)
	if err != nil {
		return nil, res, err
	}

	col := model.NewColumn(src.Name, model.KindDate, make([]model.Cell, len(src.Cells)))
	for i, cell := range src.Cells {
		if !cell.Valid {
			continue
		}
		d, err := parse.Date(cell.Text)
		if err != nil {
			res.Failed[src.Name]++
			continue
		}
		col.Cells[i] = model.Date(d)
	}

	out, err := t.WithColumn(col)
	if err != nil {
		return nil, res, fmt.Errorf("normalize dates: %w", err)
	}
	return out, res, nil
}

// DeriveAge computes age as the observation year minus the birth year,
// without month or day correction. Rows missing either input get an absent
// age. It runs before birth dates are imputed, so ages of rows whose birth
// date is recovered later stay absent here.
func (im *Imputer) DeriveAge(_ context.Context, t *model.Table) (*model.Table, Result, error) {
	res := newResult()
	years, err := t.Column(model.ColYear)
	if err != nil {
		return nil, res, err
	}
	if !years.Kind.Numeric() {
		return nil, res, fmt.Errorf("%w: %s is %s", ErrNotNumeric, years.Name, years.Kind)
	}
	births, err := t.Column(model.ColBirthDate)
	if err != nil {
		return nil, res, err
	}

	col := model.NewColumn(model.ColAge, model.KindFloat, make([]model.Cell, t.Len()))
	for i := range col.Cells {
		year, birth := years.Cells[i], births.Cells[i]
		if !year.Valid || !birth.Valid {
			continue
		}
		born := birth.Time
		if births.Kind != model.KindDate {
			if born, err = parse.Date(birth.Text); err != nil {
				continue
			}
		}
		col.Cells[i] = model.Number(float64(int(year.Num) - born.Year()))
		res.Changed[model.ColAge]++
	}

	out, err := t.WithColumn(col)
	if err != nil {
		return nil, res, fmt.Errorf("derive age: %w", err)
	}
	return out, res, nil
}
