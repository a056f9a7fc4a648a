package impute

import (
	"github.com/okian/fifaclean/internal/domain/model"
	"gonum.org/v1/gonum/stat"
)

// Reducer picks a player's representative value from the present cells of
// one column, in table order. It reports false when no representative
// exists.
type Reducer func(cells []model.Cell) (model.Cell, bool)

// FirstValid picks the first present cell.
func FirstValid(cells []model.Cell) (model.Cell, bool) {
	if len(cells) == 0 {
		return model.Null(), false
	}
	return cells[0], true
}

// MostFrequent picks the most frequent text. On a tie the value that
// reached the winning count first wins.
func MostFrequent(cells []model.Cell) (model.Cell, bool) {
	counts := make(map[string]int, len(cells))
	best, bestCount := model.Null(), 0
	for _, c := range cells {
		counts[c.Text]++
		if n := counts[c.Text]; n > bestCount {
			best, bestCount = c, n
		}
	}
	return best, bestCount > 0
}

// MostFrequentOr behaves like MostFrequent but yields fallback when there
// is nothing to count.
func MostFrequentOr(fallback string) Reducer {
	return func(cells []model.Cell) (model.Cell, bool) {
		if c, ok := MostFrequent(cells); ok {
			return c, true
		}
		return model.Text(fallback), true
	}
}

// Mean picks the arithmetic mean of the numeric cells.
func Mean(cells []model.Cell) (model.Cell, bool) {
	if len(cells) == 0 {
		return model.Null(), false
	}
	nums := make([]float64, len(cells))
	for i, c := range cells {
		nums[i] = c.Num
	}
	return model.Number(stat.Mean(nums, nil)), true
}
