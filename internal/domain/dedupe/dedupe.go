// Package dedupe finds player observations that appear more than once.
//
// A combined dataset is built by concatenating one file per season, so a
// player-year pair normally occurs once. Repeats are reported, never
// removed: every stage keeps operating on all loaded rows.
package dedupe

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/okian/fifaclean/internal/domain/model"
)

// Deduper records seen observation keys. Implementations are safe for
// concurrent use so a table can be scanned in partitions.
type Deduper interface {
	// SeenAndRecord atomically checks if key was seen and records it if not.
	// Returns true if key was already seen, false if it was newly recorded.
	SeenAndRecord(ctx context.Context, key string) bool

	Size() int64
}

type inMemoryDeduper struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

// NewInMemoryDeduper creates an empty in-memory deduper. The expected
// number of keys presizes the set.
func NewInMemoryDeduper(opts ...Option) Deduper {
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &inMemoryDeduper{seen: make(map[string]struct{}, cfg.sizeHint)}
}

func (d *inMemoryDeduper) SeenAndRecord(_ context.Context, key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.seen[key]; exists {
		return true
	}
	d.seen[key] = struct{}{}
	return false
}

func (d *inMemoryDeduper) Size() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return int64(len(d.seen))
}

// Duplicate is a row whose player-year key occurred on an earlier row.
type Duplicate struct {
	Row   int
	First int
	Key   string
}

// ObservationKey joins a player name and observation year.
func ObservationKey(player string, year float64) string {
	return strings.TrimSpace(player) + "|" + strconv.FormatFloat(year, 'f', -1, 64)
}

// FindDuplicates scans t in row order and returns every row that repeats
// the Fullname and year of an earlier row. Rows missing either field are
// skipped. A table without both columns has no duplicates.
func FindDuplicates(ctx context.Context, t *model.Table, opts ...Option) ([]Duplicate, error) {
	if !t.Has(model.ColFullName) || !t.Has(model.ColYear) {
		return nil, nil
	}
	names, _ := t.Column(model.ColFullName)
	years, _ := t.Column(model.ColYear)
	if !years.Kind.Numeric() {
		return nil, nil
	}

	d := NewInMemoryDeduper(append([]Option{WithSizeHint(t.Len())}, opts...)...)
	first := make(map[string]int)
	var out []Duplicate
	for i := 0; i < t.Len(); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		name, year := names.Cells[i], years.Cells[i]
		if !name.Valid || !year.Valid {
			continue
		}
		key := ObservationKey(name.Text, year.Num)
		if d.SeenAndRecord(ctx, key) {
			out = append(out, Duplicate{Row: i, First: first[key], Key: key})
			continue
		}
		first[key] = i
	}
	return out, nil
}
