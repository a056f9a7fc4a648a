package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/okian/fifaclean/internal/domain/model"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "players.csv")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestCSVStore_LoadInfersKinds(t *testing.T) {
	ctx := context.Background()
	path := writeFile(t, strings.Join([]string{
		"Fullname,year,value,pace,gk_diving,birth_date,empty",
		`Lionel Messi,2016,"$1,250,000",90,,24/06/1987,`,
		"Lionel Messi,2017,N/A,88.5,6,,NA",
		"Manuel Neuer,2017,$900,40,,1986-03-27,",
	}, "\n"))

	tbl, err := NewCSVStore(path).Load(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tbl.Len() != 3 {
		t.Fatalf("expected 3 rows, got %d", tbl.Len())
	}

	want := map[string]model.Kind{
		"Fullname":   model.KindText,
		"year":       model.KindInt,
		"value":      model.KindText,
		"pace":       model.KindFloat,
		"gk_diving":  model.KindFloat,
		"birth_date": model.KindText,
		"empty":      model.KindFloat,
	}
	for name, kind := range want {
		col, err := tbl.Column(name)
		if err != nil {
			t.Fatalf("column %s: %v", name, err)
		}
		if col.Kind != kind {
			t.Errorf("column %s: expected kind %s, got %s", name, kind, col.Kind)
		}
	}

	value, _ := tbl.Column("value")
	if value.Cells[0].Text != "$1,250,000" {
		t.Errorf("expected raw value text, got %q", value.Cells[0].Text)
	}
	if value.Cells[1].Valid {
		t.Error("expected N/A to load as absent")
	}

	diving, _ := tbl.Column("gk_diving")
	if diving.Nulls() != 2 || diving.Cells[1].Num != 6 {
		t.Errorf("unexpected gk_diving cells: %+v", diving.Cells)
	}
}

func TestCSVStore_LoadPadsShortRows(t *testing.T) {
	path := writeFile(t, "Fullname,year,work_rate\nA,2016\n")

	tbl, err := NewCSVStore(path).Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rates, _ := tbl.Column("work_rate")
	if rates.Cells[0].Valid {
		t.Error("expected missing trailing field to be absent")
	}
}

func TestCSVStore_LoadErrors(t *testing.T) {
	ctx := context.Background()

	if _, err := NewCSVStore(filepath.Join(t.TempDir(), "missing.csv")).Load(ctx); !errors.Is(err, ErrRead) {
		t.Errorf("expected ErrRead for missing file, got %v", err)
	}

	if _, err := NewCSVStore(writeFile(t, "")).Load(ctx); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput, got %v", err)
	}

	if _, err := NewCSVStore(writeFile(t, "a,b\n1,2,3\n")).Load(ctx); !errors.Is(err, ErrMalformed) {
		t.Errorf("expected ErrMalformed, got %v", err)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := NewCSVStore(writeFile(t, "a\n1\n")).Load(cancelled); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestCSVStore_DuplicateHeaders(t *testing.T) {
	tbl, err := NewCSVStore(writeFile(t, "x,x,x\n1,2,3\n")).Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := strings.Join(tbl.Names(), ",")
	if got != "x,x.1,x.2" {
		t.Errorf("expected renamed headers, got %s", got)
	}
}

func TestCSVStore_SaveRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "out.csv")

	names := model.NewColumn("Fullname", model.KindText, []model.Cell{model.Text("A, Jr."), model.Text("B")})
	ages := model.NewColumn("age", model.KindFloat, []model.Cell{model.Number(26), model.Null()})
	tbl, err := model.NewTable(names, ages)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	store := NewCSVStore(path)
	if err := store.Save(ctx, tbl); err != nil {
		t.Fatalf("save: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if want := "Fullname,age\n\"A, Jr.\",26\nB,\n"; string(raw) != want {
		t.Errorf("unexpected file content:\n%s\nwant:\n%s", raw, want)
	}

	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	age, _ := loaded.Column("age")
	if age.Kind != model.KindFloat || age.Cells[0].Num != 26 || age.Cells[1].Valid {
		t.Errorf("unexpected age after round trip: %+v", age)
	}
}

func TestCSVStore_Delimiter(t *testing.T) {
	path := writeFile(t, "a;b\n1;x\n")

	tbl, err := NewCSVStore(path, WithDelimiter(';')).Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tbl.Len() != 1 || len(tbl.Names()) != 2 {
		t.Errorf("unexpected shape: %v rows, %v", tbl.Len(), tbl.Names())
	}
}

func TestCSVStore_SaveToMissingDirectory(t *testing.T) {
	tbl, _ := model.NewTable()
	path := filepath.Join(t.TempDir(), "nope", "out.csv")
	if err := NewCSVStore(path).Save(context.Background(), tbl); !errors.Is(err, ErrWrite) {
		t.Errorf("expected ErrWrite, got %v", err)
	}
}

func TestCSVStore_CustomNullTokens(t *testing.T) {
	path := writeFile(t, "work_rate\nNA\n-\n")

	tbl, err := NewCSVStore(path, WithNullTokens([]string{"", "-"})).Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	col, _ := tbl.Column("work_rate")
	if !col.Cells[0].Valid || col.Cells[0].Text != "NA" {
		t.Errorf("expected NA to be kept as text, got %+v", col.Cells[0])
	}
	if col.Cells[1].Valid {
		t.Error("expected - to load as absent")
	}
}
