package table

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

var valueComparer = cmp.Comparer(func(a, b Value) bool { return a.Equal(b) })

func mustNew(t *testing.T, columns []string, rows [][]Value) Table {
	t.Helper()
	out, err := New(columns, rows)
	if err != nil {
		t.Fatalf("build table: %v", err)
	}
	return out
}

func TestNew_StructuralErrors(t *testing.T) {
	t.Parallel()

	if _, err := New([]string{"a", "a"}, nil); !errors.Is(err, ErrDuplicateColumn) {
		t.Fatalf("expected ErrDuplicateColumn, got %v", err)
	}
	if _, err := New([]string{"a", " "}, nil); !errors.Is(err, ErrInvalidTable) {
		t.Fatalf("expected ErrInvalidTable, got %v", err)
	}
	if _, err := New([]string{"a", "b"}, [][]Value{{Int(1)}}); !errors.Is(err, ErrColumnMismatch) {
		t.Fatalf("expected ErrColumnMismatch, got %v", err)
	}
	if (Table{}).Valid() {
		t.Fatalf("zero table must not be valid")
	}
}

func TestReindex_FillsMissingAndDropsExtra(t *testing.T) {
	t.Parallel()

	in := mustNew(t, []string{"b", "extra", "a"}, [][]Value{
		{String("b1"), Int(9), String("a1")},
		{String("b2"), Int(9), String("a2")},
	})

	out, err := in.Reindex("a", "b", "c")
	if err != nil {
		t.Fatalf("reindex: %v", err)
	}

	if diff := cmp.Diff([]string{"a", "b", "c"}, out.Columns()); diff != "" {
		t.Fatalf("unexpected columns (-want +got):\n%s", diff)
	}
	got, _ := out.Column("c")
	if diff := cmp.Diff([]Value{Null(), Null()}, got, valueComparer); diff != "" {
		t.Fatalf("unexpected filled column (-want +got):\n%s", diff)
	}
	if got := out.At(1, "a"); !got.Equal(String("a2")) {
		t.Fatalf("unexpected cell: got=%v want=a2", got)
	}
	if !in.Has("extra") {
		t.Fatalf("reindex must not modify its receiver")
	}
}

func TestWithColumn_DoesNotAliasInput(t *testing.T) {
	t.Parallel()

	in := mustNew(t, []string{"a"}, [][]Value{{Int(1)}, {Int(2)}})
	values := []Value{String("x"), String("y")}

	out, err := in.WithColumn("b", values)
	if err != nil {
		t.Fatalf("with column: %v", err)
	}
	values[0] = String("mutated")

	if got := out.At(0, "b"); !got.Equal(String("x")) {
		t.Fatalf("table aliased caller slice: got=%v", got)
	}
	if in.Has("b") {
		t.Fatalf("with column must not modify its receiver")
	}
	if _, err := in.WithColumn("c", []Value{Int(1)}); !errors.Is(err, ErrColumnMismatch) {
		t.Fatalf("expected ErrColumnMismatch, got %v", err)
	}
}

func TestMapColumn(t *testing.T) {
	t.Parallel()

	in := mustNew(t, []string{"n"}, [][]Value{{Int(1)}, {Int(2)}})
	double := func(v Value) Value {
		f, _ := v.Float()
		return Number(f * 2)
	}

	out := in.MapColumn("n", double)
	if got := out.At(1, "n"); !got.Equal(Int(4)) {
		t.Fatalf("unexpected mapped value: got=%v want=4", got)
	}
	if got := in.At(1, "n"); !got.Equal(Int(2)) {
		t.Fatalf("map column modified its receiver: got=%v", got)
	}
	if same := in.MapColumn("missing", double); same.NumColumns() != 1 {
		t.Fatalf("mapping a missing column must be a no-op")
	}
}

func TestConcat(t *testing.T) {
	t.Parallel()

	a := mustNew(t, []string{"x", "y"}, [][]Value{{Int(1), String("a")}})
	b := mustNew(t, []string{"x", "y"}, [][]Value{{Int(2), String("b")}, {Int(3), String("c")}})

	out, err := Concat(a, b)
	if err != nil {
		t.Fatalf("concat: %v", err)
	}
	if out.NumRows() != 3 {
		t.Fatalf("unexpected row count: got=%d want=3", out.NumRows())
	}
	got, _ := out.Column("y")
	want := []Value{String("a"), String("b"), String("c")}
	if diff := cmp.Diff(want, got, valueComparer); diff != "" {
		t.Fatalf("unexpected concat order (-want +got):\n%s", diff)
	}

	swapped := mustNew(t, []string{"y", "x"}, nil)
	if _, err := Concat(a, swapped); !errors.Is(err, ErrColumnMismatch) {
		t.Fatalf("expected ErrColumnMismatch, got %v", err)
	}
	if _, err := Concat(a, Table{}); !errors.Is(err, ErrInvalidTable) {
		t.Fatalf("expected ErrInvalidTable, got %v", err)
	}
}

func TestFilterAndHead(t *testing.T) {
	t.Parallel()

	in := mustNew(t, []string{"season"}, [][]Value{
		{String("2023")}, {String("2024")}, {String("2023")},
	})

	out := in.Filter(func(r Row) bool { return r.Get("season").Text() == "2023" })
	if out.NumRows() != 2 {
		t.Fatalf("unexpected filtered rows: got=%d want=2", out.NumRows())
	}
	if got := in.Head(10).NumRows(); got != 3 {
		t.Fatalf("unexpected head rows: got=%d want=3", got)
	}
	if got := in.Head(1).At(0, "season"); !got.Equal(String("2023")) {
		t.Fatalf("unexpected head value: got=%v", got)
	}
}

func TestValueText(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   Value
		want string
	}{
		{name: "null", in: Null(), want: ""},
		{name: "integral number", in: Number(2024), want: "2024"},
		{name: "fraction", in: Number(1.25), want: "1.25"},
		{name: "nan is null", in: Number(math.NaN()), want: ""},
		{name: "date", in: Time(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)), want: "2024-01-02"},
		{name: "datetime", in: Time(time.Date(2024, 1, 2, 18, 30, 0, 0, time.UTC)), want: "2024-01-02T18:30:00Z"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.in.Text(); got != tc.want {
				t.Fatalf("unexpected text: got=%q want=%q", got, tc.want)
			}
		})
	}
}

func TestDecodeCSV(t *testing.T) {
	t.Parallel()

	raw := strings.Join([]string{
		"date,season,home_team,home_goals,away_goals",
		"2024-01-01,2024,A,2,N/A",
		"not-a-date,2024,B,,1",
	}, "\n")

	got, err := DecodeCSV(strings.NewReader(raw), CSVOptions{})
	if err != nil {
		t.Fatalf("decode csv: %v", err)
	}
	if got.NumRows() != 2 {
		t.Fatalf("unexpected rows: got=%d want=2", got.NumRows())
	}
	if ts, ok := got.At(0, "date").Time(); !ok || !ts.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected parsed date: %v", got.At(0, "date"))
	}
	if !got.At(1, "date").IsNull() {
		t.Fatalf("unparseable date must be null, got %v", got.At(1, "date"))
	}
	if !got.At(0, "home_goals").Equal(Int(2)) {
		t.Fatalf("expected numeric goals, got %v", got.At(0, "home_goals"))
	}
	if !got.At(0, "away_goals").IsNull() || !got.At(1, "home_goals").IsNull() {
		t.Fatalf("missing tokens must decode as null")
	}
	if !got.At(0, "home_team").Equal(String("A")) {
		t.Fatalf("unexpected team cell: %v", got.At(0, "home_team"))
	}
}

func TestDecodeCSV_EmptyInput(t *testing.T) {
	t.Parallel()

	got, err := DecodeCSV(strings.NewReader(""), CSVOptions{})
	if err != nil {
		t.Fatalf("decode empty csv: %v", err)
	}
	if !got.Valid() || got.NumColumns() != 0 || got.NumRows() != 0 {
		t.Fatalf("expected a valid empty table, got columns=%v rows=%d", got.Columns(), got.NumRows())
	}
}

func TestEncodeCSV_RoundTripText(t *testing.T) {
	t.Parallel()

	in := mustNew(t, []string{"date", "team", "xG"}, [][]Value{
		{Time(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)), String("A"), Null()},
		{Null(), String("B, FC"), Number(1.5)},
	})

	var buf strings.Builder
	if err := EncodeCSV(&buf, in); err != nil {
		t.Fatalf("encode csv: %v", err)
	}

	want := "date,team,xG\n2024-01-01,A,\n,\"B, FC\",1.5\n"
	if buf.String() != want {
		t.Fatalf("unexpected csv:\nwant: %q\ngot:  %q", want, buf.String())
	}
}
