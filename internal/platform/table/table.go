// Package table is a small immutable, column-ordered in-memory table used to
// move match data between loaders, the reshaper and presentation code.
//
// Every operation returns a new Table and never shares writable storage with
// its receiver, so a Table can be handed to concurrent readers freely.
package table

import (
	"strings"

	"github.com/cockroachdb/errors"
)

var (
	ErrInvalidTable    = errors.New("invalid table")
	ErrDuplicateColumn = errors.New("duplicate column")
	ErrColumnMismatch  = errors.New("column mismatch")
	ErrUnknownColumn   = errors.New("unknown column")
)

// Table stores cells column-major. The zero Table is not a valid table; build
// one with New or FromColumns.
type Table struct {
	names []string
	index map[string]int
	data  [][]Value
	rows  int
}

// New builds a table from row-major data. Every row must have exactly one
// value per column.
func New(columns []string, rows [][]Value) (Table, error) {
	index, err := buildIndex(columns)
	if err != nil {
		return Table{}, err
	}

	data := make([][]Value, len(columns))
	for c := range data {
		data[c] = make([]Value, len(rows))
	}
	for r, row := range rows {
		if len(row) != len(columns) {
			return Table{}, errors.Wrapf(ErrColumnMismatch, "row %d has %d values, expected %d", r, len(row), len(columns))
		}
		for c, v := range row {
			data[c][r] = v
		}
	}

	return Table{
		names: append([]string{}, columns...),
		index: index,
		data:  data,
		rows:  len(rows),
	}, nil
}

// FromColumns builds a table from column-major data. All columns must have the
// same length.
func FromColumns(columns []string, data [][]Value) (Table, error) {
	if len(columns) != len(data) {
		return Table{}, errors.Wrapf(ErrColumnMismatch, "%d column names for %d columns", len(columns), len(data))
	}
	index, err := buildIndex(columns)
	if err != nil {
		return Table{}, err
	}

	rows := 0
	if len(data) > 0 {
		rows = len(data[0])
	}
	copied := make([][]Value, len(data))
	for c, values := range data {
		if len(values) != rows {
			return Table{}, errors.Wrapf(ErrColumnMismatch, "column %q has %d values, expected %d", columns[c], len(values), rows)
		}
		copied[c] = append(make([]Value, 0, rows), values...)
	}

	return Table{
		names: append([]string{}, columns...),
		index: index,
		data:  copied,
		rows:  rows,
	}, nil
}

func buildIndex(columns []string) (map[string]int, error) {
	index := make(map[string]int, len(columns))
	for i, name := range columns {
		if strings.TrimSpace(name) == "" {
			return nil, errors.Wrapf(ErrInvalidTable, "column %d has an empty name", i)
		}
		if _, exists := index[name]; exists {
			return nil, errors.Wrapf(ErrDuplicateColumn, "%q", name)
		}
		index[name] = i
	}
	return index, nil
}

// Valid reports whether t was built through a constructor.
func (t Table) Valid() bool {
	return t.index != nil
}

func (t Table) Columns() []string {
	return append([]string{}, t.names...)
}

func (t Table) NumRows() int {
	return t.rows
}

func (t Table) NumColumns() int {
	return len(t.names)
}

func (t Table) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Column returns a copy of the named column.
func (t Table) Column(name string) ([]Value, bool) {
	c, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return append(make([]Value, 0, t.rows), t.data[c]...), true
}

// At returns the cell at row i of the named column, or null when either is
// out of range.
func (t Table) At(i int, name string) Value {
	c, ok := t.index[name]
	if !ok || i < 0 || i >= t.rows {
		return Null()
	}
	return t.data[c][i]
}

// Row is a read-only cursor over one row of a table.
type Row struct {
	t *Table
	i int
}

func (t Table) Row(i int) Row {
	return Row{t: &t, i: i}
}

func (r Row) Index() int {
	return r.i
}

func (r Row) Get(name string) Value {
	return r.t.At(r.i, name)
}

// Reindex returns a table with exactly the given columns in the given order.
// Columns missing from t are added null-filled; columns not listed are dropped.
func (t Table) Reindex(columns ...string) (Table, error) {
	if !t.Valid() {
		return Table{}, errors.Wrap(ErrInvalidTable, "reindex")
	}
	data := make([][]Value, len(columns))
	for i, name := range columns {
		if values, ok := t.Column(name); ok {
			data[i] = values
			continue
		}
		data[i] = make([]Value, t.rows)
	}
	return FromColumns(columns, data)
}

// Select returns the listed columns, failing on unknown names.
func (t Table) Select(columns ...string) (Table, error) {
	for _, name := range columns {
		if !t.Has(name) {
			return Table{}, errors.Wrapf(ErrUnknownColumn, "%q", name)
		}
	}
	return t.Reindex(columns...)
}

// WithColumn replaces the named column, or appends it when absent.
func (t Table) WithColumn(name string, values []Value) (Table, error) {
	if !t.Valid() {
		return Table{}, errors.Wrap(ErrInvalidTable, "with column")
	}
	if len(values) != t.rows {
		return Table{}, errors.Wrapf(ErrColumnMismatch, "column %q has %d values, expected %d", name, len(values), t.rows)
	}

	names := t.Columns()
	data := make([][]Value, len(t.data), len(t.data)+1)
	copy(data, t.data)
	if c, ok := t.index[name]; ok {
		data[c] = values
	} else {
		names = append(names, name)
		data = append(data, values)
	}
	return FromColumns(names, data)
}

// WithConstant sets every row of the named column to v.
func (t Table) WithConstant(name string, v Value) (Table, error) {
	values := make([]Value, t.rows)
	for i := range values {
		values[i] = v
	}
	return t.WithColumn(name, values)
}

// MapColumn applies fn to every cell of the named column. A missing column
// leaves the table unchanged.
func (t Table) MapColumn(name string, fn func(Value) Value) Table {
	values, ok := t.Column(name)
	if !ok {
		return t
	}
	for i, v := range values {
		values[i] = fn(v)
	}
	out, err := t.WithColumn(name, values)
	if err != nil {
		return t
	}
	return out
}

// Rename changes a column name, keeping its position.
func (t Table) Rename(from, to string) (Table, error) {
	c, ok := t.index[from]
	if !ok {
		return Table{}, errors.Wrapf(ErrUnknownColumn, "%q", from)
	}
	names := t.Columns()
	names[c] = to
	return FromColumns(names, t.data)
}

// Filter keeps the rows for which keep returns true, preserving order.
func (t Table) Filter(keep func(Row) bool) Table {
	if !t.Valid() {
		return t
	}
	selected := make([]int, 0, t.rows)
	for i := 0; i < t.rows; i++ {
		if keep(t.Row(i)) {
			selected = append(selected, i)
		}
	}
	return t.take(selected)
}

// Head returns at most the first n rows.
func (t Table) Head(n int) Table {
	if n < 0 {
		n = 0
	}
	if n > t.rows {
		n = t.rows
	}
	selected := make([]int, n)
	for i := range selected {
		selected[i] = i
	}
	return t.take(selected)
}

func (t Table) take(rows []int) Table {
	data := make([][]Value, len(t.data))
	for c, values := range t.data {
		picked := make([]Value, len(rows))
		for j, r := range rows {
			picked[j] = values[r]
		}
		data[c] = picked
	}
	return Table{
		names: t.Columns(),
		index: t.index,
		data:  data,
		rows:  len(rows),
	}
}

// Concat stacks tables vertically. All tables must share the same columns in
// the same order; rows keep their order, table by table.
func Concat(tables ...Table) (Table, error) {
	if len(tables) == 0 {
		return New(nil, nil)
	}
	first := tables[0]
	if !first.Valid() {
		return Table{}, errors.Wrap(ErrInvalidTable, "concat table 0")
	}

	total := 0
	for i, t := range tables {
		if !t.Valid() {
			return Table{}, errors.Wrapf(ErrInvalidTable, "concat table %d", i)
		}
		if !sameColumns(first.names, t.names) {
			return Table{}, errors.Wrapf(ErrColumnMismatch, "concat table %d columns %v, expected %v", i, t.names, first.names)
		}
		total += t.rows
	}

	data := make([][]Value, len(first.names))
	for c := range data {
		merged := make([]Value, 0, total)
		for _, t := range tables {
			merged = append(merged, t.data[c]...)
		}
		data[c] = merged
	}
	return FromColumns(first.names, data)
}

func sameColumns(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
