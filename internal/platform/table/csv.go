package table

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
)

// CSVOptions controls DecodeCSV.
type CSVOptions struct {
	// Comma is the field delimiter; 0 means ','.
	Comma rune
	// DateColumns are parsed as times. Nil means {"date"}.
	DateColumns []string
	DateLayouts []string
	// KeepStrings disables numeric inference for non-date cells.
	KeepStrings bool
}

// DecodeCSV reads a header row followed by data rows. Missing tokens become
// null, date columns become times (null when unparseable), and other cells
// become numbers when they parse as one.
func DecodeCSV(r io.Reader, opts CSVOptions) (Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	if opts.Comma != 0 {
		reader.Comma = opts.Comma
	}

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return New(nil, nil)
	}
	if err != nil {
		return Table{}, errors.Wrap(err, "read csv header")
	}
	columns := make([]string, len(header))
	for i, name := range header {
		columns[i] = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
	}

	dateColumns := opts.DateColumns
	if dateColumns == nil {
		dateColumns = []string{"date"}
	}
	isDate := make(map[string]bool, len(dateColumns))
	for _, name := range dateColumns {
		isDate[name] = true
	}

	var rows [][]Value
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Table{}, errors.Wrapf(err, "read csv line %d", line)
		}
		if len(record) > len(columns) {
			return Table{}, errors.Wrapf(ErrColumnMismatch, "csv line %d has %d fields, header has %d", line, len(record), len(columns))
		}

		row := make([]Value, len(columns))
		for c := range columns {
			if c >= len(record) {
				continue
			}
			row[c] = decodeCell(record[c], isDate[columns[c]], opts)
		}
		rows = append(rows, row)
	}

	t, err := New(columns, rows)
	if err != nil {
		return Table{}, errors.Wrap(err, "build table from csv")
	}
	return t, nil
}

func decodeCell(raw string, date bool, opts CSVOptions) Value {
	if IsMissingToken(raw) {
		return Null()
	}
	if date {
		if ts, ok := ParseTime(raw, opts.DateLayouts); ok {
			return Time(ts)
		}
		return Null()
	}
	if !opts.KeepStrings {
		if f, ok := ParseNumber(raw); ok {
			return Number(f)
		}
	}
	return String(raw)
}

// EncodeCSV writes t with a header row. Null cells are written empty.
func EncodeCSV(w io.Writer, t Table) error {
	if !t.Valid() {
		return errors.Wrap(ErrInvalidTable, "encode csv")
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(t.names); err != nil {
		return errors.Wrap(err, "write csv header")
	}
	record := make([]string, len(t.names))
	for i := 0; i < t.rows; i++ {
		for c := range t.names {
			record[c] = t.data[c][i].Text()
		}
		if err := writer.Write(record); err != nil {
			return errors.Wrapf(err, "write csv row %d", i)
		}
	}
	writer.Flush()
	return errors.Wrap(writer.Error(), "flush csv")
}
