package matchstats

import (
	"github.com/riskibarqy/football-performance/internal/platform/table"
)

// NormalizeDate converts a cell to a time value. Strings are parsed with the
// given layouts; anything unparseable becomes null. Numeric cells are not read
// as epoch timestamps and also become null.
func NormalizeDate(v table.Value, layouts []string) table.Value {
	switch v.Kind() {
	case table.KindTime:
		return v
	case table.KindString:
		s, _ := v.Str()
		if ts, ok := table.ParseTime(s, layouts); ok {
			return table.Time(ts)
		}
	}
	return table.Null()
}

// CoerceNumeric converts a cell to a number, or null when it is not one.
func CoerceNumeric(v table.Value) table.Value {
	switch v.Kind() {
	case table.KindNumber:
		return v
	case table.KindString:
		s, _ := v.Str()
		if f, ok := table.ParseNumber(s); ok {
			return table.Number(f)
		}
	}
	return table.Null()
}

// SeasonLabel renders a season cell as a string. Integral numbers print
// without a fraction and missing seasons become UnknownSeason.
func SeasonLabel(v table.Value) table.Value {
	if v.IsNull() {
		return table.String(UnknownSeason)
	}
	if v.Kind() == table.KindString {
		return v
	}
	return table.String(v.Text())
}
