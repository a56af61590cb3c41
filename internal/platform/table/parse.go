package table

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// DefaultDateLayouts are tried in order when parsing date cells.
var DefaultDateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	time.DateTime,
	time.DateOnly,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006/01/02",
	"02/01/2006",
	"2006-01-02 15:04:05-07:00",
}

// missingTokens are the cell spellings read as null.
var missingTokens = map[string]struct{}{
	"":         {},
	"#N/A":     {},
	"#N/A N/A": {},
	"#NA":      {},
	"-NaN":     {},
	"-nan":     {},
	"<NA>":     {},
	"N/A":      {},
	"NA":       {},
	"NULL":     {},
	"NaN":      {},
	"NaT":      {},
	"None":     {},
	"n/a":      {},
	"nan":      {},
	"null":     {},
}

// IsMissingToken reports whether s spells a missing value.
func IsMissingToken(s string) bool {
	_, ok := missingTokens[strings.TrimSpace(s)]
	return ok
}

// ParseNumber parses a decimal or scientific literal. NaN and missing tokens
// are rejected.
func ParseNumber(s string) (float64, bool) {
	raw := strings.TrimSpace(s)
	if IsMissingToken(raw) {
		return 0, false
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// ParseTime parses s with the first matching layout. Layouts without a zone
// are read as UTC.
func ParseTime(s string, layouts []string) (time.Time, bool) {
	raw := strings.TrimSpace(s)
	if IsMissingToken(raw) {
		return time.Time{}, false
	}
	if len(layouts) == 0 {
		layouts = DefaultDateLayouts
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
