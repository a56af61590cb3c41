// Package matchstats turns wide match tables (one row per match, home_/away_
// column pairs) into long team-match tables (one row per team per match) and
// aggregates the result for presentation.
package matchstats

import (
	"github.com/cockroachdb/errors"

	"github.com/riskibarqy/football-performance/internal/platform/table"
)

// ErrUnprefixedSchema is returned when WithRequirePrefix is set and the wide
// table has no home_/away_ column pairs.
var ErrUnprefixedSchema = errors.New("wide table has no home_/away_ column pairs")

type options struct {
	mappings      []ColumnMapping
	requirePrefix bool
	dateLayouts   []string
}

// Option configures PrepareTeamMetrics.
type Option func(*options)

// WithColumnMappings replaces the column-mapping table. Pass the result of
// MergeColumnMappings or LoadColumnMappings to extend the defaults.
func WithColumnMappings(mappings []ColumnMapping) Option {
	return func(o *options) {
		if len(mappings) > 0 {
			o.mappings = mappings
		}
	}
}

// WithRequirePrefix rejects unprefixed input instead of reading the whole
// table as both the home and the away view.
func WithRequirePrefix(require bool) Option {
	return func(o *options) {
		o.requirePrefix = require
	}
}

// WithDateLayouts sets the layouts tried for string dates, ahead of
// table.DefaultDateLayouts.
func WithDateLayouts(layouts ...string) Option {
	return func(o *options) {
		o.dateLayouts = append(append([]string{}, layouts...), table.DefaultDateLayouts...)
	}
}

// PrepareTeamMetrics reshapes a wide match table into the long team-match
// table with LongColumns. The output holds every home row in input order
// followed by every away row in input order, so R input rows give 2R output
// rows. Unparseable dates and metrics become null; absent metrics become
// null columns. Only an invalid table, or unprefixed input under
// WithRequirePrefix, is an error. wide is never modified.
//
// When wide has no home_/away_ pairs both views read the whole table, so each
// match appears twice with identical values.
func PrepareTeamMetrics(wide table.Table, opts ...Option) (table.Table, error) {
	if !wide.Valid() {
		return table.Table{}, errors.Wrap(table.ErrInvalidTable, "prepare team metrics")
	}

	o := options{dateLayouts: table.DefaultDateLayouts}
	for _, opt := range opts {
		opt(&o)
	}
	if o.mappings == nil {
		o.mappings = DefaultColumnMappings()
	}

	normalizeDate := func(v table.Value) table.Value { return NormalizeDate(v, o.dateLayouts) }
	wide = wide.MapColumn(ColumnDate, normalizeDate)

	prefixed := DetectPrefix(wide.Columns())
	if !prefixed && o.requirePrefix {
		return table.Table{}, errors.Wrapf(ErrUnprefixedSchema, "columns %v", wide.Columns())
	}

	views := make([]table.Table, 0, 2)
	for _, side := range []Side{SideHome, SideAway} {
		view := wide
		if prefixed {
			var err error
			if view, err = sideView(wide, side, o.mappings); err != nil {
				return table.Table{}, errors.Wrapf(err, "build %s view", side)
			}
		}
		conformed, err := conformView(view, side)
		if err != nil {
			return table.Table{}, errors.Wrapf(err, "conform %s view", side)
		}
		views = append(views, conformed)
	}

	long, err := table.Concat(views...)
	if err != nil {
		return table.Table{}, errors.Wrap(err, "concat side views")
	}

	long = long.MapColumn(ColumnDate, normalizeDate)
	long = long.MapColumn(ColumnSeason, SeasonLabel)
	return long, nil
}

// sideView picks, for each canonical column, the first variant of the side
// present in wide and names it canonically. Unresolved columns are null-filled
// so the view always has wide.NumRows() rows.
func sideView(wide table.Table, side Side, mappings []ColumnMapping) (table.Table, error) {
	names := make([]string, 0, len(mappings))
	data := make([][]table.Value, 0, len(mappings))
	seen := make(map[string]bool, len(mappings))

	for _, m := range mappings {
		if seen[m.Canonical] {
			continue
		}
		for _, variant := range m.Variants(side) {
			values, ok := wide.Column(variant)
			if !ok {
				continue
			}
			names = append(names, m.Canonical)
			data = append(data, values)
			seen[m.Canonical] = true
			break
		}
	}
	for _, name := range CanonicalColumns {
		if seen[name] {
			continue
		}
		names = append(names, name)
		data = append(data, make([]table.Value, wide.NumRows()))
		seen[name] = true
	}
	return table.FromColumns(names, data)
}

// conformView reconciles a view to the canonical schema, tags its side and
// coerces metric columns.
func conformView(view table.Table, side Side) (table.Table, error) {
	out, err := view.Reindex(CanonicalColumns...)
	if err != nil {
		return table.Table{}, err
	}
	out, err = out.WithConstant(ColumnHomeAway, table.String(string(side)))
	if err != nil {
		return table.Table{}, err
	}
	for _, name := range NumericColumns {
		out = out.MapColumn(name, CoerceNumeric)
	}
	return out, nil
}
