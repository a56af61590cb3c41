package matchstats

import (
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

const (
	ColumnDate            = "date"
	ColumnSeason          = "season"
	ColumnLeague          = "league"
	ColumnTeam            = "team"
	ColumnGoals           = "goals"
	ColumnXG              = "xG"
	ColumnPossession      = "possession"
	ColumnShots           = "shots"
	ColumnShotsOnTarget   = "shots_on_target"
	ColumnPassesCompleted = "passes_completed"
	ColumnYellowCards     = "yellow_cards"
	ColumnRedCards        = "red_cards"
	ColumnHomeAway        = "home_away"

	HomePrefix = "home_"
	AwayPrefix = "away_"

	// UnknownSeason labels rows whose season is missing.
	UnknownSeason = "unknown"
)

// Side is the home_away tag of a long row.
type Side string

const (
	SideHome Side = "home"
	SideAway Side = "away"
)

func (s Side) Prefix() string {
	if s == SideAway {
		return AwayPrefix
	}
	return HomePrefix
}

func (s Side) Valid() bool {
	return s == SideHome || s == SideAway
}

// CanonicalColumns is the column set and order of every reshaped side view.
var CanonicalColumns = []string{
	ColumnDate,
	ColumnSeason,
	ColumnLeague,
	ColumnTeam,
	ColumnGoals,
	ColumnXG,
	ColumnPossession,
	ColumnShots,
	ColumnShotsOnTarget,
	ColumnPassesCompleted,
	ColumnYellowCards,
	ColumnRedCards,
}

// LongColumns is CanonicalColumns followed by the side tag.
var LongColumns = append(append([]string{}, CanonicalColumns...), ColumnHomeAway)

// NumericColumns are coerced to numbers after reshaping.
var NumericColumns = []string{
	ColumnGoals,
	ColumnXG,
	ColumnPossession,
	ColumnShots,
	ColumnShotsOnTarget,
	ColumnPassesCompleted,
	ColumnYellowCards,
	ColumnRedCards,
}

// SharedColumns describe the match rather than one side of it.
var SharedColumns = []string{ColumnDate, ColumnSeason, ColumnLeague}

// ColumnMapping lists the wide column names that feed one canonical column,
// per side, in priority order.
type ColumnMapping struct {
	Canonical string   `yaml:"canonical"`
	Home      []string `yaml:"home"`
	Away      []string `yaml:"away"`
}

func (m ColumnMapping) Variants(side Side) []string {
	if side == SideAway {
		return m.Away
	}
	return m.Home
}

// DefaultColumnMappings returns a fresh copy of the built-in mapping table.
// Shared columns read the plain name first and fall back to a side-prefixed
// copy; metrics read home_<name>/away_<name>.
func DefaultColumnMappings() []ColumnMapping {
	out := make([]ColumnMapping, 0, len(CanonicalColumns))
	for _, name := range CanonicalColumns {
		m := ColumnMapping{
			Canonical: name,
			Home:      []string{HomePrefix + name},
			Away:      []string{AwayPrefix + name},
		}
		if isShared(name) {
			m.Home = []string{name, HomePrefix + name}
			m.Away = []string{name, AwayPrefix + name}
		}
		if name == ColumnXG {
			m.Home = append(m.Home, "xG_home")
			m.Away = append(m.Away, "xG_away")
		}
		out = append(out, m)
	}
	return out
}

func isShared(name string) bool {
	for _, shared := range SharedColumns {
		if shared == name {
			return true
		}
	}
	return false
}

func isCanonical(name string) bool {
	for _, canonical := range CanonicalColumns {
		if canonical == name {
			return true
		}
	}
	return false
}

// MergeColumnMappings appends the variants in extra after those in base.
// Duplicate variants are kept once, at their first position.
func MergeColumnMappings(base []ColumnMapping, extra ...ColumnMapping) ([]ColumnMapping, error) {
	out := make([]ColumnMapping, 0, len(base))
	pos := make(map[string]int, len(base))
	for _, m := range base {
		pos[m.Canonical] = len(out)
		out = append(out, ColumnMapping{
			Canonical: m.Canonical,
			Home:      append([]string{}, m.Home...),
			Away:      append([]string{}, m.Away...),
		})
	}

	for _, m := range extra {
		name := strings.TrimSpace(m.Canonical)
		if !isCanonical(name) {
			return nil, errors.Newf("unknown canonical column %q", m.Canonical)
		}
		i, ok := pos[name]
		if !ok {
			pos[name] = len(out)
			out = append(out, ColumnMapping{Canonical: name})
			i = len(out) - 1
		}
		out[i].Home = appendUnique(out[i].Home, m.Home...)
		out[i].Away = appendUnique(out[i].Away, m.Away...)
	}
	return out, nil
}

func appendUnique(dst []string, values ...string) []string {
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		dup := false
		for _, existing := range dst {
			if existing == v {
				dup = true
				break
			}
		}
		if !dup {
			dst = append(dst, v)
		}
	}
	return dst
}

type columnAliasFile struct {
	Mappings []ColumnMapping `yaml:"mappings"`
}

// LoadColumnMappings reads a YAML alias file and merges it onto the defaults.
//
//	mappings:
//	  - canonical: xG
//	    home: [xg_home]
//	    away: [xg_away]
func LoadColumnMappings(r io.Reader) ([]ColumnMapping, error) {
	var file columnAliasFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Wrap(err, "decode column aliases")
	}
	return MergeColumnMappings(DefaultColumnMappings(), file.Mappings...)
}
