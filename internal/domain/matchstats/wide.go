package matchstats

import (
	"sort"

	"github.com/riskibarqy/football-performance/internal/platform/table"
)

// Seasons lists the distinct non-null season labels of a wide table, sorted.
// A table without a season column yields [UnknownSeason].
func Seasons(wide table.Table) []string {
	values, ok := wide.Column(ColumnSeason)
	if !ok {
		return []string{UnknownSeason}
	}
	return distinctText(values)
}

// FilterSeason keeps the wide rows of one season. Rows with a null season
// match UnknownSeason. A table without a season column is returned whole.
func FilterSeason(wide table.Table, season string) table.Table {
	if season == "" || !wide.Has(ColumnSeason) {
		return wide
	}
	return wide.Filter(func(r table.Row) bool {
		label, _ := SeasonLabel(r.Get(ColumnSeason)).Str()
		return label == season
	})
}

// Teams lists the distinct team names of a wide table, sorted: the union of
// home_team and away_team when both exist, else the team column.
func Teams(wide table.Table) []string {
	home, hasHome := wide.Column(HomePrefix + ColumnTeam)
	away, hasAway := wide.Column(AwayPrefix + ColumnTeam)
	if hasHome && hasAway {
		return distinctText(append(home, away...))
	}
	if values, ok := wide.Column(ColumnTeam); ok {
		return distinctText(values)
	}
	return []string{}
}

func distinctText(values []table.Value) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0)
	for _, v := range values {
		if v.IsNull() {
			continue
		}
		s := v.Text()
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
