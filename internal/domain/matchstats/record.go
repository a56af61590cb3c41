package matchstats

import (
	"time"

	"github.com/cockroachdb/errors"

	"github.com/riskibarqy/football-performance/internal/platform/table"
)

// Metric is a nullable numeric measurement.
type Metric struct {
	Value float64
	Valid bool
}

func MetricOf(v float64) Metric {
	return Metric{Value: v, Valid: true}
}

// Or returns the value, or def when the metric is null.
func (m Metric) Or(def float64) float64 {
	if !m.Valid {
		return def
	}
	return m.Value
}

// Ptr returns nil for a null metric.
func (m Metric) Ptr() *float64 {
	if !m.Valid {
		return nil
	}
	v := m.Value
	return &v
}

// TeamMatch is one team's participation in one match.
type TeamMatch struct {
	Date            time.Time
	Season          string
	League          string
	Team            string
	Side            Side
	Goals           Metric
	XG              Metric
	Possession      Metric
	Shots           Metric
	ShotsOnTarget   Metric
	PassesCompleted Metric
	YellowCards     Metric
	RedCards        Metric
}

// TeamMatchesFromTable reads typed rows out of a long table. A zero Date means
// the date was missing.
func TeamMatchesFromTable(long table.Table) ([]TeamMatch, error) {
	if !long.Valid() {
		return nil, errors.Wrap(table.ErrInvalidTable, "read team matches")
	}
	if !long.Has(ColumnHomeAway) {
		return nil, errors.Wrapf(table.ErrUnknownColumn, "%q", ColumnHomeAway)
	}

	out := make([]TeamMatch, 0, long.NumRows())
	for i := 0; i < long.NumRows(); i++ {
		row := long.Row(i)
		date, _ := row.Get(ColumnDate).Time()
		out = append(out, TeamMatch{
			Date:            date,
			Season:          row.Get(ColumnSeason).Text(),
			League:          row.Get(ColumnLeague).Text(),
			Team:            row.Get(ColumnTeam).Text(),
			Side:            Side(row.Get(ColumnHomeAway).Text()),
			Goals:           metricAt(row, ColumnGoals),
			XG:              metricAt(row, ColumnXG),
			Possession:      metricAt(row, ColumnPossession),
			Shots:           metricAt(row, ColumnShots),
			ShotsOnTarget:   metricAt(row, ColumnShotsOnTarget),
			PassesCompleted: metricAt(row, ColumnPassesCompleted),
			YellowCards:     metricAt(row, ColumnYellowCards),
			RedCards:        metricAt(row, ColumnRedCards),
		})
	}
	return out, nil
}

func metricAt(row table.Row, name string) Metric {
	f, ok := CoerceNumeric(row.Get(name)).Float()
	return Metric{Value: f, Valid: ok}
}

// FilterTeam keeps the matches played by team.
func FilterTeam(matches []TeamMatch, team string) []TeamMatch {
	out := make([]TeamMatch, 0)
	for _, m := range matches {
		if m.Team == team {
			out = append(out, m)
		}
	}
	return out
}
