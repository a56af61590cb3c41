package matchstats

import (
	"math"
	"sort"
	"time"
)

// TimelinePoint is one match of a team's goals/xG series.
type TimelinePoint struct {
	Date  time.Time
	Goals Metric
	XG    Metric
}

// TeamSummary holds the headline numbers of one team.
type TeamSummary struct {
	Team          string
	Matches       int
	Goals         float64
	XG            float64
	AvgPossession float64
	AvgShots      float64
	Timeline      []TimelinePoint
}

// Summarize aggregates the matches of team. Null goals are skipped, null xG
// and possession count as 0, and the average of shots ignores nulls. xG is
// rounded to two decimals and possession to one. The timeline is ordered by
// date with undated matches last.
func Summarize(matches []TeamMatch, team string) TeamSummary {
	out := TeamSummary{Team: team, Timeline: make([]TimelinePoint, 0)}

	var possession float64
	var shots mean
	for _, m := range matches {
		if m.Team != team {
			continue
		}
		out.Matches++
		out.Goals += m.Goals.Or(0)
		out.XG += m.XG.Or(0)
		possession += m.Possession.Or(0)
		shots.add(m.Shots)
		out.Timeline = append(out.Timeline, TimelinePoint{Date: m.Date, Goals: m.Goals, XG: m.XG})
	}

	if out.Matches > 0 {
		out.AvgPossession = round(possession/float64(out.Matches), 1)
	}
	out.XG = round(out.XG, 2)
	out.AvgShots = shots.value()

	sort.SliceStable(out.Timeline, func(i, j int) bool {
		a, b := out.Timeline[i].Date, out.Timeline[j].Date
		if a.IsZero() != b.IsZero() {
			return b.IsZero()
		}
		return a.Before(b)
	})
	return out
}

// TeamRanking is one row of the season ranking.
type TeamRanking struct {
	Team          string
	Goals         float64
	XG            float64
	AvgShots      float64
	AvgPossession float64
}

// RankTeams groups matches by team, summing goals and xG and averaging shots
// and possession over non-null values. Aggregates with no data are 0. Rows
// are ordered by goals descending, then team name. Matches without a team are
// ignored.
func RankTeams(matches []TeamMatch) []TeamRanking {
	type acc struct {
		goals, xg         float64
		shots, possession mean
	}
	byTeam := make(map[string]*acc)
	for _, m := range matches {
		if m.Team == "" {
			continue
		}
		a, ok := byTeam[m.Team]
		if !ok {
			a = &acc{}
			byTeam[m.Team] = a
		}
		a.goals += m.Goals.Or(0)
		a.xg += m.XG.Or(0)
		a.shots.add(m.Shots)
		a.possession.add(m.Possession)
	}

	out := make([]TeamRanking, 0, len(byTeam))
	for team, a := range byTeam {
		out = append(out, TeamRanking{
			Team:          team,
			Goals:         a.goals,
			XG:            a.xg,
			AvgShots:      a.shots.value(),
			AvgPossession: a.possession.value(),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Goals != out[j].Goals {
			return out[i].Goals > out[j].Goals
		}
		return out[i].Team < out[j].Team
	})
	return out
}

type mean struct {
	sum float64
	n   int
}

func (m *mean) add(v Metric) {
	if !v.Valid {
		return
	}
	m.sum += v.Value
	m.n++
}

func (m mean) value() float64 {
	if m.n == 0 {
		return 0
	}
	return m.sum / float64(m.n)
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
