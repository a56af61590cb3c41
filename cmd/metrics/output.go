package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/bytedance/sonic"

	"github.com/riskibarqy/football-performance/internal/domain/matchstats"
	"github.com/riskibarqy/football-performance/internal/platform/table"
)

type matchOutput struct {
	Date            *string  `json:"date"`
	Season          string   `json:"season"`
	League          string   `json:"league,omitempty"`
	Team            string   `json:"team"`
	Goals           *float64 `json:"goals"`
	XG              *float64 `json:"xG"`
	Possession      *float64 `json:"possession"`
	Shots           *float64 `json:"shots"`
	ShotsOnTarget   *float64 `json:"shots_on_target"`
	PassesCompleted *float64 `json:"passes_completed"`
	YellowCards     *float64 `json:"yellow_cards"`
	RedCards        *float64 `json:"red_cards"`
	HomeAway        string   `json:"home_away"`
}

type timelineOutput struct {
	Date  *string  `json:"date"`
	Goals *float64 `json:"goals"`
	XG    *float64 `json:"xG"`
}

type summaryOutput struct {
	Team          string           `json:"team"`
	Matches       int              `json:"matches"`
	Goals         float64          `json:"goals"`
	XG            float64          `json:"xG"`
	AvgPossession float64          `json:"avg_possession"`
	AvgShots      float64          `json:"avg_shots"`
	Timeline      []timelineOutput `json:"timeline"`
}

func matchesToOutput(matches []matchstats.TeamMatch) []matchOutput {
	out := make([]matchOutput, 0, len(matches))
	for _, m := range matches {
		out = append(out, matchOutput{
			Date:            formatDate(m.Date),
			Season:          m.Season,
			League:          m.League,
			Team:            m.Team,
			Goals:           m.Goals.Ptr(),
			XG:              m.XG.Ptr(),
			Possession:      m.Possession.Ptr(),
			Shots:           m.Shots.Ptr(),
			ShotsOnTarget:   m.ShotsOnTarget.Ptr(),
			PassesCompleted: m.PassesCompleted.Ptr(),
			YellowCards:     m.YellowCards.Ptr(),
			RedCards:        m.RedCards.Ptr(),
			HomeAway:        string(m.Side),
		})
	}
	return out
}

func summaryToOutput(s matchstats.TeamSummary) summaryOutput {
	timeline := make([]timelineOutput, 0, len(s.Timeline))
	for _, p := range s.Timeline {
		timeline = append(timeline, timelineOutput{
			Date:  formatDate(p.Date),
			Goals: p.Goals.Ptr(),
			XG:    p.XG.Ptr(),
		})
	}
	return summaryOutput{
		Team:          s.Team,
		Matches:       s.Matches,
		Goals:         s.Goals,
		XG:            s.XG,
		AvgPossession: s.AvgPossession,
		AvgShots:      s.AvgShots,
		Timeline:      timeline,
	}
}

func formatDate(t time.Time) *string {
	if t.IsZero() {
		return nil
	}
	v := table.Time(t).Text()
	return &v
}

func writeJSON(w io.Writer, v any) error {
	payload, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	payload = append(payload, '\n')
	_, err = w.Write(payload)
	return err
}

func writeDetection(w io.Writer, path string, wide table.Table) error {
	columns := wide.Columns()
	missing := matchstats.MissingSidePairs(columns, matchstats.ColumnTeam, matchstats.ColumnGoals, matchstats.ColumnPossession)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "file\t%s\n", path)
	fmt.Fprintf(tw, "rows\t%d\n", wide.NumRows())
	fmt.Fprintf(tw, "columns\t%d\n", len(columns))
	fmt.Fprintf(tw, "has_prefix\t%t\n", matchstats.DetectPrefix(columns))
	if len(missing) > 0 {
		fmt.Fprintf(tw, "missing_pairs\t%s\n", strings.Join(missing, ", "))
	}
	return tw.Flush()
}

func writeRankings(w io.Writer, rankings []matchstats.TeamRanking) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "rank\tteam\tgoals\txG\tavg_shots\tavg_possession")
	for i, r := range rankings {
		fmt.Fprintf(tw, "%d\t%s\t%g\t%.2f\t%.1f\t%.1f\n", i+1, r.Team, r.Goals, r.XG, r.AvgShots, r.AvgPossession)
	}
	return tw.Flush()
}
