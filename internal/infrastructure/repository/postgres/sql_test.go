package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/riskibarqy/football-performance/internal/domain/matchstats"
)

func TestIsCallerError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{name: "no rows", err: sql.ErrNoRows, want: true},
		{name: "wrapped no rows", err: fmt.Errorf("get: %w", sql.ErrNoRows), want: true},
		{name: "canceled", err: context.Canceled, want: true},
		{name: "connection refused", err: fakeErr("dial tcp 127.0.0.1:5432: connect: connection refused"), want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := isCallerError(tc.err); got != tc.want {
				t.Fatalf("unexpected result: got=%v want=%v", got, tc.want)
			}
		})
	}
}

func TestTeamMatchRowRoundTrip(t *testing.T) {
	date := time.Date(2024, 8, 17, 0, 0, 0, 0, time.UTC)
	item := matchstats.StoredTeamMatch{
		DatasetID: "ds1",
		RowIndex:  3,
		TeamMatch: matchstats.TeamMatch{
			Date:       date,
			Season:     "2024/2025",
			Team:       "Arsenal",
			Side:       matchstats.SideAway,
			Goals:      matchstats.MetricOf(2),
			Possession: matchstats.MetricOf(55.5),
		},
	}

	row := teamMatchToRow(item)
	if row.League.Valid {
		t.Fatalf("expected empty league to be stored as null")
	}
	if row.XG.Valid {
		t.Fatalf("expected missing xG to be stored as null")
	}
	if row.HomeAway != "away" {
		t.Fatalf("unexpected home_away: got=%s want=away", row.HomeAway)
	}

	got := teamMatchFromRow(row)
	if !got.Date.Equal(date) || got.Team != "Arsenal" || got.Side != matchstats.SideAway {
		t.Fatalf("unexpected round trip: %+v", got)
	}
	if got.Goals != matchstats.MetricOf(2) || got.XG.Valid {
		t.Fatalf("unexpected metrics: goals=%+v xg=%+v", got.Goals, got.XG)
	}
}

func TestTeamMatchFromRow_NullDate(t *testing.T) {
	got := teamMatchFromRow(teamMatchTableModel{DatasetID: "ds1", Season: "unknown", HomeAway: "home"})
	if !got.Date.IsZero() {
		t.Fatalf("expected zero date, got %v", got.Date)
	}
}

type fakeErr string

func (e fakeErr) Error() string { return string(e) }
