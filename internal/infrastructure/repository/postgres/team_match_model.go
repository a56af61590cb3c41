package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/football-performance/internal/domain/matchstats"
)

const teamMatchTable = "team_match_metrics"

type teamMatchTableModel struct {
	DatasetID       string          `db:"dataset_id"`
	RowIndex        int             `db:"row_index"`
	MatchDate       sql.NullTime    `db:"match_date"`
	Season          string          `db:"season"`
	League          sql.NullString  `db:"league"`
	Team            sql.NullString  `db:"team"`
	HomeAway        string          `db:"home_away"`
	Goals           sql.NullFloat64 `db:"goals"`
	XG              sql.NullFloat64 `db:"xg"`
	Possession      sql.NullFloat64 `db:"possession"`
	Shots           sql.NullFloat64 `db:"shots"`
	ShotsOnTarget   sql.NullFloat64 `db:"shots_on_target"`
	PassesCompleted sql.NullFloat64 `db:"passes_completed"`
	YellowCards     sql.NullFloat64 `db:"yellow_cards"`
	RedCards        sql.NullFloat64 `db:"red_cards"`
}

func teamMatchToRow(item matchstats.StoredTeamMatch) teamMatchTableModel {
	return teamMatchTableModel{
		DatasetID:       item.DatasetID,
		RowIndex:        item.RowIndex,
		MatchDate:       sql.NullTime{Time: item.Date, Valid: !item.Date.IsZero()},
		Season:          item.Season,
		League:          nullString(item.League),
		Team:            nullString(item.Team),
		HomeAway:        string(item.Side),
		Goals:           nullMetric(item.Goals),
		XG:              nullMetric(item.XG),
		Possession:      nullMetric(item.Possession),
		Shots:           nullMetric(item.Shots),
		ShotsOnTarget:   nullMetric(item.ShotsOnTarget),
		PassesCompleted: nullMetric(item.PassesCompleted),
		YellowCards:     nullMetric(item.YellowCards),
		RedCards:        nullMetric(item.RedCards),
	}
}

func teamMatchFromRow(row teamMatchTableModel) matchstats.StoredTeamMatch {
	var date time.Time
	if row.MatchDate.Valid {
		date = row.MatchDate.Time.UTC()
	}
	return matchstats.StoredTeamMatch{
		DatasetID: row.DatasetID,
		RowIndex:  row.RowIndex,
		TeamMatch: matchstats.TeamMatch{
			Date:            date,
			Season:          row.Season,
			League:          row.League.String,
			Team:            row.Team.String,
			Side:            matchstats.Side(row.HomeAway),
			Goals:           metricFromNull(row.Goals),
			XG:              metricFromNull(row.XG),
			Possession:      metricFromNull(row.Possession),
			Shots:           metricFromNull(row.Shots),
			ShotsOnTarget:   metricFromNull(row.ShotsOnTarget),
			PassesCompleted: metricFromNull(row.PassesCompleted),
			YellowCards:     metricFromNull(row.YellowCards),
			RedCards:        metricFromNull(row.RedCards),
		},
	}
}

func nullString(v string) sql.NullString {
	return sql.NullString{String: v, Valid: v != ""}
}

func nullMetric(m matchstats.Metric) sql.NullFloat64 {
	return sql.NullFloat64{Float64: m.Value, Valid: m.Valid}
}

func metricFromNull(v sql.NullFloat64) matchstats.Metric {
	return matchstats.Metric{Value: v.Float64, Valid: v.Valid}
}
