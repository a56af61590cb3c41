package httpapi

import (
	"time"

	"github.com/riskibarqy/football-performance/internal/domain/dataset"
	"github.com/riskibarqy/football-performance/internal/domain/matchstats"
)

const dateLayout = "2006-01-02"

type datasetDTO struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Columns      []string `json:"columns"`
	RowCount     int      `json:"row_count"`
	HasPrefix    bool     `json:"has_prefix"`
	MissingPairs []string `json:"missing_pairs"`
	UploadedAt   string   `json:"uploaded_at"`
}

type teamMatchDTO struct {
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

type storedTeamMatchDTO struct {
	DatasetID string `json:"dataset_id"`
	RowIndex  int    `json:"row_index"`
	teamMatchDTO
}

type timelinePointDTO struct {
	Date  *string  `json:"date"`
	Goals *float64 `json:"goals"`
	XG    *float64 `json:"xG"`
}

type teamSummaryDTO struct {
	Team          string             `json:"team"`
	Matches       int                `json:"matches"`
	Goals         float64            `json:"goals"`
	XG            float64            `json:"xG"`
	AvgPossession float64            `json:"avg_possession"`
	AvgShots      float64            `json:"avg_shots"`
	Timeline      []timelinePointDTO `json:"timeline"`
}

type teamRankingDTO struct {
	Rank          int     `json:"rank"`
	Team          string  `json:"team"`
	Goals         float64 `json:"goals"`
	XG            float64 `json:"xG"`
	AvgShots      float64 `json:"avg_shots"`
	AvgPossession float64 `json:"avg_possession"`
}

func datasetToDTO(v dataset.Dataset) datasetDTO {
	missing := v.MissingPairs
	if missing == nil {
		missing = []string{}
	}
	return datasetDTO{
		ID:           v.ID,
		Name:         v.Name,
		Columns:      append([]string(nil), v.Columns...),
		RowCount:     v.RowCount,
		HasPrefix:    v.HasPrefix,
		MissingPairs: missing,
		UploadedAt:   v.UploadedAt.UTC().Format(time.RFC3339),
	}
}

func teamMatchToDTO(v matchstats.TeamMatch) teamMatchDTO {
	return teamMatchDTO{
		Date:            formatDate(v.Date),
		Season:          v.Season,
		League:          v.League,
		Team:            v.Team,
		Goals:           v.Goals.Ptr(),
		XG:              v.XG.Ptr(),
		Possession:      v.Possession.Ptr(),
		Shots:           v.Shots.Ptr(),
		ShotsOnTarget:   v.ShotsOnTarget.Ptr(),
		PassesCompleted: v.PassesCompleted.Ptr(),
		YellowCards:     v.YellowCards.Ptr(),
		RedCards:        v.RedCards.Ptr(),
		HomeAway:        string(v.Side),
	}
}

func teamMatchesToDTO(items []matchstats.TeamMatch) []teamMatchDTO {
	out := make([]teamMatchDTO, 0, len(items))
	for _, item := range items {
		out = append(out, teamMatchToDTO(item))
	}
	return out
}

func storedTeamMatchesToDTO(items []matchstats.StoredTeamMatch) []storedTeamMatchDTO {
	out := make([]storedTeamMatchDTO, 0, len(items))
	for _, item := range items {
		out = append(out, storedTeamMatchDTO{
			DatasetID:    item.DatasetID,
			RowIndex:     item.RowIndex,
			teamMatchDTO: teamMatchToDTO(item.TeamMatch),
		})
	}
	return out
}

func teamSummaryToDTO(v matchstats.TeamSummary) teamSummaryDTO {
	timeline := make([]timelinePointDTO, 0, len(v.Timeline))
	for _, p := range v.Timeline {
		timeline = append(timeline, timelinePointDTO{
			Date:  formatDate(p.Date),
			Goals: p.Goals.Ptr(),
			XG:    p.XG.Ptr(),
		})
	}
	return teamSummaryDTO{
		Team:          v.Team,
		Matches:       v.Matches,
		Goals:         v.Goals,
		XG:            v.XG,
		AvgPossession: v.AvgPossession,
		AvgShots:      v.AvgShots,
		Timeline:      timeline,
	}
}

func teamRankingsToDTO(items []matchstats.TeamRanking) []teamRankingDTO {
	out := make([]teamRankingDTO, 0, len(items))
	for i, item := range items {
		out = append(out, teamRankingDTO{
			Rank:          i + 1,
			Team:          item.Team,
			Goals:         item.Goals,
			XG:            item.XG,
			AvgShots:      item.AvgShots,
			AvgPossession: item.AvgPossession,
		})
	}
	return out
}

// formatDate renders midnight times as plain dates. Zero times are null.
func formatDate(v time.Time) *string {
	if v.IsZero() {
		return nil
	}
	v = v.UTC()
	layout := dateLayout
	if h, m, sec := v.Clock(); h != 0 || m != 0 || sec != 0 {
		layout = time.RFC3339
	}
	s := v.Format(layout)
	return &s
}
