package usecase

import (
	"fmt"
	"strings"
	"sync"

	"github.com/riskibarqy/football-performance/internal/platform/logging"
)

const sampleWideCSV = `date,season,league,home_team,away_team,home_goals,away_goals,home_possession,away_possession,home_shots,away_shots,xG_home,xG_away
2024-08-17,2024/2025,EPL,Arsenal,Chelsea,2,1,55,45,14,9,1.8,0.9
2024-08-24,2024/2025,EPL,Chelsea,Arsenal,0,3,40,60,7,16,0.4,2.6
2023-05-01,2023/2024,EPL,Arsenal,Spurs,1,1,50,50,10,11,N/A,1.1
`

const unprefixedCSV = `date,season,team,goals,possession
2024-08-17,2024,Arsenal,2,55
`

func sampleWide() *strings.Reader {
	return strings.NewReader(sampleWideCSV)
}

func newTestMetricsService(cfg TeamMetricsConfig) *TeamMetricsService {
	return NewTeamMetricsService(cfg, logging.NewNop())
}

// sequenceIDs hands out ds-1, ds-2, ...
type sequenceIDs struct {
	mu   sync.Mutex
	next int
}

func (g *sequenceIDs) NewID() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return fmt.Sprintf("ds-%d", g.next), nil
}
