package httpapi

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/football-performance/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/football-performance/internal/platform/id"
	"github.com/riskibarqy/football-performance/internal/platform/logging"
	"github.com/riskibarqy/football-performance/internal/usecase"
)

const wideCSV = `date,season,home_team,away_team,home_goals,away_goals,home_possession,away_possession,xG_home,xG_away
2024-08-17,2024/2025,Arsenal,Chelsea,2,1,55,45,1.8,0.9
2024-08-24,2024/2025,Chelsea,Arsenal,0,3,40,60,0.4,2.6
`

type envelope[T any] struct {
	APIVersion string `json:"apiVersion"`
	Data       T      `json:"data"`
	Error      *struct {
		Code   int    `json:"code"`
		Status string `json:"status"`
	} `json:"error"`
}

func newTestRouter(t *testing.T, uploadLimit RateLimitConfig) http.Handler {
	t.Helper()

	logger := logging.NewNop()
	metrics := usecase.NewTeamMetricsService(usecase.TeamMetricsConfig{}, logger)
	datasets := usecase.NewDatasetService(memory.NewDatasetRepository(nil), id.NewRandomGenerator(), metrics, nil, logger)
	batch := usecase.NewBatchService(datasets, 2, logger)
	export := usecase.NewExportService(datasets, memory.NewTeamMatchRepository(), logger)

	handler := NewHandler(metrics, datasets, batch, export, 1<<20, logger)
	return NewRouter(handler, logger, []string{"*"}, uploadLimit)
}

func decodeEnvelope[T any](t *testing.T, rec *httptest.ResponseRecorder) envelope[T] {
	t.Helper()
	var out envelope[T]
	if err := sonic.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal response body: %v (%s)", err, rec.Body.String())
	}
	return out
}

func serve(router http.Handler, method, target string, body string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestReshapeTeamMetrics_JSON(t *testing.T) {
	router := newTestRouter(t, RateLimitConfig{Requests: 10, Window: time.Minute})

	rec := serve(router, http.MethodPost, "/v1/team-metrics/reshape", wideCSV, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: got=%d want=%d (%s)", rec.Code, http.StatusOK, rec.Body.String())
	}

	body := decodeEnvelope[[]teamMatchDTO](t, rec)
	if len(body.Data) != 4 {
		t.Fatalf("unexpected row count: got=%d want=4", len(body.Data))
	}
	first := body.Data[0]
	if first.Team != "Arsenal" || first.HomeAway != "home" || first.Date == nil || *first.Date != "2024-08-17" {
		t.Fatalf("unexpected first row: %+v", first)
	}
	if first.Shots != nil {
		t.Fatalf("expected null shots for a missing column, got %v", *first.Shots)
	}
	if body.Data[2].HomeAway != "away" || body.Data[2].Team != "Chelsea" {
		t.Fatalf("unexpected away block start: %+v", body.Data[2])
	}
}

func TestReshapeTeamMetrics_CSV(t *testing.T) {
	router := newTestRouter(t, RateLimitConfig{Requests: 10, Window: time.Minute})

	rec := serve(router, http.MethodPost, "/v1/team-metrics/reshape?season=2024/2025", wideCSV, map[string]string{"Accept": "text/csv"})
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: got=%d want=%d (%s)", rec.Code, http.StatusOK, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Type"); !strings.HasPrefix(got, "text/csv") {
		t.Fatalf("unexpected content type: %s", got)
	}

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	wantHeader := "date,season,league,team,goals,xG,possession,shots,shots_on_target,passes_completed,yellow_cards,red_cards,home_away"
	if lines[0] != wantHeader {
		t.Fatalf("unexpected header:\nwant: %s\ngot:  %s", wantHeader, lines[0])
	}
	if len(lines) != 5 {
		t.Fatalf("unexpected line count: got=%d want=5", len(lines))
	}
}

func TestReshapeTeamMetrics_MalformedCSV(t *testing.T) {
	router := newTestRouter(t, RateLimitConfig{Requests: 10, Window: time.Minute})

	rec := serve(router, http.MethodPost, "/v1/team-metrics/reshape", "a,b\n1,2,3\n", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusBadRequest)
	}
}

func TestDatasetLifecycle(t *testing.T) {
	router := newTestRouter(t, RateLimitConfig{Requests: 10, Window: time.Minute})

	rec := serve(router, http.MethodPost, "/v1/datasets?name=epl", wideCSV, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("unexpected upload status: got=%d (%s)", rec.Code, rec.Body.String())
	}
	created := decodeEnvelope[datasetDTO](t, rec).Data
	if created.ID == "" || created.RowCount != 2 || !created.HasPrefix {
		t.Fatalf("unexpected dataset: %+v", created)
	}
	if len(created.MissingPairs) != 0 {
		t.Fatalf("unexpected missing pairs: %v", created.MissingPairs)
	}
	base := "/v1/datasets/" + created.ID

	rec = serve(router, http.MethodGet, "/v1/datasets", "", nil)
	if list := decodeEnvelope[[]datasetDTO](t, rec).Data; len(list) != 1 {
		t.Fatalf("unexpected dataset list: %+v", list)
	}

	rec = serve(router, http.MethodGet, base+"/seasons", "", nil)
	if seasons := decodeEnvelope[[]string](t, rec).Data; len(seasons) != 1 || seasons[0] != "2024/2025" {
		t.Fatalf("unexpected seasons: %v", seasons)
	}

	rec = serve(router, http.MethodGet, base+"/teams", "", nil)
	if teams := decodeEnvelope[[]string](t, rec).Data; len(teams) != 2 {
		t.Fatalf("unexpected teams: %v", teams)
	}

	rec = serve(router, http.MethodGet, base+"/team-metrics?team=Arsenal", "", nil)
	if rows := decodeEnvelope[[]teamMatchDTO](t, rec).Data; len(rows) != 2 {
		t.Fatalf("unexpected team rows: %+v", rows)
	}

	rec = serve(router, http.MethodGet, base+"/teams/Arsenal/summary", "", nil)
	summary := decodeEnvelope[teamSummaryDTO](t, rec).Data
	if summary.Matches != 2 || summary.Goals != 5 || summary.XG != 4.4 || summary.AvgPossession != 57.5 {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	rec = serve(router, http.MethodGet, base+"/rankings", "", nil)
	rankings := decodeEnvelope[[]teamRankingDTO](t, rec).Data
	if len(rankings) != 2 || rankings[0].Team != "Arsenal" || rankings[0].Rank != 1 {
		t.Fatalf("unexpected rankings: %+v", rankings)
	}

	rec = serve(router, http.MethodPost, base+"/export", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected export status: got=%d (%s)", rec.Code, rec.Body.String())
	}
	rec = serve(router, http.MethodGet, base+"/exported?team=Chelsea", "", nil)
	if rows := decodeEnvelope[[]storedTeamMatchDTO](t, rec).Data; len(rows) != 2 || rows[0].DatasetID != created.ID {
		t.Fatalf("unexpected exported rows: %+v", rows)
	}

	payload := `{"dataset_ids":["` + created.ID + `","missing"],"max_workers":2}`
	rec = serve(router, http.MethodPost, "/v1/datasets/batch/reshape", payload, nil)
	batch := decodeEnvelope[usecase.BatchReshapeResult](t, rec).Data
	if batch.TaskCount != 2 || batch.SuccessCount != 1 || batch.FailedCount != 1 {
		t.Fatalf("unexpected batch result: %+v", batch)
	}
}

func TestDatasetRoutes_Errors(t *testing.T) {
	router := newTestRouter(t, RateLimitConfig{Requests: 10, Window: time.Minute})

	cases := []struct {
		name   string
		method string
		target string
		body   string
		want   int
	}{
		{name: "missing dataset", method: http.MethodGet, target: "/v1/datasets/nope", want: http.StatusNotFound},
		{name: "missing name", method: http.MethodPost, target: "/v1/datasets", body: wideCSV, want: http.StatusBadRequest},
		{name: "unknown batch field", method: http.MethodPost, target: "/v1/datasets/batch/reshape", body: `{"ids":["a"]}`, want: http.StatusBadRequest},
		{name: "empty batch", method: http.MethodPost, target: "/v1/datasets/batch/reshape", body: `{"dataset_ids":[]}`, want: http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := serve(router, tc.method, tc.target, tc.body, nil)
			if rec.Code != tc.want {
				t.Fatalf("unexpected status: got=%d want=%d (%s)", rec.Code, tc.want, rec.Body.String())
			}
			if body := decodeEnvelope[any](t, rec); body.Error == nil || body.Error.Code != tc.want {
				t.Fatalf("expected error envelope, got %s", rec.Body.String())
			}
		})
	}
}

func TestUploadDataset_BodyTooLarge(t *testing.T) {
	logger := logging.NewNop()
	metrics := usecase.NewTeamMetricsService(usecase.TeamMetricsConfig{}, logger)
	datasets := usecase.NewDatasetService(memory.NewDatasetRepository(nil), id.NewRandomGenerator(), metrics, nil, logger)
	handler := NewHandler(metrics, datasets, nil, nil, 16, logger)
	router := NewRouter(handler, logger, nil, RateLimitConfig{Requests: 10, Window: time.Minute})

	req := httptest.NewRequest(http.MethodPost, "/v1/datasets?name=big", bytes.NewBufferString(wideCSV))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusBadRequest)
	}
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(t, RateLimitConfig{Requests: 1, Window: time.Minute})
	rec := serve(router, http.MethodGet, "/healthz", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusOK)
	}
}
