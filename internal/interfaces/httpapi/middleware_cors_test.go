package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCORS(t *testing.T) {
	tests := []struct {
		name       string
		allowed    []string
		method     string
		origin     string
		wantStatus int
		wantOrigin string
		wantVary   bool
	}{
		{
			name:       "configured origin",
			allowed:    []string{"https://dashboard.example.com"},
			method:     http.MethodGet,
			origin:     "https://dashboard.example.com",
			wantStatus: http.StatusOK,
			wantOrigin: "https://dashboard.example.com",
			wantVary:   true,
		},
		{
			name:       "wildcard preflight",
			allowed:    []string{" * "},
			method:     http.MethodOptions,
			origin:     "https://dashboard.example.com",
			wantStatus: http.StatusNoContent,
			wantOrigin: "*",
		},
		{
			name:       "unconfigured origin",
			allowed:    []string{"https://allowed.example.com"},
			method:     http.MethodGet,
			origin:     "https://other.example.com",
			wantStatus: http.StatusOK,
		},
		{
			name:       "no origin header",
			allowed:    []string{"*"},
			method:     http.MethodGet,
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(tt.method, "/v1/datasets", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rec := httptest.NewRecorder()
			CORS(tt.allowed, next).ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			require.Equal(t, tt.wantOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
			require.Equal(t, tt.wantVary, rec.Header().Get("Vary") == "Origin")
			if tt.wantOrigin != "" {
				require.Equal(t, "Retry-After", rec.Header().Get("Access-Control-Expose-Headers"))
			}
		})
	}
}
