package health

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/best-odds/internal/metrics"
	"github.com/yourusername/best-odds/internal/models"
)

type stubWatcher struct {
	err    error
	latest *models.ScanResult
}

func (s stubWatcher) Ready() error {
	return s.err
}

func (s stubWatcher) Latest() (*models.ScanResult, bool) {
	return s.latest, s.latest != nil
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestServer_Health(t *testing.T) {
	s := NewServer(Config{ServiceName: "best-odds", Version: "test"})
	h := s.Router()

	for _, path := range []string{"/health", "/live"} {
		rec := get(t, h, path)
		require.Equal(t, http.StatusOK, rec.Code, path)

		var body HealthResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, "ok", body.Status)
		assert.Equal(t, "best-odds", body.Service)
	}
}

func TestServer_Ready(t *testing.T) {
	tests := []struct {
		name       string
		ready      bool
		scanErr    error
		wantStatus int
		wantScan   string
	}{
		{name: "not marked ready", ready: false, wantStatus: http.StatusServiceUnavailable, wantScan: "ok"},
		{name: "last scan failed", ready: true, scanErr: errors.New("fetch: timeout"), wantStatus: http.StatusServiceUnavailable, wantScan: "error: fetch: timeout"},
		{name: "ready", ready: true, wantStatus: http.StatusOK, wantScan: "ok"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewServer(Config{ServiceName: "best-odds", Readiness: stubWatcher{err: tt.scanErr}})
			s.SetReady(tt.ready)

			rec := get(t, s.Router(), "/ready")
			assert.Equal(t, tt.wantStatus, rec.Code)

			var body ReadyResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tt.wantScan, body.Checks["scan"])
		})
	}
}

func TestServer_Opportunity(t *testing.T) {
	s := NewServer(Config{Opportunity: stubWatcher{}})
	rec := get(t, s.Router(), "/opportunity")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	result := &models.ScanResult{
		League: "premier_league",
		Selection: models.OptimalSelection{
			MatchName:  "Brighton vs Fulham",
			Odds:       models.OddsTriplet{2.4, 3.1, 4.2},
			InverseSum: 0.9773,
		},
	}
	s = NewServer(Config{Opportunity: stubWatcher{latest: result}})
	rec = get(t, s.Router(), "/opportunity")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body models.ScanResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "Brighton vs Fulham", body.Selection.MatchName)
	assert.Equal(t, models.OddsTriplet{2.4, 3.1, 4.2}, body.Selection.Odds)
}

func TestServer_Metrics(t *testing.T) {
	metrics.InitRegistry()
	metrics.RecordAlert()

	s := NewServer(Config{MetricsPath: "/metrics"})
	rec := get(t, s.Router(), "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "best_odds_alerts_sent_total"))

	s = NewServer(Config{})
	rec = get(t, s.Router(), "/metrics")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_CORS(t *testing.T) {
	s := NewServer(Config{ServiceName: "best-odds", CORSOrigins: []string{"http://localhost:3000"}})
	h := s.Router()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
