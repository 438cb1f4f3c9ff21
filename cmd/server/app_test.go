package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/karthiknish/aroosi-swift-sub004/internal/api"
	"github.com/karthiknish/aroosi-swift-sub004/internal/api/shared"
	"github.com/karthiknish/aroosi-swift-sub004/internal/config"
	"github.com/karthiknish/aroosi-swift-sub004/internal/platform/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Server:    config.ServerConfig{Port: 8080, LogLevel: "error"},
		Database:  config.DatabaseConfig{Driver: driverSQLite, URL: sqlite.MemoryPath},
		Analytics: config.AnalyticsConfig{QueueSize: 16, WorkerCount: 1},
	}
}

func newTestApplication(t *testing.T) *application {
	t.Helper()

	cfg := testConfig()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	db, err := setupAppDatabase(context.Background(), cfg, logger)
	require.NoError(t, err)

	app, err := newApplication(cfg, logger, db)
	require.NoError(t, err)
	t.Cleanup(app.cleanup)

	return app
}

func doRequest(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func answers(religion, diet string) map[string]any {
	return map[string]any{
		"responses": map[string]any{
			"religion_importance": map[string]any{"kind": "single", "option_id": religion},
			"halal_diet":          map[string]any{"kind": "single", "option_id": diet},
			"children_wanted":     map[string]any{"kind": "single", "option_id": "yes"},
		},
	}
}

func TestNewApplicationRejectsUnknownDriver(t *testing.T) {
	cfg := testConfig()
	cfg.Database.Driver = "oracle"

	_, err := setupAppDatabase(context.Background(), cfg, slog.Default())
	assert.Error(t, err)
}

func TestNewApplicationRejectsInvalidBands(t *testing.T) {
	cfg := testConfig()
	cfg.Scoring.GoodThreshold = 95

	db, err := setupAppDatabase(context.Background(), cfg, slog.Default())
	require.NoError(t, err)
	defer db.Close()

	_, err = newApplication(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)), db)
	assert.Error(t, err)
}

func TestHealthAndCatalog(t *testing.T) {
	app := newTestApplication(t)
	router := app.setupRouter()

	rec := doRequest(t, router, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(shared.TraceIDHeader))

	var health api.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, "ok", health.Database)

	rec = doRequest(t, router, http.MethodGet, "/api/catalog", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var catalog api.CatalogResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &catalog))
	assert.Equal(t, app.catalog.Version(), catalog.Version)
	assert.Equal(t, app.catalog.TotalQuestions(), catalog.TotalQuestions)
	assert.NotEmpty(t, catalog.Categories)
}

func TestCompatibilityFlow(t *testing.T) {
	app := newTestApplication(t)
	router := app.setupRouter()

	rec := doRequest(t, router, http.MethodPut, "/api/users/u1/responses", answers("very_important", "yes"))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec = doRequest(t, router, http.MethodPut, "/api/users/u2/responses", answers("important", "yes"))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doRequest(t, router, http.MethodGet, "/api/users/u1/responses", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var stored api.ResponseResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stored))
	assert.Equal(t, "u1", stored.UserID)
	assert.Len(t, stored.Responses, 3)

	rec = doRequest(t, router, http.MethodPost, "/api/reports",
		api.GenerateReportRequest{UserID1: "u1", UserID2: "u2"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var report api.ReportResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, "/api/reports/"+report.ID, rec.Header().Get("Location"))
	assert.Equal(t, "u1", report.UserID1)
	assert.Equal(t, "u2", report.UserID2)
	assert.GreaterOrEqual(t, report.Scores.OverallScore, 0.0)
	assert.LessOrEqual(t, report.Scores.OverallScore, 100.0)
	assert.NotEmpty(t, report.Scores.Level)
	assert.False(t, report.IsShared)

	rec = doRequest(t, router, http.MethodPost, "/api/reports/"+report.ID+"/share",
		api.ShareReportRequest{TargetUserID: "guardian-1"})
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	rec = doRequest(t, router, http.MethodPost, "/api/reports/"+report.ID+"/feedback",
		api.FeedbackRequest{Feedback: "We approve"})
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	rec = doRequest(t, router, http.MethodGet, "/api/reports/"+report.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var fetched api.ReportResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fetched))
	assert.True(t, fetched.IsShared)
	assert.Equal(t, "guardian-1", fetched.SharedWith)
	require.NotNil(t, fetched.FamilyFeedback)
	assert.Equal(t, "We approve", *fetched.FamilyFeedback)

	for _, user := range []string{"u1", "u2"} {
		rec = doRequest(t, router, http.MethodGet, "/api/users/"+user+"/reports", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var list api.ReportListResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
		require.Len(t, list.Reports, 1)
		assert.Equal(t, report.ID, list.Reports[0].ID)
	}
}

func TestCompatibilityFlowErrors(t *testing.T) {
	app := newTestApplication(t)
	router := app.setupRouter()

	tests := []struct {
		name       string
		method     string
		path       string
		body       any
		wantStatus int
	}{
		{
			name:       "report before responses",
			method:     http.MethodPost,
			path:       "/api/reports",
			body:       api.GenerateReportRequest{UserID1: "a", UserID2: "b"},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "report for same user",
			method:     http.MethodPost,
			path:       "/api/reports",
			body:       api.GenerateReportRequest{UserID1: "a", UserID2: "a"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing response",
			method:     http.MethodGet,
			path:       "/api/users/nobody/responses",
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "malformed report id",
			method:     http.MethodGet,
			path:       "/api/reports/not-a-uuid",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown report",
			method:     http.MethodGet,
			path:       "/api/reports/00000000-0000-4000-8000-000000000000",
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "share unknown report",
			method:     http.MethodPost,
			path:       "/api/reports/00000000-0000-4000-8000-000000000000/share",
			body:       api.ShareReportRequest{TargetUserID: "x"},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "missing responses",
			method:     http.MethodPut,
			path:       "/api/users/a/responses",
			body:       map[string]any{},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown response kind",
			method:     http.MethodPut,
			path:       "/api/users/a/responses",
			body:       map[string]any{"responses": map[string]any{"halal_diet": map[string]any{"kind": "ranked"}}},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := doRequest(t, router, tc.method, tc.path, tc.body)
			assert.Equal(t, tc.wantStatus, rec.Code, rec.Body.String())

			var errResp shared.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
			assert.NotEmpty(t, errResp.Error)
			assert.NotEmpty(t, errResp.TraceID)
		})
	}
}
