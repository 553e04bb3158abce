package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alerts-srv/internal/alert"
	"alerts-srv/internal/model"
)

type testLogger struct{}

func (testLogger) Debug(context.Context, ...any)          {}
func (testLogger) Debugf(context.Context, string, ...any) {}
func (testLogger) Info(context.Context, ...any)           {}
func (testLogger) Infof(context.Context, string, ...any)  {}
func (testLogger) Warn(context.Context, ...any)           {}
func (testLogger) Warnf(context.Context, string, ...any)  {}
func (testLogger) Error(context.Context, ...any)          {}
func (testLogger) Errorf(context.Context, string, ...any) {}
func (testLogger) Fatal(context.Context, ...any)          {}
func (testLogger) Fatalf(context.Context, string, ...any) {}

type stubUseCase struct {
	syncReport alert.SyncReport
	syncErr    error
	detail     model.Alert
	detailErr  error

	gotMode    alert.SyncMode
	gotType    string
	gotEntries []alert.SnapshotEntry
}

func (s *stubUseCase) Synchronize(_ context.Context, mode alert.SyncMode, alertType string, entries []alert.SnapshotEntry) (alert.SyncReport, error) {
	s.gotMode = mode
	s.gotType = alertType
	s.gotEntries = entries
	return s.syncReport, s.syncErr
}

func (s *stubUseCase) Get(context.Context, alert.GetInput) (alert.GetOutput, error) {
	return alert.GetOutput{}, nil
}

func (s *stubUseCase) Detail(context.Context, string) (model.Alert, error) {
	return s.detail, s.detailErr
}

func (s *stubUseCase) Create(context.Context, alert.CreateInput) (model.Alert, error) {
	return model.Alert{}, nil
}

func (s *stubUseCase) Update(context.Context, alert.UpdateInput) (model.Alert, error) {
	return model.Alert{}, nil
}

func (s *stubUseCase) Dashboard(context.Context) (alert.DashboardOutput, error) {
	return alert.DashboardOutput{Open: 3, Overdue: 1, Closed: 2, ByType: map[string]int64{"ci-build": 3}}, nil
}

func newTestServer(t *testing.T, uc alert.UseCase) *HTTPServer {
	t.Helper()
	srv, err := New(testLogger{}, Config{
		Port:        8080,
		Environment: gin.TestMode,
		AlertUC:     uc,
	})
	require.NoError(t, err)
	srv.mapHandlers()
	return srv
}

func TestSyncEndpoint(t *testing.T) {
	uc := &stubUseCase{syncReport: alert.SyncReport{Type: "ci-build", Mode: alert.SyncModeOpen, Created: 1}}
	srv := newTestServer(t, uc)

	body := `{"mode":"open","type":"ci-build","entries":[{"key":"k1","summary":"s","url":"https://x","priority":"high"}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/alerts/sync", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	srv.gin.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, alert.SyncModeOpen, uc.gotMode)
	assert.Equal(t, "ci-build", uc.gotType)
	require.Len(t, uc.gotEntries, 1)
	assert.Equal(t, "k1", uc.gotEntries[0].Key)

	var resp struct {
		Data alert.SyncReport `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Data.Created)
}

func TestSyncEndpointUnknownMode(t *testing.T) {
	uc := &stubUseCase{syncErr: alert.ErrUnknownSyncMode}
	srv := newTestServer(t, uc)

	body := `{"mode":"weekly","type":"ci-build"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/alerts/sync", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	srv.gin.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDetailEndpointRejectsBadID(t *testing.T) {
	srv := newTestServer(t, &stubUseCase{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/alerts/not-a-uuid", nil)
	rec := httptest.NewRecorder()

	srv.gin.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDetailEndpointNotFound(t *testing.T) {
	srv := newTestServer(t, &stubUseCase{detailErr: alert.ErrAlertNotFound})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/alerts/7c04077c-3f3a-4c41-bb9d-6e6a0b6f23a1", nil)
	rec := httptest.NewRecorder()

	srv.gin.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDashboardEndpoint(t *testing.T) {
	srv := newTestServer(t, &stubUseCase{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)
	rec := httptest.NewRecorder()

	srv.gin.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data alert.DashboardOutput `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(3), resp.Data.Open)
	assert.Equal(t, int64(1), resp.Data.Overdue)
	assert.Equal(t, map[string]int64{"ci-build": 3}, resp.Data.ByType)
}

func TestListEndpointRejectsBadScope(t *testing.T) {
	srv := newTestServer(t, &stubUseCase{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/alerts?scope=everything", nil)
	rec := httptest.NewRecorder()

	srv.gin.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
