package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"BioPatch_V1/internal/auth"
	"BioPatch_V1/internal/config"
	"BioPatch_V1/internal/database"
	"BioPatch_V1/internal/recommendation"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fallbackOnly struct{}

func (fallbackOnly) Generate(_ context.Context, s recommendation.Snapshot) recommendation.Bundle {
	return recommendation.GenerateFallback(s)
}

func newTestServer(t *testing.T, jwtSecret string) *Server {
	t.Helper()
	cfg := config.Config{
		Port:           8001,
		CORSOrigins:    []string{"*"},
		JWTSecret:      jwtSecret,
		ProfileCacheSz: 8,
		GeminiTimeout:  time.Second,
	}
	s, err := New(cfg, database.NewMemoryService(), fallbackOnly{})
	require.NoError(t, err)
	return s
}

func serve(s *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestRoot(t *testing.T) {
	s := newTestServer(t, "")
	rec := serve(s, httptest.NewRequest(http.MethodGet, "/api/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Hello World"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}

func TestRequestIDIsEchoed(t *testing.T) {
	s := newTestServer(t, "")
	req := httptest.NewRequest(http.MethodGet, "/api/", nil)
	req.Header.Set(echo.HeaderXRequestID, "req-123")
	rec := serve(s, req)
	assert.Equal(t, "req-123", rec.Header().Get(echo.HeaderXRequestID))
}

func TestStatusChecks(t *testing.T) {
	s := newTestServer(t, "")

	req := httptest.NewRequest(http.MethodPost, "/api/status", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	assert.Equal(t, http.StatusBadRequest, serve(s, req).Code)

	req = httptest.NewRequest(http.MethodPost, "/api/status", strings.NewReader(`{"client_name":"ios-app"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := serve(s, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var created database.StatusCheck
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "ios-app", created.ClientName)

	rec = serve(s, httptest.NewRequest(http.MethodGet, "/api/status", nil))
	var list []database.StatusCheck
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, "")
	rec := serve(s, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "online", body["status"])
	db := body["database"].(map[string]any)
	assert.Equal(t, "memory", db["driver"])
	assert.Contains(t, body, "runtime")
}

func TestPatientRoutes_Mounted(t *testing.T) {
	s := newTestServer(t, "")
	req := httptest.NewRequest(http.MethodPost, "/api/recommendations/u1", strings.NewReader(`{"temperature":38.1}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := serve(s, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var b recommendation.Bundle
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &b))
	assert.Equal(t, []string{"Nhiệt độ vùng đau cao hơn bình thường"}, b.Alerts)
}

func TestPatientRoutes_RequireTokenWhenConfigured(t *testing.T) {
	s := newTestServer(t, "secret")

	rec := serve(s, httptest.NewRequest(http.MethodGet, "/api/profile/u1", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Public routes stay open.
	rec = serve(s, httptest.NewRequest(http.MethodGet, "/api/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	tok, err := auth.IssueToken("secret", "u1", time.Now())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/profile/u1", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+tok)
	assert.Equal(t, http.StatusOK, serve(s, req).Code)

	req = httptest.NewRequest(http.MethodGet, "/api/profile/u2", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+tok)
	assert.Equal(t, http.StatusForbidden, serve(s, req).Code)
}

func TestNewServer_Timeouts(t *testing.T) {
	cfg := config.Config{Port: 9000, CORSOrigins: []string{"*"}, GeminiTimeout: 60 * time.Second}
	srv, err := NewServer(cfg, database.NewMemoryService(), fallbackOnly{})
	require.NoError(t, err)
	assert.Equal(t, ":9000", srv.Addr)
	assert.Equal(t, 90*time.Second, srv.WriteTimeout)
}
