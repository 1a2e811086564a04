package geminiservice

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFakeGemini(t *testing.T, status int, body string, seen *map[string]any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if seen != nil {
			raw, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(raw, seen)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func candidateBody(text string) string {
	b, _ := json.Marshal(map[string]any{
		"candidates": []any{
			map[string]any{
				"content": map[string]any{
					"role":  "model",
					"parts": []any{map[string]any{"text": text}},
				},
			},
		},
	})
	return string(b)
}

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	c, err := NewClient(context.Background(), Config{
		APIKey:  "test-key",
		Model:   "gemini-test",
		Timeout: 5 * time.Second,
		BaseURL: baseURL,
	})
	require.NoError(t, err)
	return c
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	_, err := NewClient(context.Background(), Config{APIKey: "  "})
	assert.Error(t, err)
}

func TestNewClient_Defaults(t *testing.T) {
	c, err := NewClient(context.Background(), Config{APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, DefaultModel, c.Model())
	assert.Equal(t, DefaultTimeout, c.timeout)
}

func TestClient_Send_ReturnsCandidateText(t *testing.T) {
	var seen map[string]any
	srv := newFakeGemini(t, http.StatusOK, candidateBody(`{"recommendations":[],"summary":"ok","alerts":[]}`), &seen)

	text, err := newTestClient(t, srv.URL).Send(context.Background(), "be helpful", "biopatch-u1-20261019", "dữ liệu")

	require.NoError(t, err)
	assert.Equal(t, `{"recommendations":[],"summary":"ok","alerts":[]}`, text)

	raw, _ := json.Marshal(seen)
	assert.True(t, strings.Contains(string(raw), "be helpful"), "system instruction should be sent")
	assert.True(t, strings.Contains(string(raw), "dữ liệu"), "user message should be sent")
}

func TestClient_Send_ServiceError(t *testing.T) {
	srv := newFakeGemini(t, http.StatusInternalServerError, `{"error":{"code":500,"message":"boom","status":"INTERNAL"}}`, nil)

	_, err := newTestClient(t, srv.URL).Send(context.Background(), "s", "sid", "u")
	assert.Error(t, err)
}

func TestClient_Send_EmptyCandidates(t *testing.T) {
	srv := newFakeGemini(t, http.StatusOK, `{"candidates":[]}`, nil)

	_, err := newTestClient(t, srv.URL).Send(context.Background(), "s", "sid", "u")
	assert.Error(t, err)
}
