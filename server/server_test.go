package server

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/XiPeng415/kg-explorer/internal/profile"
	"github.com/XiPeng415/kg-explorer/store/storetest"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s, err := NewServer(&profile.Profile{Mode: "demo", Version: "test"}, storetest.NewStore(t), logger)
	require.NoError(t, err)
	return s
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	s.echoServer.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Service ready.", rec.Body.String())
}

func TestQueryRouteServedEndToEnd(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/query", strings.NewReader(`{"question":"Dataset overview"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.echoServer.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Dataset Overview")
}

func TestRateLimitRejectsBurst(t *testing.T) {
	s := newTestServer(t)

	statuses := make(map[int]int)
	for i := 0; i < 40; i++ {
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		req.RemoteAddr = "203.0.113.9:4000"
		rec := httptest.NewRecorder()
		s.echoServer.ServeHTTP(rec, req)
		statuses[rec.Code]++
	}

	assert.Greater(t, statuses[http.StatusOK], 0)
	assert.Greater(t, statuses[http.StatusTooManyRequests], 0)
}

func TestWebRootMustExist(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	_, err := NewServer(&profile.Profile{Mode: "demo", WebRoot: "/definitely/not/a/dir"}, storetest.NewStore(t), logger)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "web root")
}
