package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

type stubChecker struct{ err error }

func (s stubChecker) PingContext(context.Context) error { return s.err }

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name       string
		checker    HealthChecker
		wantStatus int
		wantBody   string
	}{
		{name: "healthy", checker: stubChecker{}, wantStatus: http.StatusOK, wantBody: "healthy"},
		{name: "database down", checker: stubChecker{err: errors.New("connection refused")}, wantStatus: http.StatusServiceUnavailable, wantBody: "unhealthy"},
		{name: "no checker", checker: nil, wantStatus: http.StatusOK, wantBody: "healthy"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := New("127.0.0.1:0", tc.checker, "release")

			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			resp := httptest.NewRecorder()
			srv.Engine.ServeHTTP(resp, req)

			require.Equal(t, tc.wantStatus, resp.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
			require.Equal(t, tc.wantBody, body["status"])
		})
	}
}

func TestRun_StopsOnCancel(t *testing.T) {
	srv := New("127.0.0.1:0", nil, "release")
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()
	cancel()

	require.NoError(t, <-done)
}
