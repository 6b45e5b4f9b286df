package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpadapter "github.com/couchcryptid/wxtools/internal/adapter/http"
)

func ready(err error) httpadapter.ReadinessChecker {
	return httpadapter.ReadinessFunc(func(context.Context) error { return err })
}

func serve(t *testing.T, srv *httpadapter.Server, path string) (int, map[string]string) {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)

	srv.ServeHTTP(rec, req)

	var body map[string]string
	if rec.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec.Code, body
}

func TestHealthzReturns200(t *testing.T) {
	srv := httpadapter.NewServer(":0", slog.Default())

	code, body := serve(t, srv, "/healthz")

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "healthy", body["status"])
}

func TestReadyzReturns200WhenAllReady(t *testing.T) {
	srv := httpadapter.NewServer(":0", slog.Default(), ready(nil), ready(nil))

	code, body := serve(t, srv, "/readyz")

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ready", body["status"])
}

func TestReadyzReturns503WhenAnyNotReady(t *testing.T) {
	srv := httpadapter.NewServer(":0", slog.Default(), ready(nil), ready(errors.New("favourites file: permission denied")))

	code, body := serve(t, srv, "/readyz")

	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "not ready", body["status"])
	assert.Equal(t, "favourites file: permission denied", body["error"])
}

func TestMetricsEndpoint(t *testing.T) {
	srv := httpadapter.NewServer(":0", slog.Default())
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestUnknownMethodRejected(t *testing.T) {
	srv := httpadapter.NewServer(":0", slog.Default())
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/healthz", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
