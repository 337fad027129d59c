package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHealthHandlerHealthy(t *testing.T) {
	hm := NewHealthManager("1.2.3")
	hm.RegisterChecker("always_ok", HealthCheckerFunc(func(ctx context.Context) error {
		return nil
	}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	hm.HealthHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "healthy", resp.Status)
	require.Equal(t, "1.2.3", resp.Version)
	require.Equal(t, "healthy", resp.Checks["always_ok"])
}

func TestHealthHandlerUnhealthy(t *testing.T) {
	hm := NewHealthManager("1.2.3")
	hm.RegisterChecker("broken", HealthCheckerFunc(func(ctx context.Context) error {
		return errors.New("dependency down")
	}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	hm.HealthHandler(rec, req)

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Contains(t, rec.Body.String(), "SERVICE_UNAVAILABLE")
}

func TestProbeHandlers(t *testing.T) {
	hm := NewHealthManager("1.2.3")

	probes := map[string]http.HandlerFunc{
		"live":    hm.LivenessHandler,
		"ready":   hm.ReadinessHandler,
		"startup": hm.StartupHandler,
	}

	for name, handler := range probes {
		req := httptest.NewRequest(http.MethodGet, "/health/"+name, nil)
		rec := httptest.NewRecorder()
		handler(rec, req)

		require.Equal(t, http.StatusOK, rec.Code, "probe %s", name)

		var resp ProbeResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, "healthy", resp.Status)
	}
}

func TestReadinessFailsWhenCheckerFails(t *testing.T) {
	hm := NewHealthManager("1.2.3")
	hm.RegisterChecker("provider", HealthCheckerFunc(func(ctx context.Context) error {
		return errors.New("api key missing")
	}))

	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	rec := httptest.NewRecorder()
	hm.ReadinessHandler(rec, req)

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
