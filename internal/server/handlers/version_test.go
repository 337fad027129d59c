package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVersionHandler(t *testing.T) {
	SetVersionInfo("9.9.9", "abc1234", "2026-08-23")
	defer SetVersionInfo("dev", "unknown", "unknown")

	req := httptest.NewRequest(http.MethodGet, "/version", nil)
	rec := httptest.NewRecorder()
	VersionHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp VersionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "nameforge", resp.App.Name)
	require.Equal(t, "9.9.9", resp.App.Version)
	require.Equal(t, "abc1234", resp.App.Commit)
	require.Equal(t, "2026-08-23", resp.App.BuildDate)
	require.Equal(t, runtime.Version(), resp.App.GoVersion)
	require.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, resp.Runtime.Platform)
	require.Greater(t, resp.Runtime.NumCPU, 0)
}
