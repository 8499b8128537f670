package http

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mapa3/distribucion-app/models"
)

func TestGetServerVersion(t *testing.T) {
	router := newTestHandler(t, nil).Init()

	rr := serve(router, http.MethodGet, "/api/version")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "1.4.0", rr.Body.String())
	assert.Equal(t, "text/plain; charset=utf-8", rr.Header().Get("Content-Type"))
}

func TestGetBuildInfo(t *testing.T) {
	router := newTestHandler(t, nil).Init()

	rr := serve(router, http.MethodGet, "/api/version/info")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var info models.AppBuildInfo
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &info))
	assert.Equal(t, models.AppBuildInfo{Version: "1.4.0", Date: "2026-03-01", Commit: "abc1234"}, info)
}
