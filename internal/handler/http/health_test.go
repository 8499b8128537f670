package http

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mapa3/distribucion-app/internal/service"
)

func TestHealthCheck(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "database answers",
			wantStatus: http.StatusOK,
			wantBody:   `{"status":"ok"}`,
		},
		{
			name:       "database down",
			err:        fmt.Errorf("%w: connection refused", service.ErrDependencyIsNotAvailable),
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   `{"status":"unavailable"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(t, nil)
			h.services.HealthService = &mockHealthService{err: tt.err}

			rr := serve(h.Init(), http.MethodGet, "/healthz")

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.JSONEq(t, tt.wantBody, rr.Body.String())
		})
	}
}

func TestHealthCheck_NotRedirectedToHTTPS(t *testing.T) {
	settings := testSettings(t)
	settings.Security.SSLRedirect = true
	h := newTestHandler(t, settings)

	rr := serve(h.Init(), http.MethodGet, "/healthz")
	assert.Equal(t, http.StatusOK, rr.Code)
}
