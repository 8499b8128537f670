package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mapa3/distribucion-app/internal/logger"
)

func TestHostAllowed(t *testing.T) {
	tests := []struct {
		host     string
		patterns []string
		want     bool
	}{
		{"localhost:8000", []string{"localhost", "127.0.0.1"}, true},
		{"127.0.0.1", []string{"localhost", "127.0.0.1"}, true},
		{"LOCALHOST", []string{"localhost"}, true},
		{"example.com.", []string{"example.com"}, true},
		{"mapa3.cl", []string{".mapa3.cl"}, true},
		{"app.mapa3.cl:443", []string{".mapa3.cl"}, true},
		{"evilmapa3.cl", []string{".mapa3.cl"}, false},
		{"anything.test", []string{"*"}, true},
		{"[::1]:8000", []string{"[::1]"}, true},
		{"evil.test", []string{"localhost", "127.0.0.1", "0.0.0.0"}, false},
		{"", []string{"localhost"}, false},
		// entries are not trimmed
		{"localhost", []string{" localhost"}, false},
		{"localhost", []string{""}, false},
	}

	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			assert.Equal(t, tt.want, hostAllowed(tt.host, tt.patterns))
		})
	}
}

func TestWithAllowedHosts(t *testing.T) {
	settings := testSettings(t)
	h := &Handler{settings: settings, logger: logger.Nop()}

	nextCalled := false
	middleware := h.withAllowedHosts(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Host = "evil.test:8000"
	rr := httptest.NewRecorder()
	middleware.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.False(t, nextCalled)

	req.Host = "example.com:8000"
	rr = httptest.NewRecorder()
	middleware.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, nextCalled)
}
