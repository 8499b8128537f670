package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResponseWriter(t *testing.T) {
	t.Run("explicit status", func(t *testing.T) {
		rec := httptest.NewRecorder()
		w := &responseWriter{ResponseWriter: rec}

		w.WriteHeader(http.StatusCreated)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("hola"))
		_, _ = w.Write([]byte(" mundo"))

		assert.Equal(t, http.StatusCreated, w.status)
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, 10, w.size)
		assert.Equal(t, "hola mundo", rec.Body.String())
	})

	t.Run("implicit status", func(t *testing.T) {
		rec := httptest.NewRecorder()
		w := &responseWriter{ResponseWriter: rec}

		_, _ = w.Write([]byte("ok"))

		assert.Equal(t, http.StatusOK, w.status)
		assert.Equal(t, 2, w.size)
	})

	t.Run("nothing written", func(t *testing.T) {
		w := &responseWriter{ResponseWriter: httptest.NewRecorder()}

		assert.Zero(t, w.status)
		assert.Zero(t, w.size)
	})
}
