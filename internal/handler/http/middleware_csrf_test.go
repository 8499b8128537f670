package http

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/csrf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mapa3/distribucion-app/internal/logger"
)

func TestDeriveCSRFKey(t *testing.T) {
	first, err := deriveCSRFKey("secreto")
	require.NoError(t, err)
	again, err := deriveCSRFKey("secreto")
	require.NoError(t, err)
	other, err := deriveCSRFKey("otro-secreto")
	require.NoError(t, err)

	assert.Len(t, first, csrfKeySize)
	assert.Equal(t, first, again)
	assert.NotEqual(t, first, other)
}

// csrfServer wraps a handler that prints the masked token on GET and
// answers 200 on anything else.
func csrfServer(t *testing.T) http.Handler {
	t.Helper()
	settings := testSettings(t)
	key, err := deriveCSRFKey(settings.SecretKey)
	require.NoError(t, err)

	h := &Handler{settings: settings, csrfKey: key, logger: logger.Nop()}

	return h.withCSRF()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			_, _ = io.WriteString(w, csrf.Token(r))
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
}

// fetchToken performs a GET and returns the token cookie with the masked
// token from the body.
func fetchToken(t *testing.T, handler http.Handler) (*http.Cookie, string) {
	t.Helper()
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Host = "localhost:8000"
	handler.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	for _, c := range rr.Result().Cookies() {
		if c.Name == csrfCookie {
			return c, rr.Body.String()
		}
	}
	t.Fatalf("no %s cookie in response", csrfCookie)
	return nil, ""
}

func postWithToken(handler http.Handler, cookie *http.Cookie, token, origin string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	req.Host = "localhost:8000"
	if cookie != nil {
		req.AddCookie(cookie)
	}
	if token != "" {
		req.Header.Set(csrfHeader, token)
	}
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func TestWithCSRF_SafeMethodSetsCookie(t *testing.T) {
	cookie, token := fetchToken(t, csrfServer(t))

	assert.NotEmpty(t, cookie.Value)
	assert.NotEmpty(t, token)
	assert.Equal(t, "/", cookie.Path)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.False(t, cookie.Secure)
}

func TestWithCSRF_UnsafeMethod(t *testing.T) {
	handler := csrfServer(t)
	cookie, token := fetchToken(t, handler)

	tests := []struct {
		name     string
		cookie   *http.Cookie
		token    string
		origin   string
		wantCode int
	}{
		{name: "token and cookie", cookie: cookie, token: token, wantCode: http.StatusOK},
		{name: "same origin", cookie: cookie, token: token, origin: "http://localhost:8000", wantCode: http.StatusOK},
		{name: "trusted origin", cookie: cookie, token: token, origin: "https://app.example.com", wantCode: http.StatusOK},
		{name: "untrusted origin", cookie: cookie, token: token, origin: "https://evil.test", wantCode: http.StatusForbidden},
		{name: "no token", cookie: cookie, wantCode: http.StatusForbidden},
		{name: "no cookie", token: token, wantCode: http.StatusForbidden},
		{name: "wrong token", cookie: cookie, token: "bm90LWEtdG9rZW4=", wantCode: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := postWithToken(handler, tt.cookie, tt.token, tt.origin)
			assert.Equal(t, tt.wantCode, rr.Code)
		})
	}
}

func TestWithCSRF_FailureReasonOnlyInDebug(t *testing.T) {
	settings := testSettings(t)
	h := &Handler{settings: settings, logger: logger.Nop()}
	h.csrfKey, _ = deriveCSRFKey(settings.SecretKey)
	handler := h.withCSRF()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	rr := postWithToken(handler, nil, "", "")
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Contains(t, rr.Body.String(), "CSRF verification failed")
	assert.Contains(t, rr.Body.String(), "Reason:")

	settings.Debug = false
	rr = postWithToken(handler, nil, "", "")
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.NotContains(t, rr.Body.String(), "Reason:")
}

func TestSameSiteMode(t *testing.T) {
	assert.Equal(t, csrf.SameSiteStrictMode, sameSiteMode("Strict"))
	assert.Equal(t, csrf.SameSiteNoneMode, sameSiteMode("none"))
	assert.Equal(t, csrf.SameSiteLaxMode, sameSiteMode("Lax"))
	assert.Equal(t, csrf.SameSiteLaxMode, sameSiteMode(""))
}

func TestOriginHosts(t *testing.T) {
	got := originHosts([]string{
		"http://localhost:8000",
		"https://app.example.com",
		"localhost",
		"://bad",
	})

	assert.Equal(t, []string{"localhost:8000", "app.example.com"}, got)
}
