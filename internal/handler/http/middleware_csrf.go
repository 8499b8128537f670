package http

import (
	"crypto/sha256"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/csrf"
	"golang.org/x/crypto/hkdf"

	"github.com/mapa3/distribucion-app/internal/logger"
)

const (
	csrfKeySize   = 32
	csrfKeyInfo   = "distribucion-app csrf cookie"
	csrfCookie    = "csrftoken"
	csrfHeader    = "X-CSRFToken"
	csrfFormField = "csrfmiddlewaretoken"
)

// deriveCSRFKey stretches the application secret into the 32-byte key the
// CSRF cookie is authenticated with.
func deriveCSRFKey(secret string) ([]byte, error) {
	key := make([]byte, csrfKeySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(csrfKeyInfo)), key); err != nil {
		return nil, fmt.Errorf("error deriving csrf key: %w", err)
	}
	return key, nil
}

// withCSRF checks a token on every unsafe request. Plain HTTP requests are
// marked as such so that the Referer check only applies over TLS.
func (h *Handler) withCSRF() func(http.Handler) http.Handler {
	settings := h.settings.CSRF

	protect := csrf.Protect(h.csrfKey,
		csrf.Path("/"),
		csrf.CookieName(csrfCookie),
		csrf.RequestHeader(csrfHeader),
		csrf.FieldName(csrfFormField),
		csrf.Secure(settings.CookieSecure),
		csrf.HttpOnly(settings.CookieHTTPOnly),
		csrf.SameSite(sameSiteMode(settings.CookieSameSite)),
		csrf.TrustedOrigins(originHosts(settings.TrustedOrigins)),
		csrf.ErrorHandler(http.HandlerFunc(h.csrfFailure)),
	)

	return func(next http.Handler) http.Handler {
		protected := protect(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !h.isSecure(r) {
				r = csrf.PlaintextHTTPRequest(r)
			}
			protected.ServeHTTP(w, r)
		})
	}
}

func (h *Handler) csrfFailure(w http.ResponseWriter, r *http.Request) {
	reason := csrf.FailureReason(r)
	logger.FromRequest(r).Warn().
		Err(reason).
		Str("func", "*Handler.csrfFailure").
		Str("uri", r.RequestURI).
		Msg("csrf verification failed")

	msg := "Forbidden (403)\nCSRF verification failed. Request aborted.\n"
	if h.settings.Debug && reason != nil {
		msg += "Reason: " + reason.Error() + "\n"
	}
	http.Error(w, msg, http.StatusForbidden)
}

func sameSiteMode(value string) csrf.SameSiteMode {
	switch strings.ToLower(value) {
	case "strict":
		return csrf.SameSiteStrictMode
	case "none":
		return csrf.SameSiteNoneMode
	default:
		return csrf.SameSiteLaxMode
	}
}

// originHosts turns origins such as "http://localhost:8000" into the
// host:port form the CSRF Origin and Referer checks compare against.
func originHosts(origins []string) []string {
	hosts := make([]string, 0, len(origins))
	for _, origin := range origins {
		u, err := url.Parse(origin)
		if err != nil || u.Host == "" {
			continue
		}
		hosts = append(hosts, u.Host)
	}
	return hosts
}
