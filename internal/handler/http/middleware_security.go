package http

import (
	"net/http"
	"strings"
)

// withSecurityHeaders redirects plain HTTP to HTTPS when enabled and sets the
// browser hardening headers. The health endpoint is never redirected so
// container probes can use plain HTTP.
func (h *Handler) withSecurityHeaders(next http.Handler) http.Handler {
	security := h.settings.Security

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if security.SSLRedirect && !h.isSecure(r) && r.URL.Path != healthPath {
			target := "https://" + r.Host + r.URL.RequestURI()
			http.Redirect(w, r, target, http.StatusMovedPermanently)
			return
		}

		header := w.Header()
		if security.XFrameOptions != "" {
			header.Set("X-Frame-Options", security.XFrameOptions)
		}
		if security.ContentTypeNosniff {
			header.Set("X-Content-Type-Options", "nosniff")
		}
		if security.BrowserXSSFilter {
			header.Set("X-XSS-Protection", "1; mode=block")
		}
		header.Set("Referrer-Policy", "same-origin")
		header.Set("Cross-Origin-Opener-Policy", "same-origin")

		next.ServeHTTP(w, r)
	})
}

// isSecure reports whether the client reached us over TLS. X-Forwarded-Proto
// only counts when the server is configured to trust its proxy.
func (h *Handler) isSecure(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}
	return h.settings.Server.TrustForwardedProto &&
		strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}
