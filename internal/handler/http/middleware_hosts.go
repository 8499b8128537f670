package http

import (
	"net"
	"net/http"
	"strings"

	"github.com/mapa3/distribucion-app/internal/logger"
)

// withAllowedHosts rejects requests whose Host header matches none of the
// configured hosts with 400 Bad Request.
func (h *Handler) withAllowedHosts(next http.Handler) http.Handler {
	allowed := h.settings.AllowedHosts

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !hostAllowed(r.Host, allowed) {
			logger.FromRequest(r).Warn().
				Err(ErrHostNotAllowed).
				Str("func", "*Handler.withAllowedHosts").
				Str("host", r.Host).
				Msg("rejected request")
			http.Error(w, "Bad Request (400)", http.StatusBadRequest)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// hostAllowed matches the host part of hostport against patterns. "*"
// matches anything, ".example.com" matches example.com and every subdomain,
// any other pattern must match exactly. Matching ignores case and the port.
func hostAllowed(hostport string, patterns []string) bool {
	host := strings.ToLower(stripPort(hostport))
	host = strings.TrimSuffix(host, ".")
	if host == "" {
		return false
	}

	for _, pattern := range patterns {
		pattern = strings.ToLower(pattern)
		switch {
		case pattern == "*":
			return true
		case strings.HasPrefix(pattern, "."):
			if host == pattern[1:] || strings.HasSuffix(host, pattern) {
				return true
			}
		case host == pattern:
			return true
		}
	}

	return false
}

func stripPort(hostport string) string {
	host, _, err := net.SplitHostPort(hostport)
	if err != nil {
		return hostport
	}
	// IPv6 literals are listed in brackets
	if strings.Contains(host, ":") {
		return "[" + host + "]"
	}
	return host
}
