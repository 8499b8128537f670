package http

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// mountFiles serves root under urlPrefix. Directory listings are not
// served.
func (h *Handler) mountFiles(router chi.Router, urlPrefix, root, cacheControl string) {
	if urlPrefix == "" || root == "" {
		return
	}

	prefix := "/" + strings.Trim(urlPrefix, "/") + "/"
	fileServer := http.StripPrefix(prefix, http.FileServer(http.Dir(root)))

	router.Get(prefix+"*", func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}

		w.Header().Set("Cache-Control", cacheControl)
		fileServer.ServeHTTP(w, r)
	})
}
