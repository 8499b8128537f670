package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	healthPath  = "/healthz"
	versionPath = "/api/version"

	// static files carry hashed names, media files do not
	staticCacheControl = "public, max-age=31536000, immutable"
	mediaCacheControl  = "public, max-age=3600"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(
		middleware.Recoverer,
		h.withTraceID,
		h.withLogging,
		h.withAllowedHosts,
		h.withSecurityHeaders,
	)
	if h.limiter != nil {
		router.Use(h.withRateLimit)
	}
	router.Use(h.withCSRF())

	router.Get(healthPath, h.healthCheck)
	router.Get(versionPath, h.getServerVersion)
	router.Get(versionPath+"/info", h.getBuildInfo)

	h.mountFiles(router, h.settings.Static.URL, h.settings.Static.Root, staticCacheControl)
	h.mountFiles(router, h.settings.Static.MediaURL, h.settings.Static.MediaRoot, mediaCacheControl)

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
