package http

import (
	"net/http"

	"github.com/mapa3/distribucion-app/internal/logger"
	"github.com/mapa3/distribucion-app/internal/utils"
)

type healthResponse struct {
	Status string `json:"status"`
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	if err := h.services.HealthService.Check(r.Context()); err != nil {
		log.Err(err).Str("func", "*Handler.healthCheck").Msg("health check failed")
		utils.WriteJSON(w, healthResponse{Status: "unavailable"}, statusFromError(err))
		return
	}

	utils.WriteJSON(w, healthResponse{Status: "ok"}, http.StatusOK)
}
