package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"studiobook/internal/catalog/service"
	httputil "studiobook/pkg/http"
	"studiobook/pkg/logger"
)

type ClassHandler struct {
	service service.CatalogService
	log     *logger.Logger
}

func NewClassHandler(service service.CatalogService, log *logger.Logger) *ClassHandler {
	return &ClassHandler{
		service: service,
		log:     log,
	}
}

func (h *ClassHandler) ListUpcoming(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	targetTZ := r.URL.Query().Get("timezone")

	classes, err := h.service.ListUpcoming(r.Context(), targetTZ)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ListUpcoming", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, classes); err != nil {
		h.log.Error("failed to write success response", "handler", "ListUpcoming", "error", err)
	}
}

func (h *ClassHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/classes", h.ListUpcoming)
}
