package handlers

import (
	"net/http"

	"github.com/clipstream/backend/internal/api/middleware"
	"github.com/clipstream/backend/internal/service"
)

type DashboardHandler struct {
	dashboardService *service.DashboardService
}

func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	stats, err := h.dashboardService.Stats(r.Context(), userID)
	if err != nil {
		writeServiceError(w, "DashboardHandler.Stats", err)
		return
	}

	respond(w, http.StatusOK, stats, "Channel stats fetched")
}

func (h *DashboardHandler) Videos(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	page, err := h.dashboardService.Videos(r.Context(), userID, parseListOptions(r))
	if err != nil {
		writeServiceError(w, "DashboardHandler.Videos", err)
		return
	}

	respond(w, http.StatusOK, VideoPageResponse{
		Videos:     page.Videos,
		Page:       page.Page,
		TotalPages: page.TotalPages,
		Total:      page.Total,
	}, "Channel videos fetched")
}
