package handlers

import (
	"net/http"

	"carspotter-backend/internal/middleware"
	"carspotter-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// DashboardHandler handles the dashboard views
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// Recent handles GET /dashboard/recent
func (h *DashboardHandler) Recent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	cars, err := h.dashboardService.Recent(ctx, userID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("Failed to list today's captures")
		respondError(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"totalCapturedToday": len(cars),
		"cars":               cars,
	})
}

// Summary handles GET /dashboard/summary
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	summary, err := h.dashboardService.Summarize(ctx, userID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("Failed to compute dashboard summary")
		respondError(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, summary)
}
