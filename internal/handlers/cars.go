package handlers

import (
	"net/http"
	"strconv"

	"carspotter-backend/internal/middleware"
	"carspotter-backend/internal/repository"
	"carspotter-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// CarHandler handles the catalog, garage and missing-cars listings
type CarHandler struct {
	carService *services.CarService
}

// NewCarHandler creates a new car handler
func NewCarHandler(carService *services.CarService) *CarHandler {
	return &CarHandler{
		carService: carService,
	}
}

// Catalog handles GET /cars/catalog
func (h *CarHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	cars, err := h.carService.Catalog(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list catalog")
		respondError(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"allCars": cars})
}

// Garage handles GET /cars/garage
func (h *CarHandler) Garage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	entries, err := h.carService.Garage(ctx, userID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("Failed to list garage")
		respondError(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"garage": entries})
}

// Missing handles GET /cars/missing
func (h *CarHandler) Missing(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	filter := parseMissingFilter(r)
	cars, err := h.carService.Missing(ctx, userID, filter)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("Failed to list missing cars")
		respondError(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"missingCount": len(cars),
		"missingCars":  cars,
	})
}

// parseMissingFilter reads the optional query parameters. Absent, empty or
// non-numeric values are ignored rather than rejected.
func parseMissingFilter(r *http.Request) repository.MissingFilter {
	q := r.URL.Query()
	var f repository.MissingFilter

	if rarity := q.Get("rarity"); rarity != "" && rarity != "null" {
		f.Rarity = rarity
	}
	if v := q.Get("xp_min"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			f.XPMin = &n
		}
	}
	if v := q.Get("xp_max"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			f.XPMax = &n
		}
	}
	f.Name = q.Get("name")

	return f
}
