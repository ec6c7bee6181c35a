package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"carspotter-backend/internal/middleware"
	"carspotter-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// CaptureHandler handles capture uploads
type CaptureHandler struct {
	captureService *services.CaptureService
}

// NewCaptureHandler creates a new capture handler
func NewCaptureHandler(captureService *services.CaptureService) *CaptureHandler {
	return &CaptureHandler{
		captureService: captureService,
	}
}

// CaptureRequest represents the request body for a capture upload
type CaptureRequest struct {
	CarID       int64   `json:"car_id"`
	Location    *string `json:"location"`
	ImageBase64 string  `json:"image_base64"`
}

// captureResponse is the success body for a capture upload
type captureResponse struct {
	Message  string `json:"message"`
	Image    string `json:"image"`
	EarnedXP int    `json:"earnedXP"`
	NewXP    int    `json:"newXP"`
	NewLevel int    `json:"newLevel"`
}

// Create handles POST /captures
func (h *CaptureHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	var req CaptureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.CarID == 0 || req.ImageBase64 == "" {
		respondError(w, "Missing fields: car_id or image", http.StatusBadRequest)
		return
	}

	result, err := h.captureService.Capture(ctx, userID, req.CarID, req.Location, req.ImageBase64)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCarNotFound):
			respondError(w, "Unknown car_id", http.StatusBadRequest)
		case errors.Is(err, services.ErrInvalidImage):
			respondError(w, "Invalid image payload", http.StatusBadRequest)
		default:
			log.Error().
				Err(err).
				Int64("user_id", userID).
				Int64("car_id", req.CarID).
				Msg("Failed to save capture")
			respondError(w, "Internal Server Error", http.StatusInternalServerError)
		}
		return
	}

	log.Info().
		Int64("user_id", userID).
		Int64("car_id", req.CarID).
		Int("earned_xp", result.EarnedXP).
		Int("new_level", result.NewLevel).
		Msg("Capture saved")

	respondJSON(w, http.StatusCreated, captureResponse{
		Message:  "Capture saved successfully",
		Image:    result.Image,
		EarnedXP: result.EarnedXP,
		NewXP:    result.NewXP,
		NewLevel: result.NewLevel,
	})
}
