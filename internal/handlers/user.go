package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"carspotter-backend/internal/models"
	"carspotter-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// UserHandler handles registration and login
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// RegisterRequest represents the request body for registration
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// userProfile is the public user shape returned by login
type userProfile struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	XP       int    `json:"xp"`
	Level    int    `json:"level"`
}

func profileOf(u *models.User) userProfile {
	return userProfile{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		XP:       u.XP,
		Level:    u.Level,
	}
}

// Register handles POST /user/register
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Missing fields: username, password or email", http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Password == "" || req.Username == "" {
		respondError(w, "Missing fields: username, password or email", http.StatusBadRequest)
		return
	}

	if err := h.userService.Register(ctx, req.Username, req.Email, req.Password); err != nil {
		switch {
		case errors.Is(err, services.ErrEmailTaken):
			respondError(w, "Email is taken", http.StatusConflict)
		case errors.Is(err, services.ErrUsernameTaken):
			respondError(w, "Username is taken", http.StatusConflict)
		case errors.Is(err, services.ErrBadEncoding):
			respondError(w, "Invalid password encoding", http.StatusBadRequest)
		default:
			log.Error().Err(err).Str("username", req.Username).Msg("Failed to register user")
			respondError(w, "Internal Server Error", http.StatusInternalServerError)
		}
		return
	}

	log.Info().Str("username", req.Username).Msg("User registered")

	respondJSON(w, http.StatusCreated, map[string]string{"message": "Success"})
}

// Login handles POST /user/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Missing username or password", http.StatusBadRequest)
		return
	}
	if req.Username == "" || req.Password == "" {
		respondError(w, "Missing username or password", http.StatusBadRequest)
		return
	}

	token, user, err := h.userService.Login(ctx, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			respondError(w, "User not found", http.StatusNotFound)
		case errors.Is(err, services.ErrWrongPassword):
			respondError(w, "Wrong password", http.StatusUnauthorized)
		case errors.Is(err, services.ErrBadEncoding):
			respondError(w, "Invalid password encoding", http.StatusBadRequest)
		default:
			log.Error().Err(err).Str("username", req.Username).Msg("Failed to log in user")
			respondError(w, "Internal Server Error", http.StatusInternalServerError)
		}
		return
	}

	log.Info().Int64("user_id", user.ID).Str("username", user.Username).Msg("User logged in")

	respondJSON(w, http.StatusOK, map[string]any{
		"message": "Success Login",
		"token":   token,
		"user":    profileOf(user),
	})
}
