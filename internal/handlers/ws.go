package handlers

import (
	"net/http"

	"carspotter-backend/internal/services"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // same trust level as the permissive CORS policy
	},
}

// FeedHandler serves the live capture feed over a websocket
type FeedHandler struct {
	feed        *services.Feed
	userService *services.UserService
}

// NewFeedHandler creates a new feed handler
func NewFeedHandler(feed *services.Feed, userService *services.UserService) *FeedHandler {
	return &FeedHandler{
		feed:        feed,
		userService: userService,
	}
}

// Serve handles GET /ws. The token arrives as a query parameter because
// browser websocket clients cannot set request headers.
func (h *FeedHandler) Serve(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		respondError(w, "Missing token", http.StatusUnauthorized)
		return
	}

	userID, err := h.userService.ValidateJWT(token)
	if err != nil {
		respondError(w, "Invalid or expired token", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("Failed to upgrade feed connection")
		return
	}

	h.feed.Register(userID, conn)
	defer h.feed.Unregister(userID, conn)

	// The feed is push-only; client frames are drained until the peer closes.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
