package services

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// CaptureEvent is pushed over the live feed after a successful capture
type CaptureEvent struct {
	Type       string    `json:"type"`
	CarID      int64     `json:"car_id"`
	CarName    string    `json:"car_name"`
	Rarity     string    `json:"rarity"`
	EarnedXP   int       `json:"earnedXP"`
	NewXP      int       `json:"newXP"`
	NewLevel   int       `json:"newLevel"`
	Image      string    `json:"image"`
	CapturedAt time.Time `json:"captured_at"`
}

// feedClient wraps a connection with a write mutex; gorilla/websocket
// allows at most one concurrent writer per connection.
type feedClient struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *feedClient) write(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// Feed manages per-user websocket connections for the live capture feed
type Feed struct {
	mu      sync.RWMutex
	clients map[int64]*feedClient
}

// NewFeed creates a new feed
func NewFeed() *Feed {
	return &Feed{clients: make(map[int64]*feedClient)}
}

// Register registers a connection for a user. A new connection replaces and
// closes any existing one.
func (f *Feed) Register(userID int64, conn *websocket.Conn) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if existing, ok := f.clients[userID]; ok {
		existing.conn.Close()
	}
	f.clients[userID] = &feedClient{conn: conn}

	log.Info().Int64("user_id", userID).Msg("Feed connection registered")
}

// Unregister removes and closes the user's connection, but only if conn is
// still the registered one. The handler goroutine of a connection that was
// replaced by Register unregisters after the replacement is already in
// place; that teardown must not take the replacement down with it.
func (f *Feed) Unregister(userID int64, conn *websocket.Conn) {
	f.mu.Lock()
	defer f.mu.Unlock()

	client, ok := f.clients[userID]
	if !ok || client.conn != conn {
		return
	}
	client.conn.Close()
	delete(f.clients, userID)
	log.Info().Int64("user_id", userID).Msg("Feed connection unregistered")
}

// IsOnline reports whether the user has a feed connection
func (f *Feed) IsOnline(userID int64) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, ok := f.clients[userID]
	return ok
}

// Publish sends an event to the user's connection, if any. A failed write
// drops the connection.
func (f *Feed) Publish(userID int64, event CaptureEvent) {
	f.mu.RLock()
	client, ok := f.clients[userID]
	f.mu.RUnlock()
	if !ok {
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("Failed to marshal feed event")
		return
	}

	if err := client.write(data); err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("Failed to publish feed event")
		f.Unregister(userID, client.conn)
	}
}
