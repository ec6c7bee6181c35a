package models

import (
	"math"
	"time"
)

// Car rarity tiers. The XP award table is keyed on these; unrecognized
// rarities fall back to the Common award.
const (
	RarityCommon    = "Common"
	RarityRare      = "Rare"
	RarityLegendary = "Legendary"
)

// User represents a registered player
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	XP        int       `json:"xp"`
	Level     int       `json:"level"`
	CreatedAt time.Time `json:"created_at"`
}

// Car is a catalog entry; read-only from this service's perspective
type Car struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Rarity      string `json:"rarity"`
	XP          int    `json:"xp"`
}

// CarSummary is the car shape embedded in garage and dashboard responses
type CarSummary struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Rarity      string `json:"rarity"`
}

// Capture records a user photographing a specific car
type Capture struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	CarID      int64     `json:"car_id"`
	Location   *string   `json:"location"`
	ImagePath  string    `json:"image_path"`
	CapturedAt time.Time `json:"captured_at"`
}

// GarageEntry is one capture joined with its car, as returned by /cars/garage
type GarageEntry struct {
	CaptureID  int64      `json:"capture_id"`
	Car        CarSummary `json:"car"`
	Location   *string    `json:"location"`
	CapturedAt time.Time  `json:"captured_at"`
	ImageURL   string     `json:"image_url"`
}

// XPForRarity returns the XP awarded for capturing a car of the given rarity.
func XPForRarity(rarity string) int {
	switch rarity {
	case RarityRare:
		return 20
	case RarityLegendary:
		return 50
	default:
		return 10
	}
}

// LevelForXP derives a player's level from total experience points.
// Mirrors the SQL expression used by the XP award statement.
func LevelForXP(xp int) int {
	return int(math.Floor(0.25 * math.Sqrt(float64(xp))))
}
