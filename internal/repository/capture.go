package repository

import (
	"context"
	"fmt"

	"carspotter-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// CaptureRepository handles database operations for captures
type CaptureRepository struct {
	db *pgxpool.Pool
}

// NewCaptureRepository creates a new capture repository
func NewCaptureRepository(db *pgxpool.Pool) *CaptureRepository {
	return &CaptureRepository{db: db}
}

// Create inserts a new capture; captured_at defaults to the server clock.
func (r *CaptureRepository) Create(ctx context.Context, capture *models.Capture) error {
	query := `
		INSERT INTO captures (user_id, car_id, location, image_path)
		VALUES ($1, $2, $3, $4)
		RETURNING id, captured_at
	`
	err := r.db.QueryRow(ctx, query,
		capture.UserID, capture.CarID, capture.Location, capture.ImagePath,
	).Scan(&capture.ID, &capture.CapturedAt)
	if err != nil {
		return fmt.Errorf("failed to create capture: %w", err)
	}
	return nil
}

// GarageByUser retrieves the user's captures joined with their cars
func (r *CaptureRepository) GarageByUser(ctx context.Context, userID int64) ([]models.GarageEntry, error) {
	query := `
		SELECT
			captures.id,
			captures.image_path,
			captures.location,
			captures.captured_at,
			cars.id,
			cars.name,
			cars.description,
			cars.rarity
		FROM captures
		JOIN cars ON captures.car_id = cars.id
		WHERE captures.user_id = $1
		ORDER BY captures.captured_at DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get garage: %w", err)
	}
	defer rows.Close()

	entries := []models.GarageEntry{}
	for rows.Next() {
		var e models.GarageEntry
		err := rows.Scan(
			&e.CaptureID, &e.ImageURL, &e.Location, &e.CapturedAt,
			&e.Car.ID, &e.Car.Name, &e.Car.Description, &e.Car.Rarity,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan garage entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating garage entries: %w", err)
	}
	return entries, nil
}

// CapturedToday retrieves the cars the user captured on the current
// calendar day, server-local time.
func (r *CaptureRepository) CapturedToday(ctx context.Context, userID int64) ([]models.CarSummary, error) {
	query := `
		SELECT cars.id, cars.name, cars.description, cars.rarity
		FROM captures
		JOIN cars ON captures.car_id = cars.id
		WHERE captures.user_id = $1 AND captures.captured_at::date = CURRENT_DATE
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get today's captures: %w", err)
	}
	defer rows.Close()

	cars := []models.CarSummary{}
	for rows.Next() {
		var car models.CarSummary
		if err := rows.Scan(&car.ID, &car.Name, &car.Description, &car.Rarity); err != nil {
			return nil, fmt.Errorf("failed to scan captured car: %w", err)
		}
		cars = append(cars, car)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating captured cars: %w", err)
	}
	return cars, nil
}

// CountToday counts the user's captures on the current calendar day
func (r *CaptureRepository) CountToday(ctx context.Context, userID int64) (int, error) {
	query := `
		SELECT COUNT(*) FROM captures
		WHERE user_id = $1 AND captured_at::date = CURRENT_DATE
	`
	var total int
	if err := r.db.QueryRow(ctx, query, userID).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count today's captures: %w", err)
	}
	return total, nil
}

// CountByUser counts all captures ever made by the user
func (r *CaptureRepository) CountByUser(ctx context.Context, userID int64) (int, error) {
	query := `SELECT COUNT(*) FROM captures WHERE user_id = $1`
	var total int
	if err := r.db.QueryRow(ctx, query, userID).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count captures: %w", err)
	}
	return total, nil
}

// CountDistinctCars counts the distinct cars the user has captured, so
// repeat captures of one car count once.
func (r *CaptureRepository) CountDistinctCars(ctx context.Context, userID int64) (int, error) {
	query := `SELECT COUNT(DISTINCT car_id) FROM captures WHERE user_id = $1`
	var total int
	if err := r.db.QueryRow(ctx, query, userID).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count distinct cars: %w", err)
	}
	return total, nil
}
