package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"carspotter-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// MissingFilter narrows the missing-cars listing. Zero values mean
// "no filter"; conditions are combined with AND.
type MissingFilter struct {
	Rarity string
	XPMin  *int
	XPMax  *int
	Name   string // case-insensitive substring match
}

// CarRepository handles database operations for the car catalog
type CarRepository struct {
	db *pgxpool.Pool
}

// NewCarRepository creates a new car repository
func NewCarRepository(db *pgxpool.Pool) *CarRepository {
	return &CarRepository{db: db}
}

// GetByID retrieves a car by ID
func (r *CarRepository) GetByID(ctx context.Context, id int64) (*models.Car, error) {
	query := `
		SELECT id, name, description, rarity, xp
		FROM cars
		WHERE id = $1
	`
	var car models.Car
	err := r.db.QueryRow(ctx, query, id).Scan(
		&car.ID, &car.Name, &car.Description, &car.Rarity, &car.XP,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get car: %w", err)
	}
	return &car, nil
}

// All retrieves the full catalog
func (r *CarRepository) All(ctx context.Context) ([]models.Car, error) {
	query := `SELECT id, name, description, rarity, xp FROM cars ORDER BY id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get cars: %w", err)
	}
	defer rows.Close()

	return scanCars(rows)
}

// Count returns the number of cars in the catalog
func (r *CarRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM cars`).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count cars: %w", err)
	}
	return total, nil
}

// Missing retrieves the cars the user has not captured yet, narrowed by the
// optional filters.
func (r *CarRepository) Missing(ctx context.Context, userID int64, f MissingFilter) ([]models.Car, error) {
	query, args := buildMissingQuery(userID, f)
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get missing cars: %w", err)
	}
	defer rows.Close()

	return scanCars(rows)
}

// buildMissingQuery assembles the dynamic WHERE clause for the missing-cars
// listing. The NOT IN condition is always present; filters are appended with
// positional placeholders in argument order.
func buildMissingQuery(userID int64, f MissingFilter) (string, []any) {
	conditions := []string{"id NOT IN (SELECT car_id FROM captures WHERE user_id = $1)"}
	args := []any{userID}

	if f.Rarity != "" {
		args = append(args, f.Rarity)
		conditions = append(conditions, fmt.Sprintf("rarity = $%d", len(args)))
	}
	if f.XPMin != nil {
		args = append(args, *f.XPMin)
		conditions = append(conditions, fmt.Sprintf("xp >= $%d", len(args)))
	}
	if f.XPMax != nil {
		args = append(args, *f.XPMax)
		conditions = append(conditions, fmt.Sprintf("xp <= $%d", len(args)))
	}
	if f.Name != "" {
		args = append(args, "%"+f.Name+"%")
		conditions = append(conditions, fmt.Sprintf("name ILIKE $%d", len(args)))
	}

	query := "SELECT id, name, description, rarity, xp FROM cars WHERE " +
		strings.Join(conditions, " AND ") + " ORDER BY id"
	return query, args
}

func scanCars(rows pgx.Rows) ([]models.Car, error) {
	cars := []models.Car{}
	for rows.Next() {
		var car models.Car
		if err := rows.Scan(&car.ID, &car.Name, &car.Description, &car.Rarity, &car.XP); err != nil {
			return nil, fmt.Errorf("failed to scan car: %w", err)
		}
		cars = append(cars, car)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cars: %w", err)
	}
	return cars, nil
}
