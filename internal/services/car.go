package services

import (
	"context"
	"fmt"

	"carspotter-backend/internal/models"
	"carspotter-backend/internal/repository"
)

// CarService serves the catalog, garage and missing-cars listings
type CarService struct {
	cars     CarStore
	captures CaptureStore
}

// NewCarService creates a new car service
func NewCarService(cars CarStore, captures CaptureStore) *CarService {
	return &CarService{
		cars:     cars,
		captures: captures,
	}
}

// Catalog returns every car in the catalog
func (s *CarService) Catalog(ctx context.Context) ([]models.Car, error) {
	cars, err := s.cars.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list catalog: %w", err)
	}
	return cars, nil
}

// Garage returns the user's captures joined with their cars
func (s *CarService) Garage(ctx context.Context, userID int64) ([]models.GarageEntry, error) {
	entries, err := s.captures.GarageByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list garage: %w", err)
	}
	return entries, nil
}

// Missing returns the cars the user has not captured yet, narrowed by the
// optional filters.
func (s *CarService) Missing(ctx context.Context, userID int64, f repository.MissingFilter) ([]models.Car, error) {
	cars, err := s.cars.Missing(ctx, userID, f)
	if err != nil {
		return nil, fmt.Errorf("failed to list missing cars: %w", err)
	}
	return cars, nil
}
