package services

import (
	"context"
	"fmt"

	"carspotter-backend/internal/models"
)

// Summary holds the dashboard counters
type Summary struct {
	TodayCatches   int `json:"todayCatches"`
	TotalCatches   int `json:"totalCatches"`
	MissingCatches int `json:"missingCatches"`
}

// DashboardService serves the recent-captures and summary views
type DashboardService struct {
	captures CaptureStore
	cars     CarStore
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(captures CaptureStore, cars CarStore) *DashboardService {
	return &DashboardService{
		captures: captures,
		cars:     cars,
	}
}

// Recent returns the cars the user captured on the current calendar day
func (s *DashboardService) Recent(ctx context.Context, userID int64) ([]models.CarSummary, error) {
	cars, err := s.captures.CapturedToday(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list today's captures: %w", err)
	}
	return cars, nil
}

// Summarize computes the dashboard counters. missingCatches counts distinct
// uncaught cars so it agrees with the /cars/missing listing even when a car
// was captured more than once.
func (s *DashboardService) Summarize(ctx context.Context, userID int64) (*Summary, error) {
	today, err := s.captures.CountToday(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count today's captures: %w", err)
	}

	total, err := s.captures.CountByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count captures: %w", err)
	}

	distinct, err := s.captures.CountDistinctCars(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count distinct cars: %w", err)
	}

	carCount, err := s.cars.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count cars: %w", err)
	}

	return &Summary{
		TodayCatches:   today,
		TotalCatches:   total,
		MissingCatches: carCount - distinct,
	}, nil
}
