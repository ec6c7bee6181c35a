package services

import (
	"context"

	"carspotter-backend/internal/models"
	"carspotter-backend/internal/repository"
)

// UserStore is the user persistence surface the services need.
// Implemented by repository.UserRepository.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	AwardXP(ctx context.Context, userID int64, amount int) (newXP, newLevel int, err error)
}

// CarStore is implemented by repository.CarRepository.
type CarStore interface {
	GetByID(ctx context.Context, id int64) (*models.Car, error)
	All(ctx context.Context) ([]models.Car, error)
	Count(ctx context.Context) (int, error)
	Missing(ctx context.Context, userID int64, f repository.MissingFilter) ([]models.Car, error)
}

// CaptureStore is implemented by repository.CaptureRepository.
type CaptureStore interface {
	Create(ctx context.Context, capture *models.Capture) error
	GarageByUser(ctx context.Context, userID int64) ([]models.GarageEntry, error)
	CapturedToday(ctx context.Context, userID int64) ([]models.CarSummary, error)
	CountToday(ctx context.Context, userID int64) (int, error)
	CountByUser(ctx context.Context, userID int64) (int, error)
	CountDistinctCars(ctx context.Context, userID int64) (int, error)
}

// ImageStore persists uploaded capture images and returns their public path.
// Implemented by storage.LocalStore.
type ImageStore interface {
	Save(payload string) (string, error)
}
