package services

import (
	"context"
	"errors"
	"fmt"

	"carspotter-backend/internal/models"
	"carspotter-backend/internal/repository"
	"carspotter-backend/internal/storage"
)

// CaptureResult is returned to the client after a successful capture
type CaptureResult struct {
	Image    string `json:"image"`
	EarnedXP int    `json:"earnedXP"`
	NewXP    int    `json:"newXP"`
	NewLevel int    `json:"newLevel"`
}

// CaptureService handles capture uploads and the XP award that follows
type CaptureService struct {
	captures CaptureStore
	cars     CarStore
	users    UserStore
	images   ImageStore
	feed     *Feed
}

// NewCaptureService creates a new capture service. feed may be nil when no
// live feed is wanted.
func NewCaptureService(captures CaptureStore, cars CarStore, users UserStore, images ImageStore, feed *Feed) *CaptureService {
	return &CaptureService{
		captures: captures,
		cars:     cars,
		users:    users,
		images:   images,
		feed:     feed,
	}
}

// Capture stores the uploaded image, records the capture and awards XP by
// the car's rarity. The file write is not compensated if a later step fails;
// the file is simply orphaned.
func (s *CaptureService) Capture(ctx context.Context, userID, carID int64, location *string, imageBase64 string) (*CaptureResult, error) {
	car, err := s.cars.GetByID(ctx, carID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCarNotFound
		}
		return nil, fmt.Errorf("failed to look up car: %w", err)
	}

	imagePath, err := s.images.Save(imageBase64)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidImage) {
			return nil, ErrInvalidImage
		}
		return nil, fmt.Errorf("failed to store image: %w", err)
	}

	capture := &models.Capture{
		UserID:    userID,
		CarID:     carID,
		Location:  location,
		ImagePath: imagePath,
	}
	if err := s.captures.Create(ctx, capture); err != nil {
		return nil, fmt.Errorf("failed to record capture: %w", err)
	}

	earned := models.XPForRarity(car.Rarity)
	newXP, newLevel, err := s.users.AwardXP(ctx, userID, earned)
	if err != nil {
		return nil, fmt.Errorf("failed to award xp: %w", err)
	}

	if s.feed != nil {
		s.feed.Publish(userID, CaptureEvent{
			Type:       "capture",
			CarID:      car.ID,
			CarName:    car.Name,
			Rarity:     car.Rarity,
			EarnedXP:   earned,
			NewXP:      newXP,
			NewLevel:   newLevel,
			Image:      imagePath,
			CapturedAt: capture.CapturedAt,
		})
	}

	return &CaptureResult{
		Image:    imagePath,
		EarnedXP: earned,
		NewXP:    newXP,
		NewLevel: newLevel,
	}, nil
}
