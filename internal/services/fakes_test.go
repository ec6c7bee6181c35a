package services

import (
	"context"
	"strings"
	"time"

	"carspotter-backend/internal/models"
	"carspotter-backend/internal/repository"
	"carspotter-backend/internal/storage"
)

// In-memory stores backing the service tests.

type memUserStore struct {
	byID   map[int64]*models.User
	nextID int64
}

func newMemUserStore() *memUserStore {
	return &memUserStore{byID: map[int64]*models.User{}}
}

func (m *memUserStore) Create(_ context.Context, user *models.User) error {
	for _, u := range m.byID {
		if u.Email == user.Email {
			return repository.ErrEmailTaken
		}
		if u.Username == user.Username {
			return repository.ErrUsernameTaken
		}
	}
	m.nextID++
	user.ID = m.nextID
	user.CreatedAt = time.Now()
	cp := *user
	m.byID[user.ID] = &cp
	return nil
}

func (m *memUserStore) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range m.byID {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memUserStore) EmailExists(_ context.Context, email string) (bool, error) {
	for _, u := range m.byID {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *memUserStore) UsernameExists(_ context.Context, username string) (bool, error) {
	for _, u := range m.byID {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (m *memUserStore) AwardXP(_ context.Context, userID int64, amount int) (int, int, error) {
	u, ok := m.byID[userID]
	if !ok {
		return 0, 0, repository.ErrNotFound
	}
	u.XP += amount
	u.Level = models.LevelForXP(u.XP)
	return u.XP, u.Level, nil
}

type memCarStore struct {
	cars     []models.Car
	captures *memCaptureStore
}

func (m *memCarStore) GetByID(_ context.Context, id int64) (*models.Car, error) {
	for _, c := range m.cars {
		if c.ID == id {
			cp := c
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memCarStore) All(_ context.Context) ([]models.Car, error) {
	return append([]models.Car{}, m.cars...), nil
}

func (m *memCarStore) Count(_ context.Context) (int, error) {
	return len(m.cars), nil
}

func (m *memCarStore) Missing(_ context.Context, userID int64, f repository.MissingFilter) ([]models.Car, error) {
	out := []models.Car{}
	for _, c := range m.cars {
		if m.captures != nil && m.captures.has(userID, c.ID) {
			continue
		}
		if f.Rarity != "" && c.Rarity != f.Rarity {
			continue
		}
		if f.XPMin != nil && c.XP < *f.XPMin {
			continue
		}
		if f.XPMax != nil && c.XP > *f.XPMax {
			continue
		}
		if f.Name != "" && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(f.Name)) {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

type memCaptureStore struct {
	captures []models.Capture
	cars     *memCarStore
	nextID   int64
}

func (m *memCaptureStore) has(userID, carID int64) bool {
	for _, c := range m.captures {
		if c.UserID == userID && c.CarID == carID {
			return true
		}
	}
	return false
}

func (m *memCaptureStore) Create(_ context.Context, capture *models.Capture) error {
	m.nextID++
	capture.ID = m.nextID
	capture.CapturedAt = time.Now()
	m.captures = append(m.captures, *capture)
	return nil
}

func (m *memCaptureStore) GarageByUser(ctx context.Context, userID int64) ([]models.GarageEntry, error) {
	entries := []models.GarageEntry{}
	for _, c := range m.captures {
		if c.UserID != userID {
			continue
		}
		car, err := m.cars.GetByID(ctx, c.CarID)
		if err != nil {
			return nil, err
		}
		entries = append(entries, models.GarageEntry{
			CaptureID: c.ID,
			Car: models.CarSummary{
				ID:          car.ID,
				Name:        car.Name,
				Description: car.Description,
				Rarity:      car.Rarity,
			},
			Location:   c.Location,
			CapturedAt: c.CapturedAt,
			ImageURL:   c.ImagePath,
		})
	}
	return entries, nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func (m *memCaptureStore) CapturedToday(ctx context.Context, userID int64) ([]models.CarSummary, error) {
	cars := []models.CarSummary{}
	now := time.Now()
	for _, c := range m.captures {
		if c.UserID != userID || !sameDay(c.CapturedAt, now) {
			continue
		}
		car, err := m.cars.GetByID(ctx, c.CarID)
		if err != nil {
			return nil, err
		}
		cars = append(cars, models.CarSummary{
			ID:          car.ID,
			Name:        car.Name,
			Description: car.Description,
			Rarity:      car.Rarity,
		})
	}
	return cars, nil
}

func (m *memCaptureStore) CountToday(_ context.Context, userID int64) (int, error) {
	total := 0
	now := time.Now()
	for _, c := range m.captures {
		if c.UserID == userID && sameDay(c.CapturedAt, now) {
			total++
		}
	}
	return total, nil
}

func (m *memCaptureStore) CountByUser(_ context.Context, userID int64) (int, error) {
	total := 0
	for _, c := range m.captures {
		if c.UserID == userID {
			total++
		}
	}
	return total, nil
}

func (m *memCaptureStore) CountDistinctCars(_ context.Context, userID int64) (int, error) {
	seen := map[int64]bool{}
	for _, c := range m.captures {
		if c.UserID == userID {
			seen[c.CarID] = true
		}
	}
	return len(seen), nil
}

// newMemStores wires a linked car/capture store pair.
func newMemStores(cars ...models.Car) (*memCarStore, *memCaptureStore) {
	captureStore := &memCaptureStore{}
	carStore := &memCarStore{cars: cars, captures: captureStore}
	captureStore.cars = carStore
	return carStore, captureStore
}

type memImageStore struct {
	saved []string
}

func (m *memImageStore) Save(payload string) (string, error) {
	if payload == "not-base64!" {
		return "", storage.ErrInvalidImage
	}
	m.saved = append(m.saved, payload)
	return "/uploads/capture_test.png", nil
}
