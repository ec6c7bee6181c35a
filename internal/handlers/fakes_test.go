package handlers

import (
	"context"
	"strings"
	"time"

	"carspotter-backend/internal/models"
	"carspotter-backend/internal/repository"
)

// In-memory stores backing the handler tests; same contracts as the
// repository types.

type fakeStores struct {
	users    map[int64]*models.User
	cars     []models.Car
	captures []models.Capture
	nextUser int64
	nextCap  int64
}

func newFakeStores(cars ...models.Car) *fakeStores {
	return &fakeStores{users: map[int64]*models.User{}, cars: cars}
}

type fakeUserStore struct{ s *fakeStores }

func (f fakeUserStore) Create(_ context.Context, user *models.User) error {
	for _, u := range f.s.users {
		if u.Email == user.Email {
			return repository.ErrEmailTaken
		}
		if u.Username == user.Username {
			return repository.ErrUsernameTaken
		}
	}
	f.s.nextUser++
	user.ID = f.s.nextUser
	user.CreatedAt = time.Now()
	cp := *user
	f.s.users[user.ID] = &cp
	return nil
}

func (f fakeUserStore) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range f.s.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f fakeUserStore) EmailExists(_ context.Context, email string) (bool, error) {
	for _, u := range f.s.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f fakeUserStore) UsernameExists(_ context.Context, username string) (bool, error) {
	for _, u := range f.s.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (f fakeUserStore) AwardXP(_ context.Context, userID int64, amount int) (int, int, error) {
	u, ok := f.s.users[userID]
	if !ok {
		return 0, 0, repository.ErrNotFound
	}
	u.XP += amount
	u.Level = models.LevelForXP(u.XP)
	return u.XP, u.Level, nil
}

type fakeCarStore struct{ s *fakeStores }

func (f fakeCarStore) GetByID(_ context.Context, id int64) (*models.Car, error) {
	for _, c := range f.s.cars {
		if c.ID == id {
			cp := c
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f fakeCarStore) All(_ context.Context) ([]models.Car, error) {
	return append([]models.Car{}, f.s.cars...), nil
}

func (f fakeCarStore) Count(_ context.Context) (int, error) {
	return len(f.s.cars), nil
}

func (f fakeCarStore) Missing(_ context.Context, userID int64, filter repository.MissingFilter) ([]models.Car, error) {
	captured := map[int64]bool{}
	for _, c := range f.s.captures {
		if c.UserID == userID {
			captured[c.CarID] = true
		}
	}
	out := []models.Car{}
	for _, c := range f.s.cars {
		if captured[c.ID] {
			continue
		}
		if filter.Rarity != "" && c.Rarity != filter.Rarity {
			continue
		}
		if filter.XPMin != nil && c.XP < *filter.XPMin {
			continue
		}
		if filter.XPMax != nil && c.XP > *filter.XPMax {
			continue
		}
		if filter.Name != "" && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(filter.Name)) {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

type fakeCaptureStore struct{ s *fakeStores }

func (f fakeCaptureStore) Create(_ context.Context, capture *models.Capture) error {
	f.s.nextCap++
	capture.ID = f.s.nextCap
	capture.CapturedAt = time.Now()
	f.s.captures = append(f.s.captures, *capture)
	return nil
}

func (f fakeCaptureStore) GarageByUser(ctx context.Context, userID int64) ([]models.GarageEntry, error) {
	entries := []models.GarageEntry{}
	for _, c := range f.s.captures {
		if c.UserID != userID {
			continue
		}
		car, err := fakeCarStore{f.s}.GetByID(ctx, c.CarID)
		if err != nil {
			return nil, err
		}
		entries = append(entries, models.GarageEntry{
			CaptureID: c.ID,
			Car: models.CarSummary{
				ID: car.ID, Name: car.Name, Description: car.Description, Rarity: car.Rarity,
			},
			Location:   c.Location,
			CapturedAt: c.CapturedAt,
			ImageURL:   c.ImagePath,
		})
	}
	return entries, nil
}

func (f fakeCaptureStore) CapturedToday(ctx context.Context, userID int64) ([]models.CarSummary, error) {
	entries, err := f.GarageByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	cars := []models.CarSummary{}
	now := time.Now()
	for _, e := range entries {
		ey, em, ed := e.CapturedAt.Date()
		ny, nm, nd := now.Date()
		if ey == ny && em == nm && ed == nd {
			cars = append(cars, e.Car)
		}
	}
	return cars, nil
}

func (f fakeCaptureStore) CountToday(ctx context.Context, userID int64) (int, error) {
	cars, err := f.CapturedToday(ctx, userID)
	if err != nil {
		return 0, err
	}
	return len(cars), nil
}

func (f fakeCaptureStore) CountByUser(_ context.Context, userID int64) (int, error) {
	total := 0
	for _, c := range f.s.captures {
		if c.UserID == userID {
			total++
		}
	}
	return total, nil
}

func (f fakeCaptureStore) CountDistinctCars(_ context.Context, userID int64) (int, error) {
	seen := map[int64]bool{}
	for _, c := range f.s.captures {
		if c.UserID == userID {
			seen[c.CarID] = true
		}
	}
	return len(seen), nil
}
