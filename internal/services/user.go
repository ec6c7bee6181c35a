package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"carspotter-backend/internal/models"
	"carspotter-backend/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	jwtExpDays = 7
	bcryptCost = 10
)

// UserService handles registration, login and token handling
type UserService struct {
	users     UserStore
	jwtSecret string
}

// NewUserService creates a new user service
func NewUserService(users UserStore, jwtSecret string) *UserService {
	return &UserService{
		users:     users,
		jwtSecret: jwtSecret,
	}
}

// decodePassword reverses the text-safe base64 encoding clients apply before
// sending a password. An encoding, not encryption; confidentiality is the
// transport's job.
func decodePassword(encoded string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", ErrBadEncoding
	}
	return string(raw), nil
}

// Register creates a new user with a bcrypt-hashed password. The existence
// pre-checks keep the two distinct conflict answers; the unique constraints
// decide races the pre-checks cannot see.
func (s *UserService) Register(ctx context.Context, username, email, password string) error {
	if taken, err := s.users.EmailExists(ctx, email); err != nil {
		return fmt.Errorf("failed to check email: %w", err)
	} else if taken {
		return ErrEmailTaken
	}

	if taken, err := s.users.UsernameExists(ctx, username); err != nil {
		return fmt.Errorf("failed to check username: %w", err)
	} else if taken {
		return ErrUsernameTaken
	}

	plain, err := decodePassword(password)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrEmailTaken):
			return ErrEmailTaken
		case errors.Is(err, repository.ErrUsernameTaken):
			return ErrUsernameTaken
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// Login verifies the credentials and issues a 7-day token. An unknown
// username and a wrong password fail differently on purpose; the split is
// part of the API contract.
func (s *UserService) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrUserNotFound
		}
		return "", nil, fmt.Errorf("failed to look up user: %w", err)
	}

	plain, err := decodePassword(password)
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(plain)) != nil {
		return "", nil, ErrWrongPassword
	}

	token, err := s.GenerateJWT(user.ID)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// GenerateJWT issues a signed token carrying the user id, valid for 7 days
func (s *UserService) GenerateJWT(userID int64) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().AddDate(0, 0, jwtExpDays).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ValidateJWT validates a token and returns the embedded user id
func (s *UserService) ValidateJWT(tokenString string) (int64, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrInvalidToken
	}

	// Numeric claims come back as float64 after JSON round-tripping.
	id, ok := claims["user_id"].(float64)
	if !ok {
		return 0, ErrInvalidToken
	}

	return int64(id), nil
}
