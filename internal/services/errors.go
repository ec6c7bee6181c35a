package services

import "errors"

// Errors returned by services and mapped to HTTP statuses at the handler
// boundary.
var (
	ErrUserNotFound  = errors.New("user not found")
	ErrWrongPassword = errors.New("wrong password")
	ErrEmailTaken    = errors.New("email is taken")
	ErrUsernameTaken = errors.New("username is taken")
	ErrCarNotFound   = errors.New("car not found")
	ErrInvalidImage  = errors.New("invalid image payload")
	ErrBadEncoding   = errors.New("invalid password encoding")
	ErrInvalidToken  = errors.New("invalid token")
)
