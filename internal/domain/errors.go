package domain

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrMissingField   = errors.New("required field is empty")
	ErrInvalidEmail   = errors.New("invalid email")
	ErrInvalidPhone   = errors.New("invalid phone number: digits only")
	ErrInvalidAmount  = errors.New("invalid amount")
	ErrInvalidStatus  = errors.New("invalid status")
	ErrDuplicateEmail = errors.New("email is already registered")
	ErrUserNotFound   = errors.New("user not found")
)
