package domain

import (
	"context"
	"time"
)

// User is a registered customer. Users are append-only: once created they
// are never updated or deleted.
type User struct {
	ID               int64
	Code             string    // human-readable code, e.g. "USR001"
	FirstName        string
	LastName         string
	Email            string
	Phone            string    // digits only; empty when not provided
	Address          string    // empty when not provided
	RegistrationDate time.Time // date precision, set at creation
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	SearchByName(ctx context.Context, first, last string) ([]User, error)
	List(ctx context.Context) ([]User, error)
	Count(ctx context.Context) (int64, error)
}
