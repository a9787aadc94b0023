package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/anavarro/crm-ledger/internal/domain"
)

var emailPattern = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)

// UserService handles user registration and lookup with validation.
type UserService struct {
	users domain.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(users domain.UserRepository) *UserService {
	return &UserService{users: users}
}

// RegisterUserInput carries the raw, untrimmed form inputs for registration.
type RegisterUserInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Address   string
}

// Register validates the input and creates a new user. On success the
// returned user carries the assigned id, sequential code, and registration date.
func (s *UserService) Register(ctx context.Context, in RegisterUserInput) (*domain.User, error) {
	firstName := strings.TrimSpace(in.FirstName)
	lastName := strings.TrimSpace(in.LastName)
	email := strings.TrimSpace(in.Email)
	phone := strings.TrimSpace(in.Phone)
	address := strings.TrimSpace(in.Address)

	if firstName == "" || lastName == "" || email == "" {
		return nil, fmt.Errorf("%w: first name, last name, and email are required", domain.ErrMissingField)
	}
	if !emailPattern.MatchString(email) {
		return nil, domain.ErrInvalidEmail
	}
	if phone != "" && !isDigits(phone) {
		return nil, domain.ErrInvalidPhone
	}

	// Fast user-facing rejection; the UNIQUE constraint on email remains
	// the authoritative guard at insert time.
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, domain.ErrDuplicateEmail
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	code, err := s.nextCode(ctx)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Code:      code,
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Phone:     phone,
		Address:   address,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// FindByEmail returns the user with the exact email, or domain.ErrUserNotFound.
func (s *UserService) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return user, nil
}

// SearchByFullName splits the query on the first whitespace run into a
// first-name fragment and a last-name fragment, then matches users whose
// names contain both fragments. Both fragments are required.
func (s *UserService) SearchByFullName(ctx context.Context, fullName string) ([]domain.User, error) {
	query := strings.TrimSpace(fullName)
	split := strings.IndexFunc(query, unicode.IsSpace)
	if split < 0 {
		return nil, fmt.Errorf("%w: both first and last name are required", domain.ErrMissingField)
	}
	first := query[:split]
	last := strings.TrimSpace(query[split:])

	users, err := s.users.SearchByName(ctx, first, last)
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	return users, nil
}

// List returns all users in registration order.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// nextCode derives the next sequential human-readable code from the current
// row count. Not safe under concurrent writers; this application holds a
// single connection.
func (s *UserService) nextCode(ctx context.Context) (string, error) {
	count, err := s.users.Count(ctx)
	if err != nil {
		return "", fmt.Errorf("count users: %w", err)
	}
	return fmt.Sprintf("USR%03d", count+1), nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
