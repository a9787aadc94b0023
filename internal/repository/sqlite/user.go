package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/anavarro/crm-ledger/internal/domain"
)

const dateFormat = "2006-01-02"

// UserRepository implements domain.UserRepository using SQLite.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new SQLite-backed UserRepository.
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db.SqlDB}
}

// Create inserts a new user. The registration date is stamped here at date
// precision and echoed back on the record along with the assigned id.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	registered := time.Now().UTC().Truncate(24 * time.Hour)
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO users (code, first_name, last_name, email, phone, address, registration_date)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		user.Code, user.FirstName, user.LastName, user.Email,
		nullIfEmpty(user.Phone), nullIfEmpty(user.Address),
		registered.Format(dateFormat),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("insert user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	user.ID = id
	user.RegistrationDate = registered
	return nil
}

// GetByEmail returns the user with the exact email, or domain.ErrNotFound.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, code, first_name, last_name, email, phone, address, registration_date
		 FROM users WHERE email = ?`, email)

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query user by email: %w", err)
	}
	return user, nil
}

// SearchByName returns users whose first name contains the first fragment
// and whose last name contains the last fragment. Matching is case-sensitive.
// An empty result is not an error.
func (r *UserRepository) SearchByName(ctx context.Context, first, last string) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, code, first_name, last_name, email, phone, address, registration_date
		 FROM users WHERE first_name LIKE ? AND last_name LIKE ? ORDER BY id`,
		"%"+first+"%", "%"+last+"%")
	if err != nil {
		return nil, fmt.Errorf("search users by name: %w", err)
	}
	defer rows.Close()
	return scanUsers(rows)
}

// List returns all users in insertion order.
func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, code, first_name, last_name, email, phone, address, registration_date
		 FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	return scanUsers(rows)
}

// Count returns the number of registered users.
func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	user := &domain.User{}
	var phone, address sql.NullString
	var registered string
	err := row.Scan(&user.ID, &user.Code, &user.FirstName, &user.LastName,
		&user.Email, &phone, &address, &registered)
	if err != nil {
		return nil, err
	}
	user.Phone = phone.String
	user.Address = address.String
	user.RegistrationDate, err = time.Parse(dateFormat, registered)
	if err != nil {
		return nil, fmt.Errorf("parse registration date %q: %w", registered, err)
	}
	return user, nil
}

func scanUsers(rows *sql.Rows) ([]domain.User, error) {
	users := []domain.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
