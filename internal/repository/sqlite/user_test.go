package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/anavarro/crm-ledger/internal/domain"
)

func TestUserRepository_Create(t *testing.T) {
	db := newTestDB(t)
	repo := db.Users()
	ctx := context.Background()

	user := &domain.User{
		Code:      "USR001",
		FirstName: "Ana",
		LastName:  "López",
		Email:     "ana.lopez@email.com",
		Phone:     "600123456",
		Address:   "Calle Falsa 123",
	}

	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if user.ID == 0 {
		t.Fatal("expected user ID to be set after create")
	}
	if user.RegistrationDate.IsZero() {
		t.Fatal("expected RegistrationDate to be set")
	}
	today := time.Now().UTC().Format("2006-01-02")
	if got := user.RegistrationDate.Format("2006-01-02"); got != today {
		t.Fatalf("expected registration date %s, got %s", today, got)
	}
}

func TestUserRepository_Create_DuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	repo := db.Users()
	ctx := context.Background()

	user1 := &domain.User{Code: "USR001", FirstName: "Ana", LastName: "López", Email: "dup@example.com"}
	if err := repo.Create(ctx, user1); err != nil {
		t.Fatalf("Create user1: %v", err)
	}

	user2 := &domain.User{Code: "USR002", FirstName: "Juan", LastName: "Pérez", Email: "dup@example.com"}
	if err := repo.Create(ctx, user2); !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}

	// Exactly one row must remain for that email.
	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 user, got %d", count)
	}
}

func TestUserRepository_GetByEmail(t *testing.T) {
	db := newTestDB(t)
	repo := db.Users()
	ctx := context.Background()

	user := &domain.User{
		Code:      "USR001",
		FirstName: "Ana",
		LastName:  "López",
		Email:     "ana.lopez@email.com",
		Phone:     "600123456",
		Address:   "Calle Falsa 123",
	}
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("Create: %v", err)
	}

	found, err := repo.GetByEmail(ctx, "ana.lopez@email.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if found.FirstName != "Ana" || found.LastName != "López" {
		t.Fatalf("expected Ana López, got %s %s", found.FirstName, found.LastName)
	}
	if found.Phone != "600123456" {
		t.Fatalf("expected phone to round-trip, got %q", found.Phone)
	}
	if found.Address != "Calle Falsa 123" {
		t.Fatalf("expected address to round-trip, got %q", found.Address)
	}
	if !found.RegistrationDate.Equal(user.RegistrationDate) {
		t.Fatalf("expected registration date %v, got %v", user.RegistrationDate, found.RegistrationDate)
	}
}

func TestUserRepository_GetByEmail_NotFound(t *testing.T) {
	db := newTestDB(t)
	repo := db.Users()

	_, err := repo.GetByEmail(context.Background(), "missing@example.com")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUserRepository_GetByEmail_OptionalFieldsAbsent(t *testing.T) {
	db := newTestDB(t)
	repo := db.Users()
	ctx := context.Background()

	user := &domain.User{Code: "USR001", FirstName: "Ana", LastName: "López", Email: "bare@example.com"}
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("Create: %v", err)
	}

	found, err := repo.GetByEmail(ctx, "bare@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if found.Phone != "" || found.Address != "" {
		t.Fatalf("expected empty phone and address, got %q %q", found.Phone, found.Address)
	}
}

func TestUserRepository_SearchByName(t *testing.T) {
	db := newTestDB(t)
	repo := db.Users()
	ctx := context.Background()

	seed := []domain.User{
		{Code: "USR001", FirstName: "Martina", LastName: "Sánchez Ruiz", Email: "martina.sanchez@email.com"},
		{Code: "USR002", FirstName: "Martina", LastName: "Sánchez", Email: "martina2@email.com"},
		{Code: "USR003", FirstName: "Hugo", LastName: "García Pérez", Email: "hugo.garcia@email.com"},
	}
	for i := range seed {
		if err := repo.Create(ctx, &seed[i]); err != nil {
			t.Fatalf("Create %s: %v", seed[i].Email, err)
		}
	}

	// Both fragments must match their respective field.
	users, err := repo.SearchByName(ctx, "Mar", "Ruiz")
	if err != nil {
		t.Fatalf("SearchByName: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("expected 1 match, got %d", len(users))
	}
	if users[0].Email != "martina.sanchez@email.com" {
		t.Fatalf("expected Martina Sánchez Ruiz, got %s", users[0].Email)
	}

	// Matching is case-sensitive.
	users, err = repo.SearchByName(ctx, "mar", "Ruiz")
	if err != nil {
		t.Fatalf("SearchByName: %v", err)
	}
	if len(users) != 0 {
		t.Fatalf("expected case-sensitive match to find nothing, got %d", len(users))
	}

	// No match is an empty result, never an error.
	users, err = repo.SearchByName(ctx, "Nobody", "Here")
	if err != nil {
		t.Fatalf("SearchByName: %v", err)
	}
	if len(users) != 0 {
		t.Fatalf("expected no matches, got %d", len(users))
	}
}

func TestUserRepository_List_InsertionOrder(t *testing.T) {
	db := newTestDB(t)
	repo := db.Users()
	ctx := context.Background()

	emails := []string{"a@example.com", "b@example.com", "c@example.com"}
	for i, email := range emails {
		u := &domain.User{Code: "USR00" + string(rune('1'+i)), FirstName: "User", LastName: "Test", Email: email}
		if err := repo.Create(ctx, u); err != nil {
			t.Fatalf("Create %s: %v", email, err)
		}
	}

	users, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(users) != 3 {
		t.Fatalf("expected 3 users, got %d", len(users))
	}
	for i, email := range emails {
		if users[i].Email != email {
			t.Fatalf("expected %s at position %d, got %s", email, i, users[i].Email)
		}
	}
}

func TestUserRepository_List_Empty(t *testing.T) {
	db := newTestDB(t)

	users, err := db.Users().List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(users) != 0 {
		t.Fatalf("expected no users, got %d", len(users))
	}
}
