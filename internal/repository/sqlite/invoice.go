package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/anavarro/crm-ledger/internal/domain"
	"github.com/shopspring/decimal"
)

const dateTimeFormat = "2006-01-02 15:04"

// InvoiceRepository implements domain.InvoiceRepository using SQLite.
type InvoiceRepository struct {
	db *sql.DB
}

// NewInvoiceRepository creates a new SQLite-backed InvoiceRepository.
func NewInvoiceRepository(db *DB) *InvoiceRepository {
	return &InvoiceRepository{db: db.SqlDB}
}

// Create inserts a new invoice. The issue timestamp is stamped here at
// minute precision and echoed back on the record along with the assigned id.
// Amounts are persisted as integer cents to keep summation exact.
func (r *InvoiceRepository) Create(ctx context.Context, invoice *domain.Invoice) error {
	issued := time.Now().UTC().Truncate(time.Minute)
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO invoices (number, user_id, issue_date, description, amount_cents, status)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		invoice.Number, invoice.UserID, issued.Format(dateTimeFormat),
		invoice.Description, invoice.Amount.Shift(2).IntPart(), string(invoice.Status),
	)
	if err != nil {
		if isForeignKeyError(err) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("insert invoice: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	invoice.ID = id
	invoice.IssueDate = issued
	return nil
}

// ListByUser returns all invoices for a user in insertion order.
// An empty result is not an error.
func (r *InvoiceRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Invoice, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, number, user_id, issue_date, description, amount_cents, status
		 FROM invoices WHERE user_id = ? ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list invoices by user: %w", err)
	}
	defer rows.Close()

	invoices := []domain.Invoice{}
	for rows.Next() {
		var inv domain.Invoice
		var issued, status string
		var cents int64
		if err := rows.Scan(&inv.ID, &inv.Number, &inv.UserID, &issued,
			&inv.Description, &cents, &status); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		inv.IssueDate, err = time.Parse(dateTimeFormat, issued)
		if err != nil {
			return nil, fmt.Errorf("parse issue date %q: %w", issued, err)
		}
		inv.Amount = decimal.New(cents, -2)
		inv.Status = domain.InvoiceStatus(status)
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}

// Count returns the number of issued invoices.
func (r *InvoiceRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM invoices").Scan(&count); err != nil {
		return 0, fmt.Errorf("count invoices: %w", err)
	}
	return count, nil
}
