package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus is the state an invoice is created with. There is no
// transition logic: the status is fixed at creation.
type InvoiceStatus string

const (
	StatusPending   InvoiceStatus = "Pending"
	StatusPaid      InvoiceStatus = "Paid"
	StatusCancelled InvoiceStatus = "Cancelled"
)

// Invoice is a billing record tied to a user. Invoices are append-only:
// once created they are never updated or deleted.
type Invoice struct {
	ID          int64
	Number      string // human-readable number, e.g. "INV001"
	UserID      int64
	IssueDate   time.Time // minute precision, set at creation
	Description string
	Amount      decimal.Decimal // always > 0, two decimal places
	Status      InvoiceStatus
}

// InvoiceRepository defines persistence operations for invoices.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *Invoice) error
	ListByUser(ctx context.Context, userID int64) ([]Invoice, error)
	Count(ctx context.Context) (int64, error)
}
