package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anavarro/crm-ledger/internal/domain"
	"github.com/shopspring/decimal"
)

// statusByCode maps the menu's numeric status codes to invoice statuses.
var statusByCode = map[string]domain.InvoiceStatus{
	"1": domain.StatusPending,
	"2": domain.StatusPaid,
	"3": domain.StatusCancelled,
}

// InvoiceService handles invoice creation with validation.
type InvoiceService struct {
	users    domain.UserRepository
	invoices domain.InvoiceRepository
}

// NewInvoiceService creates a new InvoiceService.
func NewInvoiceService(users domain.UserRepository, invoices domain.InvoiceRepository) *InvoiceService {
	return &InvoiceService{users: users, invoices: invoices}
}

// Create validates the input and issues a new invoice for the user with the
// given email. The amount accepts both "." and "," as decimal separator and
// must be positive; the status code is one of "1" (Pending), "2" (Paid),
// "3" (Cancelled). On success the returned invoice carries the assigned id,
// sequential number, and issue timestamp.
func (s *InvoiceService) Create(ctx context.Context, email, description, amountRaw, statusCode string) (*domain.Invoice, error) {
	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("look up user: %w", err)
	}

	description = strings.TrimSpace(description)
	if description == "" {
		return nil, fmt.Errorf("%w: description is required", domain.ErrMissingField)
	}

	amount, err := ParseAmount(amountRaw)
	if err != nil {
		return nil, err
	}

	status, ok := statusByCode[strings.TrimSpace(statusCode)]
	if !ok {
		return nil, domain.ErrInvalidStatus
	}

	number, err := s.nextNumber(ctx)
	if err != nil {
		return nil, err
	}

	invoice := &domain.Invoice{
		Number:      number,
		UserID:      user.ID,
		Description: description,
		Amount:      amount,
		Status:      status,
	}
	if err := s.invoices.Create(ctx, invoice); err != nil {
		return nil, fmt.Errorf("create invoice: %w", err)
	}
	return invoice, nil
}

// ListByUser returns all invoices for a user in issue order.
func (s *InvoiceService) ListByUser(ctx context.Context, userID int64) ([]domain.Invoice, error) {
	return s.invoices.ListByUser(ctx, userID)
}

// ParseAmount parses a monetary amount, accepting both "." and "," as the
// decimal separator. The result is rounded to two decimal places and must
// be strictly positive.
func ParseAmount(raw string) (decimal.Decimal, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	amount, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Decimal{}, domain.ErrInvalidAmount
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Decimal{}, fmt.Errorf("%w: amount must be positive", domain.ErrInvalidAmount)
	}
	return amount.Round(2), nil
}

// nextNumber derives the next sequential invoice number from the current
// row count. Same single-writer caveat as user codes.
func (s *InvoiceService) nextNumber(ctx context.Context) (string, error) {
	count, err := s.invoices.Count(ctx)
	if err != nil {
		return "", fmt.Errorf("count invoices: %w", err)
	}
	return fmt.Sprintf("INV%03d", count+1), nil
}
