package service

import (
	"context"
	"fmt"

	"github.com/anavarro/crm-ledger/internal/domain"
	"github.com/shopspring/decimal"
)

// InvoiceSummary aggregates one user's invoices.
type InvoiceSummary struct {
	Count        int
	Total        decimal.Decimal
	PendingTotal decimal.Decimal
}

// UserSummary is one user's financial summary within the full report.
type UserSummary struct {
	User         domain.User
	Count        int
	Total        decimal.Decimal
	PaidTotal    decimal.Decimal
	PendingTotal decimal.Decimal
}

// OverallSummary sums every per-user summary across the whole store.
type OverallSummary struct {
	UserCount    int
	InvoiceCount int
	Total        decimal.Decimal
	PaidTotal    decimal.Decimal
	PendingTotal decimal.Decimal
}

// SummarizeInvoices computes count, total, and pending total over a list of
// invoices. All fields are zero for an empty list.
func SummarizeInvoices(invoices []domain.Invoice) InvoiceSummary {
	summary := InvoiceSummary{Total: decimal.Zero, PendingTotal: decimal.Zero}
	for _, inv := range invoices {
		summary.Count++
		summary.Total = summary.Total.Add(inv.Amount)
		if inv.Status == domain.StatusPending {
			summary.PendingTotal = summary.PendingTotal.Add(inv.Amount)
		}
	}
	return summary
}

// ReportService derives financial summaries from repository reads. Nothing
// is cached; every report is recomputed from the store on demand.
type ReportService struct {
	users    domain.UserRepository
	invoices domain.InvoiceRepository
}

// NewReportService creates a new ReportService.
func NewReportService(users domain.UserRepository, invoices domain.InvoiceRepository) *ReportService {
	return &ReportService{users: users, invoices: invoices}
}

// SummarizeUser returns a user's invoices along with their summary.
func (s *ReportService) SummarizeUser(ctx context.Context, userID int64) ([]domain.Invoice, InvoiceSummary, error) {
	invoices, err := s.invoices.ListByUser(ctx, userID)
	if err != nil {
		return nil, InvoiceSummary{}, fmt.Errorf("list invoices: %w", err)
	}
	return invoices, SummarizeInvoices(invoices), nil
}

// SummarizeAllUsers computes a per-user summary for every registered user,
// in registration order, plus the overall aggregate.
func (s *ReportService) SummarizeAllUsers(ctx context.Context) ([]UserSummary, OverallSummary, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, OverallSummary{}, fmt.Errorf("list users: %w", err)
	}

	overall := OverallSummary{
		Total:        decimal.Zero,
		PaidTotal:    decimal.Zero,
		PendingTotal: decimal.Zero,
	}
	summaries := []UserSummary{}
	for _, user := range users {
		invoices, err := s.invoices.ListByUser(ctx, user.ID)
		if err != nil {
			return nil, OverallSummary{}, fmt.Errorf("list invoices for user %d: %w", user.ID, err)
		}

		summary := UserSummary{
			User:         user,
			Total:        decimal.Zero,
			PaidTotal:    decimal.Zero,
			PendingTotal: decimal.Zero,
		}
		for _, inv := range invoices {
			summary.Count++
			summary.Total = summary.Total.Add(inv.Amount)
			switch inv.Status {
			case domain.StatusPaid:
				summary.PaidTotal = summary.PaidTotal.Add(inv.Amount)
			case domain.StatusPending:
				summary.PendingTotal = summary.PendingTotal.Add(inv.Amount)
			}
		}
		summaries = append(summaries, summary)

		overall.UserCount++
		overall.InvoiceCount += summary.Count
		overall.Total = overall.Total.Add(summary.Total)
		overall.PaidTotal = overall.PaidTotal.Add(summary.PaidTotal)
		overall.PendingTotal = overall.PendingTotal.Add(summary.PendingTotal)
	}
	return summaries, overall, nil
}
