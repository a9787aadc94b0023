// Package cli implements the interactive terminal menu. It is a thin surface
// over the services: every option maps to one service call sequence, and the
// reader/writer are injected so the loop can be driven from tests.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/anavarro/crm-ledger/internal/domain"
	"github.com/anavarro/crm-ledger/internal/service"
)

// Menu drives the numbered terminal menu.
type Menu struct {
	in       *bufio.Reader
	out      io.Writer
	users    *service.UserService
	invoices *service.InvoiceService
	reports  *service.ReportService
}

// NewMenu creates a Menu reading from in and writing to out.
func NewMenu(in io.Reader, out io.Writer, users *service.UserService, invoices *service.InvoiceService, reports *service.ReportService) *Menu {
	return &Menu{
		in:       bufio.NewReader(in),
		out:      out,
		users:    users,
		invoices: invoices,
		reports:  reports,
	}
}

// Run loops over the menu until the user exits or input ends. Validation and
// store errors abort only the current operation; the loop keeps going.
func (m *Menu) Run(ctx context.Context) error {
	for {
		fmt.Fprintln(m.out, "\n=== CRM SYSTEM ===")
		fmt.Fprintln(m.out, "1. Register new user")
		fmt.Fprintln(m.out, "2. Search user")
		fmt.Fprintln(m.out, "3. Create invoice for user")
		fmt.Fprintln(m.out, "4. Show all users")
		fmt.Fprintln(m.out, "5. Show invoices for a user")
		fmt.Fprintln(m.out, "6. Financial summary per user")
		fmt.Fprintln(m.out, "7. Exit")

		option, err := m.prompt("Choose an option: ")
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("read option: %w", err)
		}

		switch option {
		case "1":
			m.registerUser(ctx)
		case "2":
			m.searchUser(ctx)
		case "3":
			m.createInvoice(ctx)
		case "4":
			m.listUsers(ctx)
		case "5":
			m.showUserInvoices(ctx)
		case "6":
			m.financialSummary(ctx)
		case "7":
			fmt.Fprintln(m.out, "Goodbye!")
			return nil
		default:
			fmt.Fprintln(m.out, "Invalid option. Try again.")
		}
	}
}

func (m *Menu) registerUser(ctx context.Context) {
	fmt.Fprintln(m.out, "\n=== REGISTER NEW USER ===")
	input := service.RegisterUserInput{}
	input.FirstName, _ = m.prompt("Enter first name: ")
	input.LastName, _ = m.prompt("Enter last name: ")
	input.Email, _ = m.prompt("Enter email: ")
	input.Phone, _ = m.prompt("Enter phone (digits only, optional): ")
	input.Address, _ = m.prompt("Enter address (optional): ")

	user, err := m.users.Register(ctx, input)
	if err != nil {
		m.printError("register user", err)
		return
	}

	fmt.Fprintln(m.out, "\nUser registered successfully!")
	fmt.Fprintf(m.out, "Assigned ID: %d\n", user.ID)
	fmt.Fprintf(m.out, "Code: %s\n", user.Code)
	fmt.Fprintf(m.out, "Registration date: %s\n", user.RegistrationDate.Format("2006-01-02"))
}

func (m *Menu) searchUser(ctx context.Context) {
	fmt.Fprintln(m.out, "\n=== SEARCH USER ===")
	fmt.Fprintln(m.out, "1. Search by email")
	fmt.Fprintln(m.out, "2. Search by full name")
	option, _ := m.prompt("Choose search method: ")

	switch option {
	case "1":
		email, _ := m.prompt("Enter email: ")
		user, err := m.users.FindByEmail(ctx, email)
		if err != nil {
			m.printError("search user by email", err)
			return
		}
		m.printUser(user)
	case "2":
		fullName, _ := m.prompt("Enter full name (first and last): ")
		users, err := m.users.SearchByFullName(ctx, fullName)
		if err != nil {
			m.printError("search user by name", err)
			return
		}
		if len(users) == 0 {
			fmt.Fprintln(m.out, "User not found.")
			return
		}
		for i := range users {
			m.printUser(&users[i])
		}
	default:
		fmt.Fprintln(m.out, "Invalid option.")
	}
}

func (m *Menu) createInvoice(ctx context.Context) {
	fmt.Fprintln(m.out, "\n=== CREATE INVOICE ===")
	email, _ := m.prompt("Enter user's email: ")
	user, err := m.users.FindByEmail(ctx, email)
	if err != nil {
		m.printError("create invoice", err)
		return
	}
	fmt.Fprintf(m.out, "\nUser found: %s %s\n", user.FirstName, user.LastName)

	description, _ := m.prompt("Enter service/product description: ")
	amount, _ := m.prompt("Enter total amount: ")
	fmt.Fprintln(m.out, "Select status:")
	fmt.Fprintln(m.out, "1. Pending")
	fmt.Fprintln(m.out, "2. Paid")
	fmt.Fprintln(m.out, "3. Cancelled")
	status, _ := m.prompt("Status: ")

	invoice, err := m.invoices.Create(ctx, email, description, amount, status)
	if err != nil {
		m.printError("create invoice", err)
		return
	}

	fmt.Fprintln(m.out, "\nInvoice created successfully!")
	fmt.Fprintf(m.out, "Invoice ID: %d\n", invoice.ID)
	fmt.Fprintf(m.out, "Number: %s\n", invoice.Number)
	fmt.Fprintf(m.out, "Issue date: %s\n", invoice.IssueDate.Format("2006-01-02 15:04"))
	fmt.Fprintf(m.out, "Client: %s %s\n", user.FirstName, user.LastName)
	fmt.Fprintf(m.out, "Description: %s\n", invoice.Description)
	fmt.Fprintf(m.out, "Amount: $%s\n", invoice.Amount.StringFixed(2))
	fmt.Fprintf(m.out, "Status: %s\n", invoice.Status)
}

func (m *Menu) listUsers(ctx context.Context) {
	fmt.Fprintln(m.out, "\n=== USER LIST ===")
	users, err := m.users.List(ctx)
	if err != nil {
		m.printError("list users", err)
		return
	}
	if len(users) == 0 {
		fmt.Fprintln(m.out, "No users registered.")
		return
	}
	for i := range users {
		fmt.Fprintf(m.out, "\nUser #%d:\n", i+1)
		m.printUser(&users[i])
	}
	fmt.Fprintf(m.out, "\nTotal registered users: %d\n", len(users))
}

func (m *Menu) showUserInvoices(ctx context.Context) {
	fmt.Fprintln(m.out, "\n=== USER INVOICES ===")
	email, _ := m.prompt("Enter user's email: ")
	user, err := m.users.FindByEmail(ctx, email)
	if err != nil {
		m.printError("show user invoices", err)
		return
	}

	invoices, summary, err := m.reports.SummarizeUser(ctx, user.ID)
	if err != nil {
		m.printError("show user invoices", err)
		return
	}

	fmt.Fprintf(m.out, "\n--- INVOICES FOR %s %s ---\n", user.FirstName, user.LastName)
	if len(invoices) == 0 {
		fmt.Fprintln(m.out, "No invoices for this user.")
		return
	}
	for i, inv := range invoices {
		fmt.Fprintf(m.out, "\nInvoice #%d:\n", i+1)
		fmt.Fprintf(m.out, "ID: %d\n", inv.ID)
		fmt.Fprintf(m.out, "Number: %s\n", inv.Number)
		fmt.Fprintf(m.out, "Issue date: %s\n", inv.IssueDate.Format("2006-01-02 15:04"))
		fmt.Fprintf(m.out, "Description: %s\n", inv.Description)
		fmt.Fprintf(m.out, "Amount: $%s\n", inv.Amount.StringFixed(2))
		fmt.Fprintf(m.out, "Status: %s\n", inv.Status)
	}
	fmt.Fprintf(m.out, "\nTotal invoices: %d\n", summary.Count)
	fmt.Fprintf(m.out, "Total invoiced amount: $%s\n", summary.Total.StringFixed(2))
	fmt.Fprintf(m.out, "Pending amount: $%s\n", summary.PendingTotal.StringFixed(2))
}

func (m *Menu) financialSummary(ctx context.Context) {
	fmt.Fprintln(m.out, "\n=== FINANCIAL SUMMARY ===")
	summaries, overall, err := m.reports.SummarizeAllUsers(ctx)
	if err != nil {
		m.printError("financial summary", err)
		return
	}

	for _, s := range summaries {
		fmt.Fprintf(m.out, "\nUser: %s %s (%s)\n", s.User.FirstName, s.User.LastName, s.User.Email)
		fmt.Fprintf(m.out, "- Total invoices: %d\n", s.Count)
		fmt.Fprintf(m.out, "- Total amount: $%s\n", s.Total.StringFixed(2))
		fmt.Fprintf(m.out, "- Paid invoices: $%s\n", s.PaidTotal.StringFixed(2))
		fmt.Fprintf(m.out, "- Pending invoices: $%s\n", s.PendingTotal.StringFixed(2))
	}

	fmt.Fprintln(m.out, "\n--- OVERALL SUMMARY ---")
	fmt.Fprintf(m.out, "Total users: %d\n", overall.UserCount)
	fmt.Fprintf(m.out, "Total invoices issued: %d\n", overall.InvoiceCount)
	fmt.Fprintf(m.out, "Total income: $%s\n", overall.Total.StringFixed(2))
	fmt.Fprintf(m.out, "Received income: $%s\n", overall.PaidTotal.StringFixed(2))
	fmt.Fprintf(m.out, "Pending income: $%s\n", overall.PendingTotal.StringFixed(2))
}

func (m *Menu) printUser(user *domain.User) {
	fmt.Fprintln(m.out, "\n--- USER FOUND ---")
	fmt.Fprintf(m.out, "ID: %d\n", user.ID)
	fmt.Fprintf(m.out, "Code: %s\n", user.Code)
	fmt.Fprintf(m.out, "Name: %s %s\n", user.FirstName, user.LastName)
	fmt.Fprintf(m.out, "Email: %s\n", user.Email)
	fmt.Fprintf(m.out, "Phone: %s\n", orUnspecified(user.Phone))
	fmt.Fprintf(m.out, "Address: %s\n", orUnspecified(user.Address))
	fmt.Fprintf(m.out, "Registration date: %s\n", user.RegistrationDate.Format("2006-01-02"))
}

// validationErrors are reported to the user as-is; anything else is treated
// as a store failure, logged, and the menu keeps running.
var validationErrors = []error{
	domain.ErrMissingField,
	domain.ErrInvalidEmail,
	domain.ErrInvalidPhone,
	domain.ErrInvalidAmount,
	domain.ErrInvalidStatus,
	domain.ErrDuplicateEmail,
	domain.ErrUserNotFound,
}

func (m *Menu) printError(op string, err error) {
	for _, verr := range validationErrors {
		if errors.Is(err, verr) {
			fmt.Fprintf(m.out, "%s\n", capitalize(err.Error()))
			return
		}
	}
	slog.Error(op+" failed", "error", err)
	fmt.Fprintf(m.out, "Error: %v\n", err)
}

func (m *Menu) prompt(label string) (string, error) {
	fmt.Fprint(m.out, label)
	line, err := m.in.ReadString('\n')
	line = strings.TrimRight(line, "\r\n")
	if err != nil && line == "" {
		return "", err
	}
	return line, nil
}

func orUnspecified(s string) string {
	if s == "" {
		return "Not specified"
	}
	return s
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
