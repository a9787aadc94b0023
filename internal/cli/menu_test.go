package cli_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/anavarro/crm-ledger/internal/cli"
	"github.com/anavarro/crm-ledger/internal/repository/sqlite"
	"github.com/anavarro/crm-ledger/internal/service"
)

// runMenu drives the menu with a scripted input session and returns the
// full output. The final "7" in a script exits cleanly; running out of
// input ends the loop too.
func runMenu(t *testing.T, script string) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	users := service.NewUserService(db.Users())
	invoices := service.NewInvoiceService(db.Users(), db.Invoices())
	reports := service.NewReportService(db.Users(), db.Invoices())

	var out strings.Builder
	menu := cli.NewMenu(strings.NewReader(script), &out, users, invoices, reports)
	if err := menu.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	return out.String()
}

func TestMenu_RegisterAndListUsers(t *testing.T) {
	script := strings.Join([]string{
		"1",
		"Ana",
		"López",
		"ana.lopez@email.com",
		"600123456",
		"Calle Falsa 123",
		"4",
		"7",
	}, "\n") + "\n"

	out := runMenu(t, script)

	for _, want := range []string{
		"User registered successfully!",
		"Code: USR001",
		"Name: Ana López",
		"Total registered users: 1",
		"Goodbye!",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestMenu_CreateInvoiceAndShowInvoices(t *testing.T) {
	script := strings.Join([]string{
		"1",
		"Ana",
		"López",
		"ana.lopez@email.com",
		"",
		"",
		"3",
		"ana.lopez@email.com",
		"Servicio de soporte técnico",
		"200,00",
		"2",
		"5",
		"ana.lopez@email.com",
		"7",
	}, "\n") + "\n"

	out := runMenu(t, script)

	for _, want := range []string{
		"User found: Ana López",
		"Invoice created successfully!",
		"Number: INV001",
		"Amount: $200.00",
		"Status: Paid",
		"Total invoices: 1",
		"Total invoiced amount: $200.00",
		"Pending amount: $0.00",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestMenu_ValidationErrorKeepsLoopRunning(t *testing.T) {
	script := strings.Join([]string{
		"1",
		"Ana",
		"López",
		"not-an-email",
		"",
		"",
		"4",
		"7",
	}, "\n") + "\n"

	out := runMenu(t, script)

	if !strings.Contains(out, "Invalid email") {
		t.Fatalf("output missing validation message:\n%s", out)
	}
	// The rejected registration wrote nothing, so "4" lists an empty store.
	if !strings.Contains(out, "No users registered.") {
		t.Fatalf("expected empty user list after rejected registration:\n%s", out)
	}
	if !strings.Contains(out, "Goodbye!") {
		t.Fatalf("expected clean exit:\n%s", out)
	}
}

func TestMenu_InvalidOptionReprompts(t *testing.T) {
	out := runMenu(t, "9\n7\n")

	if !strings.Contains(out, "Invalid option. Try again.") {
		t.Fatalf("output missing invalid option message:\n%s", out)
	}
	if !strings.Contains(out, "Goodbye!") {
		t.Fatalf("expected clean exit after reprompt:\n%s", out)
	}
}

func TestMenu_FinancialSummaryEmptyStore(t *testing.T) {
	out := runMenu(t, "6\n7\n")

	for _, want := range []string{
		"--- OVERALL SUMMARY ---",
		"Total users: 0",
		"Total invoices issued: 0",
		"Total income: $0.00",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestMenu_EndOfInputExitsCleanly(t *testing.T) {
	out := runMenu(t, "")

	if !strings.Contains(out, "=== CRM SYSTEM ===") {
		t.Fatalf("expected menu header before EOF:\n%s", out)
	}
}
