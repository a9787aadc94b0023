package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/anavarro/crm-ledger/internal/cli"
	"github.com/anavarro/crm-ledger/internal/config"
	"github.com/anavarro/crm-ledger/internal/repository/sqlite"
	"github.com/anavarro/crm-ledger/internal/service"
)

func main() {
	seed := flag.Bool("seed", false, "insert sample users and invoices before starting the menu")
	flag.Parse()

	cfg := config.Load()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	db, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		slog.Error("failed to open database", "path", cfg.DatabasePath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx := context.Background()
	if err := db.Migrate(ctx); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("database ready", "path", cfg.DatabasePath)

	userService := service.NewUserService(db.Users())
	invoiceService := service.NewInvoiceService(db.Users(), db.Invoices())
	reportService := service.NewReportService(db.Users(), db.Invoices())

	if *seed {
		seedService := service.NewSeedService(userService, invoiceService)
		users, invoices, err := seedService.SeedSampleData(ctx)
		if err != nil {
			slog.Error("failed to seed sample data", "error", err)
			os.Exit(1)
		}
		slog.Info("sample data seeded", "users", users, "invoices", invoices)
	}

	menu := cli.NewMenu(os.Stdin, os.Stdout, userService, invoiceService, reportService)
	if err := menu.Run(ctx); err != nil {
		slog.Error("menu loop failed", "error", err)
		os.Exit(1)
	}
}
