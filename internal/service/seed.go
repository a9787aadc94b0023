package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/anavarro/crm-ledger/internal/domain"
)

// sampleUsers is the demo data set loaded by SeedSampleData.
var sampleUsers = []RegisterUserInput{
	{FirstName: "Lucía", LastName: "Martínez López", Email: "lucia.martinez@email.com", Phone: "612345678", Address: "Calle Olmo 12"},
	{FirstName: "Hugo", LastName: "García Pérez", Email: "hugo.garcia@email.com", Phone: "611112223", Address: "Av. Andalucía 45"},
	{FirstName: "Martina", LastName: "Sánchez Ruiz", Email: "martina.sanchez@email.com", Phone: "600334455", Address: "Calle Real 89"},
	{FirstName: "Pablo", LastName: "Díaz Martín", Email: "pablo.diaz@email.com", Phone: "655443322", Address: "Plaza Mayor 3"},
	{FirstName: "Sofía", LastName: "Romero Torres", Email: "sofia.romero@email.com", Phone: "622778899", Address: "Calle Larga 101"},
	{FirstName: "Daniel", LastName: "Fernández Gómez", Email: "daniel.fernandez@email.com", Phone: "688990011", Address: "Camino Alto 77"},
	{FirstName: "Valeria", LastName: "Moreno Navarro", Email: "valeria.moreno@email.com", Phone: "699887766", Address: "Callejón del Sol 8"},
	{FirstName: "Alejandro", LastName: "Jiménez Ramos", Email: "alejandro.jimenez@email.com", Phone: "677221133", Address: "Av. de la Vega 23"},
	{FirstName: "Paula", LastName: "Ruiz Molina", Email: "paula.ruiz@email.com", Phone: "644556677", Address: "Ronda Norte 5"},
	{FirstName: "Javier", LastName: "Hernández Castro", Email: "javier.hernandez@email.com", Phone: "666999888", Address: "Calle Jardines 33"},
}

const (
	seedInvoiceDescription = "Servicio mensual de mantenimiento web"
	seedInvoiceAmount      = "300.00"
	seedInvoiceStatus      = "2" // Paid
)

// SeedService loads a fixed sample data set through the regular services so
// all validation and code derivation applies.
type SeedService struct {
	users    *UserService
	invoices *InvoiceService
}

// NewSeedService creates a new SeedService.
func NewSeedService(users *UserService, invoices *InvoiceService) *SeedService {
	return &SeedService{users: users, invoices: invoices}
}

// SeedSampleData inserts the sample users and one paid maintenance invoice
// per sample user. Idempotent: already-registered users are skipped, and a
// sample user who already has invoices gets no new one. Returns how many
// users and invoices were inserted.
func (s *SeedService) SeedSampleData(ctx context.Context) (int, int, error) {
	usersInserted := 0
	invoicesInserted := 0

	for _, in := range sampleUsers {
		if _, err := s.users.Register(ctx, in); err != nil {
			if errors.Is(err, domain.ErrDuplicateEmail) {
				continue
			}
			return usersInserted, invoicesInserted, fmt.Errorf("seed user %s: %w", in.Email, err)
		}
		usersInserted++
	}

	for _, in := range sampleUsers {
		user, err := s.users.FindByEmail(ctx, in.Email)
		if err != nil {
			return usersInserted, invoicesInserted, fmt.Errorf("look up seeded user %s: %w", in.Email, err)
		}
		existing, err := s.invoices.ListByUser(ctx, user.ID)
		if err != nil {
			return usersInserted, invoicesInserted, fmt.Errorf("list invoices for %s: %w", in.Email, err)
		}
		if len(existing) > 0 {
			continue
		}
		if _, err := s.invoices.Create(ctx, in.Email, seedInvoiceDescription, seedInvoiceAmount, seedInvoiceStatus); err != nil {
			return usersInserted, invoicesInserted, fmt.Errorf("seed invoice for %s: %w", in.Email, err)
		}
		invoicesInserted++
	}

	return usersInserted, invoicesInserted, nil
}
