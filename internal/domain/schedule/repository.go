package schedule

import (
	"context"
	"time"

	"github.com/booki-saas/booki-api/internal/models"
)

// Repository é o contrato com o store externo. O core só precisa de
// CRUD por id, consultas por igualdade/faixa de timestamp e contagem
// de profissionais; tudo escopado por empresa.
type Repository interface {
	// -------- Company --------
	GetCompanyByID(
		ctx context.Context,
		id string,
	) (*models.Company, error)

	GetCompanyBySlug(
		ctx context.Context,
		slug string,
	) (*models.Company, error)

	// -------- Service --------
	GetService(
		ctx context.Context,
		companyID string,
		serviceID string,
	) (*models.Service, error)

	// -------- Client --------
	GetOrCreateClient(
		ctx context.Context,
		companyID string,
		name string,
		phone string,
		email string,
	) (*models.Client, error)

	// -------- Booking --------
	CreateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	GetBooking(
		ctx context.Context,
		companyID string,
		bookingID string,
	) (*models.Booking, error)

	UpdateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	// -------- Day snapshot --------
	ListBookingsForDay(
		ctx context.Context,
		companyID string,
		start time.Time,
		end time.Time,
	) ([]models.Booking, error)

	ListBookingsForPeriod(
		ctx context.Context,
		companyID string,
		start time.Time,
		end time.Time,
	) ([]models.Booking, error)

	ListBlockedSlots(
		ctx context.Context,
		companyID string,
		date string,
	) ([]models.BlockedSlot, error)

	CountProfessionals(
		ctx context.Context,
		companyID string,
	) (int, error)
}
