package booking

import (
	"context"
	"time"

	"github.com/booki-saas/booki-api/internal/audit"
	domain "github.com/booki-saas/booki-api/internal/domain/schedule"
	"github.com/booki-saas/booki-api/internal/httperr"
	"github.com/booki-saas/booki-api/internal/models"
	"github.com/booki-saas/booki-api/internal/realtime"
	"github.com/booki-saas/booki-api/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	CompanyID string

	ClientName  string
	ClientPhone string
	ClientEmail string
	ClientID    *string

	// Vazios significam "qualquer profissional" / reserva sem serviço.
	ProfessionalID string
	ServiceID      string

	Date string // YYYY-MM-DD
	Time string // HH:MM
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	realtime *realtime.Publisher
}

func NewCreateBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
	rt *realtime.Publisher,
) *CreateBooking {
	return &CreateBooking{
		repo:     repo,
		audit:    audit,
		realtime: rt,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute grava a reserva como o seletor de horário a enviou. A
// filtragem de disponibilidade acontece no carregamento do seletor
// (GetAvailability); aqui não há revalidação — a corrida entre dois
// clientes simultâneos é aceita, não existe fronteira transacional
// para ela no store.
func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

	company, err := uc.repo.GetCompanyByID(ctx, in.CompanyID)
	if err != nil {
		return nil, err
	}

	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		timezone.Location(company.Timezone),
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	var svc *models.Service
	if in.ServiceID != "" {
		svc, err = uc.repo.GetService(ctx, in.CompanyID, in.ServiceID)
		if err != nil {
			return nil, httperr.ErrBusiness("service_not_found")
		}
	}

	end := domain.EndFromService(start, svc)

	client, err := uc.repo.GetOrCreateClient(
		ctx,
		in.CompanyID,
		in.ClientName,
		in.ClientPhone,
		in.ClientEmail,
	)
	if err != nil {
		return nil, err
	}

	b := &models.Booking{
		CompanyID:   in.CompanyID,
		ClientID:    &client.ID,
		ClientName:  in.ClientName,
		ClientPhone: in.ClientPhone,
		StartTime:   start,
		EndTime:     end,
		Status:      string(domain.InitialStatus()),
	}
	if in.ProfessionalID != "" {
		b.ProfessionalID = &in.ProfessionalID
	}
	if in.ServiceID != "" {
		b.ServiceID = &in.ServiceID
	}

	if err := uc.repo.CreateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		CompanyID: &in.CompanyID,
		Action:    "booking_created",
		Entity:    "booking",
		EntityID:  &b.ID,
	})
	uc.realtime.BookingsChanged(ctx, in.CompanyID)

	return b, nil
}
