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

type UpdateBookingInput struct {
	CompanyID string
	BookingID string

	ClientName  string
	ClientPhone string

	ProfessionalID string
	ServiceID      string

	Date string
	Time string
}

type UpdateBooking struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	realtime *realtime.Publisher
}

func NewUpdateBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
	rt *realtime.Publisher,
) *UpdateBooking {
	return &UpdateBooking{
		repo:     repo,
		audit:    audit,
		realtime: rt,
	}
}

// Execute aplica uma edição de horário/profissional/serviço. Segue a
// mesma política consultiva do create: o seletor já filtrou (com a
// própria reserva excluída do cálculo, então uma edição sem mudança
// não conflita consigo mesma) e aqui nada é revalidado.
func (uc *UpdateBooking) Execute(
	ctx context.Context,
	in UpdateBookingInput,
) (*models.Booking, error) {

	company, err := uc.repo.GetCompanyByID(ctx, in.CompanyID)
	if err != nil {
		return nil, err
	}

	b, err := uc.repo.GetBooking(ctx, in.CompanyID, in.BookingID)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
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

	b.ClientName = in.ClientName
	b.ClientPhone = in.ClientPhone
	b.StartTime = start
	b.EndTime = domain.EndFromService(start, svc)

	b.ProfessionalID = nil
	if in.ProfessionalID != "" {
		b.ProfessionalID = &in.ProfessionalID
	}
	b.ServiceID = nil
	if in.ServiceID != "" {
		b.ServiceID = &in.ServiceID
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		CompanyID: &in.CompanyID,
		Action:    "booking_updated",
		Entity:    "booking",
		EntityID:  &b.ID,
	})
	uc.realtime.BookingsChanged(ctx, in.CompanyID)

	return b, nil
}
