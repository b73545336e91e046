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

type RescheduleBookingInput struct {
	CompanyID string
	BookingID string

	// Dia selecionado na grade.
	Date string // YYYY-MM-DD

	// Posição vertical bruta do drop dentro da coluna.
	PointerY int

	// Coluna onde a reserva foi solta.
	ProfessionalID string
}

type RescheduleBooking struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	realtime *realtime.Publisher
}

func NewRescheduleBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
	rt *realtime.Publisher,
) *RescheduleBooking {
	return &RescheduleBooking{
		repo:     repo,
		audit:    audit,
		realtime: rt,
	}
}

// Execute move a reserva para a posição de drop: ponteiro alinhado à
// grade, duração original preservada, profissional da coluna assumido
// sem checagem de disponibilidade. Início, fim e profissional são
// gravados em um único update — ou tudo persiste ou nada; em erro o
// chamador reverte a reserva visualmente para o slot original.
func (uc *RescheduleBooking) Execute(
	ctx context.Context,
	in RescheduleBookingInput,
) (*models.Booking, error) {

	company, err := uc.repo.GetCompanyByID(ctx, in.CompanyID)
	if err != nil {
		return nil, err
	}

	b, err := uc.repo.GetBooking(ctx, in.CompanyID, in.BookingID)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	date, err := time.ParseInLocation(
		"2006-01-02",
		in.Date,
		timezone.Location(company.Timezone),
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	domain.Relocate(b, domain.RelocateInput{
		Date:           date,
		PointerY:       in.PointerY,
		ProfessionalID: in.ProfessionalID,
	})

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		CompanyID: &in.CompanyID,
		Action:    "booking_rescheduled",
		Entity:    "booking",
		EntityID:  &b.ID,
		Metadata: map[string]any{
			"start": b.StartTime,
			"end":   b.EndTime,
		},
	})
	uc.realtime.BookingsChanged(ctx, in.CompanyID)

	return b, nil
}
