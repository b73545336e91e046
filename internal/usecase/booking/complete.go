package booking

import (
	"context"

	"github.com/booki-saas/booki-api/internal/audit"
	domain "github.com/booki-saas/booki-api/internal/domain/schedule"
	"github.com/booki-saas/booki-api/internal/httperr"
	"github.com/booki-saas/booki-api/internal/models"
	"github.com/booki-saas/booki-api/internal/realtime"
	"github.com/booki-saas/booki-api/internal/timezone"
)

type CompleteBooking struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	realtime *realtime.Publisher
}

func NewCompleteBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
	rt *realtime.Publisher,
) *CompleteBooking {
	return &CompleteBooking{
		repo:     repo,
		audit:    audit,
		realtime: rt,
	}
}

// Execute marca a reserva como COMPLETED — rótulo de relatório usado
// pela agregação financeira; não altera disponibilidade.
func (uc *CompleteBooking) Execute(
	ctx context.Context,
	companyID string,
	bookingID string,
) (*models.Booking, error) {

	company, err := uc.repo.GetCompanyByID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	b, err := uc.repo.GetBooking(ctx, companyID, bookingID)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	now := timezone.NowIn(company.Timezone)
	if err := domain.Complete(b, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		CompanyID: &companyID,
		Action:    "booking_completed",
		Entity:    "booking",
		EntityID:  &b.ID,
	})
	uc.realtime.BookingsChanged(ctx, companyID)

	return b, nil
}
