package booking

import (
	"context"

	"github.com/booki-saas/booki-api/internal/audit"
	domain "github.com/booki-saas/booki-api/internal/domain/schedule"
	"github.com/booki-saas/booki-api/internal/httperr"
	"github.com/booki-saas/booki-api/internal/models"
	"github.com/booki-saas/booki-api/internal/notify"
	"github.com/booki-saas/booki-api/internal/realtime"
	"github.com/booki-saas/booki-api/internal/timezone"
)

type CancelBooking struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	realtime *realtime.Publisher
}

func NewCancelBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
	rt *realtime.Publisher,
) *CancelBooking {
	return &CancelBooking{
		repo:     repo,
		audit:    audit,
		realtime: rt,
	}
}

type CancelResult struct {
	Booking *models.Booking

	// Link wa.me pronto para notificar o cliente; vazio se a reserva
	// não tem telefone.
	WhatsAppLink string
}

// Execute marca a reserva como CANCELLED (o registro permanece). Na
// próxima leitura o slot volta a contar como livre. A notificação é só
// a construção do link — abrir a conversa é decisão de quem atende.
func (uc *CancelBooking) Execute(
	ctx context.Context,
	companyID string,
	bookingID string,
) (*CancelResult, error) {

	company, err := uc.repo.GetCompanyByID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	b, err := uc.repo.GetBooking(ctx, companyID, bookingID)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	loc := timezone.Location(company.Timezone)
	now := timezone.NowIn(company.Timezone)

	if err := domain.Cancel(b, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		CompanyID: &companyID,
		Action:    "booking_cancelled",
		Entity:    "booking",
		EntityID:  &b.ID,
	})
	uc.realtime.BookingsChanged(ctx, companyID)

	res := &CancelResult{Booking: b}
	if b.ClientPhone != "" {
		msg := notify.CancellationMessage(b.ClientName, b.StartTime.In(loc))
		res.WhatsAppLink = notify.WhatsAppLink(b.ClientPhone, msg)
	}

	return res, nil
}
