package booking

import (
	"context"
	"time"

	domain "github.com/booki-saas/booki-api/internal/domain/schedule"
	"github.com/booki-saas/booki-api/internal/dto"
	"github.com/booki-saas/booki-api/internal/httperr"
	"github.com/booki-saas/booki-api/internal/models"
	"github.com/booki-saas/booki-api/internal/timezone"
)

type ListBookings struct {
	repo domain.Repository
}

func NewListBookings(repo domain.Repository) *ListBookings {
	return &ListBookings{repo: repo}
}

// ByDate lista as reservas de um dia no fuso da empresa, inclusive as
// canceladas (a agenda exibe tudo; só a disponibilidade as ignora).
func (uc *ListBookings) ByDate(
	ctx context.Context,
	companyID string,
	date string,
) ([]dto.BookingListDTO, error) {

	company, err := uc.repo.GetCompanyByID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(company.Timezone)

	day, err := time.ParseInLocation("2006-01-02", date, loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	bookings, err := uc.repo.ListBookingsForPeriod(
		ctx,
		companyID,
		day,
		day.AddDate(0, 0, 1),
	)
	if err != nil {
		return nil, err
	}

	return toListDTO(bookings, loc), nil
}

// ByMonth lista as reservas de um mês (YYYY-MM), usado pelo calendário
// e pelo resumo financeiro do portal.
func (uc *ListBookings) ByMonth(
	ctx context.Context,
	companyID string,
	month string,
) ([]dto.BookingListDTO, error) {

	company, err := uc.repo.GetCompanyByID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(company.Timezone)

	start, err := time.ParseInLocation("2006-01", month, loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_month")
	}

	bookings, err := uc.repo.ListBookingsForPeriod(
		ctx,
		companyID,
		start,
		start.AddDate(0, 1, 0),
	)
	if err != nil {
		return nil, err
	}

	return toListDTO(bookings, loc), nil
}

func toListDTO(bookings []models.Booking, loc *time.Location) []dto.BookingListDTO {
	out := make([]dto.BookingListDTO, 0, len(bookings))

	for _, b := range bookings {
		item := dto.BookingListDTO{
			ID:          b.ID,
			StartTime:   b.StartTime.In(loc),
			EndTime:     b.EndTime.In(loc),
			Status:      b.Status,
			ClientName:  b.ClientName,
			ClientPhone: b.ClientPhone,
		}

		if b.Professional != nil {
			item.ProfessionalName = b.Professional.Name
		}
		if b.Service != nil {
			item.ServiceName = b.Service.Name
			item.ServicePrice = b.Service.Price
		}

		out = append(out, item)
	}

	return out
}
