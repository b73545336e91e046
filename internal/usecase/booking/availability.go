package booking

import (
	"context"
	"time"

	domain "github.com/booki-saas/booki-api/internal/domain/schedule"
	"github.com/booki-saas/booki-api/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type AvailabilityInput struct {
	CompanyID string

	// ProfessionalID vazio = "qualquer disponível".
	ProfessionalID string

	// ExcludeBookingID remove a reserva em edição do cálculo.
	ExcludeBookingID string

	Date time.Time
}

// ======================================================
// USE CASE
// ======================================================

type GetAvailability struct {
	repo domain.Repository
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{repo: repo}
}

// Execute carrega o snapshot do dia (reservas não canceladas, bloqueios
// e quadro de profissionais) e devolve os rótulos ofertáveis da grade
// fixa. O snapshot vale para o momento da consulta; duas sessões
// simultâneas ainda podem escolher o mesmo slot.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in AvailabilityInput,
) ([]string, error) {

	company, err := uc.repo.GetCompanyByID(ctx, in.CompanyID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(company.Timezone)

	dayStart := time.Date(
		in.Date.Year(), in.Date.Month(), in.Date.Day(),
		0, 0, 0, 0,
		loc,
	)
	dayEnd := dayStart.Add(24 * time.Hour)

	bookings, err := uc.repo.ListBookingsForDay(ctx, in.CompanyID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	blocked, err := uc.repo.ListBlockedSlots(ctx, in.CompanyID, dayStart.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}

	count, err := uc.repo.CountProfessionals(ctx, in.CompanyID)
	if err != nil {
		return nil, err
	}

	day := domain.Day{
		Bookings:          bookings,
		Blocked:           blocked,
		ProfessionalCount: count,
		Location:          loc,
	}

	return day.OfferableSlots(domain.DefaultSlots, in.ProfessionalID, in.ExcludeBookingID), nil
}
