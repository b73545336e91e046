package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/booki-saas/booki-api/internal/httperr"
	"github.com/booki-saas/booki-api/internal/httpresp"
	"github.com/booki-saas/booki-api/internal/middleware"
	usecase "github.com/booki-saas/booki-api/internal/usecase/booking"
)

// ======================================================
// HANDLER (portal do tenant)
// ======================================================

type BookingHandler struct {
	availability *usecase.GetAvailability
	create       *usecase.CreateBooking
	update       *usecase.UpdateBooking
	reschedule   *usecase.RescheduleBooking
	cancel       *usecase.CancelBooking
	complete     *usecase.CompleteBooking
	list         *usecase.ListBookings
}

func NewBookingHandler(
	availability *usecase.GetAvailability,
	create *usecase.CreateBooking,
	update *usecase.UpdateBooking,
	reschedule *usecase.RescheduleBooking,
	cancel *usecase.CancelBooking,
	complete *usecase.CompleteBooking,
	list *usecase.ListBookings,
) *BookingHandler {
	return &BookingHandler{
		availability: availability,
		create:       create,
		update:       update,
		reschedule:   reschedule,
		cancel:       cancel,
		complete:     complete,
		list:         list,
	}
}

// --------- Requests ---------

type CreateBookingRequest struct {
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone"`
	ClientEmail string `json:"client_email"`

	ProfessionalID string `json:"professional_id"`
	ServiceID      string `json:"service_id"`

	Date string `json:"date" binding:"required"` // YYYY-MM-DD
	Time string `json:"time" binding:"required"` // HH:MM
}

type UpdateBookingRequest struct {
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone"`

	ProfessionalID string `json:"professional_id"`
	ServiceID      string `json:"service_id"`

	Date string `json:"date" binding:"required"`
	Time string `json:"time" binding:"required"`
}

type RescheduleBookingRequest struct {
	Date           string `json:"date" binding:"required"`
	PointerY       int    `json:"pointer_y"`
	ProfessionalID string `json:"professional_id" binding:"required"`
}

// mapeia BusinessError dos usecases para HTTP
func writeBookingError(c *gin.Context, err error) {
	var be httperr.BusinessError
	if !errors.As(err, &be) {
		httperr.Internal(c, "internal_error", "Erro interno ao processar a reserva.")
		return
	}

	switch be.Code {
	case "booking_not_found":
		httperr.NotFound(c, be.Code, "Reserva não encontrada.")
	case "service_not_found":
		httperr.NotFound(c, be.Code, "Serviço não encontrado.")
	case "invalid_state":
		httperr.Conflict(c, be.Code, "A reserva não permite esta transição.")
	case "invalid_date", "invalid_month", "invalid_date_or_time":
		httperr.BadRequest(c, be.Code, "Data ou horário inválido.")
	default:
		httperr.BadRequest(c, be.Code, "Não foi possível processar a reserva.")
	}
}

// --------- Handlers ---------

// Availability devolve os rótulos de horário ofertáveis do dia.
// ?professional_id filtra por coluna; ?exclude_booking_id tira a
// reserva em edição do cálculo.
func (h *BookingHandler) Availability(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(string)

	dateStr := c.Query("date")
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Use o formato YYYY-MM-DD.")
		return
	}

	slots, err := h.availability.Execute(c.Request.Context(), usecase.AvailabilityInput{
		CompanyID:        companyID,
		ProfessionalID:   c.Query("professional_id"),
		ExcludeBookingID: c.Query("exclude_booking_id"),
		Date:             date,
	})
	if err != nil {
		writeBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

func (h *BookingHandler) ListByDate(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(string)

	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_date", "Informe ?date=YYYY-MM-DD.")
		return
	}

	bookings, err := h.list.ByDate(c.Request.Context(), companyID, date)
	if err != nil {
		writeBookingError(c, err)
		return
	}

	httpresp.List(c, bookings)
}

func (h *BookingHandler) ListByMonth(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(string)

	month := c.Query("month")
	if month == "" {
		httperr.BadRequest(c, "missing_month", "Informe ?month=YYYY-MM.")
		return
	}

	bookings, err := h.list.ByMonth(c.Request.Context(), companyID, month)
	if err != nil {
		writeBookingError(c, err)
		return
	}

	httpresp.List(c, bookings)
}

func (h *BookingHandler) Create(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(string)

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	b, err := h.create.Execute(c.Request.Context(), usecase.CreateBookingInput{
		CompanyID:      companyID,
		ClientName:     req.ClientName,
		ClientPhone:    req.ClientPhone,
		ClientEmail:    req.ClientEmail,
		ProfessionalID: req.ProfessionalID,
		ServiceID:      req.ServiceID,
		Date:           req.Date,
		Time:           req.Time,
	})
	if err != nil {
		writeBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, b)
}

func (h *BookingHandler) Update(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(string)

	var req UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	b, err := h.update.Execute(c.Request.Context(), usecase.UpdateBookingInput{
		CompanyID:      companyID,
		BookingID:      c.Param("id"),
		ClientName:     req.ClientName,
		ClientPhone:    req.ClientPhone,
		ProfessionalID: req.ProfessionalID,
		ServiceID:      req.ServiceID,
		Date:           req.Date,
		Time:           req.Time,
	})
	if err != nil {
		writeBookingError(c, err)
		return
	}

	httpresp.OK(c, b)
}

// Reschedule aplica o drag da agenda: dia + posição do ponteiro +
// coluna de destino.
func (h *BookingHandler) Reschedule(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(string)

	var req RescheduleBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	b, err := h.reschedule.Execute(c.Request.Context(), usecase.RescheduleBookingInput{
		CompanyID:      companyID,
		BookingID:      c.Param("id"),
		Date:           req.Date,
		PointerY:       req.PointerY,
		ProfessionalID: req.ProfessionalID,
	})
	if err != nil {
		writeBookingError(c, err)
		return
	}

	httpresp.OK(c, b)
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(string)

	result, err := h.cancel.Execute(c.Request.Context(), companyID, c.Param("id"))
	if err != nil {
		writeBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"booking":       result.Booking,
		"whatsapp_link": result.WhatsAppLink,
	})
}

func (h *BookingHandler) Complete(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(string)

	b, err := h.complete.Execute(c.Request.Context(), companyID, c.Param("id"))
	if err != nil {
		writeBookingError(c, err)
		return
	}

	httpresp.OK(c, b)
}
