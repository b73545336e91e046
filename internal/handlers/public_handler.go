package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/booki-saas/booki-api/internal/domain/schedule"
	"github.com/booki-saas/booki-api/internal/httperr"
	"github.com/booki-saas/booki-api/internal/models"
	"github.com/booki-saas/booki-api/internal/notify"
	usecase "github.com/booki-saas/booki-api/internal/usecase/booking"
)

////////////////////////////////////////////////////////
// API PÚBLICA (link de agendamento do cliente)
////////////////////////////////////////////////////////

type PublicHandler struct {
	db           *gorm.DB
	availability *usecase.GetAvailability
	create       *usecase.CreateBooking
	cancel       *usecase.CancelBooking
}

func NewPublicHandler(
	db *gorm.DB,
	availability *usecase.GetAvailability,
	create *usecase.CreateBooking,
	cancel *usecase.CancelBooking,
) *PublicHandler {
	return &PublicHandler{
		db:           db,
		availability: availability,
		create:       create,
		cancel:       cancel,
	}
}

// resolve a empresa pelo slug (ou id) da URL pública; só empresas
// ativas aparecem no link.
func (h *PublicHandler) companyBySlug(c *gin.Context) (*models.Company, bool) {
	slug := strings.ToLower(strings.TrimSpace(c.Param("slug")))

	var company models.Company
	err := h.db.Where("slug = ?", slug).First(&company).Error

	// Links antigos usavam o id da empresa no lugar do slug.
	if err == gorm.ErrRecordNotFound {
		if _, uuidErr := uuid.Parse(slug); uuidErr == nil {
			err = h.db.Where("id = ?", slug).First(&company).Error
		}
	}

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "company_not_found", "Empresa não encontrada.")
			return nil, false
		}
		httperr.Internal(c, "failed_to_get_company", "Erro ao buscar empresa.")
		return nil, false
	}

	if company.Status != models.CompanyActive {
		httperr.NotFound(c, "company_not_found", "Empresa não encontrada.")
		return nil, false
	}

	return &company, true
}

////////////////////////////////////////////////////////
// VITRINE
////////////////////////////////////////////////////////

// GetCompany devolve a vitrine pública: dados da empresa, quadro de
// profissionais e catálogo de serviços.
func (h *PublicHandler) GetCompany(c *gin.Context) {
	company, ok := h.companyBySlug(c)
	if !ok {
		return
	}

	var professionals []models.Professional
	h.db.Where("company_id = ?", company.ID).Order("name ASC").Find(&professionals)

	var services []models.Service
	h.db.Where("company_id = ?", company.ID).Order("name ASC").Find(&services)

	c.JSON(http.StatusOK, gin.H{
		"company": gin.H{
			"id":            company.ID,
			"name":          company.Name,
			"slug":          company.Slug,
			"category":      company.Category,
			"phone":         company.Phone,
			"address":       company.Address,
			"whatsapp_url":  company.WhatsappURL,
			"instagram_url": company.InstagramURL,
			"timezone":      company.Timezone,
		},
		"professionals": professionals,
		"services":      services,
	})
}

////////////////////////////////////////////////////////
// DISPONIBILIDADE
////////////////////////////////////////////////////////

// Availability devolve os horários ofertáveis do dia para o seletor
// público. Sem professional_id o cliente está pedindo "qualquer
// profissional disponível".
func (h *PublicHandler) Availability(c *gin.Context) {
	company, ok := h.companyBySlug(c)
	if !ok {
		return
	}

	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Use o formato YYYY-MM-DD.")
		return
	}

	slots, err := h.availability.Execute(c.Request.Context(), usecase.AvailabilityInput{
		CompanyID:      company.ID,
		ProfessionalID: c.Query("professional_id"),
		Date:           date,
	})
	if err != nil {
		writeBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

////////////////////////////////////////////////////////
// AGENDAMENTO
////////////////////////////////////////////////////////

type PublicBookingRequest struct {
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email"`

	ProfessionalID string `json:"professional_id"`
	ServiceID      string `json:"service_id"`

	Date string `json:"date" binding:"required"` // YYYY-MM-DD
	Time string `json:"time" binding:"required"` // HH:mm
}

// CreateBooking grava a reserva vinda do link público. O horário
// escolhido pode ter sido tomado entre o carregamento do seletor e o
// envio; a política é aceitar e deixar a empresa resolver na agenda.
func (h *PublicHandler) CreateBooking(c *gin.Context) {
	company, ok := h.companyBySlug(c)
	if !ok {
		return
	}

	var req PublicBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	if !domain.IsGridLabel(req.Time) {
		httperr.BadRequest(c, "invalid_slot_time", "Horário fora da grade ofertada.")
		return
	}

	b, err := h.create.Execute(c.Request.Context(), usecase.CreateBookingInput{
		CompanyID:      company.ID,
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

	c.JSON(http.StatusCreated, gin.H{
		"booking": gin.H{
			"id":         b.ID,
			"start_time": b.StartTime,
			"end_time":   b.EndTime,
			"status":     b.Status,
		},
	})
}

////////////////////////////////////////////////////////
// MINHAS RESERVAS
////////////////////////////////////////////////////////

// MyBookings lista as reservas futuras do cliente pelo telefone usado
// no agendamento.
func (h *PublicHandler) MyBookings(c *gin.Context) {
	company, ok := h.companyBySlug(c)
	if !ok {
		return
	}

	phone := strings.TrimSpace(c.Query("phone"))
	if phone == "" {
		httperr.BadRequest(c, "missing_phone", "Informe ?phone= para consultar.")
		return
	}

	var bookings []models.Booking
	if err := h.db.
		Preload("Professional").
		Preload("Service").
		Where("company_id = ? AND client_phone = ? AND start_time >= ?",
			company.ID, phone, time.Now()).
		Where("status <> ?", string(domain.StatusCancelled)).
		Order("start_time ASC").
		Find(&bookings).Error; err != nil {

		httperr.Internal(c, "failed_to_list_bookings", "Erro ao listar agendamentos.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// CancelBooking cancela uma reserva do próprio cliente; o telefone
// precisa bater com o da reserva. Devolve também o link de WhatsApp
// para avisar a empresa.
func (h *PublicHandler) CancelBooking(c *gin.Context) {
	company, ok := h.companyBySlug(c)
	if !ok {
		return
	}

	phone := strings.TrimSpace(c.Query("phone"))

	var b models.Booking
	if err := h.db.
		Where("id = ? AND company_id = ?", c.Param("id"), company.ID).
		First(&b).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "booking_not_found", "Reserva não encontrada.")
			return
		}
		httperr.Internal(c, "failed_to_get_booking", "Erro ao buscar reserva.")
		return
	}

	if phone == "" || b.ClientPhone != phone {
		httperr.Forbidden(c, "phone_mismatch", "Telefone não confere com a reserva.")
		return
	}

	result, err := h.cancel.Execute(c.Request.Context(), company.ID, b.ID)
	if err != nil {
		writeBookingError(c, err)
		return
	}

	companyLink := ""
	if company.Phone != "" {
		msg := notify.CancellationMessage(b.ClientName, b.StartTime)
		companyLink = notify.WhatsAppLink(company.Phone, msg)
	}

	c.JSON(http.StatusOK, gin.H{
		"booking":       result.Booking,
		"whatsapp_link": companyLink,
	})
}
