package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/booki-saas/booki-api/internal/audit"
	"github.com/booki-saas/booki-api/internal/httperr"
	"github.com/booki-saas/booki-api/internal/httpresp"
	"github.com/booki-saas/booki-api/internal/middleware"
	"github.com/booki-saas/booki-api/internal/models"
	"github.com/booki-saas/booki-api/internal/realtime"
)

type ProfessionalHandler struct {
	db       *gorm.DB
	audit    *audit.Dispatcher
	realtime *realtime.Publisher
}

func NewProfessionalHandler(
	db *gorm.DB,
	dispatcher *audit.Dispatcher,
	rt *realtime.Publisher,
) *ProfessionalHandler {
	return &ProfessionalHandler{db: db, audit: dispatcher, realtime: rt}
}

type ProfessionalRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone"`
}

func (h *ProfessionalHandler) List(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(string)

	var pros []models.Professional
	if err := h.db.
		Where("company_id = ?", companyID).
		Order("name ASC").
		Find(&pros).Error; err != nil {

		httperr.Internal(c, "failed_to_list_professionals", "Erro ao listar profissionais.")
		return
	}

	httpresp.List(c, pros)
}

func (h *ProfessionalHandler) Create(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(string)

	var req ProfessionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	pro := models.Professional{
		CompanyID: companyID,
		Name:      req.Name,
		Phone:     req.Phone,
	}

	if err := h.db.Create(&pro).Error; err != nil {
		httperr.Internal(c, "failed_to_create_professional", "Erro ao criar profissional.")
		return
	}

	h.audit.Dispatch(audit.Event{
		CompanyID: &companyID,
		Action:    "professional_created",
		Entity:    "professional",
		EntityID:  &pro.ID,
	})
	// O quadro de profissionais muda a capacidade dos slots "qualquer".
	h.realtime.BookingsChanged(c.Request.Context(), companyID)

	c.JSON(http.StatusCreated, pro)
}

func (h *ProfessionalHandler) Update(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(string)

	var pro models.Professional
	if err := h.db.
		Where("id = ? AND company_id = ?", c.Param("id"), companyID).
		First(&pro).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "professional_not_found", "Profissional não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_professional", "Erro ao buscar profissional.")
		return
	}

	var req ProfessionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	pro.Name = req.Name
	pro.Phone = req.Phone

	if err := h.db.Save(&pro).Error; err != nil {
		httperr.Internal(c, "failed_to_update_professional", "Erro ao salvar profissional.")
		return
	}

	httpresp.OK(c, pro)
}

func (h *ProfessionalHandler) Delete(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(string)

	var pro models.Professional
	if err := h.db.
		Where("id = ? AND company_id = ?", c.Param("id"), companyID).
		First(&pro).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "professional_not_found", "Profissional não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_professional", "Erro ao buscar profissional.")
		return
	}

	if err := h.db.Delete(&pro).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_professional", "Erro ao remover profissional.")
		return
	}

	h.audit.Dispatch(audit.Event{
		CompanyID: &companyID,
		Action:    "professional_deleted",
		Entity:    "professional",
		EntityID:  &pro.ID,
	})
	h.realtime.BookingsChanged(c.Request.Context(), companyID)

	c.Status(http.StatusNoContent)
}
