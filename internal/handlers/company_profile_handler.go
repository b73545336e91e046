package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/booki-saas/booki-api/internal/httperr"
	"github.com/booki-saas/booki-api/internal/middleware"
	"github.com/booki-saas/booki-api/internal/models"
)

// ======================================================
// PERFIL DA EMPRESA LOGADA (portal do tenant)
// ======================================================

type CompanyProfileHandler struct {
	db *gorm.DB
}

func NewCompanyProfileHandler(db *gorm.DB) *CompanyProfileHandler {
	return &CompanyProfileHandler{db: db}
}

type UpdateCompanyProfileRequest struct {
	Phone        *string `json:"phone"`
	Address      *string `json:"address"`
	WhatsappURL  *string `json:"whatsapp_url"`
	InstagramURL *string `json:"instagram_url"`
}

func (h *CompanyProfileHandler) GetMe(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(string)

	var company models.Company
	if err := h.db.Where("id = ?", companyID).First(&company).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "company_not_found", "Empresa não encontrada.")
			return
		}
		httperr.Internal(c, "failed_to_get_company", "Erro ao buscar dados da empresa.")
		return
	}

	c.JSON(http.StatusOK, company)
}

// UpdateMe permite à empresa editar os próprios dados de contato e
// redes sociais. Plano, status e slug só mudam pelo console master.
func (h *CompanyProfileHandler) UpdateMe(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(string)

	var company models.Company
	if err := h.db.Where("id = ?", companyID).First(&company).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "company_not_found", "Empresa não encontrada.")
			return
		}
		httperr.Internal(c, "failed_to_get_company", "Erro ao buscar dados da empresa.")
		return
	}

	var req UpdateCompanyProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	if req.Phone != nil {
		company.Phone = *req.Phone
	}
	if req.Address != nil {
		company.Address = *req.Address
	}
	if req.WhatsappURL != nil {
		company.WhatsappURL = *req.WhatsappURL
	}
	if req.InstagramURL != nil {
		company.InstagramURL = *req.InstagramURL
	}

	if err := h.db.Save(&company).Error; err != nil {
		httperr.Internal(c, "failed_to_update_company", "Erro ao salvar dados da empresa.")
		return
	}

	c.JSON(http.StatusOK, company)
}
