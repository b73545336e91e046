package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/booki-saas/booki-api/internal/audit"
	"github.com/booki-saas/booki-api/internal/httperr"
	"github.com/booki-saas/booki-api/internal/httpresp"
	"github.com/booki-saas/booki-api/internal/middleware"
	"github.com/booki-saas/booki-api/internal/models"
	"github.com/booki-saas/booki-api/internal/timezone"
	"github.com/booki-saas/booki-api/internal/validators"
)

// ======================================================
// HANDLER (console master)
// ======================================================

type CompanyHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewCompanyHandler(db *gorm.DB, dispatcher *audit.Dispatcher) *CompanyHandler {
	return &CompanyHandler{db: db, audit: dispatcher}
}

type CreateCompanyRequest struct {
	Name     string `json:"name" binding:"required"`
	Slug     string `json:"slug" binding:"required"`
	Category string `json:"category"`

	Plan   string `json:"plan"`
	Status string `json:"status"`

	OwnerEmail      string `json:"owner_email" binding:"required,email"`
	ResponsibleName string `json:"responsible_name"`
	Phone           string `json:"phone"`
	Address         string `json:"address"`

	AccessPassword string `json:"access_password"`
	Timezone       string `json:"timezone"`
}

type UpdateCompanyRequest struct {
	Name     *string `json:"name"`
	Category *string `json:"category"`

	Plan   *string `json:"plan"`
	Status *string `json:"status"`

	OwnerEmail      *string `json:"owner_email"`
	ResponsibleName *string `json:"responsible_name"`
	Phone           *string `json:"phone"`
	Address         *string `json:"address"`

	AccessPassword *string `json:"access_password"`
	Timezone       *string `json:"timezone"`
}

func validCompanyStatus(s string) bool {
	switch s {
	case models.CompanyActive, models.CompanyInactive,
		models.CompanySuspended, models.CompanyPending:
		return true
	}
	return false
}

// ======================================================
// LIST
// ======================================================
func (h *CompanyHandler) List(c *gin.Context) {
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))
	status := strings.TrimSpace(c.Query("status"))

	q := h.db.Model(&models.Company{})

	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR LOWER(slug) LIKE ? OR LOWER(owner_email) LIKE ?",
			like, like, like,
		)
	}

	if status != "" {
		q = q.Where("status = ?", status)
	}

	var companies []models.Company
	if err := q.Order("created_at DESC").Find(&companies).Error; err != nil {
		httperr.Internal(c, "failed_to_list_companies", "Erro ao listar empresas.")
		return
	}

	httpresp.List(c, companies)
}

// ======================================================
// GET
// ======================================================
func (h *CompanyHandler) Get(c *gin.Context) {
	var company models.Company
	if err := h.db.Where("id = ?", c.Param("id")).First(&company).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "company_not_found", "Empresa não encontrada.")
			return
		}
		httperr.Internal(c, "failed_to_get_company", "Erro ao buscar empresa.")
		return
	}

	httpresp.OK(c, company)
}

// ======================================================
// CREATE
// ======================================================
func (h *CompanyHandler) Create(c *gin.Context) {
	var req CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	slug := strings.ToLower(strings.TrimSpace(req.Slug))
	email := strings.ToLower(strings.TrimSpace(req.OwnerEmail))

	if !validators.IsEmailDomainValid(email) {
		httperr.BadRequest(c, "invalid_email_domain", "O domínio do e-mail informado não parece ser válido.")
		return
	}

	var count int64
	h.db.Model(&models.Company{}).Where("slug = ?", slug).Count(&count)
	if count > 0 {
		httperr.Conflict(c, "slug_already_exists", "Já existe uma empresa com este slug.")
		return
	}

	status := req.Status
	if status == "" {
		status = models.CompanyPending
	}
	if !validCompanyStatus(status) {
		httperr.BadRequest(c, "invalid_status", "Status de empresa inválido.")
		return
	}

	tz := req.Timezone
	if tz != "" && !timezone.IsValid(tz) {
		httperr.BadRequest(c, "invalid_timezone", "Timezone inválido.")
		return
	}
	if tz == "" {
		tz = timezone.DefaultTimezone
	}

	company := models.Company{
		Name:            req.Name,
		Slug:            slug,
		Category:        req.Category,
		Plan:            req.Plan,
		Status:          status,
		OwnerEmail:      email,
		ResponsibleName: req.ResponsibleName,
		Phone:           req.Phone,
		Address:         req.Address,
		Timezone:        tz,
	}

	if req.AccessPassword != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.AccessPassword), bcrypt.DefaultCost)
		if err != nil {
			httperr.Internal(c, "failed_to_hash_password", "Erro ao gerar senha de acesso.")
			return
		}
		company.AccessPasswordHash = string(hashed)
	}

	if err := h.db.Create(&company).Error; err != nil {
		httperr.Internal(c, "failed_to_create_company", "Erro ao criar empresa.")
		return
	}

	h.dispatch(c, "company_created", &company)

	c.JSON(http.StatusCreated, company)
}

// ======================================================
// UPDATE
// ======================================================
func (h *CompanyHandler) Update(c *gin.Context) {
	var company models.Company
	if err := h.db.Where("id = ?", c.Param("id")).First(&company).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "company_not_found", "Empresa não encontrada.")
			return
		}
		httperr.Internal(c, "failed_to_get_company", "Erro ao buscar empresa.")
		return
	}

	var req UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	if req.Name != nil {
		company.Name = *req.Name
	}
	if req.Category != nil {
		company.Category = *req.Category
	}
	if req.Plan != nil {
		company.Plan = *req.Plan
	}
	if req.Status != nil {
		if !validCompanyStatus(*req.Status) {
			httperr.BadRequest(c, "invalid_status", "Status de empresa inválido.")
			return
		}
		company.Status = *req.Status
	}
	if req.OwnerEmail != nil {
		email := strings.ToLower(strings.TrimSpace(*req.OwnerEmail))
		if !validators.IsEmailDomainValid(email) {
			httperr.BadRequest(c, "invalid_email_domain", "O domínio do e-mail informado não parece ser válido.")
			return
		}
		company.OwnerEmail = email
	}
	if req.ResponsibleName != nil {
		company.ResponsibleName = *req.ResponsibleName
	}
	if req.Phone != nil {
		company.Phone = *req.Phone
	}
	if req.Address != nil {
		company.Address = *req.Address
	}
	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.BadRequest(c, "invalid_timezone", "Timezone inválido.")
			return
		}
		company.Timezone = *req.Timezone
	}
	if req.AccessPassword != nil && *req.AccessPassword != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.AccessPassword), bcrypt.DefaultCost)
		if err != nil {
			httperr.Internal(c, "failed_to_hash_password", "Erro ao gerar senha de acesso.")
			return
		}
		company.AccessPasswordHash = string(hashed)
	}

	if err := h.db.Save(&company).Error; err != nil {
		httperr.Internal(c, "failed_to_update_company", "Erro ao salvar empresa.")
		return
	}

	h.dispatch(c, "company_updated", &company)

	httpresp.OK(c, company)
}

// ======================================================
// CHANGE STATUS (atalho ativar/suspender)
// ======================================================

type ChangeCompanyStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *CompanyHandler) ChangeStatus(c *gin.Context) {
	var req ChangeCompanyStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	if !validCompanyStatus(req.Status) {
		httperr.BadRequest(c, "invalid_status", "Status de empresa inválido.")
		return
	}

	var company models.Company
	if err := h.db.Where("id = ?", c.Param("id")).First(&company).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "company_not_found", "Empresa não encontrada.")
			return
		}
		httperr.Internal(c, "failed_to_get_company", "Erro ao buscar empresa.")
		return
	}

	company.Status = req.Status
	if err := h.db.Save(&company).Error; err != nil {
		httperr.Internal(c, "failed_to_update_company", "Erro ao salvar empresa.")
		return
	}

	h.dispatch(c, "company_status_changed", &company)

	httpresp.OK(c, company)
}

func (h *CompanyHandler) dispatch(c *gin.Context, action string, company *models.Company) {
	ev := audit.Event{
		CompanyID: &company.ID,
		Action:    action,
		Entity:    "company",
		EntityID:  &company.ID,
	}
	if actor, ok := c.Get(middleware.ContextProfileID); ok {
		if id, ok := actor.(string); ok {
			ev.ActorID = &id
		}
	}
	h.audit.Dispatch(ev)
}
