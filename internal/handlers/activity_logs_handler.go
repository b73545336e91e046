package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/booki-saas/booki-api/internal/httperr"
	"github.com/booki-saas/booki-api/internal/middleware"
	"github.com/booki-saas/booki-api/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type ActivityLogsHandler struct {
	db *gorm.DB
}

func NewActivityLogsHandler(db *gorm.DB) *ActivityLogsHandler {
	return &ActivityLogsHandler{db: db}
}

// ListPlatform lista a atividade da plataforma inteira (console master),
// com filtro opcional por empresa.
func (h *ActivityLogsHandler) ListPlatform(c *gin.Context) {
	q := h.db.Model(&models.ActivityLog{})

	if companyID := c.Query("company_id"); companyID != "" {
		q = q.Where("company_id = ?", companyID)
	}

	h.list(c, q)
}

// ListCompany lista apenas a atividade da empresa logada.
func (h *ActivityLogsHandler) ListCompany(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(string)

	q := h.db.
		Model(&models.ActivityLog{}).
		Where("company_id = ?", companyID)

	h.list(c, q)
}

func (h *ActivityLogsHandler) list(c *gin.Context, q *gorm.DB) {
	action := c.Query("action")
	entity := c.Query("entity")
	fromStr := c.Query("from")
	toStr := c.Query("to")

	pageStr := c.DefaultQuery("page", "1")
	limitStr := c.DefaultQuery("limit", "50")

	page, _ := strconv.Atoi(pageStr)
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(limitStr)
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	offset := (page - 1) * limit

	// --------------------------------------------------
	// Filtros opcionais
	// --------------------------------------------------

	if action != "" {
		q = q.Where("action = ?", action)
	}

	if entity != "" {
		q = q.Where("entity = ?", entity)
	}

	if fromStr != "" {
		if from, err := time.Parse("2006-01-02", fromStr); err == nil {
			q = q.Where("created_at >= ?", from)
		}
	}

	if toStr != "" {
		if to, err := time.Parse("2006-01-02", toStr); err == nil {
			q = q.Where("created_at <= ?", to.Add(24*time.Hour))
		}
	}

	// --------------------------------------------------
	// Total
	// --------------------------------------------------

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "activity_count_failed", "Erro ao contar logs.")
		return
	}

	// --------------------------------------------------
	// Listagem
	// --------------------------------------------------

	var logs []models.ActivityLog
	if err := q.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error; err != nil {

		httperr.Internal(c, "activity_list_failed", "Erro ao listar logs.")
		return
	}

	// --------------------------------------------------
	// Response
	// --------------------------------------------------

	c.JSON(200, gin.H{
		"page":  page,
		"limit": limit,
		"total": total,
		"logs":  logs,
	})
}
