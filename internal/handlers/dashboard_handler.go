package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/booki-saas/booki-api/internal/httperr"
	"github.com/booki-saas/booki-api/internal/insights"
	"github.com/booki-saas/booki-api/internal/models"
)

// ======================================================
// DASHBOARD (console master)
// ======================================================

type DashboardHandler struct {
	db       *gorm.DB
	insights *insights.Service
}

func NewDashboardHandler(db *gorm.DB, insights *insights.Service) *DashboardHandler {
	return &DashboardHandler{db: db, insights: insights}
}

func (h *DashboardHandler) Stats(c *gin.Context) {
	var totalCompanies int64
	var activeCompanies int64
	var pendingCompanies int64
	var totalProfessionals int64
	var totalBookings int64
	var bookingsToday int64

	if err := h.db.Model(&models.Company{}).Count(&totalCompanies).Error; err != nil {
		httperr.Internal(c, "dashboard_failed", "Erro ao montar o dashboard.")
		return
	}

	h.db.Model(&models.Company{}).
		Where("status = ?", models.CompanyActive).
		Count(&activeCompanies)

	h.db.Model(&models.Company{}).
		Where("status = ?", models.CompanyPending).
		Count(&pendingCompanies)

	h.db.Model(&models.Professional{}).Count(&totalProfessionals)

	h.db.Model(&models.Booking{}).Count(&totalBookings)

	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	h.db.Model(&models.Booking{}).
		Where("start_time >= ? AND start_time < ?", dayStart, dayStart.Add(24*time.Hour)).
		Count(&bookingsToday)

	// Atividade recente de toda a plataforma
	var recent []models.ActivityLog
	h.db.Order("created_at DESC").Limit(10).Find(&recent)

	c.JSON(200, gin.H{
		"total_companies":     totalCompanies,
		"active_companies":    activeCompanies,
		"pending_companies":   pendingCompanies,
		"total_professionals": totalProfessionals,
		"total_bookings":      totalBookings,
		"bookings_today":      bookingsToday,
		"recent_activity":     recent,
	})
}

// Insights devolve o resumo executivo gerado por IA sobre a plataforma.
// Chamada separada do Stats: a geração pode levar alguns segundos e não
// deve atrasar os contadores do painel.
func (h *DashboardHandler) Insights(c *gin.Context) {
	var companies int64
	if err := h.db.Model(&models.Company{}).Count(&companies).Error; err != nil {
		httperr.Internal(c, "insights_failed", "Erro ao coletar métricas da plataforma.")
		return
	}

	var professionals int64
	h.db.Model(&models.Professional{}).Count(&professionals)

	var bookings int64
	h.db.Model(&models.Booking{}).Count(&bookings)

	// Receita mensal estimada: soma dos planos das empresas ativas.
	var revenue float64
	h.db.Model(&models.Company{}).
		Select("COALESCE(SUM(plans.price), 0)").
		Joins("LEFT JOIN plans ON plans.name = companies.plan").
		Where("companies.status = ?", models.CompanyActive).
		Scan(&revenue)

	summary := h.insights.SystemSummary(c.Request.Context(), insights.Metrics{
		Companies:     companies,
		Professionals: professionals,
		Bookings:      bookings,
		Revenue:       revenue,
	})

	c.JSON(200, gin.H{
		"enabled": h.insights.Enabled(),
		"summary": summary,
	})
}
