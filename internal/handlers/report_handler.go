package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/booki-saas/booki-api/internal/domain/schedule"
	"github.com/booki-saas/booki-api/internal/httperr"
	"github.com/booki-saas/booki-api/internal/middleware"
	"github.com/booki-saas/booki-api/internal/models"
)

// ======================================================
// RELATÓRIOS DO TENANT
// ======================================================

type ReportHandler struct {
	db *gorm.DB
}

func NewReportHandler(db *gorm.DB) *ReportHandler {
	return &ReportHandler{db: db}
}

func (h *ReportHandler) company(c *gin.Context) (*models.Company, bool) {
	companyID := c.MustGet(middleware.ContextCompanyID).(string)

	var company models.Company
	if err := h.db.Where("id = ?", companyID).First(&company).Error; err != nil {
		httperr.Internal(c, "failed_to_get_company", "Erro ao buscar dados da empresa.")
		return nil, false
	}
	return &company, true
}

// Dashboard resume o dia da empresa: reservas de hoje, próximas e
// totais do quadro.
func (h *ReportHandler) Dashboard(c *gin.Context) {
	company, ok := h.company(c)
	if !ok {
		return
	}

	loc := locationFromCompany(company)
	now := time.Now().In(loc)
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	dayEnd := dayStart.Add(24 * time.Hour)

	var bookingsToday int64
	h.db.Model(&models.Booking{}).
		Where("company_id = ? AND start_time >= ? AND start_time < ?",
			company.ID, dayStart, dayEnd).
		Where("status <> ?", string(domain.StatusCancelled)).
		Count(&bookingsToday)

	var upcoming []models.Booking
	h.db.
		Preload("Professional").
		Preload("Service").
		Where("company_id = ? AND start_time >= ?", company.ID, now).
		Where("status <> ?", string(domain.StatusCancelled)).
		Order("start_time ASC").
		Limit(5).
		Find(&upcoming)

	var professionals int64
	h.db.Model(&models.Professional{}).
		Where("company_id = ?", company.ID).
		Count(&professionals)

	var clients int64
	h.db.Model(&models.Client{}).
		Where("company_id = ?", company.ID).
		Count(&clients)

	c.JSON(200, gin.H{
		"bookings_today": bookingsToday,
		"upcoming":       upcoming,
		"professionals":  professionals,
		"clients":        clients,
	})
}

// Finance fecha o mês pedido (?month=YYYY-MM, default mês corrente):
// receita de serviços das reservas não canceladas, receita de pedidos
// CLOSED e ticket médio.
func (h *ReportHandler) Finance(c *gin.Context) {
	company, ok := h.company(c)
	if !ok {
		return
	}

	loc := locationFromCompany(company)

	monthStr := c.Query("month")
	var start time.Time
	if monthStr == "" {
		now := time.Now().In(loc)
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
	} else {
		var err error
		start, err = time.ParseInLocation("2006-01", monthStr, loc)
		if err != nil {
			httperr.BadRequest(c, "invalid_month", "Use o formato YYYY-MM.")
			return
		}
	}
	end := start.AddDate(0, 1, 0)

	var bookings []models.Booking
	if err := h.db.
		Preload("Service").
		Where("company_id = ? AND start_time >= ? AND start_time < ?",
			company.ID, start, end).
		Where("status <> ?", string(domain.StatusCancelled)).
		Find(&bookings).Error; err != nil {

		httperr.Internal(c, "finance_failed", "Erro ao montar o resumo financeiro.")
		return
	}

	var serviceRevenue float64
	daily := make(map[string]float64)
	for _, b := range bookings {
		price := 0.0
		if b.Service != nil {
			price = b.Service.Price
		}
		serviceRevenue += price
		daily[b.StartTime.In(loc).Format("2006-01-02")] += price
	}

	var orderRevenue float64
	h.db.Model(&models.Order{}).
		Where("company_id = ? AND status = ?", company.ID, models.OrderClosed).
		Where("created_at >= ? AND created_at < ?", start, end).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&orderRevenue)

	var avgTicket float64
	if len(bookings) > 0 {
		avgTicket = serviceRevenue / float64(len(bookings))
	}

	c.JSON(200, gin.H{
		"month":           start.Format("2006-01"),
		"service_revenue": serviceRevenue,
		"order_revenue":   orderRevenue,
		"total_revenue":   serviceRevenue + orderRevenue,
		"bookings":        len(bookings),
		"average_ticket":  avgTicket,
		"daily":           daily,
	})
}
