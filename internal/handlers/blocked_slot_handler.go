package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/booki-saas/booki-api/internal/audit"
	domain "github.com/booki-saas/booki-api/internal/domain/schedule"
	"github.com/booki-saas/booki-api/internal/httperr"
	"github.com/booki-saas/booki-api/internal/httpresp"
	"github.com/booki-saas/booki-api/internal/middleware"
	"github.com/booki-saas/booki-api/internal/models"
	"github.com/booki-saas/booki-api/internal/realtime"
)

// ======================================================
// BLOQUEIO DE HORÁRIOS
// ======================================================

type BlockedSlotHandler struct {
	db       *gorm.DB
	audit    *audit.Dispatcher
	realtime *realtime.Publisher
}

func NewBlockedSlotHandler(
	db *gorm.DB,
	dispatcher *audit.Dispatcher,
	rt *realtime.Publisher,
) *BlockedSlotHandler {
	return &BlockedSlotHandler{db: db, audit: dispatcher, realtime: rt}
}

type ToggleBlockedSlotRequest struct {
	Date string `json:"date" binding:"required"` // YYYY-MM-DD
	Time string `json:"time" binding:"required"` // HH:MM
}

func (h *BlockedSlotHandler) List(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(string)

	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_date", "Informe ?date=YYYY-MM-DD.")
		return
	}

	var slots []models.BlockedSlot
	if err := h.db.
		Where("company_id = ? AND slot_date = ?", companyID, date).
		Order("slot_time ASC").
		Find(&slots).Error; err != nil {

		httperr.Internal(c, "failed_to_list_blocked_slots", "Erro ao listar bloqueios.")
		return
	}

	httpresp.List(c, slots)
}

// Toggle fecha o horário se estiver aberto e reabre se estiver
// fechado. O bloqueio vale para a empresa inteira e vence qualquer
// outra regra de disponibilidade.
func (h *BlockedSlotHandler) Toggle(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(string)

	var req ToggleBlockedSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	if !domain.IsGridLabel(req.Time) {
		httperr.BadRequest(c, "invalid_slot_time", "Horário fora da grade fixa.")
		return
	}

	var existing models.BlockedSlot
	err := h.db.
		Where("company_id = ? AND slot_date = ? AND slot_time = ?",
			companyID, req.Date, req.Time).
		First(&existing).Error

	switch {
	case err == nil:
		if err := h.db.Delete(&existing).Error; err != nil {
			httperr.Internal(c, "failed_to_unblock_slot", "Erro ao reabrir horário.")
			return
		}

		h.audit.Dispatch(audit.Event{
			CompanyID: &companyID,
			Action:    "slot_unblocked",
			Entity:    "blocked_slot",
			EntityID:  &existing.ID,
			Metadata:  map[string]any{"date": req.Date, "time": req.Time},
		})
		h.realtime.BlockedSlotsChanged(c.Request.Context(), companyID)

		c.JSON(http.StatusOK, gin.H{"blocked": false})

	case err == gorm.ErrRecordNotFound:
		slot := models.BlockedSlot{
			CompanyID: companyID,
			SlotDate:  req.Date,
			SlotTime:  req.Time,
		}

		if err := h.db.Create(&slot).Error; err != nil {
			httperr.Internal(c, "failed_to_block_slot", "Erro ao fechar horário.")
			return
		}

		h.audit.Dispatch(audit.Event{
			CompanyID: &companyID,
			Action:    "slot_blocked",
			Entity:    "blocked_slot",
			EntityID:  &slot.ID,
			Metadata:  map[string]any{"date": req.Date, "time": req.Time},
		})
		h.realtime.BlockedSlotsChanged(c.Request.Context(), companyID)

		c.JSON(http.StatusOK, gin.H{"blocked": true, "slot": slot})

	default:
		httperr.Internal(c, "failed_to_toggle_slot", "Erro ao alternar bloqueio.")
	}
}
