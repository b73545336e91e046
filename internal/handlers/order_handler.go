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
)

type OrderHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewOrderHandler(db *gorm.DB, dispatcher *audit.Dispatcher) *OrderHandler {
	return &OrderHandler{db: db, audit: dispatcher}
}

type CreateOrderRequest struct {
	TotalAmount float64 `json:"total_amount" binding:"required"`
}

func (h *OrderHandler) List(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(string)

	q := h.db.Where("company_id = ?", companyID)

	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var orders []models.Order
	if err := q.Order("created_at DESC").Find(&orders).Error; err != nil {
		httperr.Internal(c, "failed_to_list_orders", "Erro ao listar pedidos.")
		return
	}

	httpresp.List(c, orders)
}

func (h *OrderHandler) Create(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(string)

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	if req.TotalAmount <= 0 {
		httperr.BadRequest(c, "invalid_amount", "Valor do pedido deve ser positivo.")
		return
	}

	order := models.Order{
		CompanyID:   companyID,
		TotalAmount: req.TotalAmount,
		Status:      models.OrderOpen,
	}

	if err := h.db.Create(&order).Error; err != nil {
		httperr.Internal(c, "failed_to_create_order", "Erro ao criar pedido.")
		return
	}

	h.audit.Dispatch(audit.Event{
		CompanyID: &companyID,
		Action:    "order_created",
		Entity:    "order",
		EntityID:  &order.ID,
	})

	c.JSON(http.StatusCreated, order)
}

// Close fecha o pedido; só pedidos CLOSED entram como receita no
// resumo financeiro da empresa.
func (h *OrderHandler) Close(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(string)

	var order models.Order
	if err := h.db.
		Where("id = ? AND company_id = ?", c.Param("id"), companyID).
		First(&order).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "order_not_found", "Pedido não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_order", "Erro ao buscar pedido.")
		return
	}

	if order.Status == models.OrderClosed {
		httperr.Conflict(c, "order_already_closed", "Este pedido já foi fechado.")
		return
	}

	order.Status = models.OrderClosed
	if err := h.db.Save(&order).Error; err != nil {
		httperr.Internal(c, "failed_to_close_order", "Erro ao fechar pedido.")
		return
	}

	h.audit.Dispatch(audit.Event{
		CompanyID: &companyID,
		Action:    "order_closed",
		Entity:    "order",
		EntityID:  &order.ID,
	})

	httpresp.OK(c, order)
}
