package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/booki-saas/booki-api/internal/httperr"
	"github.com/booki-saas/booki-api/internal/httpresp"
	"github.com/booki-saas/booki-api/internal/models"
)

type PlanHandler struct {
	db *gorm.DB
}

func NewPlanHandler(db *gorm.DB) *PlanHandler {
	return &PlanHandler{db: db}
}

type PlanRequest struct {
	Name        string  `json:"name" binding:"required"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Features    string  `json:"features"`
	Active      *bool   `json:"active"`
}

func (h *PlanHandler) List(c *gin.Context) {
	q := h.db.Model(&models.Plan{})

	if c.Query("active") == "true" {
		q = q.Where("active = ?", true)
	}

	var plans []models.Plan
	if err := q.Order("price ASC").Find(&plans).Error; err != nil {
		httperr.Internal(c, "failed_to_list_plans", "Erro ao listar planos.")
		return
	}

	httpresp.List(c, plans)
}

func (h *PlanHandler) Create(c *gin.Context) {
	var req PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	var count int64
	h.db.Model(&models.Plan{}).Where("name = ?", req.Name).Count(&count)
	if count > 0 {
		httperr.Conflict(c, "plan_already_exists", "Já existe um plano com este nome.")
		return
	}

	plan := models.Plan{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		Features:    req.Features,
		Active:      true,
	}
	if req.Active != nil {
		plan.Active = *req.Active
	}

	if err := h.db.Create(&plan).Error; err != nil {
		httperr.Internal(c, "failed_to_create_plan", "Erro ao criar plano.")
		return
	}

	c.JSON(http.StatusCreated, plan)
}

func (h *PlanHandler) Update(c *gin.Context) {
	var plan models.Plan
	if err := h.db.Where("id = ?", c.Param("id")).First(&plan).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "plan_not_found", "Plano não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_plan", "Erro ao buscar plano.")
		return
	}

	var req PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	plan.Name = req.Name
	plan.Price = req.Price
	plan.Description = req.Description
	plan.Features = req.Features
	if req.Active != nil {
		plan.Active = *req.Active
	}

	if err := h.db.Save(&plan).Error; err != nil {
		httperr.Internal(c, "failed_to_update_plan", "Erro ao salvar plano.")
		return
	}

	httpresp.OK(c, plan)
}

func (h *PlanHandler) Delete(c *gin.Context) {
	var plan models.Plan
	if err := h.db.Where("id = ?", c.Param("id")).First(&plan).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "plan_not_found", "Plano não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_plan", "Erro ao buscar plano.")
		return
	}

	// Empresas podem referenciar o plano pelo nome; desativamos em vez
	// de apagar.
	plan.Active = false
	if err := h.db.Save(&plan).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_plan", "Erro ao desativar plano.")
		return
	}

	c.Status(http.StatusNoContent)
}
