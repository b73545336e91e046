package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/booki-saas/booki-api/internal/httperr"
	"github.com/booki-saas/booki-api/internal/models"
)

// ======================================================
// FINANCEIRO (console master)
// ======================================================

type FinanceHandler struct {
	db *gorm.DB
}

func NewFinanceHandler(db *gorm.DB) *FinanceHandler {
	return &FinanceHandler{db: db}
}

type planSlice struct {
	Plan      string  `json:"plan"`
	Companies int64   `json:"companies"`
	Price     float64 `json:"price"`
	Revenue   float64 `json:"revenue"`
}

// Summary calcula MRR, ARPU e distribuição por plano a partir das
// empresas ativas. Empresa ativa sem plano (ou com plano desativado)
// entra na contagem mas não soma receita.
func (h *FinanceHandler) Summary(c *gin.Context) {
	var plans []models.Plan
	if err := h.db.Find(&plans).Error; err != nil {
		httperr.Internal(c, "finance_failed", "Erro ao montar o resumo financeiro.")
		return
	}

	priceByPlan := make(map[string]float64, len(plans))
	for _, p := range plans {
		priceByPlan[p.Name] = p.Price
	}

	var companies []models.Company
	if err := h.db.
		Where("status = ?", models.CompanyActive).
		Find(&companies).Error; err != nil {

		httperr.Internal(c, "finance_failed", "Erro ao montar o resumo financeiro.")
		return
	}

	countByPlan := make(map[string]int64)
	var mrr float64
	for _, co := range companies {
		countByPlan[co.Plan]++
		mrr += priceByPlan[co.Plan]
	}

	distribution := make([]planSlice, 0, len(countByPlan))
	for plan, n := range countByPlan {
		price := priceByPlan[plan]
		distribution = append(distribution, planSlice{
			Plan:      plan,
			Companies: n,
			Price:     price,
			Revenue:   price * float64(n),
		})
	}

	var arpu float64
	if len(companies) > 0 {
		arpu = mrr / float64(len(companies))
	}

	c.JSON(200, gin.H{
		"mrr":              mrr,
		"arr":              mrr * 12,
		"arpu":             arpu,
		"active_companies": len(companies),
		"by_plan":          distribution,
	})
}
