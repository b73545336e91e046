package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/booki-saas/booki-api/internal/httperr"
	"github.com/booki-saas/booki-api/internal/httpresp"
	"github.com/booki-saas/booki-api/internal/middleware"
	"github.com/booki-saas/booki-api/internal/models"
)

// ======================================================
// USUÁRIOS DO CONSOLE MASTER
// ======================================================

type ProfileHandler struct {
	db *gorm.DB
}

func NewProfileHandler(db *gorm.DB) *ProfileHandler {
	return &ProfileHandler{db: db}
}

func (h *ProfileHandler) List(c *gin.Context) {
	var profiles []models.Profile
	if err := h.db.Order("created_at ASC").Find(&profiles).Error; err != nil {
		httperr.Internal(c, "failed_to_list_profiles", "Erro ao listar usuários.")
		return
	}

	httpresp.List(c, profiles)
}

type UpdateProfileRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// UpdateRole promove ou rebaixa um usuário do console. Só MASTER
// altera papéis, e ninguém rebaixa a si mesmo.
func (h *ProfileHandler) UpdateRole(c *gin.Context) {
	actorRole, _ := c.Get(middleware.ContextRole)
	if actorRole != models.RoleMaster {
		httperr.Forbidden(c, "master_only", "Apenas MASTER altera papéis.")
		return
	}

	actorID, _ := c.Get(middleware.ContextProfileID)
	if actorID == c.Param("id") {
		httperr.Conflict(c, "cannot_change_own_role", "Não é possível alterar o próprio papel.")
		return
	}

	var req UpdateProfileRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	if req.Role != models.RoleMaster && req.Role != models.RoleAdmin {
		httperr.BadRequest(c, "invalid_role", "Papel inválido para o console.")
		return
	}

	var profile models.Profile
	if err := h.db.Where("id = ?", c.Param("id")).First(&profile).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "profile_not_found", "Usuário não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_profile", "Erro ao buscar usuário.")
		return
	}

	profile.Role = req.Role
	if err := h.db.Save(&profile).Error; err != nil {
		httperr.Internal(c, "failed_to_update_profile", "Erro ao salvar usuário.")
		return
	}

	httpresp.OK(c, profile)
}

func (h *ProfileHandler) Delete(c *gin.Context) {
	actorRole, _ := c.Get(middleware.ContextRole)
	if actorRole != models.RoleMaster {
		httperr.Forbidden(c, "master_only", "Apenas MASTER remove usuários.")
		return
	}

	actorID, _ := c.Get(middleware.ContextProfileID)
	if actorID == c.Param("id") {
		httperr.Conflict(c, "cannot_delete_self", "Não é possível remover o próprio usuário.")
		return
	}

	if err := h.db.
		Where("id = ?", c.Param("id")).
		Delete(&models.Profile{}).Error; err != nil {

		httperr.Internal(c, "failed_to_delete_profile", "Erro ao remover usuário.")
		return
	}

	c.Status(http.StatusNoContent)
}
