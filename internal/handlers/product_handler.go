package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/booki-saas/booki-api/internal/httperr"
	"github.com/booki-saas/booki-api/internal/httpresp"
	"github.com/booki-saas/booki-api/internal/middleware"
	"github.com/booki-saas/booki-api/internal/models"
	"github.com/booki-saas/booki-api/internal/storage"
)

const maxImageUploadBytes = 5 << 20 // 5 MB

type ProductHandler struct {
	db       *gorm.DB
	uploader *storage.Uploader
}

func NewProductHandler(db *gorm.DB, uploader *storage.Uploader) *ProductHandler {
	return &ProductHandler{db: db, uploader: uploader}
}

type ProductRequest struct {
	Name          string  `json:"name" binding:"required"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	StockQuantity int     `json:"stock_quantity"`
	Category      string  `json:"category"`
}

func (h *ProductHandler) List(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(string)

	q := h.db.Where("company_id = ?", companyID)

	if category := c.Query("category"); category != "" {
		q = q.Where("category = ?", category)
	}

	var products []models.Product
	if err := q.Order("name ASC").Find(&products).Error; err != nil {
		httperr.Internal(c, "failed_to_list_products", "Erro ao listar produtos.")
		return
	}

	httpresp.List(c, products)
}

func (h *ProductHandler) Create(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(string)

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	if req.StockQuantity < 0 {
		httperr.BadRequest(c, "invalid_stock", "Estoque não pode ser negativo.")
		return
	}

	product := models.Product{
		CompanyID:     companyID,
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
		Category:      req.Category,
	}

	if err := h.db.Create(&product).Error; err != nil {
		httperr.Internal(c, "failed_to_create_product", "Erro ao criar produto.")
		return
	}

	c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) Update(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(string)

	var product models.Product
	if err := h.db.
		Where("id = ? AND company_id = ?", c.Param("id"), companyID).
		First(&product).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "product_not_found", "Produto não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_product", "Erro ao buscar produto.")
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	if req.StockQuantity < 0 {
		httperr.BadRequest(c, "invalid_stock", "Estoque não pode ser negativo.")
		return
	}

	product.Name = req.Name
	product.Description = req.Description
	product.Price = req.Price
	product.StockQuantity = req.StockQuantity
	product.Category = req.Category

	if err := h.db.Save(&product).Error; err != nil {
		httperr.Internal(c, "failed_to_update_product", "Erro ao salvar produto.")
		return
	}

	httpresp.OK(c, product)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(string)

	var product models.Product
	if err := h.db.
		Where("id = ? AND company_id = ?", c.Param("id"), companyID).
		First(&product).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "product_not_found", "Produto não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_product", "Erro ao buscar produto.")
		return
	}

	if err := h.db.Delete(&product).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_product", "Erro ao remover produto.")
		return
	}

	c.Status(http.StatusNoContent)
}

// ======================================================
// UPLOAD DE IMAGEM
// ======================================================

// UploadImage recebe multipart "image", re-encoda em webp e grava a
// URL pública no produto.
func (h *ProductHandler) UploadImage(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(string)

	var product models.Product
	if err := h.db.
		Where("id = ? AND company_id = ?", c.Param("id"), companyID).
		First(&product).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "product_not_found", "Produto não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_product", "Erro ao buscar produto.")
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		httperr.BadRequest(c, "missing_image", "Envie o arquivo no campo 'image'.")
		return
	}

	if fileHeader.Size > maxImageUploadBytes {
		httperr.BadRequest(c, "image_too_large", "Imagem acima do limite de 5 MB.")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		httperr.Internal(c, "failed_to_read_image", "Erro ao ler a imagem enviada.")
		return
	}
	defer file.Close()

	url, err := h.uploader.UploadProductImage(
		c.Request.Context(),
		companyID,
		product.ID,
		file,
	)
	if err != nil {
		httperr.Internal(c, "failed_to_upload_image", "Erro ao enviar a imagem.")
		return
	}

	product.ImageURL = url
	if err := h.db.Save(&product).Error; err != nil {
		httperr.Internal(c, "failed_to_update_product", "Erro ao salvar produto.")
		return
	}

	httpresp.OK(c, product)
}
