package handlers

import (
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/decorabur/decora-api/internal/audit"
	"github.com/decorabur/decora-api/internal/httperr"
	"github.com/decorabur/decora-api/internal/httpresp"
	"github.com/decorabur/decora-api/internal/models"
	"github.com/decorabur/decora-api/internal/storage"
)

// AdminProductHandler owns the multipart back-office surface: unlike the
// legacy JSON routes, price and category are optional here so quote-only
// items can be listed without a sale price.
type AdminProductHandler struct {
	db      *gorm.DB
	store   storage.Store
	audit   *audit.Dispatcher
	baseURL string
}

func NewAdminProductHandler(db *gorm.DB, store storage.Store, audit *audit.Dispatcher, baseURL string) *AdminProductHandler {
	return &AdminProductHandler{db: db, store: store, audit: audit, baseURL: baseURL}
}

// List returns every product, hidden ones included.
func (h *AdminProductHandler) List(c *gin.Context) {
	var products []models.Product
	if err := h.db.
		Order("created_at DESC").
		Find(&products).Error; err != nil {

		httperr.InternalErr(c, "failed_to_list_products", "Erreur serveur", err)
		return
	}

	views, err := buildProductViews(c, h.db, h.baseURL, products)
	if err != nil {
		httperr.InternalErr(c, "failed_to_list_products", "Erreur serveur", err)
		return
	}

	c.JSON(http.StatusOK, views)
}

func (h *AdminProductHandler) Create(c *gin.Context) {
	name := strings.TrimSpace(c.PostForm("name"))
	if name == "" {
		httperr.BadRequest(c, "name_required", "Le nom est requis")
		return
	}

	files, ok := h.imageFiles(c)
	if !ok {
		return
	}

	product := models.Product{
		Name:          name,
		Description:   c.PostForm("description"),
		Price:         parseOptionalFloat(c.PostForm("price")),
		CategoryID:    parseOptionalUint(c.PostForm("category_id")),
		StockQuantity: parseIntDefault(c.PostForm("stock_quantity"), 0),
		Dimensions:    c.PostForm("dimensions"),
		Materials:     c.PostForm("materials"),
		IsActive:      true,
	}

	if err := h.db.Create(&product).Error; err != nil {
		httperr.InternalErr(c, "failed_to_create_product", "Erreur serveur", err)
		return
	}

	if !h.storeImages(c, product.ID, files) {
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   optionalUserID(c),
		Action:   "product_created",
		Entity:   "product",
		EntityID: &product.ID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Produit créé avec succès",
		"productId": product.ID,
	})
}

func (h *AdminProductHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var product models.Product
	if err := h.db.First(&product, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "product_not_found", "Produit non trouvé")
			return
		}
		httperr.InternalErr(c, "failed_to_get_product", "Erreur serveur", err)
		return
	}

	name := strings.TrimSpace(c.PostForm("name"))
	if name == "" {
		httperr.BadRequest(c, "name_required", "Le nom est requis")
		return
	}

	files, ok := h.imageFiles(c)
	if !ok {
		return
	}

	product.Name = name
	product.Description = c.PostForm("description")
	product.Price = parseOptionalFloat(c.PostForm("price"))
	product.CategoryID = parseOptionalUint(c.PostForm("category_id"))
	product.StockQuantity = parseIntDefault(c.PostForm("stock_quantity"), 0)
	product.Dimensions = c.PostForm("dimensions")
	product.Materials = c.PostForm("materials")

	if err := h.db.Save(&product).Error; err != nil {
		httperr.InternalErr(c, "failed_to_update_product", "Erreur serveur", err)
		return
	}

	// New files replace the whole image set.
	if len(files) > 0 {
		if err := h.db.Where("product_id = ?", product.ID).
			Delete(&models.ProductImage{}).Error; err != nil {
			httperr.InternalErr(c, "failed_to_update_product_images", "Erreur serveur", err)
			return
		}
		if !h.storeImages(c, product.ID, files) {
			return
		}
	}

	h.audit.Dispatch(audit.Event{
		UserID:   optionalUserID(c),
		Action:   "product_updated",
		Entity:   "product",
		EntityID: &product.ID,
	})

	httpresp.Message(c, "Produit modifié avec succès")
}

// Delete removes the row for good, unlike the public soft delete.
func (h *AdminProductHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_product_id", "id must be a positive integer")
		return
	}

	var affected int64
	txErr := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&models.ProductImage{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Product{}, id)
		affected = res.RowsAffected
		return res.Error
	})
	if txErr != nil {
		httperr.InternalErr(c, "failed_to_delete_product", "Erreur serveur", txErr)
		return
	}
	if affected == 0 {
		httperr.NotFound(c, "product_not_found", "Produit non trouvé")
		return
	}

	productID := uint(id)
	h.audit.Dispatch(audit.Event{
		UserID:   optionalUserID(c),
		Action:   "product_deleted",
		Entity:   "product",
		EntityID: &productID,
	})

	httpresp.Message(c, "Produit supprimé avec succès")
}

type VisibilityRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

func (h *AdminProductHandler) SetVisibility(c *gin.Context) {
	id := c.Param("id")

	var req VisibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Le paramètre is_active doit être un booléen")
		return
	}

	res := h.db.Model(&models.Product{}).
		Where("id = ?", id).
		Update("is_active", *req.IsActive)
	if res.Error != nil {
		httperr.InternalErr(c, "failed_to_update_visibility", "Erreur serveur", res.Error)
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "product_not_found", "Produit non trouvé")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Visibilité mise à jour avec succès",
		"is_active": *req.IsActive,
	})
}

// --------- helpers ---------

func (h *AdminProductHandler) imageFiles(c *gin.Context) ([]*multipart.FileHeader, bool) {
	form, err := c.MultipartForm()
	if err != nil {
		// No multipart body at all is fine; fields were read via PostForm.
		return nil, true
	}

	files := form.File["images"]
	if len(files) > maxImagesPerProduct {
		httperr.BadRequest(c, "too_many_images", "Maximum 10 images par produit")
		return nil, false
	}
	return files, true
}

func (h *AdminProductHandler) storeImages(c *gin.Context, productID uint, files []*multipart.FileHeader) bool {
	for i, fh := range files {
		url, err := saveImageFile(c, h.store, fh)
		if err != nil {
			httperr.BadRequest(c, "invalid_image", err.Error())
			return false
		}

		img := models.ProductImage{
			ProductID:    productID,
			ImageURL:     url,
			DisplayOrder: i,
		}
		if err := h.db.Create(&img).Error; err != nil {
			httperr.InternalErr(c, "failed_to_save_images", "Erreur serveur", err)
			return false
		}
	}
	return true
}

func parseOptionalFloat(raw string) *float64 {
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		return nil
	}
	return &v
}

func parseOptionalUint(raw string) *uint {
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || v == 0 {
		return nil
	}
	u := uint(v)
	return &u
}
