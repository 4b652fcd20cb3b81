package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/decorabur/decora-api/internal/audit"
	"github.com/decorabur/decora-api/internal/cache"
	"github.com/decorabur/decora-api/internal/httperr"
	"github.com/decorabur/decora-api/internal/httpresp"
	"github.com/decorabur/decora-api/internal/models"
	"github.com/decorabur/decora-api/internal/storage"
)

// AdminCategoryHandler is the multipart variant of the category surface: one
// optional `image` file alongside the form fields.
type AdminCategoryHandler struct {
	db        *gorm.DB
	store     storage.Store
	audit     *audit.Dispatcher
	treeCache *cache.TreeCache
}

func NewAdminCategoryHandler(db *gorm.DB, store storage.Store, audit *audit.Dispatcher, treeCache *cache.TreeCache) *AdminCategoryHandler {
	return &AdminCategoryHandler{db: db, store: store, audit: audit, treeCache: treeCache}
}

func (h *AdminCategoryHandler) Create(c *gin.Context) {
	name := strings.TrimSpace(c.PostForm("name"))
	description := c.PostForm("description")
	if name == "" || description == "" {
		httperr.BadRequest(c, "name_and_description_required", "Le nom et la description sont requis")
		return
	}

	var count int64
	h.db.Model(&models.Category{}).Where("name = ?", name).Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "category_name_already_exists", "Une catégorie porte déjà ce nom")
		return
	}

	imageURL, ok := h.optionalImage(c)
	if !ok {
		return
	}

	category := models.Category{
		Name:        name,
		Description: description,
		ImageURL:    imageURL,
	}

	if err := h.db.Create(&category).Error; err != nil {
		httperr.InternalErr(c, "failed_to_create_category", "Erreur serveur", err)
		return
	}

	h.treeCache.Invalidate(c.Request.Context())
	h.audit.Dispatch(audit.Event{
		UserID:   optionalUserID(c),
		Action:   "category_created",
		Entity:   "category",
		EntityID: &category.ID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Catégorie créée avec succès",
		"categoryId": category.ID,
	})
}

func (h *AdminCategoryHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var category models.Category
	if err := h.db.First(&category, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "category_not_found", "Catégorie non trouvée")
			return
		}
		httperr.InternalErr(c, "failed_to_get_category", "Erreur serveur", err)
		return
	}

	name := strings.TrimSpace(c.PostForm("name"))
	description := c.PostForm("description")
	if name == "" || description == "" {
		httperr.BadRequest(c, "name_and_description_required", "Le nom et la description sont requis")
		return
	}

	imageURL, ok := h.optionalImage(c)
	if !ok {
		return
	}

	category.Name = name
	category.Description = description
	if imageURL != "" {
		category.ImageURL = imageURL
	}

	if err := h.db.Save(&category).Error; err != nil {
		httperr.InternalErr(c, "failed_to_update_category", "Erreur serveur", err)
		return
	}

	h.treeCache.Invalidate(c.Request.Context())
	h.audit.Dispatch(audit.Event{
		UserID:   optionalUserID(c),
		Action:   "category_updated",
		Entity:   "category",
		EntityID: &category.ID,
	})

	httpresp.Message(c, "Catégorie modifiée avec succès")
}

// optionalImage stores the `image` file when one was sent. Empty URL means
// no file was attached.
func (h *AdminCategoryHandler) optionalImage(c *gin.Context) (string, bool) {
	fh, err := c.FormFile("image")
	if err != nil {
		return "", true
	}

	url, err := saveImageFile(c, h.store, fh)
	if err != nil {
		httperr.BadRequest(c, "invalid_image", err.Error())
		return "", false
	}
	return url, true
}
