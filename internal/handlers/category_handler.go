package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/decorabur/decora-api/internal/cache"
	"github.com/decorabur/decora-api/internal/domain/catalog"
	"github.com/decorabur/decora-api/internal/httperr"
	"github.com/decorabur/decora-api/internal/httpresp"
	"github.com/decorabur/decora-api/internal/middleware"
	"github.com/decorabur/decora-api/internal/models"
	ucCatalog "github.com/decorabur/decora-api/internal/usecase/catalog"
)

type CategoryHandler struct {
	db        *gorm.DB
	repo      catalog.Repository
	deleteUC  *ucCatalog.DeleteCategoryTree
	treeCache *cache.TreeCache
}

func NewCategoryHandler(
	db *gorm.DB,
	repo catalog.Repository,
	deleteUC *ucCatalog.DeleteCategoryTree,
	treeCache *cache.TreeCache,
) *CategoryHandler {
	return &CategoryHandler{
		db:        db,
		repo:      repo,
		deleteUC:  deleteUC,
		treeCache: treeCache,
	}
}

// --------- Requests ---------

type CategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	ParentID    *uint  `json:"parent_id"`
}

// --------- Handlers ---------

func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.repo.ListCategories(c.Request.Context())
	if err != nil {
		httperr.InternalErr(c, "failed_to_list_categories", "Erreur serveur", err)
		return
	}
	httpresp.OK(c, categories)
}

func (h *CategoryHandler) Tree(c *gin.Context) {
	ctx := c.Request.Context()

	if payload, ok := h.treeCache.Get(ctx); ok {
		c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
		return
	}

	categories, err := h.repo.ListCategories(ctx)
	if err != nil {
		httperr.InternalErr(c, "failed_to_list_categories", "Erreur serveur", err)
		return
	}

	tree := catalog.BuildTree(categories)

	if payload, err := json.Marshal(tree); err == nil {
		h.treeCache.Set(ctx, payload)
	}

	c.JSON(http.StatusOK, tree)
}

func (h *CategoryHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_category_id", "id must be a positive integer")
		return
	}

	category, err := h.repo.GetCategory(c.Request.Context(), uint(id))
	if err != nil {
		if err == catalog.ErrCategoryNotFound {
			httperr.NotFound(c, "category_not_found", "Catégorie non trouvée")
			return
		}
		httperr.InternalErr(c, "failed_to_get_category", "Erreur serveur", err)
		return
	}

	c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, err)
		return
	}

	name := strings.TrimSpace(req.Name)

	var count int64
	h.db.Model(&models.Category{}).Where("name = ?", name).Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "category_name_already_exists", "Une catégorie porte déjà ce nom")
		return
	}

	if !h.parentExists(c, req.ParentID) {
		return
	}

	category := models.Category{
		Name:        name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		ParentID:    req.ParentID,
	}

	if err := h.db.Create(&category).Error; err != nil {
		httperr.InternalErr(c, "failed_to_create_category", "Erreur serveur", err)
		return
	}

	h.treeCache.Invalidate(c.Request.Context())
	c.JSON(http.StatusCreated, category)
}

// Update is full-row replace: every mutable column takes the request value.
func (h *CategoryHandler) Update(c *gin.Context) {
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

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, err)
		return
	}

	if req.ParentID != nil && *req.ParentID == category.ID {
		httperr.BadRequest(c, "category_own_parent", "Une catégorie ne peut pas être son propre parent")
		return
	}
	if !h.parentExists(c, req.ParentID) {
		return
	}

	category.Name = strings.TrimSpace(req.Name)
	category.Description = req.Description
	category.ImageURL = req.ImageURL
	category.ParentID = req.ParentID

	if err := h.db.Save(&category).Error; err != nil {
		httperr.InternalErr(c, "failed_to_update_category", "Erreur serveur", err)
		return
	}

	h.treeCache.Invalidate(c.Request.Context())
	c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_category_id", "id must be a positive integer")
		return
	}

	userID := optionalUserID(c)

	if err := h.deleteUC.Execute(c.Request.Context(), userID, uint(id)); err != nil {
		if httperr.IsBusiness(err, "category_not_found") {
			httperr.NotFound(c, "category_not_found", "Catégorie non trouvée")
			return
		}
		httperr.InternalErr(c, "failed_to_delete_category", "Erreur serveur", err)
		return
	}

	h.treeCache.Invalidate(c.Request.Context())
	httpresp.Message(c, "Catégorie et éléments associés supprimés avec succès")
}

// parentExists writes the error response itself when the declared parent is
// missing. Dangling parent references are rejected at write time even though
// legacy rows with one still render as roots.
func (h *CategoryHandler) parentExists(c *gin.Context, parentID *uint) bool {
	if parentID == nil {
		return true
	}

	var count int64
	h.db.Model(&models.Category{}).Where("id = ?", *parentID).Count(&count)
	if count == 0 {
		httperr.BadRequest(c, "parent_category_not_found", "La catégorie parente n'existe pas")
		return false
	}
	return true
}

func optionalUserID(c *gin.Context) *uint {
	if v, exists := c.Get(middleware.ContextUserID); exists {
		if id, ok := v.(uint); ok {
			return &id
		}
	}
	return nil
}
