package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/decorabur/decora-api/internal/httperr"
	"github.com/decorabur/decora-api/internal/httpresp"
	"github.com/decorabur/decora-api/internal/models"
)

type ProductHandler struct {
	db      *gorm.DB
	baseURL string
}

func NewProductHandler(db *gorm.DB, baseURL string) *ProductHandler {
	return &ProductHandler{db: db, baseURL: baseURL}
}

// --------- Requests / views ---------

// Legacy JSON surface: price, category and stock are mandatory here, unlike
// the admin multipart surface where quote-only items omit them.
type ProductRequest struct {
	Name          string  `json:"name" binding:"required"`
	Description   string  `json:"description"`
	Price         float64 `json:"price" binding:"gte=0"`
	CategoryID    uint    `json:"category_id" binding:"required,min=1"`
	StockQuantity int     `json:"stock_quantity" binding:"gte=0"`
	ImageURL      string  `json:"image_url"`
	Dimensions    string  `json:"dimensions"`
	Materials     string  `json:"materials"`
}

type ProductView struct {
	models.Product
	CategoryName *string  `json:"category_name"`
	Images       []string `json:"images"`
}

// --------- Handlers ---------

func (h *ProductHandler) List(c *gin.Context) {
	category := strings.TrimSpace(c.Query("category"))
	search := strings.TrimSpace(c.Query("search"))
	limit := parseIntDefault(c.Query("limit"), 20)
	offset := parseIntDefault(c.Query("offset"), 0)

	q := h.db.Where("is_active = ?", true)

	if category != "" {
		q = q.Where("category_id IN (?)",
			h.db.Model(&models.Category{}).Select("id").Where("name = ?", category))
	}

	if search != "" {
		like := "%" + search + "%"
		q = q.Where("name LIKE ? OR description LIKE ?", like, like)
	}

	var products []models.Product
	if err := q.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&products).Error; err != nil {

		httperr.InternalErr(c, "failed_to_list_products", "Erreur serveur", err)
		return
	}

	views, err := h.buildViews(c, products)
	if err != nil {
		httperr.InternalErr(c, "failed_to_list_products", "Erreur serveur", err)
		return
	}

	c.JSON(http.StatusOK, views)
}

func (h *ProductHandler) Get(c *gin.Context) {
	id := c.Param("id")

	var product models.Product
	if err := h.db.
		Where("id = ? AND is_active = ?", id, true).
		First(&product).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "product_not_found", "Produit non trouvé")
			return
		}
		httperr.InternalErr(c, "failed_to_get_product", "Erreur serveur", err)
		return
	}

	views, err := h.buildViews(c, []models.Product{product})
	if err != nil {
		httperr.InternalErr(c, "failed_to_get_product", "Erreur serveur", err)
		return
	}

	c.JSON(http.StatusOK, views[0])
}

func (h *ProductHandler) ListByCategory(c *gin.Context) {
	categoryID := c.Param("categoryId")
	limit := parseIntDefault(c.Query("limit"), 20)
	offset := parseIntDefault(c.Query("offset"), 0)

	var products []models.Product
	if err := h.db.
		Where("category_id = ? AND is_active = ?", categoryID, true).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&products).Error; err != nil {

		httperr.InternalErr(c, "failed_to_list_products", "Erreur serveur", err)
		return
	}

	views, err := h.buildViews(c, products)
	if err != nil {
		httperr.InternalErr(c, "failed_to_list_products", "Erreur serveur", err)
		return
	}

	c.JSON(http.StatusOK, views)
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, err)
		return
	}

	product := models.Product{
		Name:          req.Name,
		Description:   req.Description,
		Price:         &req.Price,
		CategoryID:    &req.CategoryID,
		StockQuantity: req.StockQuantity,
		ImageURL:      req.ImageURL,
		Dimensions:    req.Dimensions,
		Materials:     req.Materials,
		IsActive:      true,
	}

	if err := h.db.Create(&product).Error; err != nil {
		httperr.InternalErr(c, "failed_to_create_product", "Erreur serveur", err)
		return
	}

	views, err := h.buildViews(c, []models.Product{product})
	if err != nil {
		httperr.InternalErr(c, "failed_to_create_product", "Erreur serveur", err)
		return
	}

	c.JSON(http.StatusCreated, views[0])
}

func (h *ProductHandler) Update(c *gin.Context) {
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

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, err)
		return
	}

	product.Name = req.Name
	product.Description = req.Description
	product.Price = &req.Price
	product.CategoryID = &req.CategoryID
	product.StockQuantity = req.StockQuantity
	product.ImageURL = req.ImageURL
	product.Dimensions = req.Dimensions
	product.Materials = req.Materials

	if err := h.db.Save(&product).Error; err != nil {
		httperr.InternalErr(c, "failed_to_update_product", "Erreur serveur", err)
		return
	}

	views, err := h.buildViews(c, []models.Product{product})
	if err != nil {
		httperr.InternalErr(c, "failed_to_update_product", "Erreur serveur", err)
		return
	}

	c.JSON(http.StatusOK, views[0])
}

// Delete only flips is_active; the row stays for the admin back-office.
func (h *ProductHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	res := h.db.Model(&models.Product{}).
		Where("id = ?", id).
		Update("is_active", false)
	if res.Error != nil {
		httperr.InternalErr(c, "failed_to_delete_product", "Erreur serveur", res.Error)
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "product_not_found", "Produit non trouvé")
		return
	}

	httpresp.Message(c, "Produit supprimé avec succès")
}

func (h *ProductHandler) buildViews(c *gin.Context, products []models.Product) ([]ProductView, error) {
	return buildProductViews(c, h.db, h.baseURL, products)
}

// --------- Shared helpers ---------

// buildProductViews resolves category names and ordered image URLs for a
// page of products with one query per concern instead of one per product.
func buildProductViews(c *gin.Context, db *gorm.DB, baseURL string, products []models.Product) ([]ProductView, error) {
	views := make([]ProductView, 0, len(products))
	if len(products) == 0 {
		return views, nil
	}

	productIDs := make([]uint, 0, len(products))
	categoryIDs := make([]uint, 0, len(products))
	for _, p := range products {
		productIDs = append(productIDs, p.ID)
		if p.CategoryID != nil {
			categoryIDs = append(categoryIDs, *p.CategoryID)
		}
	}

	categoryNames := make(map[uint]string)
	if len(categoryIDs) > 0 {
		var categories []models.Category
		if err := db.Where("id IN ?", categoryIDs).Find(&categories).Error; err != nil {
			return nil, err
		}
		for _, cat := range categories {
			categoryNames[cat.ID] = cat.Name
		}
	}

	var images []models.ProductImage
	if err := db.
		Where("product_id IN ?", productIDs).
		Order("product_id ASC, display_order ASC").
		Find(&images).Error; err != nil {
		return nil, err
	}

	imagesByProduct := make(map[uint][]string)
	for _, img := range images {
		imagesByProduct[img.ProductID] = append(imagesByProduct[img.ProductID], absURL(c, baseURL, img.ImageURL))
	}

	for _, p := range products {
		view := ProductView{Product: p, Images: []string{}}
		view.ImageURL = absURL(c, baseURL, p.ImageURL)
		if p.CategoryID != nil {
			if name, ok := categoryNames[*p.CategoryID]; ok {
				view.CategoryName = &name
			}
		}
		if urls, ok := imagesByProduct[p.ID]; ok {
			view.Images = urls
		}
		views = append(views, view)
	}
	return views, nil
}

// absURL leaves absolute URLs (hosted image service) untouched and prefixes
// relative /uploads paths with the public base, falling back to the request
// host.
func absURL(c *gin.Context, baseURL, url string) string {
	if url == "" || strings.HasPrefix(url, "http") {
		return url
	}
	base := baseURL
	if base == "" {
		scheme := "http"
		if c.Request.TLS != nil {
			scheme = "https"
		}
		base = scheme + "://" + c.Request.Host
	}
	return base + url
}

func parseIntDefault(raw string, def int) int {
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return def
	}
	return v
}
