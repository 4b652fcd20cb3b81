package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/decorabur/decora-api/internal/httperr"
	"github.com/decorabur/decora-api/internal/middleware"
	"github.com/decorabur/decora-api/internal/models"
	ucOrder "github.com/decorabur/decora-api/internal/usecase/order"
)

type OrderHandler struct {
	db       *gorm.DB
	createUC *ucOrder.CreateOrder
}

func NewOrderHandler(db *gorm.DB, createUC *ucOrder.CreateOrder) *OrderHandler {
	return &OrderHandler{db: db, createUC: createUC}
}

func (h *OrderHandler) List(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	limit := parseIntDefault(c.Query("limit"), 20)
	offset := parseIntDefault(c.Query("offset"), 0)

	var orders []models.Order
	if err := h.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&orders).Error; err != nil {

		httperr.InternalErr(c, "failed_to_list_orders", "Erreur serveur", err)
		return
	}

	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) Get(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	id := c.Param("id")

	var order models.Order
	if err := h.db.
		Preload("Items").
		Where("id = ? AND user_id = ?", id, userID).
		First(&order).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "order_not_found", "Commande non trouvée")
			return
		}
		httperr.InternalErr(c, "failed_to_get_order", "Erreur serveur", err)
		return
	}

	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var in ucOrder.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		httperr.Validation(c, err)
		return
	}

	orderID, err := h.createUC.Execute(c.Request.Context(), userID, in)
	if err != nil {
		if code, ok := httperr.BusinessCode(err); ok {
			httperr.BadRequest(c, code, "Produit non disponible en quantité suffisante")
			return
		}
		httperr.InternalErr(c, "failed_to_create_order", "Erreur serveur", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Commande créée avec succès",
		"orderId": orderID,
	})
}
