package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/decorabur/decora-api/internal/audit"
	"github.com/decorabur/decora-api/internal/httperr"
	"github.com/decorabur/decora-api/internal/httpresp"
	"github.com/decorabur/decora-api/internal/models"
)

type AdminOrderHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewAdminOrderHandler(db *gorm.DB, audit *audit.Dispatcher) *AdminOrderHandler {
	return &AdminOrderHandler{db: db, audit: audit}
}

type adminOrderView struct {
	models.Order
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
}

func (h *AdminOrderHandler) List(c *gin.Context) {
	var orders []models.Order
	if err := h.db.
		Preload("User").
		Order("created_at DESC").
		Find(&orders).Error; err != nil {

		httperr.InternalErr(c, "failed_to_list_orders", "Erreur serveur", err)
		return
	}

	views := make([]adminOrderView, 0, len(orders))
	for _, o := range orders {
		view := adminOrderView{Order: o}
		if o.User != nil {
			view.FirstName = &o.User.FirstName
			view.LastName = &o.User.LastName
			view.Email = &o.User.Email
		}
		views = append(views, view)
	}

	httpresp.OK(c, views)
}

type OrderStatusUpdate struct {
	Status string `json:"status" binding:"required"`
}

func (h *AdminOrderHandler) UpdateStatus(c *gin.Context) {
	id := c.Param("id")

	var req OrderStatusUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, err)
		return
	}

	if !models.IsValidOrderStatus(req.Status) {
		httperr.BadRequest(c, "invalid_status", "Statut invalide")
		return
	}

	res := h.db.Model(&models.Order{}).
		Where("id = ?", id).
		Update("status", req.Status)
	if res.Error != nil {
		httperr.InternalErr(c, "failed_to_update_order", "Erreur serveur", res.Error)
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "order_not_found", "Commande non trouvée")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID: optionalUserID(c),
		Action: "order_status_" + req.Status,
		Entity: "order",
	})

	httpresp.Message(c, "Statut de la commande modifié avec succès")
}
