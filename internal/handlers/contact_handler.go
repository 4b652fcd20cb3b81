package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/decorabur/decora-api/internal/httperr"
	"github.com/decorabur/decora-api/internal/httpresp"
	"github.com/decorabur/decora-api/internal/mailer"
	"github.com/decorabur/decora-api/internal/models"
)

type ContactHandler struct {
	db     *gorm.DB
	mailer *mailer.Mailer
}

func NewContactHandler(db *gorm.DB, m *mailer.Mailer) *ContactHandler {
	return &ContactHandler{db: db, mailer: m}
}

func (h *ContactHandler) Create(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, err)
		return
	}

	request := models.ContactRequest{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
		Status:  models.RequestStatusNew,
	}

	if err := h.db.Create(&request).Error; err != nil {
		httperr.InternalErr(c, "failed_to_create_contact_request", "Erreur serveur", err)
		return
	}

	go h.mailer.NotifyContact(request)

	httpresp.Created(c, gin.H{
		"message": "Demande de contact envoyée avec succès",
		"id":      request.ID,
	})
}

func (h *ContactHandler) List(c *gin.Context) {
	var requests []models.ContactRequest
	if err := h.db.Order("created_at DESC").Find(&requests).Error; err != nil {
		httperr.InternalErr(c, "failed_to_list_contact_requests", "Erreur serveur", err)
		return
	}
	httpresp.OK(c, requests)
}

func (h *ContactHandler) UpdateStatus(c *gin.Context) {
	id := c.Param("id")

	var req RequestStatusUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, err)
		return
	}

	if !models.IsValidRequestStatus(req.Status) {
		httperr.BadRequest(c, "invalid_status", "Statut invalide")
		return
	}

	res := h.db.Model(&models.ContactRequest{}).
		Where("id = ?", id).
		Update("status", req.Status)
	if res.Error != nil {
		httperr.InternalErr(c, "failed_to_update_contact_request", "Erreur serveur", res.Error)
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "contact_request_not_found", "Demande de contact non trouvée")
		return
	}

	httpresp.Message(c, "Statut mis à jour avec succès")
}
