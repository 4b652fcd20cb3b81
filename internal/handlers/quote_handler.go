package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/decorabur/decora-api/internal/config"
	"github.com/decorabur/decora-api/internal/httperr"
	"github.com/decorabur/decora-api/internal/httpresp"
	"github.com/decorabur/decora-api/internal/mailer"
	"github.com/decorabur/decora-api/internal/middleware"
	"github.com/decorabur/decora-api/internal/models"
)

type QuoteHandler struct {
	db     *gorm.DB
	config *config.Config
	mailer *mailer.Mailer
}

func NewQuoteHandler(db *gorm.DB, cfg *config.Config, m *mailer.Mailer) *QuoteHandler {
	return &QuoteHandler{db: db, config: cfg, mailer: m}
}

// --------- Requests ---------

type QuoteRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
}

type RequestStatusUpdate struct {
	Status string `json:"status" binding:"required"`
}

// --------- Handlers ---------

// Create is public. A valid bearer token binds the quote to the account, but
// anonymous submissions are the normal case.
func (h *QuoteHandler) Create(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, err)
		return
	}

	quote := models.Quote{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
		Status:  models.RequestStatusNew,
	}

	if userID, _, _, ok := middleware.ParseBearerToken(c, h.config); ok {
		quote.UserID = &userID
	}

	if err := h.db.Create(&quote).Error; err != nil {
		httperr.InternalErr(c, "failed_to_create_quote", "Erreur serveur", err)
		return
	}

	go h.mailer.NotifyQuote(quote)

	httpresp.Created(c, gin.H{
		"message": "Demande de devis envoyée avec succès",
		"id":      quote.ID,
	})
}

func (h *QuoteHandler) List(c *gin.Context) {
	var quotes []models.Quote
	if err := h.db.Order("created_at DESC").Find(&quotes).Error; err != nil {
		httperr.InternalErr(c, "failed_to_list_quotes", "Erreur serveur", err)
		return
	}
	httpresp.OK(c, quotes)
}

func (h *QuoteHandler) UpdateStatus(c *gin.Context) {
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

	res := h.db.Model(&models.Quote{}).
		Where("id = ?", id).
		Update("status", req.Status)
	if res.Error != nil {
		httperr.InternalErr(c, "failed_to_update_quote", "Erreur serveur", res.Error)
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "quote_not_found", "Demande de devis non trouvée")
		return
	}

	httpresp.Message(c, "Statut mis à jour avec succès")
}
