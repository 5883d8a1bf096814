package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/HireNest/internal/dtos"
	"github.com/justsurfingit/HireNest/internal/services"
	"go.uber.org/zap"
)

type RecommendationHandler struct {
	Recommendations *services.RecommendationService
	Logger          *zap.Logger
}

func NewRecommendationHandler(r *services.RecommendationService, logger *zap.Logger) *RecommendationHandler {
	return &RecommendationHandler{Recommendations: r, Logger: logger}
}

func (h *RecommendationHandler) Get(c *gin.Context) {
	view, err := h.Recommendations.Get(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondMessage(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Refresh is POST /api/recommendation/:userId/refresh.
func (h *RecommendationHandler) Refresh(c *gin.Context) {
	view, err := h.Recommendations.Refresh(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondMessage(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// MailHandler serves /api/send-email and /api/email.
type MailHandler struct {
	Mail   *services.MailService
	Logger *zap.Logger
}

func NewMailHandler(m *services.MailService, logger *zap.Logger) *MailHandler {
	return &MailHandler{Mail: m, Logger: logger}
}

func (h *MailHandler) Send(c *gin.Context) {
	var req dtos.EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "to and subject are required"})
		return
	}
	if err := h.Mail.SendNotification(c.Request.Context(), req); err != nil {
		respondMessage(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Email sent successfully"})
}

func (h *MailHandler) Contact(c *gin.Context) {
	var req dtos.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Name, email and message are required"})
		return
	}
	if err := h.Mail.SendContact(c.Request.Context(), req); err != nil {
		respondMessage(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Email sent successfully"})
}
