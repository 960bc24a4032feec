package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/harentsoaR/nail-salon-api/internal/models"
	"github.com/harentsoaR/nail-salon-api/internal/validation"
)

func (h *Handler) SubmitContact(c *gin.Context) {
	var req validation.ContactInput
	if !bindJSON(c, &req) {
		return
	}

	msg := &models.ContactMessage{
		Name:    strings.TrimSpace(req.Name),
		Email:   req.Email,
		Phone:   req.Phone,
		Message: strings.TrimSpace(req.Message),
	}
	if err := h.catalog.SaveContactMessage(c.Request.Context(), msg); err != nil {
		h.logger.Error("save contact message", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		return
	}

	h.notifier.ForwardContactMessage(msg)
	c.JSON(http.StatusCreated, gin.H{"message": "Message received", "id": msg.ID})
}
