package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/harentsoaR/nail-salon-api/internal/services"
	"github.com/harentsoaR/nail-salon-api/internal/session"
	"github.com/harentsoaR/nail-salon-api/internal/validation"
)

// EmailDiagnostics sends a test message through the email provider.
// Admin only; provider internals beyond the rejection message are not
// returned.
func (h *Handler) EmailDiagnostics(c *gin.Context) {
	var req validation.EmailDiagnosticsInput
	if !bindJSON(c, &req) {
		return
	}
	if h.mailer == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "error": "Email provider not configured"})
		return
	}

	operator, _ := session.FromContext(c.Request.Context())
	h.logger.Info("email diagnostics requested",
		zap.String("user_id", operator.UserID),
		zap.String("to", req.Email),
		zap.String("from", req.FromAddress))

	id, err := h.mailer.Send(c.Request.Context(), services.Email{
		From:    req.FromAddress,
		To:      []string{req.Email},
		Subject: req.Subject,
		HTML:    req.HTML,
	})
	if err != nil {
		var pe *services.ProviderError
		if errors.As(err, &pe) {
			h.logger.Warn("email provider rejected diagnostics send", zap.Int("status", pe.StatusCode), zap.String("name", pe.Name))
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": pe.Message})
			return
		}
		h.logger.Error("email diagnostics send", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to send email"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Email sent successfully",
		"id":      id,
		"details": gin.H{
			"to":      req.Email,
			"from":    req.FromAddress,
			"subject": req.Subject,
		},
	})
}
