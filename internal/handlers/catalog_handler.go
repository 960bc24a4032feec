package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ListServices supports ?category=<id>.
func (h *Handler) ListServices(c *gin.Context) {
	list, err := h.catalog.ListServices(c.Request.Context(), c.Query("category"))
	if err != nil {
		h.logger.Error("list services", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve services"})
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) ListCategories(c *gin.Context) {
	list, err := h.catalog.ListCategories(c.Request.Context())
	if err != nil {
		h.logger.Error("list categories", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve service categories"})
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) GetPublicConfig(c *gin.Context) {
	c.JSON(http.StatusOK, h.public)
}
