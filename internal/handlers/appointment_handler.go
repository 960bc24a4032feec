package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/harentsoaR/nail-salon-api/internal/models"
	"github.com/harentsoaR/nail-salon-api/internal/store"
	"github.com/harentsoaR/nail-salon-api/internal/validation"
)

// --- CREATE APPOINTMENT ---
func (h *Handler) CreateAppointment(c *gin.Context) {
	id, ok := caller(c)
	if !ok {
		return
	}

	var req validation.AppointmentInput
	if !bindJSON(c, &req) {
		return
	}
	scheduledAt, err := req.ScheduledAt()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if scheduledAt.Before(h.now()) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot book an appointment in the past"})
		return
	}

	ctx := c.Request.Context()
	svc, err := h.catalog.ServiceByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Service not found"})
			return
		}
		h.logger.Error("service lookup", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up service"})
		return
	}

	bookings, err := h.bookings(id)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	d := req.Date
	apt := &models.Appointment{
		ServiceID:   svc.ID,
		Date:        time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC),
		Time:        strings.TrimSpace(req.Time),
		ScheduledAt: scheduledAt,
		Notes:       strings.TrimSpace(req.Notes),
		Deposit:     req.Deposit != nil && *req.Deposit,
	}
	if err := bookings.CreateAppointment(ctx, apt); err != nil {
		h.logger.Error("create appointment", zap.String("user_id", id.UserID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create appointment"})
		return
	}

	h.notifier.SendAppointmentConfirmation(id.Email, apt, svc)

	c.JSON(http.StatusCreated, gin.H{"appointment": apt})
}

// --- GET APPOINTMENTS FOR THE CALLER ---
func (h *Handler) GetAppointments(c *gin.Context) {
	id, ok := caller(c)
	if !ok {
		return
	}
	bookings, err := h.bookings(id)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	list, err := bookings.ListAppointments(c.Request.Context())
	if err != nil {
		h.logger.Error("list appointments", zap.String("user_id", id.UserID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve appointments"})
		return
	}
	c.JSON(http.StatusOK, list)
}

// GetAppointment returns one appointment joined with its service and the
// service's category. The lookup runs with elevated privileges, so
// ownership is checked here; other users' appointments read as missing.
func (h *Handler) GetAppointment(c *gin.Context) {
	appointmentID := strings.TrimSpace(c.Param("id"))
	if appointmentID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Appointment ID is required"})
		return
	}
	id, ok := caller(c)
	if !ok {
		return
	}

	detail, err := h.directory.AppointmentDetail(c.Request.Context(), appointmentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Appointment not found"})
			return
		}
		h.logger.Error("appointment lookup", zap.String("appointment_id", appointmentID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if detail.UserID != id.UserID {
		admin, err := h.storedAdmin(c.Request.Context(), id.UserID)
		if err != nil {
			h.logger.Error("admin check", zap.String("user_id", id.UserID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if !admin {
			c.JSON(http.StatusNotFound, gin.H{"error": "Appointment not found"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"appointment": detail})
}
