package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/harentsoaR/nail-salon-api/internal/models"
	"github.com/harentsoaR/nail-salon-api/internal/session"
	"github.com/harentsoaR/nail-salon-api/internal/store"
	"github.com/harentsoaR/nail-salon-api/internal/validation"
)

func identityOf(p *models.Profile) session.Identity {
	return session.Identity{UserID: p.ID, Email: p.Email, Role: p.Role()}
}

func (h *Handler) RegisterUser(c *gin.Context) {
	var req validation.RegisterInput
	if !bindJSON(c, &req) {
		return
	}

	hashedPassword, err := h.passwords.Hash(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	profile := &models.Profile{
		Email:        req.Email,
		FullName:     req.FullName,
		Phone:        req.Phone,
		PasswordHash: hashedPassword,
	}
	if err := h.directory.CreateProfile(c.Request.Context(), profile); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": "An account with this email already exists"})
			return
		}
		h.logger.Error("create profile", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	token, err := h.tokens.GenerateJWT(identityOf(profile))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate token"})
		return
	}
	h.logger.Info("profile registered", zap.String("user_id", profile.ID))
	c.JSON(http.StatusCreated, gin.H{"token": token, "user": profile})
}

func (h *Handler) Login(c *gin.Context) {
	var req validation.LoginInput
	if !bindJSON(c, &req) {
		return
	}

	profile, err := h.directory.ProfileByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		h.logger.Error("profile lookup", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up user"})
		return
	}

	if !h.passwords.Check(req.Password, profile.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := h.tokens.GenerateJWT(identityOf(profile))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": profile})
}

// GetCurrentUser returns the profile of the authenticated caller.
func (h *Handler) GetCurrentUser(c *gin.Context) {
	id, ok := caller(c)
	if !ok {
		return
	}
	bookings, err := h.bookings(id)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	profile, err := bookings.Profile(c.Request.Context())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile"})
		return
	}
	c.JSON(http.StatusOK, profile)
}
