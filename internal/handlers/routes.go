package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/nail-salon-api/internal/middleware"
)

// Mount registers every route on r.
func (h *Handler) Mount(r *gin.Engine, limiter *middleware.RateLimiter) {
	r.GET("/health", h.Health)

	authRoutes := r.Group("/auth")
	authRoutes.Use(limiter.Middleware())
	{
		authRoutes.POST("/register", h.RegisterUser)
		authRoutes.POST("/login", h.Login)
	}

	publicRoutes := r.Group("/api")
	{
		publicRoutes.GET("/config/public", h.GetPublicConfig)
		publicRoutes.GET("/services", h.ListServices)
		publicRoutes.GET("/service-categories", h.ListCategories)
		publicRoutes.POST("/contact", limiter.Middleware(), h.SubmitContact)
	}

	apiRoutes := r.Group("/api")
	apiRoutes.Use(middleware.AuthMiddleware(h.tokens))
	{
		apiRoutes.GET("/me", h.GetCurrentUser)
		apiRoutes.GET("/appointments", h.GetAppointments)
		apiRoutes.POST("/appointments", h.CreateAppointment)
		apiRoutes.GET("/appointments/:id", h.GetAppointment)
		apiRoutes.POST("/email-diagnostics", middleware.RequireAdmin(h.directory), limiter.Middleware(), h.EmailDiagnostics)
	}
}
