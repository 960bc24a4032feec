package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/harentsoaR/nail-salon-api/internal/auth"
	"github.com/harentsoaR/nail-salon-api/internal/models"
	"github.com/harentsoaR/nail-salon-api/internal/services"
	"github.com/harentsoaR/nail-salon-api/internal/session"
	"github.com/harentsoaR/nail-salon-api/internal/store"
	"github.com/harentsoaR/nail-salon-api/internal/validation"
)

// Catalog is what anonymous callers may read or write.
type Catalog interface {
	ListServices(ctx context.Context, categoryID string) ([]models.ServiceDetail, error)
	ListCategories(ctx context.Context) ([]models.ServiceCategory, error)
	ServiceByID(ctx context.Context, id string) (*models.Service, error)
	SaveContactMessage(ctx context.Context, msg *models.ContactMessage) error
}

// Bookings is scoped to one signed-in identity.
type Bookings interface {
	CreateAppointment(ctx context.Context, apt *models.Appointment) error
	ListAppointments(ctx context.Context) ([]models.AppointmentDetail, error)
	Profile(ctx context.Context) (*models.Profile, error)
}

type BookingsFactory func(id session.Identity) (Bookings, error)

// Directory runs with elevated store privileges. Handlers using it do
// their own ownership checks.
type Directory interface {
	AppointmentDetail(ctx context.Context, id string) (*models.AppointmentDetail, error)
	CreateProfile(ctx context.Context, p *models.Profile) error
	ProfileByEmail(ctx context.Context, email string) (*models.Profile, error)
	ProfileByID(ctx context.Context, id string) (*models.Profile, error)
}

type Notifier interface {
	SendAppointmentConfirmation(to string, apt *models.Appointment, svc *models.Service)
	ForwardContactMessage(msg *models.ContactMessage)
}

// PublicConfig is the only configuration served to browsers.
type PublicConfig struct {
	StripePublishableKey string `json:"stripe_publishable_key"`
}

type Deps struct {
	Catalog   Catalog
	Bookings  BookingsFactory
	Directory Directory
	Notifier  Notifier
	Mailer    services.Sender // nil when no provider key is configured
	Tokens    *auth.TokenIssuer
	Passwords *auth.Passwords
	Public    PublicConfig
	Logger    *zap.Logger
}

type Handler struct {
	catalog   Catalog
	bookings  BookingsFactory
	directory Directory
	notifier  Notifier
	mailer    services.Sender
	tokens    *auth.TokenIssuer
	passwords *auth.Passwords
	public    PublicConfig
	logger    *zap.Logger
	now       func() time.Time
}

func NewHandler(d Deps) *Handler {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		catalog:   d.Catalog,
		bookings:  d.Bookings,
		directory: d.Directory,
		notifier:  d.Notifier,
		mailer:    d.Mailer,
		tokens:    d.Tokens,
		passwords: d.Passwords,
		public:    d.Public,
		logger:    logger,
		now:       time.Now,
	}
}

// bindJSON decodes the body into dst and runs its validation rules,
// writing a 400 and returning false on failure.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return false
	}
	if err := validation.Check(dst); err != nil {
		var fe validation.FieldErrors
		if errors.As(err, &fe) {
			c.JSON(http.StatusBadRequest, gin.H{"error": fe.Error(), "fields": fe})
			return false
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

// caller returns the identity set by AuthMiddleware or writes a 401.
func caller(c *gin.Context) (session.Identity, bool) {
	id, ok := session.FromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
	}
	return id, ok
}

// storedAdmin reports whether the caller's profile currently carries the
// admin flag. Token role claims are not trusted for this.
func (h *Handler) storedAdmin(ctx context.Context, userID string) (bool, error) {
	p, err := h.directory.ProfileByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return p.IsAdmin, nil
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "nail-salon-api"})
}
