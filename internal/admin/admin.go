package admin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/harentsoaR/nail-salon-api/internal/models"
	"github.com/harentsoaR/nail-salon-api/internal/session"
)

var (
	ErrOperatorRequired = errors.New("operator name and secret are required")
	ErrOperatorDenied   = errors.New("operator credential rejected")
	ErrNotConfigured    = errors.New("OPERATOR_SECRET_HASH is not configured")
	ErrVerifyMismatch   = errors.New("admin flag did not persist")
)

// Store is the elevated store surface the command needs.
type Store interface {
	ProfileByEmail(ctx context.Context, email string) (*models.Profile, error)
	ProfileByID(ctx context.Context, id string) (*models.Profile, error)
	SetAdmin(ctx context.Context, id string, admin bool) error
	RecordAudit(ctx context.Context, e *models.AuditEntry) error
}

// Authenticate checks the operator secret against its bcrypt hash and
// returns the operator identity.
func Authenticate(name, secret, hash string) (session.Identity, error) {
	if hash == "" {
		return session.Identity{}, ErrNotConfigured
	}
	if name == "" || secret == "" {
		return session.Identity{}, ErrOperatorRequired
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) != nil {
		return session.Identity{}, ErrOperatorDenied
	}
	return session.Identity{UserID: "operator:" + name, Role: models.RoleAdmin}, nil
}

type Service struct {
	store  Store
	holder *session.Holder
	logger *zap.Logger
}

func NewService(st Store, holder *session.Holder, logger *zap.Logger) *Service {
	return &Service{store: st, holder: holder, logger: logger}
}

// SetAdmin looks up the profile by email, writes the flag, re-reads it to
// confirm, and records an audit entry whatever the outcome. The operator
// must be signed in on the holder.
func (s *Service) SetAdmin(ctx context.Context, email string, admin bool) (*models.Profile, error) {
	operator, ok := s.holder.Current()
	if !ok {
		return nil, ErrOperatorRequired
	}

	action := "revoke_admin"
	if admin {
		action = "grant_admin"
	}
	entry := &models.AuditEntry{
		Operator:    operator.UserID,
		Action:      action,
		TargetEmail: email,
	}
	log := s.logger.With(zap.String("operator", operator.UserID), zap.String("action", action), zap.String("email", email))

	profile, err := s.apply(ctx, entry, email, admin)
	if err != nil {
		entry.Outcome = models.AuditFailed
		entry.Detail = err.Error()
		log.Error("admin change failed", zap.Error(err))
	} else {
		entry.Outcome = models.AuditSucceeded
		log.Info("admin change applied", zap.String("profile_id", profile.ID), zap.Bool("is_admin", profile.IsAdmin))
	}

	entry.At = time.Now().UTC()
	if auditErr := s.store.RecordAudit(ctx, entry); auditErr != nil {
		log.Error("audit write failed", zap.Error(auditErr))
		if err == nil {
			return profile, fmt.Errorf("change applied but not audited: %w", auditErr)
		}
	}
	return profile, err
}

func (s *Service) apply(ctx context.Context, entry *models.AuditEntry, email string, admin bool) (*models.Profile, error) {
	profile, err := s.store.ProfileByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("lookup: %w", err)
	}
	entry.TargetID = profile.ID

	if err := s.store.SetAdmin(ctx, profile.ID, admin); err != nil {
		return nil, fmt.Errorf("update: %w", err)
	}

	verified, err := s.store.ProfileByID(ctx, profile.ID)
	if err != nil {
		return nil, fmt.Errorf("verify: %w", err)
	}
	if verified.IsAdmin != admin {
		return verified, fmt.Errorf("verify: %w", ErrVerifyMismatch)
	}
	return verified, nil
}
