package session

import (
	"context"

	"github.com/harentsoaR/nail-salon-api/internal/models"
)

// Identity is the authenticated caller as established by a verified token
// or an operator sign-in. Handlers only read it.
type Identity struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

func (i Identity) Empty() bool {
	return i.UserID == ""
}

func (i Identity) IsAdmin() bool {
	return i.Role == models.RoleAdmin
}

type ctxKey struct{}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the identity stored by WithIdentity.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	if !ok || id.Empty() {
		return Identity{}, false
	}
	return id, true
}
