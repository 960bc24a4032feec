package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/harentsoaR/nail-salon-api/internal/admin"
	"github.com/harentsoaR/nail-salon-api/internal/config"
	"github.com/harentsoaR/nail-salon-api/internal/models"
	"github.com/harentsoaR/nail-salon-api/internal/store"
)

type memProfiles struct {
	profiles map[string]*models.Profile
	audit    []models.AuditEntry
}

func (m *memProfiles) ProfileByEmail(_ context.Context, email string) (*models.Profile, error) {
	for _, p := range m.profiles {
		if p.Email == email {
			cp := *p
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *memProfiles) ProfileByID(_ context.Context, id string) (*models.Profile, error) {
	p, ok := m.profiles[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memProfiles) SetAdmin(_ context.Context, id string, v bool) error {
	m.profiles[id].IsAdmin = v
	return nil
}

func (m *memProfiles) RecordAudit(_ context.Context, e *models.AuditEntry) error {
	m.audit = append(m.audit, *e)
	return nil
}

func fixture(t *testing.T) (*memProfiles, func(string) string, opener) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("operator-secret"), bcrypt.MinCost)
	require.NoError(t, err)

	env := map[string]string{
		"MONGO_ADMIN_URI":          "mongodb://admin@localhost",
		"OPERATOR_SECRET_HASH":     string(hash),
		"SALONCTL_OPERATOR_SECRET": "operator-secret",
	}
	st := &memProfiles{profiles: map[string]*models.Profile{"p1": {ID: "p1", Email: "ana@example.com"}}}
	open := func(context.Context, *config.Config, *zap.Logger) (admin.Store, func(), error) {
		return st, func() {}, nil
	}
	return st, func(k string) string { return env[k] }, open
}

func TestRunGrantAdmin(t *testing.T) {
	st, getenv, open := fixture(t)
	var out, errOut bytes.Buffer

	code := run([]string{"grant-admin", "--operator", "alice", "--email", "ana@example.com"}, getenv, &out, &errOut, open)
	require.Equal(t, exitOK, code, errOut.String())
	assert.Equal(t, "ana@example.com is_admin: true\n", out.String())
	require.Len(t, st.audit, 1)
	assert.Equal(t, "operator:alice", st.audit[0].Operator)
	assert.Equal(t, models.AuditSucceeded, st.audit[0].Outcome)
}

func TestRunRevokeAdmin(t *testing.T) {
	st, getenv, open := fixture(t)
	st.profiles["p1"].IsAdmin = true
	var out, errOut bytes.Buffer

	code := run([]string{"revoke-admin", "--operator", "alice", "--email", "ana@example.com"}, getenv, &out, &errOut, open)
	require.Equal(t, exitOK, code, errOut.String())
	assert.Equal(t, "ana@example.com is_admin: false\n", out.String())
	assert.False(t, st.profiles["p1"].IsAdmin)
	require.Len(t, st.audit, 1)
	assert.Equal(t, "revoke_admin", st.audit[0].Action)
}

func TestRunUsage(t *testing.T) {
	st, getenv, open := fixture(t)
	for _, args := range [][]string{
		nil,
		{"promote"},
		{"grant-admin"},
		{"grant-admin", "--operator", "alice"},
		{"grant-admin", "--email", "ana@example.com"},
		{"grant-admin", "--bogus"},
		{"grant-admin", "--operator", "alice", "--email", "ana@example.com", "extra"},
	} {
		var out, errOut bytes.Buffer
		assert.Equal(t, exitUsage, run(args, getenv, &out, &errOut, open), args)
		assert.Empty(t, st.audit, args)
	}
}

func TestRunFailures(t *testing.T) {
	t.Run("wrong operator secret", func(t *testing.T) {
		st, getenv, open := fixture(t)
		bad := func(k string) string {
			if k == "SALONCTL_OPERATOR_SECRET" {
				return "guess"
			}
			return getenv(k)
		}
		var out, errOut bytes.Buffer
		code := run([]string{"grant-admin", "--operator", "mallory", "--email", "ana@example.com"}, bad, &out, &errOut, open)
		assert.Equal(t, exitFail, code)
		assert.False(t, st.profiles["p1"].IsAdmin)
		require.Len(t, st.audit, 1)
		assert.Equal(t, "authenticate", st.audit[0].Action)
		assert.Equal(t, models.AuditFailed, st.audit[0].Outcome)
	})

	t.Run("unknown email", func(t *testing.T) {
		st, getenv, open := fixture(t)
		var out, errOut bytes.Buffer
		code := run([]string{"grant-admin", "--operator", "alice", "--email", "nobody@example.com"}, getenv, &out, &errOut, open)
		assert.Equal(t, exitFail, code)
		assert.Contains(t, errOut.String(), "lookup")
		require.Len(t, st.audit, 1)
		assert.Equal(t, models.AuditFailed, st.audit[0].Outcome)
	})

	t.Run("store unreachable", func(t *testing.T) {
		_, getenv, _ := fixture(t)
		open := func(context.Context, *config.Config, *zap.Logger) (admin.Store, func(), error) {
			return nil, nil, errors.New("no reachable servers")
		}
		var out, errOut bytes.Buffer
		assert.Equal(t, exitFail, run([]string{"revoke-admin", "--operator", "alice", "--email", "ana@example.com"}, getenv, &out, &errOut, open))
	})
}
