package service

import (
	"context"
	"testing"
	"time"

	"delit-api/internal/repository/memory"
	"delit-api/internal/token"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type authFixture struct {
	users  *UserService
	auth   *AuthService
	tokens *memory.TokenStore
	audit  *memory.AuditStore
	now    time.Time
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	f := &authFixture{
		tokens: memory.NewTokenStore(),
		audit:  &memory.AuditStore{},
		now:    time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	issuer := token.NewIssuer("access-secret", "refresh-secret", 30*time.Minute, 7*24*time.Hour,
		token.WithClock(func() time.Time { return f.now }))
	f.users = NewUserService(memory.NewUserStore(), f.tokens, f.audit, zap.NewNop())
	f.auth = NewAuthService(f.users, f.tokens, issuer, f.audit)
	return f
}

func (f *authFixture) createUser(t *testing.T, username, password string) {
	t.Helper()
	_, err := f.users.CreateUser(context.Background(), username, password)
	require.NoError(t, err)
}
