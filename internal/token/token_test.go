package token_test

import (
	"context"
	"testing"
	"time"

	"delit-api/internal/token"

	"github.com/stretchr/testify/require"
)

func newTestIssuer(now *time.Time) *token.Issuer {
	return token.NewIssuer("access-secret", "refresh-secret", 30*time.Minute, 7*24*time.Hour,
		token.WithClock(func() time.Time { return *now }))
}

func TestAccessTokenRoundTrip(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	issuer := newTestIssuer(&now)

	signed, err := issuer.IssueAccessToken("alice")
	require.NoError(t, err)

	claims, err := issuer.VerifyAccessToken(signed)
	require.NoError(t, err)
	require.Equal(t, "alice", claims.Subject)
	require.Equal(t, token.TypeAccess, claims.Type)
	require.True(t, now.Add(30*time.Minute).Equal(claims.ExpiresAt.Time))
}

func TestAccessTokenExpires(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	issuer := newTestIssuer(&now)

	signed, err := issuer.IssueAccessToken("alice")
	require.NoError(t, err)

	now = now.Add(31 * time.Minute)
	_, err = issuer.VerifyAccessToken(signed)
	require.ErrorIs(t, err, token.ErrExpired)
}

func TestRefreshTokenLifetime(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	issuer := newTestIssuer(&now)

	signed, expiresAt, err := issuer.IssueRefreshToken("alice")
	require.NoError(t, err)
	require.True(t, now.Add(7*24*time.Hour).Equal(expiresAt))

	now = now.Add(6 * 24 * time.Hour)
	claims, err := issuer.VerifyRefreshToken(signed)
	require.NoError(t, err)
	require.Equal(t, "alice", claims.Subject)

	now = now.Add(2 * 24 * time.Hour)
	_, err = issuer.VerifyRefreshToken(signed)
	require.ErrorIs(t, err, token.ErrExpired)
}

func TestTokenTypesAreNotInterchangeable(t *testing.T) {
	now := time.Now()
	issuer := newTestIssuer(&now)

	access, err := issuer.IssueAccessToken("alice")
	require.NoError(t, err)
	refresh, _, err := issuer.IssueRefreshToken("alice")
	require.NoError(t, err)

	_, err = issuer.VerifyRefreshToken(access)
	require.ErrorIs(t, err, token.ErrInvalid)
	_, err = issuer.VerifyAccessToken(refresh)
	require.ErrorIs(t, err, token.ErrInvalid)
}

func TestVerifyRejectsTamperedAndMalformed(t *testing.T) {
	now := time.Now()
	issuer := newTestIssuer(&now)
	other := token.NewIssuer("other-secret", "other-refresh", time.Minute, time.Hour)

	foreign, err := other.IssueAccessToken("alice")
	require.NoError(t, err)

	_, err = issuer.VerifyAccessToken(foreign)
	require.ErrorIs(t, err, token.ErrInvalid)

	_, err = issuer.VerifyAccessToken("not-a-jwt")
	require.ErrorIs(t, err, token.ErrInvalid)
}

func TestRefreshTokensAreUnique(t *testing.T) {
	now := time.Now()
	issuer := newTestIssuer(&now)

	first, _, err := issuer.IssueRefreshToken("alice")
	require.NoError(t, err)
	second, _, err := issuer.IssueRefreshToken("alice")
	require.NoError(t, err)

	require.NotEqual(t, first, second)
	require.NotEqual(t, token.HashToken(first), token.HashToken(second))
	require.Len(t, token.HashToken(first), 64)
}

func TestClaimsContext(t *testing.T) {
	ctx := context.Background()
	require.Empty(t, token.SubjectFromContext(ctx))

	ctx = token.WithClaims(ctx, &token.Claims{Type: token.TypeAccess})
	claims, ok := token.ClaimsFromContext(ctx)
	require.True(t, ok)
	require.Equal(t, token.TypeAccess, claims.Type)
}
