package token

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

var (
	ErrExpired = errors.New("token has expired")
	ErrInvalid = errors.New("invalid token")
)

// Claims represents JWT custom claims. Subject carries the username.
type Claims struct {
	Type string `json:"typ"`
	jwt.RegisteredClaims
}

// Issuer mints and verifies access and refresh tokens. Access and refresh
// tokens are signed with different secrets.
type Issuer struct {
	accessSecret  []byte
	refreshSecret []byte
	accessExpiry  time.Duration
	refreshExpiry time.Duration
	now           func() time.Time
}

type Option func(*Issuer)

// WithClock replaces the wall clock used for issuing and verifying.
func WithClock(now func() time.Time) Option {
	return func(i *Issuer) {
		i.now = now
	}
}

func NewIssuer(accessSecret, refreshSecret string, accessExpiry, refreshExpiry time.Duration, opts ...Option) *Issuer {
	i := &Issuer{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// IssueAccessToken generates a short-lived JWT access token
func (i *Issuer) IssueAccessToken(subject string) (string, error) {
	token, _, err := i.issue(subject, TypeAccess, i.accessSecret, i.accessExpiry)
	return token, err
}

// IssueRefreshToken generates a long-lived JWT refresh token and returns
// its expiry so the caller can persist a revocation record.
func (i *Issuer) IssueRefreshToken(subject string) (string, time.Time, error) {
	return i.issue(subject, TypeRefresh, i.refreshSecret, i.refreshExpiry)
}

// VerifyAccessToken validates and parses a JWT access token
func (i *Issuer) VerifyAccessToken(tokenString string) (*Claims, error) {
	return i.verify(tokenString, TypeAccess, i.accessSecret)
}

// VerifyRefreshToken validates and parses a JWT refresh token
func (i *Issuer) VerifyRefreshToken(tokenString string) (*Claims, error) {
	return i.verify(tokenString, TypeRefresh, i.refreshSecret)
}

// RefreshTokenExpiry returns the refresh token lifetime
func (i *Issuer) RefreshTokenExpiry() time.Duration {
	return i.refreshExpiry
}

func (i *Issuer) issue(subject, typ string, secret []byte, ttl time.Duration) (string, time.Time, error) {
	now := i.now()
	expiresAt := now.Add(ttl)
	claims := Claims{
		Type: typ,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign %s token: %w", typ, err)
	}
	return signed, expiresAt, nil
}

func (i *Issuer) verify(tokenString, typ string, secret []byte) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Type != typ || claims.Subject == "" {
		return nil, ErrInvalid
	}
	return claims, nil
}

// HashToken creates a SHA-256 hash of a token for storage and lookup
func HashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}
