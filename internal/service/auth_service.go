package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"delit-api/internal/apperror"
	"delit-api/internal/models"
	"delit-api/internal/repository"
	"delit-api/internal/token"
)

type AuthService struct {
	users  *UserService
	tokens repository.RefreshTokenStore
	issuer *token.Issuer
	audit  repository.AuditStore
}

func NewAuthService(
	users *UserService,
	tokens repository.RefreshTokenStore,
	issuer *token.Issuer,
	audit repository.AuditStore,
) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		issuer: issuer,
		audit:  audit,
	}
}

// LoginResponse represents the response structure for login
type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// RefreshResponse carries the access token minted from a refresh token
type RefreshResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login authenticates a user and returns a fresh token pair. The refresh
// token is recorded so it can later be revoked.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, apperror.Validation("please enter a username")
	}
	if password == "" {
		return nil, apperror.Validation("please enter a password")
	}

	user, err := s.users.Authenticate(ctx, username, password)
	if err != nil {
		if apperror.Is(err, apperror.KindNotFound) || apperror.Is(err, apperror.KindUnauthorized) {
			return nil, apperror.Unauthorized("invalid credentials")
		}
		return nil, err
	}

	accessToken, err := s.issuer.IssueAccessToken(user.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, expiresAt, err := s.issuer.IssueRefreshToken(user.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	record := &models.RefreshToken{
		Username:  user.Username,
		TokenHash: token.HashToken(refreshToken),
		ExpiresAt: expiresAt,
	}
	if err := s.tokens.SaveRefreshToken(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	_ = s.audit.CreateAuditLog(ctx, user.Username, "user_login", fmt.Sprintf("User %s logged in", user.Username))

	return &LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
	}, nil
}

// Refresh mints a new access token for a valid, unrevoked refresh token.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*RefreshResponse, error) {
	if refreshToken == "" {
		return nil, apperror.Validation("refresh token is required")
	}

	claims, err := s.issuer.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, apperror.Unauthorized("invalid or expired refresh token").Wrap(err)
	}

	revoked, err := s.tokens.IsRevoked(ctx, token.HashToken(refreshToken))
	if err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return nil, apperror.Unauthorized("invalid or expired refresh token").Wrap(err)
		}
		return nil, err
	}
	if revoked {
		return nil, apperror.Unauthorized("refresh token has been revoked")
	}

	accessToken, err := s.issuer.IssueAccessToken(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	return &RefreshResponse{AccessToken: accessToken, TokenType: "bearer"}, nil
}

// Logout revokes a refresh token. Revoking an already revoked token
// succeeds.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return apperror.Validation("refresh token is required")
	}

	claims, err := s.issuer.VerifyRefreshToken(refreshToken)
	if err != nil && !errors.Is(err, token.ErrExpired) {
		return apperror.Unauthorized("invalid refresh token").Wrap(err)
	}

	if err := s.tokens.Revoke(ctx, token.HashToken(refreshToken)); err != nil {
		return err
	}

	actor := ""
	if claims != nil {
		actor = claims.Subject
	}
	_ = s.audit.CreateAuditLog(ctx, actor, "user_logout", "Refresh token revoked")
	return nil
}
