package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"delit-api/internal/apperror"
	"delit-api/internal/models"

	"gorm.io/gorm"
)

type TokenRepository struct {
	db *gorm.DB
}

func NewTokenRepo(db *gorm.DB) *TokenRepository {
	return &TokenRepository{db: db}
}

// SaveRefreshToken stores a new, unrevoked refresh token record
func (r *TokenRepository) SaveRefreshToken(ctx context.Context, token *models.RefreshToken) error {
	if token.ID == "" {
		token.ID = models.NewObjectID()
	}
	token.Revoked = false
	if err := r.db.WithContext(ctx).Create(token).Error; err != nil {
		return fmt.Errorf("save refresh token: %w", err)
	}
	return nil
}

// FindRefreshTokenByHash finds a refresh token record by its hash, revoked or not
func (r *TokenRepository) FindRefreshTokenByHash(ctx context.Context, hash string) (*models.RefreshToken, error) {
	var token models.RefreshToken
	err := r.db.WithContext(ctx).Where("token_hash = ?", hash).First(&token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("token not found")
		}
		return nil, fmt.Errorf("find refresh token: %w", err)
	}
	return &token, nil
}

// IsRevoked reports the revocation flag of a stored token
func (r *TokenRepository) IsRevoked(ctx context.Context, hash string) (bool, error) {
	token, err := r.FindRefreshTokenByHash(ctx, hash)
	if err != nil {
		return false, err
	}
	return token.Revoked, nil
}

// Revoke flips the revocation flag in a single conditional write. When no
// row changed the token is either unknown or already revoked; only the
// former is an error.
func (r *TokenRepository) Revoke(ctx context.Context, hash string) error {
	result := r.db.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("token_hash = ? AND revoked = ?", hash, false).
		Update("revoked", true)
	if result.Error != nil {
		return fmt.Errorf("revoke refresh token: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("token_hash = ?", hash).
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}
	if count == 0 {
		return apperror.NotFound("token not found")
	}
	return nil
}

// RevokeAllForUser revokes every outstanding refresh token of a user
func (r *TokenRepository) RevokeAllForUser(ctx context.Context, username string) error {
	err := r.db.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("username = ? AND revoked = ?", username, false).
		Update("revoked", true).Error
	if err != nil {
		return fmt.Errorf("revoke user tokens: %w", err)
	}
	return nil
}

// RevokeExpired marks every unrevoked token that expired before now as
// revoked and returns how many were flipped
func (r *TokenRepository) RevokeExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("revoked = ? AND expires_at < ?", false, now).
		Update("revoked", true)
	if result.Error != nil {
		return 0, fmt.Errorf("revoke expired tokens: %w", result.Error)
	}
	return result.RowsAffected, nil
}
