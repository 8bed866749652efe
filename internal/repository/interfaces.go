package repository

import (
	"context"
	"time"

	"delit-api/internal/models"
)

// UserStore persists credential records.
type UserStore interface {
	FindUserByUsername(ctx context.Context, username string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, username string) error
	ListUsers(ctx context.Context) ([]models.User, error)
}

// RefreshTokenStore persists refresh-token revocation records keyed by token hash.
type RefreshTokenStore interface {
	SaveRefreshToken(ctx context.Context, token *models.RefreshToken) error
	FindRefreshTokenByHash(ctx context.Context, hash string) (*models.RefreshToken, error)
	IsRevoked(ctx context.Context, hash string) (bool, error)
	Revoke(ctx context.Context, hash string) error
	RevokeAllForUser(ctx context.Context, username string) error
	RevokeExpired(ctx context.Context, now time.Time) (int64, error)
}

type AuditStore interface {
	CreateAuditLog(ctx context.Context, actor, action, details string) error
	ListAuditLogs(ctx context.Context, filter models.AuditFilter) ([]models.AuditLog, error)
}

// DocumentStore is the uniform collection capability shared by every
// content family.
type DocumentStore[T any] interface {
	FindAll(ctx context.Context, order string) ([]T, error)
	FindOne(ctx context.Context, id string) (*T, error)
	FindBy(ctx context.Context, field string, value any) (*T, error)
	Insert(ctx context.Context, doc *T) error
	Update(ctx context.Context, id string, fields map[string]any) (int64, error)
	UpdateBy(ctx context.Context, field string, value any, fields map[string]any) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
}

var (
	_ UserStore                          = (*UserRepository)(nil)
	_ RefreshTokenStore                  = (*TokenRepository)(nil)
	_ AuditStore                         = (*AuditRepository)(nil)
	_ DocumentStore[models.Blog]         = (*Collection[models.Blog])(nil)
	_ DocumentStore[models.HomeBlock]    = (*Collection[models.HomeBlock])(nil)
	_ DocumentStore[models.GalleryImage] = (*Collection[models.GalleryImage])(nil)
	_ DocumentStore[models.Publication]  = (*Collection[models.Publication])(nil)
	_ DocumentStore[models.Banner]       = (*Collection[models.Banner])(nil)
	_ DocumentStore[models.FooterLink]   = (*Collection[models.FooterLink])(nil)
	_ DocumentStore[models.Subscriber]   = (*Collection[models.Subscriber])(nil)
)
