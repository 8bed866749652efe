package service

import (
	"context"
	"fmt"
	"strings"

	"delit-api/internal/apperror"
	"delit-api/internal/config"
	"delit-api/internal/models"
	"delit-api/internal/repository"
	"delit-api/pkg/utils"

	"go.uber.org/zap"
)

// UserService owns user records and password verification.
type UserService struct {
	users  repository.UserStore
	tokens repository.RefreshTokenStore
	audit  repository.AuditStore
	log    *zap.Logger
}

func NewUserService(
	users repository.UserStore,
	tokens repository.RefreshTokenStore,
	audit repository.AuditStore,
	log *zap.Logger,
) *UserService {
	return &UserService{
		users:  users,
		tokens: tokens,
		audit:  audit,
		log:    log,
	}
}

// CreateUser stores a new user with a bcrypt hash of password.
func (s *UserService) CreateUser(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, apperror.Validation("please enter a username")
	}
	if password == "" {
		return nil, apperror.Validation("please enter a password")
	}

	passwordHash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: passwordHash,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	recordAudit(ctx, s.audit, "user_created", fmt.Sprintf("User %s created", username))
	return user, nil
}

// Authenticate returns the stored user when password matches its hash.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	user, err := s.users.FindUserByUsername(ctx, username)
	if err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			utils.ComparePassword("", password)
		}
		return nil, err
	}
	if !utils.ComparePassword(user.PasswordHash, password) {
		return nil, apperror.Unauthorized("invalid credentials")
	}
	return user, nil
}

// DeleteUser removes the user and revokes every session it still holds.
func (s *UserService) DeleteUser(ctx context.Context, username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return apperror.Validation("please enter a username")
	}
	if err := s.users.DeleteUser(ctx, username); err != nil {
		return err
	}
	if err := s.tokens.RevokeAllForUser(ctx, username); err != nil {
		s.log.Warn("revoke sessions of deleted user", zap.String("username", username), zap.Error(err))
	}

	recordAudit(ctx, s.audit, "user_deleted", fmt.Sprintf("User %s deleted", username))
	return nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.users.ListUsers(ctx)
}

// EnsureAdmin creates the bootstrap user on a fresh database. It is a no-op
// when the credentials are not configured or the user already exists.
func (s *UserService) EnsureAdmin(ctx context.Context, admin config.AdminConfig) error {
	if admin.Username == "" || admin.Password == "" {
		s.log.Info("admin bootstrap skipped: credentials not configured")
		return nil
	}

	_, err := s.users.FindUserByUsername(ctx, admin.Username)
	if err == nil {
		return nil
	}
	if !apperror.Is(err, apperror.KindNotFound) {
		return fmt.Errorf("lookup admin user: %w", err)
	}

	_, err = s.CreateUser(ctx, admin.Username, admin.Password)
	if apperror.Is(err, apperror.KindConflict) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("create admin user: %w", err)
	}
	s.log.Info("admin user created", zap.String("username", admin.Username))
	return nil
}
