package service

import (
	"context"
	"strings"

	"delit-api/internal/models"
	"delit-api/internal/repository"
)

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 500
)

// AuditService exposes the activity trail written by the other services.
type AuditService struct {
	audit repository.AuditStore
}

func NewAuditService(audit repository.AuditStore) *AuditService {
	return &AuditService{audit: audit}
}

// Recent returns the newest entries matching filter. A non-positive limit
// falls back to the default and large limits are capped.
func (s *AuditService) Recent(ctx context.Context, filter models.AuditFilter) ([]models.AuditLog, error) {
	filter.Actor = strings.TrimSpace(filter.Actor)
	filter.Action = strings.TrimSpace(filter.Action)
	switch {
	case filter.Limit <= 0:
		filter.Limit = defaultAuditLimit
	case filter.Limit > maxAuditLimit:
		filter.Limit = maxAuditLimit
	}
	return s.audit.ListAuditLogs(ctx, filter)
}
