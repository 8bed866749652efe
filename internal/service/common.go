package service

import (
	"context"
	"strings"

	"delit-api/internal/apperror"
	"delit-api/internal/models"
	"delit-api/internal/repository"
	"delit-api/internal/token"
)

// placeholder is the value API explorers prefill into string fields.
const placeholder = "string"

const newestFirst = "created_at DESC"

// recordAudit writes an audit entry for the authenticated caller. Failures
// are ignored.
func recordAudit(ctx context.Context, audit repository.AuditStore, action, details string) {
	actor := token.SubjectFromContext(ctx)
	if actor == "" {
		actor = "anonymous"
	}
	_ = audit.CreateAuditLog(ctx, actor, action, details)
}

func validateID(id, what string) error {
	if !models.IsValidObjectID(id) {
		return apperror.Validation("invalid " + what + " id format")
	}
	return nil
}

// mergeFields keeps the fields of a partial update that carry a value:
// nil, blank and placeholder values are dropped.
func mergeFields(fields map[string]*string) map[string]any {
	merged := make(map[string]any, len(fields))
	for column, value := range fields {
		if value == nil {
			continue
		}
		v := strings.TrimSpace(*value)
		if v == "" || v == placeholder {
			continue
		}
		merged[column] = v
	}
	return merged
}

// applyUpdate writes a merged partial update to the document with id.
func applyUpdate[T any](ctx context.Context, store repository.DocumentStore[T], id, what string, fields map[string]any) error {
	if len(fields) == 0 {
		return apperror.Validation("no fields provided for update")
	}
	modified, err := store.Update(ctx, id, fields)
	if err != nil {
		return err
	}
	if modified == 0 {
		return apperror.NotFound(what + " not found or no changes made")
	}
	return nil
}

func required(value, field string) error {
	if v := strings.TrimSpace(value); v == "" || v == placeholder {
		return apperror.Validation(field + " is required")
	}
	return nil
}
