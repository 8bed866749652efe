package handler

import (
	"strconv"

	"delit-api/internal/apperror"
	"delit-api/internal/models"
	"delit-api/internal/service"
	"delit-api/pkg/utils"

	"github.com/gin-gonic/gin"
)

type AuditHandler struct {
	auditService *service.AuditService
}

func NewAuditHandler(auditService *service.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// List serves GET /audit?actor=&action=&limit=
func (h *AuditHandler) List(c *gin.Context) {
	filter := models.AuditFilter{
		Actor:  c.Query("actor"),
		Action: c.Query("action"),
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			utils.HandleError(c, apperror.Validation("limit must be a number"))
			return
		}
		filter.Limit = limit
	}

	entries, err := h.auditService.Recent(c.Request.Context(), filter)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, entries)
}
