package handlers

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLister interface {
	List(ctx context.Context, f audit.ListFilter) ([]models.AuditLog, error)
}

type AuditLogsHandler struct {
	logs AuditLister
}

func NewAuditLogsHandler(logs AuditLister) *AuditLogsHandler {
	return &AuditLogsHandler{logs: logs}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	id, ok := currentIdentity(c)
	if !ok {
		return
	}
	if !auth.Authorize(id, auth.ActionAudit, auth.Target{}) {
		httperr.Forbidden(c, "unauthorized", "not allowed to read the audit trail")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	logs, err := h.logs.List(c.Request.Context(), audit.ListFilter{
		Action: c.Query("action"),
		Actor:  c.Query("actor"),
		Limit:  limit,
	})
	if err != nil {
		_ = c.Error(err)
		httperr.Unavailable(c, "storage", "storage temporarily unavailable")
		return
	}
	if logs == nil {
		logs = []models.AuditLog{}
	}

	c.JSON(200, gin.H{
		"limit": limit,
		"total": len(logs),
		"logs":  logs,
	})
}
