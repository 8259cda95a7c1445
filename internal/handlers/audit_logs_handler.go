package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/appointease/internal/audit"
	"github.com/BruksfildServices01/appointease/internal/domain/appointment"
	"github.com/BruksfildServices01/appointease/internal/httperr"
	"github.com/BruksfildServices01/appointease/internal/httpresp"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	logs *audit.Logger
	log  zerolog.Logger
}

func NewAuditLogsHandler(logs *audit.Logger, log zerolog.Logger) *AuditLogsHandler {
	return &AuditLogsHandler{logs: logs, log: log}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	f := audit.Filter{
		Action: c.Query("action"),
		Entity: c.Query("entity"),
		Page:   page,
		Limit:  limit,
	}.Normalize()

	if v := c.Query("from"); v != "" {
		if from, err := time.Parse(appointment.DateLayout, v); err == nil {
			f.From = &from
		}
	}
	if v := c.Query("to"); v != "" {
		if to, err := time.Parse(appointment.DateLayout, v); err == nil {
			f.To = &to
		}
	}

	logs, total, err := h.logs.List(c.Request.Context(), f)
	if err != nil {
		httperr.FromError(c, h.log, err, "audit_list_failed")
		return
	}

	httpresp.Page(c, logs, f.Page, f.Limit, total)
}
