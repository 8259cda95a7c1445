package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/appointease/internal/httperr"
	"github.com/BruksfildServices01/appointease/internal/httpresp"
	"github.com/BruksfildServices01/appointease/internal/middleware"
	ucSettings "github.com/BruksfildServices01/appointease/internal/usecase/settings"
)

type WorkingHoursHandler struct {
	get    *ucSettings.GetWorkingHours
	update *ucSettings.UpdateWorkingHours
	log    zerolog.Logger
}

func NewWorkingHoursHandler(
	get *ucSettings.GetWorkingHours,
	update *ucSettings.UpdateWorkingHours,
	log zerolog.Logger,
) *WorkingHoursHandler {
	return &WorkingHoursHandler{get: get, update: update, log: log}
}

type WorkingHoursRequest struct {
	StartTime      string `json:"start_time"`
	EndTime        string `json:"end_time"`
	BreakStartTime string `json:"break_start_time"`
	BreakEndTime   string `json:"break_end_time"`
	SlotDuration   int    `json:"slot_duration"`
}

func (h *WorkingHoursHandler) Get(c *gin.Context) {
	wh, err := h.get.Execute(c.Request.Context())
	if err != nil {
		httperr.FromError(c, h.log, err, "working_hours_failed")
		return
	}
	httpresp.OK(c, wh)
}

func (h *WorkingHoursHandler) Update(c *gin.Context) {
	var req WorkingHoursRequest
	if !bindJSON(c, &req) {
		return
	}

	wh, err := h.update.Execute(c.Request.Context(), middleware.UserID(c), ucSettings.WorkingHoursInput{
		StartTime:           req.StartTime,
		EndTime:             req.EndTime,
		BreakStartTime:      req.BreakStartTime,
		BreakEndTime:        req.BreakEndTime,
		SlotDurationMinutes: req.SlotDuration,
	})
	if err != nil {
		httperr.FromError(c, h.log, err, "working_hours_update_failed")
		return
	}
	httpresp.OK(c, wh)
}
