package handlers

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	domain "github.com/BruksfildServices01/appointease/internal/domain/appointment"
	"github.com/BruksfildServices01/appointease/internal/dto"
	"github.com/BruksfildServices01/appointease/internal/httperr"
	"github.com/BruksfildServices01/appointease/internal/httpresp"
	"github.com/BruksfildServices01/appointease/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/appointease/internal/usecase/appointment"
)

type RescheduleHandler struct {
	list    *ucAppointment.ListRescheduleRequests
	resolve *ucAppointment.ResolveReschedule
	log     zerolog.Logger
}

func NewRescheduleHandler(
	list *ucAppointment.ListRescheduleRequests,
	resolve *ucAppointment.ResolveReschedule,
	log zerolog.Logger,
) *RescheduleHandler {
	return &RescheduleHandler{list: list, resolve: resolve, log: log}
}

// ResolveRequest optionally overrides the appointment's mode on approval.
type ResolveRequest struct {
	Mode *ModeRequest `json:"mode_override"`
}

func (h *RescheduleHandler) List(c *gin.Context) {
	reqs, err := h.list.Execute(c.Request.Context(), domain.RequestStatus(c.Query("status")))
	if err != nil {
		httperr.FromError(c, h.log, err, "reschedule_list_failed")
		return
	}
	httpresp.List(c, dto.FromRescheduleRequests(reqs))
}

func (h *RescheduleHandler) Approve(c *gin.Context) {
	var req ResolveRequest
	// the body is optional
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}
	h.resolveWith(c, domain.DecisionApprove, req.Mode.details())
}

func (h *RescheduleHandler) Reject(c *gin.Context) {
	h.resolveWith(c, domain.DecisionReject, nil)
}

func (h *RescheduleHandler) resolveWith(c *gin.Context, d domain.Decision, override *domain.ModeDetails) {
	res, err := h.resolve.Execute(c.Request.Context(), middleware.UserID(c), c.Param("id"), d, override)
	if err != nil {
		httperr.FromError(c, h.log, err, "reschedule_resolve_failed")
		return
	}
	httpresp.OK(c, res)
}
