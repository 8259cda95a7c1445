package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	domain "github.com/BruksfildServices01/appointease/internal/domain/appointment"
	"github.com/BruksfildServices01/appointease/internal/dto"
	"github.com/BruksfildServices01/appointease/internal/httperr"
	"github.com/BruksfildServices01/appointease/internal/httpresp"
	"github.com/BruksfildServices01/appointease/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/appointease/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	availability    *ucAppointment.GetAvailability
	submit          *ucAppointment.SubmitBooking
	decide          *ucAppointment.DecideAppointment
	list            *ucAppointment.ListAppointments
	requestResched  *ucAppointment.RequestReschedule
	adminReschedule *ucAppointment.AdminReschedule
	log             zerolog.Logger
}

func NewAppointmentHandler(
	availability *ucAppointment.GetAvailability,
	submit *ucAppointment.SubmitBooking,
	decide *ucAppointment.DecideAppointment,
	list *ucAppointment.ListAppointments,
	requestResched *ucAppointment.RequestReschedule,
	adminReschedule *ucAppointment.AdminReschedule,
	log zerolog.Logger,
) *AppointmentHandler {
	return &AppointmentHandler{
		availability:    availability,
		submit:          submit,
		decide:          decide,
		list:            list,
		requestResched:  requestResched,
		adminReschedule: adminReschedule,
		log:             log,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"appointment_date"`
	StartTime   string `json:"start_time"`
	ModeRequest
}

type RescheduleRequestBody struct {
	Date      string `json:"requested_date"`
	StartTime string `json:"requested_start_time"`
	EndTime   string `json:"requested_end_time"`
	Reason    string `json:"reason"`
}

type AdminRescheduleRequest struct {
	Date      string       `json:"appointment_date"`
	StartTime string       `json:"start_time"`
	EndTime   string       `json:"end_time"`
	Mode      *ModeRequest `json:"mode_override"`
}

func (m *ModeRequest) details() *domain.ModeDetails {
	if m == nil || m.Mode == "" {
		return nil
	}
	return &domain.ModeDetails{Mode: domain.Mode(m.Mode), URL: m.URL, Password: m.Password}
}

// ======================================================
// USER
// ======================================================

func (h *AppointmentHandler) Availability(c *gin.Context) {
	slots, err := h.availability.Execute(c.Request.Context(), c.Query("date"))
	if err != nil {
		httperr.FromError(c, h.log, err, "availability_failed")
		return
	}
	httpresp.List(c, slots)
}

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.submit.Execute(c.Request.Context(), ucAppointment.SubmitBookingInput{
		UserID:      middleware.UserID(c),
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		StartTime:   req.StartTime,
		Mode:        req.Mode,
		URL:         req.URL,
		Password:    req.Password,
	})
	if err != nil {
		httperr.FromError(c, h.log, err, "appointment_create_failed")
		return
	}
	httpresp.Created(c, ap)
}

func (h *AppointmentHandler) ListMine(c *gin.Context) {
	aps, err := h.list.Execute(c.Request.Context(), domain.ListFilter{
		UserID: middleware.UserID(c),
		Status: domain.Status(c.Query("status")),
	})
	if err != nil {
		httperr.FromError(c, h.log, err, "appointment_list_failed")
		return
	}
	httpresp.List(c, aps)
}

func (h *AppointmentHandler) RequestReschedule(c *gin.Context) {
	var req RescheduleRequestBody
	if !bindJSON(c, &req) {
		return
	}

	rr, err := h.requestResched.Execute(c.Request.Context(), middleware.UserID(c), c.Param("id"), domain.RescheduleProposal{
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Reason:    req.Reason,
	})
	if err != nil {
		httperr.FromError(c, h.log, err, "reschedule_request_failed")
		return
	}
	httpresp.Created(c, rr)
}

// ======================================================
// ADMIN
// ======================================================

func (h *AppointmentHandler) AdminList(c *gin.Context) {
	aps, err := h.list.Execute(c.Request.Context(), domain.ListFilter{
		Date:   c.Query("date"),
		UserID: c.Query("user_id"),
		Status: domain.Status(c.Query("status")),
	})
	if err != nil {
		httperr.FromError(c, h.log, err, "appointment_list_failed")
		return
	}
	httpresp.List(c, dto.FromAppointments(aps))
}

func (h *AppointmentHandler) Approve(c *gin.Context) {
	h.decideWith(c, domain.DecisionApprove)
}

func (h *AppointmentHandler) Reject(c *gin.Context) {
	h.decideWith(c, domain.DecisionReject)
}

func (h *AppointmentHandler) decideWith(c *gin.Context, d domain.Decision) {
	ap, err := h.decide.Execute(c.Request.Context(), middleware.UserID(c), c.Param("id"), d)
	if err != nil {
		httperr.FromError(c, h.log, err, "appointment_decide_failed")
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) AdminReschedule(c *gin.Context) {
	var req AdminRescheduleRequest
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.adminReschedule.Execute(c.Request.Context(), middleware.UserID(c), c.Param("id"), ucAppointment.AdminRescheduleInput{
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Override:  req.Mode.details(),
	})
	if err != nil {
		httperr.FromError(c, h.log, err, "appointment_reschedule_failed")
		return
	}
	httpresp.OK(c, ap)
}
