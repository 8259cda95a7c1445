package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/appointease/internal/domain/appointment"
	"github.com/BruksfildServices01/appointease/internal/domain/meeting"
	"github.com/BruksfildServices01/appointease/internal/httperr"
	"github.com/BruksfildServices01/appointease/internal/httpresp"
	"github.com/BruksfildServices01/appointease/internal/middleware"
	ucMeeting "github.com/BruksfildServices01/appointease/internal/usecase/meeting"
)

type MeetingHandler struct {
	create *ucMeeting.CreateMeeting
	update *ucMeeting.UpdateMeeting
	delete *ucMeeting.DeleteMeeting
	list   *ucMeeting.ListMeetings
	log    zerolog.Logger
}

func NewMeetingHandler(
	create *ucMeeting.CreateMeeting,
	update *ucMeeting.UpdateMeeting,
	del *ucMeeting.DeleteMeeting,
	list *ucMeeting.ListMeetings,
	log zerolog.Logger,
) *MeetingHandler {
	return &MeetingHandler{create: create, update: update, delete: del, list: list, log: log}
}

type MeetingRequest struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Date           string   `json:"meeting_date"`
	StartTime      string   `json:"start_time"`
	EndTime        string   `json:"end_time"`
	ParticipantIDs []string `json:"participant_ids"`
	ModeRequest
}

func (r MeetingRequest) draft() meeting.Draft {
	return meeting.Draft{
		Title:       r.Title,
		Description: r.Description,
		Date:        r.Date,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		Mode: appointment.ModeDetails{
			Mode:     appointment.Mode(r.Mode),
			URL:      r.URL,
			Password: r.Password,
		},
		ParticipantIDs: r.ParticipantIDs,
	}
}

func (h *MeetingHandler) ListMine(c *gin.Context) {
	vs, err := h.list.Execute(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		httperr.FromError(c, h.log, err, "meeting_list_failed")
		return
	}
	httpresp.List(c, vs)
}

func (h *MeetingHandler) List(c *gin.Context) {
	vs, err := h.list.Execute(c.Request.Context(), c.Query("participant_id"))
	if err != nil {
		httperr.FromError(c, h.log, err, "meeting_list_failed")
		return
	}
	httpresp.List(c, vs)
}

func (h *MeetingHandler) Create(c *gin.Context) {
	var req MeetingRequest
	if !bindJSON(c, &req) {
		return
	}

	v, err := h.create.Execute(c.Request.Context(), middleware.UserID(c), req.draft())
	if err != nil {
		httperr.FromError(c, h.log, err, "meeting_create_failed")
		return
	}
	httpresp.Created(c, v)
}

func (h *MeetingHandler) Update(c *gin.Context) {
	var req MeetingRequest
	if !bindJSON(c, &req) {
		return
	}

	v, err := h.update.Execute(c.Request.Context(), middleware.UserID(c), c.Param("id"), req.draft())
	if err != nil {
		httperr.FromError(c, h.log, err, "meeting_update_failed")
		return
	}
	httpresp.OK(c, v)
}

func (h *MeetingHandler) Delete(c *gin.Context) {
	if err := h.delete.Execute(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		httperr.FromError(c, h.log, err, "meeting_delete_failed")
		return
	}
	httpresp.NoContent(c)
}
