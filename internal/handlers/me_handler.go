package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/appointease/internal/httperr"
	"github.com/BruksfildServices01/appointease/internal/httpresp"
	"github.com/BruksfildServices01/appointease/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/appointease/internal/usecase/appointment"
	ucUser "github.com/BruksfildServices01/appointease/internal/usecase/user"
)

type MeHandler struct {
	profile   *ucUser.GetProfile
	update    *ucUser.UpdateProfile
	dashboard *ucAppointment.Dashboard
	log       zerolog.Logger
}

func NewMeHandler(
	profile *ucUser.GetProfile,
	update *ucUser.UpdateProfile,
	dashboard *ucAppointment.Dashboard,
	log zerolog.Logger,
) *MeHandler {
	return &MeHandler{profile: profile, update: update, dashboard: dashboard, log: log}
}

type UpdateMeRequest struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

func (h *MeHandler) GetMe(c *gin.Context) {
	u, err := h.profile.Execute(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		httperr.FromError(c, h.log, err, "profile_failed")
		return
	}
	httpresp.OK(c, u)
}

func (h *MeHandler) UpdateMe(c *gin.Context) {
	var req UpdateMeRequest
	if !bindJSON(c, &req) {
		return
	}

	u, err := h.update.Execute(c.Request.Context(), middleware.UserID(c), ucUser.Account{
		FullName: req.FullName,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		httperr.FromError(c, h.log, err, "profile_update_failed")
		return
	}
	httpresp.OK(c, u)
}

func (h *MeHandler) Dashboard(c *gin.Context) {
	d, err := h.dashboard.ForUser(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		httperr.FromError(c, h.log, err, "dashboard_failed")
		return
	}
	httpresp.OK(c, d)
}

func (h *MeHandler) AdminDashboard(c *gin.Context) {
	d, err := h.dashboard.ForAdmin(c.Request.Context())
	if err != nil {
		httperr.FromError(c, h.log, err, "dashboard_failed")
		return
	}
	httpresp.OK(c, d)
}
