package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/appointease/internal/httperr"
	"github.com/BruksfildServices01/appointease/internal/httpresp"
	"github.com/BruksfildServices01/appointease/internal/middleware"
	ucUser "github.com/BruksfildServices01/appointease/internal/usecase/user"
)

type UserHandler struct {
	list   *ucUser.ListUsers
	create *ucUser.CreateUser
	update *ucUser.UpdateUser
	log    zerolog.Logger
}

func NewUserHandler(
	list *ucUser.ListUsers,
	create *ucUser.CreateUser,
	update *ucUser.UpdateUser,
	log zerolog.Logger,
) *UserHandler {
	return &UserHandler{list: list, create: create, update: update, log: log}
}

type UserRequest struct {
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
}

func (r UserRequest) account() ucUser.Account {
	return ucUser.Account{
		Username: r.Username,
		FullName: r.FullName,
		Password: r.Password,
		Phone:    r.Phone,
		Role:     r.Role,
	}
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.list.Execute(c.Request.Context(), c.Query("role"))
	if err != nil {
		httperr.FromError(c, h.log, err, "user_list_failed")
		return
	}
	httpresp.List(c, users)
}

func (h *UserHandler) Create(c *gin.Context) {
	var req UserRequest
	if !bindJSON(c, &req) {
		return
	}

	u, err := h.create.Execute(c.Request.Context(), middleware.UserID(c), req.account())
	if err != nil {
		httperr.FromError(c, h.log, err, "user_create_failed")
		return
	}
	httpresp.Created(c, u)
}

func (h *UserHandler) Update(c *gin.Context) {
	var req UserRequest
	if !bindJSON(c, &req) {
		return
	}

	u, err := h.update.Execute(c.Request.Context(), middleware.UserID(c), c.Param("id"), req.account())
	if err != nil {
		httperr.FromError(c, h.log, err, "user_update_failed")
		return
	}
	httpresp.OK(c, u)
}
