package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/appointease/internal/httperr"
	"github.com/BruksfildServices01/appointease/internal/httpresp"
	ucUser "github.com/BruksfildServices01/appointease/internal/usecase/user"
)

type AuthHandler struct {
	signup *ucUser.Signup
	login  *ucUser.Login
	log    zerolog.Logger
}

func NewAuthHandler(signup *ucUser.Signup, login *ucUser.Login, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{signup: signup, login: login, log: log}
}

// --------- Requests ---------

type SignupRequest struct {
	Username string `json:"username" binding:"required"`
	FullName string `json:"full_name" binding:"required"`
	Password string `json:"password" binding:"required"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if !bindJSON(c, &req) {
		return
	}

	session, err := h.signup.Execute(c.Request.Context(), ucUser.Account{
		Username: req.Username,
		FullName: req.FullName,
		Password: req.Password,
		Phone:    req.Phone,
	})
	if err != nil {
		httperr.FromError(c, h.log, err, "signup_failed")
		return
	}

	httpresp.Created(c, session)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	session, err := h.login.Execute(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		httperr.FromError(c, h.log, err, "login_failed")
		return
	}

	httpresp.OK(c, session)
}
