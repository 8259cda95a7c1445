package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/appointease/internal/httperr"
)

// bindJSON decodes the body or writes a 400.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return false
	}
	return true
}

// ModeRequest is the mode block shared by appointments and meetings.
type ModeRequest struct {
	Mode     string `json:"mode"`
	URL      string `json:"url"`
	Password string `json:"password"`
}
