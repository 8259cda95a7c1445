package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	domain "github.com/BruksfildServices01/appointease/internal/domain/appointment"
)

const (
	MsgSlotTaken            = "slot no longer available, please choose another time"
	MsgInvalidTransition    = "this action cannot be performed on a non-pending appointment"
	MsgInvalidConfiguration = "working hours are not configured correctly"
)

// FromError writes the response for an error returned by a use case.
// Unknown errors are logged and reported as fallbackCode.
func FromError(c *gin.Context, log zerolog.Logger, err error, fallbackCode string) {
	var verr *domain.ValidationError
	var be BusinessError

	switch {
	case errors.As(err, &verr):
		c.AbortWithStatusJSON(http.StatusBadRequest, HTTPError{
			Code:    "validation_failed",
			Message: "Some fields are invalid.",
			Fields:  verr.FieldErrors,
		})

	case errors.Is(err, domain.ErrSlotTaken), IsExclusionConflict(err):
		Conflict(c, "slot_taken", MsgSlotTaken)

	case errors.Is(err, domain.ErrInvalidTransition):
		Conflict(c, "invalid_transition", MsgInvalidTransition)

	case errors.Is(err, domain.ErrInvalidConfiguration):
		Write(c, http.StatusUnprocessableEntity, "invalid_configuration", MsgInvalidConfiguration)

	case errors.As(err, &be):
		switch {
		case IsNotFound(be):
			NotFound(c, be.Code, "Resource not found.")
		case be.Code == "forbidden":
			Forbidden(c, be.Code, "You cannot access this resource.")
		case be.Code == "invalid_credentials":
			Unauthorized(c, be.Code, "Invalid username or password.")
		case be.Code == "username_taken":
			Conflict(c, be.Code, "Username is already in use.")
		default:
			BadRequest(c, be.Code, "Request could not be processed.")
		}

	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg(fallbackCode)
		Internal(c, fallbackCode, "Operation did not commit, please try again.")
	}
}
