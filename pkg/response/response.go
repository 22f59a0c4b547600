package response

import (
	"errors"
	"net/http"

	"axiom-gateway/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the flat error envelope the gateway emits: a machine-readable
// error string plus a human-readable message.
type ErrorBody struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Error sends an error response. It checks if err is an *apperror.AppError
// and maps it accordingly, otherwise returns 500.
func Error(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.HTTPStatus, ErrorBody{
			Error:   appErr.Code,
			Message: appErr.Message,
		})
		return
	}

	// Unknown error -> 500
	c.JSON(http.StatusInternalServerError, ErrorBody{
		Error:   "Internal error",
		Message: "Internal server error",
	})
}
