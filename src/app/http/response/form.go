package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// FormRejection is the 400 payload for rejected form submissions. It echoes
// the user's original input alongside the errors so the client can redisplay
// the form pre-filled.
type FormRejection struct {
	// FormError is a failure not attributable to a single field.
	FormError string `json:"formError,omitempty"`

	// FieldErrors maps field names to human-readable messages.
	FieldErrors map[string]string `json:"fieldErrors,omitempty"`

	// Fields echoes the submitted values. Passwords are never included.
	Fields map[string]string `json:"fields,omitempty"`
}

// FormError sends a 400 with a form-level error only.
func FormError(c *gin.Context, message string, fields map[string]string) {
	c.JSON(http.StatusBadRequest, FormRejection{
		FormError: message,
		Fields:    fields,
	})
}

// FieldErrors sends a 400 with per-field errors and the echoed submission.
func FieldErrors(c *gin.Context, errs map[string]string, fields map[string]string) {
	c.JSON(http.StatusBadRequest, FormRejection{
		FieldErrors: errs,
		Fields:      fields,
	})
}
