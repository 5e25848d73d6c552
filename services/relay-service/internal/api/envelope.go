package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stoik/leadrelay/services/relay-service/internal/validate"
)

const (
	msgInvalidJSON      = "Invalid JSON body"
	msgMethodNotAllowed = "Method not allowed"
	msgNotFound         = "Not found"
	msgNewsletterOK     = "Successfully subscribed to newsletter"
	msgLeadMagnetOK     = "Successfully subscribed, check your inbox for the guide"
	msgNewsletterFailed = "Failed to subscribe to newsletter"
	msgContactOK        = "Message sent successfully"
	msgContactFailed    = "Failed to send message"
	msgContactNotReady  = "Contact form is not configured"
	msgCaptureOK        = "Email captured successfully"
	msgCaptureFailed    = "Failed to capture email"
)

// ErrorResponse is the error envelope. Details is set only for upstream failures.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// SuccessResponse is the success envelope
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// bindJSON decodes the request body into dst. An empty body leaves dst zeroed so that
// field validation reports what is missing. Returns false after writing a 400.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: msgInvalidJSON})
		return false
	}
	return true
}

// writeError maps err onto the error envelope. Validation errors become 400 with the
// field message; everything else is an upstream failure reported as 500.
func writeError(c *gin.Context, err error, failure string) {
	var ve *validate.ValidationError
	if errors.As(err, &ve) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: ve.Message})
		return
	}
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: failure, Details: err.Error()})
}

func writeSuccess(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, SuccessResponse{Success: true, Message: message, Data: data})
}
