package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the wire format every endpoint answers with:
// {status, statusCode, message, data, error}.
type Envelope struct {
	Status     string `json:"status"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Data       any    `json:"data"`
	Error      any    `json:"error,omitempty"`
}

func Success(c *gin.Context, statusCode int, message string, data any) {
	c.JSON(statusCode, Envelope{
		Status:     "success",
		StatusCode: statusCode,
		Message:    message,
		Data:       data,
	})
}

func Error(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Envelope{
		Status:     "failed",
		StatusCode: statusCode,
		Message:    message,
		Data:       nil,
		Error:      http.StatusText(statusCode),
	})
}

// ErrorWithDetails carries field-level validation details in the error slot.
func ErrorWithDetails(c *gin.Context, statusCode int, message string, details any) {
	c.JSON(statusCode, Envelope{
		Status:     "failed",
		StatusCode: statusCode,
		Message:    message,
		Data:       nil,
		Error:      details,
	})
}

// AbortError is Error for middleware: it also stops the handler chain.
func AbortError(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, Envelope{
		Status:     "failed",
		StatusCode: statusCode,
		Message:    message,
		Data:       nil,
		Error:      http.StatusText(statusCode),
	})
}
