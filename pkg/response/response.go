// Package response centralizes HTTP response shapes and helpers.
// Handlers rely on it to keep controllers thin and uniform.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/league-service/internal/service"
)

// Envelope is the body of every API response. Exactly one of Data, Error or
// Errors is set.
type Envelope struct {
	Status int                  `json:"status"`
	Data   any                  `json:"data,omitempty"`
	Error  string               `json:"error,omitempty"`
	Errors []service.FieldError `json:"errors,omitempty"`
}

const internalMessage = "internal server error"

var kindStatus = map[service.Kind]int{
	service.KindValidation:   http.StatusBadRequest,
	service.KindUnauthorized: http.StatusUnauthorized,
	service.KindNotFound:     http.StatusNotFound,
	service.KindConflict:     http.StatusConflict,
	service.KindInfra:        http.StatusInternalServerError,
}

// MapError converts a domain / infrastructure error into an HTTP status and payload.
// Domain messages pass through verbatim; infrastructure details stay in the logs.
func MapError(err error) (int, Envelope) {
	kind := service.KindOf(err)
	status := kindStatus[kind]
	switch kind {
	case service.KindValidation:
		return status, Envelope{Status: status, Errors: service.FieldErrors(err)}
	case service.KindInfra:
		return status, Envelope{Status: status, Error: internalMessage}
	default:
		return status, Envelope{Status: status, Error: err.Error()}
	}
}

// WriteError writes an error response and aborts the context.
func WriteError(c *gin.Context, err error) {
	status, payload := MapError(err)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, payload)
}

// WriteMessage aborts with a plain error message, for failures detected before any service call.
func WriteMessage(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, Envelope{Status: status, Error: msg})
}

// WriteData writes a successful JSON response.
func WriteData(c *gin.Context, status int, data any) {
	c.JSON(status, Envelope{Status: status, Data: data})
}
