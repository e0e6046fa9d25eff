package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// StatusResponse is the envelope every mutating endpoint responds with.
type StatusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// OK sends a 200 success envelope.
func OK(c *gin.Context, message string) {
	c.JSON(http.StatusOK, StatusResponse{Success: true, Message: message})
}

// Fail sends a failure envelope with the given status code. Messages are
// business-facing; raw storage errors never go through here.
func Fail(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, StatusResponse{Success: false, Message: message})
}

// BadRequest sends a 400 failure envelope.
func BadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "Invalid request"
	}
	Fail(c, http.StatusBadRequest, message)
}

// Unauthorized sends a 401 failure envelope.
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Authentication required"
	}
	Fail(c, http.StatusUnauthorized, message)
}

// Conflict sends a 409 failure envelope.
func Conflict(c *gin.Context, message string) {
	if message == "" {
		message = "Resource conflict"
	}
	Fail(c, http.StatusConflict, message)
}

// InternalError sends a 500 failure envelope.
func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "Internal server error"
	}
	Fail(c, http.StatusInternalServerError, message)
}
