package response

import (
	"github.com/gin-gonic/gin"
)

// Envelope is the wire format shared by every endpoint:
// {"status":"success","data":...} or {"status":"error","message":"..."}.
type Envelope struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

func Success(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Envelope{
		Status:  "success",
		Message: message,
		Data:    data,
	})
}

func Error(c *gin.Context, status int, message string, details any) {
	c.JSON(status, Envelope{
		Status:  "error",
		Message: message,
		Errors:  details,
	})
}
