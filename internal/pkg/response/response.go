package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the error envelope. Successful responses carry the bare resource.
type Response struct {
	Success bool       `json:"success"`
	Error   *ErrorBody `json:"error,omitempty"`
}

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// JSON writes data as the bare response body.
func JSON(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, Response{
		Error: &ErrorBody{Code: code, Message: message},
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, Response{
		Error: &ErrorBody{Code: code, Message: message, Details: details},
	})
}

// Internal logs err on the gin context and hides it from the caller.
func Internal(c *gin.Context, code string, err error) {
	_ = c.Error(err)
	Error(c, http.StatusInternalServerError, code, "Internal server error")
}
