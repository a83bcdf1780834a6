package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domainagg "github.com/yungbote/shiftplan-backend/internal/domain/aggregates"
)

// ErrorCodeKey is the gin context key holding the code of an error response.
const ErrorCodeKey = "error_code"

type APIError struct {
	Message   string               `json:"message"`
	Code      string               `json:"code,omitempty"`
	Conflicts []domainagg.ShiftRef `json:"conflicts,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.Set(ErrorCodeKey, code)
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}

func RespondNoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
