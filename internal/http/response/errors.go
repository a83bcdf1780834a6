package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainagg "github.com/yungbote/shiftplan-backend/internal/domain/aggregates"
	"github.com/yungbote/shiftplan-backend/internal/platform/apierr"
)

// StatusForCode maps an aggregate error code onto an HTTP status.
func StatusForCode(code domainagg.ErrorCode) int {
	switch {
	case domainagg.IsRuleRejection(code):
		return http.StatusBadRequest
	case code == domainagg.CodeNotFound:
		return http.StatusNotFound
	case code == domainagg.CodeConflict:
		return http.StatusConflict
	case code == domainagg.CodePreconditionFailed:
		return http.StatusPreconditionFailed
	case code == domainagg.CodeRetryable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// RespondServiceError renders err with the status implied by its aggregate
// code. Overlap rejections list the conflicting shifts.
func RespondServiceError(c *gin.Context, err error) {
	var apiErr *apierr.Error
	if errors.As(err, &apiErr) {
		RespondError(c, apiErr.Status, apiErr.Code, apiErr)
		return
	}

	var aggErr *domainagg.Error
	if !errors.As(err, &aggErr) {
		_ = c.Error(err)
		RespondError(c, http.StatusInternalServerError, string(domainagg.CodeInternal), errors.New("internal error"))
		return
	}
	status := StatusForCode(aggErr.Code)
	msg := aggErr.Message
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		msg = "internal error"
	}
	if msg == "" {
		msg = string(aggErr.Code)
	}
	if status == http.StatusServiceUnavailable {
		c.Header("Retry-After", "1")
	}
	c.Set(ErrorCodeKey, string(aggErr.Code))
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message:   msg,
			Code:      string(aggErr.Code),
			Conflicts: domainagg.OverlapConflicts(err),
		},
	})
}
