package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainagg "github.com/yungbote/shiftplan-backend/internal/domain/aggregates"
	"github.com/yungbote/shiftplan-backend/internal/platform/apierr"
)

func TestStatusForCode(t *testing.T) {
	cases := []struct {
		code domainagg.ErrorCode
		want int
	}{
		{domainagg.CodeValidation, http.StatusBadRequest},
		{domainagg.CodeInvalidTimeRange, http.StatusBadRequest},
		{domainagg.CodeShiftOverlap, http.StatusBadRequest},
		{domainagg.CodeOwnerMismatch, http.StatusBadRequest},
		{domainagg.CodeOutOfScheduleWindow, http.StatusBadRequest},
		{domainagg.CodeDateMismatch, http.StatusBadRequest},
		{domainagg.CodeRoleConflict, http.StatusBadRequest},
		{domainagg.CodeInvariantViolation, http.StatusBadRequest},
		{domainagg.CodeNotFound, http.StatusNotFound},
		{domainagg.CodeConflict, http.StatusConflict},
		{domainagg.CodePreconditionFailed, http.StatusPreconditionFailed},
		{domainagg.CodeRetryable, http.StatusServiceUnavailable},
		{domainagg.CodeInternal, http.StatusInternalServerError},
		{"", http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := StatusForCode(tc.code); got != tc.want {
			t.Fatalf("StatusForCode(%q): want=%d got=%d", tc.code, tc.want, got)
		}
	}
}

func render(t *testing.T, err error) (int, ErrorEnvelope) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	RespondServiceError(c, err)
	var env ErrorEnvelope
	if jerr := json.Unmarshal(w.Body.Bytes(), &env); jerr != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), jerr)
	}
	return w.Code, env
}

func TestRespondServiceErrorIncludesConflicts(t *testing.T) {
	ref := domainagg.ShiftRef{
		ID:        uuid.New(),
		StartTime: time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2024, 3, 4, 13, 0, 0, 0, time.UTC),
	}
	err := domainagg.NewError(domainagg.CodeShiftOverlap, "Scheduling.Shift.Create", "shift overlaps 1 existing shift(s) of the employee",
		&domainagg.OverlapError{Conflicts: []domainagg.ShiftRef{ref}})

	status, env := render(t, err)
	if status != http.StatusBadRequest {
		t.Fatalf("status: want=400 got=%d", status)
	}
	if env.Error.Code != "shift_overlap" {
		t.Fatalf("code: %q", env.Error.Code)
	}
	if len(env.Error.Conflicts) != 1 || env.Error.Conflicts[0].ID != ref.ID {
		t.Fatalf("conflicts: %+v", env.Error.Conflicts)
	}
}

func TestRespondServiceErrorHidesInternalDetail(t *testing.T) {
	status, env := render(t, errors.New("pq: connection refused"))
	if status != http.StatusInternalServerError || env.Error.Message != "internal error" {
		t.Fatalf("unexpected response: %d %+v", status, env)
	}

	status, env = render(t, apierr.ErrForbidden)
	if status != http.StatusForbidden || env.Error.Code != "forbidden" {
		t.Fatalf("api error: %d %+v", status, env)
	}
}

func TestRespondServiceErrorRetryableSetsRetryAfter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	RespondServiceError(c, domainagg.NewError(domainagg.CodeRetryable, "Scheduling.Shift.Create", "employee day is busy", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status=%d", rec.Code)
	}
	if got := rec.Header().Get("Retry-After"); got != "1" {
		t.Fatalf("Retry-After=%q", got)
	}
}
