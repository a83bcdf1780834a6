package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/shiftplan-backend/internal/http/response"
	"github.com/yungbote/shiftplan-backend/internal/platform/apierr"
	"github.com/yungbote/shiftplan-backend/internal/platform/ctxutil"
)

func pathUUID(c *gin.Context, name string) (uuid.UUID, error) {
	raw := strings.TrimSpace(c.Param(name))
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s %q", name, raw)
	}
	return id, nil
}

// parseDate accepts YYYY-MM-DD.
func parseDate(field, raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("%s is required", field)
	}
	d, err := time.ParseInLocation(time.DateOnly, raw, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be YYYY-MM-DD", field)
	}
	return d, nil
}

func parseOptionalDate(field string, raw *string) (*time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	d, err := parseDate(field, *raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func parseOptionalUUID(field string, raw *string) (*uuid.UUID, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	id, err := uuid.Parse(strings.TrimSpace(*raw))
	if err != nil {
		return nil, fmt.Errorf("invalid %s", field)
	}
	return &id, nil
}

func callerOwnerID(c *gin.Context) (uuid.UUID, error) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil || rd.OwnerID == uuid.Nil {
		return uuid.Nil, apierr.ErrNotOwner
	}
	return rd.OwnerID, nil
}

func callerAccountID(c *gin.Context) (uuid.UUID, error) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil || rd.AccountID == uuid.Nil {
		return uuid.Nil, apierr.ErrUnauthorized
	}
	return rd.AccountID, nil
}

// ownerAndPathID writes the error response itself when it returns false.
func ownerAndPathID(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	ownerID, err := callerOwnerID(c)
	if err != nil {
		response.RespondServiceError(c, err)
		return uuid.Nil, uuid.Nil, false
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return uuid.Nil, uuid.Nil, false
	}
	return ownerID, id, true
}

// parseInstant accepts RFC3339 timestamps.
func parseInstant(field, raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("%s is required", field)
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be an RFC3339 timestamp", field)
	}
	return t, nil
}
