package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/shiftplan-backend/internal/http/response"
	"github.com/yungbote/shiftplan-backend/internal/platform/apierr"
	"github.com/yungbote/shiftplan-backend/internal/platform/ctxutil"
	"github.com/yungbote/shiftplan-backend/internal/platform/logger"
	"github.com/yungbote/shiftplan-backend/internal/services"
)

type AuthMiddleware struct {
	log            *logger.Logger
	accountService services.AccountService
	rosterService  services.RosterService
}

func NewAuthMiddleware(log *logger.Logger, accountService services.AccountService, rosterService services.RosterService) *AuthMiddleware {
	middlewareLogger := log.With("middleware", "AuthMiddleware")
	return &AuthMiddleware{log: middlewareLogger, accountService: accountService, rosterService: rosterService}
}

func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractBearerToken(c)
		if tokenString == "" {
			abort(c, apierr.ErrUnauthorized)
			return
		}
		ctx, err := am.accountService.SetContextFromToken(c.Request.Context(), tokenString)
		if err != nil {
			if !errors.Is(err, services.ErrInvalidToken) && !errors.Is(err, services.ErrInactiveAccount) {
				am.log.Warn("Token resolution failed", "error", err)
			}
			abort(c, apierr.New(http.StatusUnauthorized, "unauthorized", err))
			return
		}
		c.Request = c.Request.WithContext(ctx)
		rd := ctxutil.GetRequestData(ctx)
		if rd == nil || rd.AccountID == uuid.Nil {
			abort(c, apierr.ErrForbidden)
			return
		}
		c.Next()
	}
}

// RequireSuperuser must run after RequireAuth.
func (am *AuthMiddleware) RequireSuperuser() gin.HandlerFunc {
	return func(c *gin.Context) {
		rd := ctxutil.GetRequestData(c.Request.Context())
		if rd == nil || !rd.IsSuperuser {
			abort(c, apierr.ErrForbidden)
			return
		}
		c.Next()
	}
}

// RequireOwner resolves the caller's Owner record and stores its ID on the
// request data. Must run after RequireAuth.
func (am *AuthMiddleware) RequireOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		rd := ctxutil.GetRequestData(ctx)
		if rd == nil || rd.AccountID == uuid.Nil {
			abort(c, apierr.ErrUnauthorized)
			return
		}
		owner, err := am.rosterService.OwnerForAccount(ctx, rd.AccountID)
		if err != nil {
			response.RespondServiceError(c, err)
			c.Abort()
			return
		}
		if owner == nil {
			abort(c, apierr.ErrNotOwner)
			return
		}
		rd.OwnerID = owner.ID
		c.Next()
	}
}

func abort(c *gin.Context, err *apierr.Error) {
	response.RespondError(c, err.Status, err.Code, err)
	c.Abort()
}

func extractBearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return ""
}
