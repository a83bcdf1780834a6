package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/shiftplan-backend/internal/http/response"
	"github.com/yungbote/shiftplan-backend/internal/services"
)

// OwnerHandler serves the superuser-only ownership registry.
type OwnerHandler struct {
	rosterService services.RosterService
}

func NewOwnerHandler(rosterService services.RosterService) *OwnerHandler {
	return &OwnerHandler{rosterService: rosterService}
}

// GET /api/owners
func (h *OwnerHandler) ListOwners(c *gin.Context) {
	rows, err := h.rosterService.ListOwners(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"owners": rows})
}

// POST /api/owners
func (h *OwnerHandler) CreateOwner(c *gin.Context) {
	var req struct {
		AccountID string `json:"account_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	accountID, err := uuid.Parse(req.AccountID)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	owner, err := h.rosterService.CreateOwner(c.Request.Context(), accountID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"owner": owner})
}

// DELETE /api/owners/:id
func (h *OwnerHandler) DeleteOwner(c *gin.Context) {
	ownerID, err := pathUUID(c, "id")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	res, err := h.rosterService.DeleteOwner(c.Request.Context(), ownerID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"deleted": res})
}
