package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/shiftplan-backend/internal/http/response"
	"github.com/yungbote/shiftplan-backend/internal/services"
)

// RosterHandler serves the owner-scoped contracts, tasks and employees.
// Every route runs behind RequireOwner.
type RosterHandler struct {
	rosterService services.RosterService
}

func NewRosterHandler(rosterService services.RosterService) *RosterHandler {
	return &RosterHandler{rosterService: rosterService}
}

// GET /api/contracts
func (h *RosterHandler) ListContracts(c *gin.Context) {
	ownerID, err := callerOwnerID(c)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	rows, err := h.rosterService.ListContracts(c.Request.Context(), ownerID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"contracts": rows})
}

// POST /api/contracts
func (h *RosterHandler) CreateContract(c *gin.Context) {
	ownerID, err := callerOwnerID(c)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	var req struct {
		WeekHours int `json:"week_hours"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	row, err := h.rosterService.CreateContract(c.Request.Context(), ownerID, req.WeekHours)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"contract": row})
}

// DELETE /api/contracts/:id
func (h *RosterHandler) DeleteContract(c *gin.Context) {
	ownerID, id, ok := ownerAndPathID(c)
	if !ok {
		return
	}
	res, err := h.rosterService.DeleteContract(c.Request.Context(), ownerID, id)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"deleted": res})
}

// GET /api/tasks
func (h *RosterHandler) ListTasks(c *gin.Context) {
	ownerID, err := callerOwnerID(c)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	rows, err := h.rosterService.ListTasks(c.Request.Context(), ownerID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"tasks": rows})
}

// POST /api/tasks
func (h *RosterHandler) CreateTask(c *gin.Context) {
	ownerID, err := callerOwnerID(c)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	row, err := h.rosterService.CreateTask(c.Request.Context(), ownerID, req.Name)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"task": row})
}

// DELETE /api/tasks/:id
func (h *RosterHandler) DeleteTask(c *gin.Context) {
	ownerID, id, ok := ownerAndPathID(c)
	if !ok {
		return
	}
	if err := h.rosterService.DeleteTask(c.Request.Context(), ownerID, id); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondNoContent(c)
}

// GET /api/employees
func (h *RosterHandler) ListEmployees(c *gin.Context) {
	ownerID, err := callerOwnerID(c)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	rows, err := h.rosterService.ListEmployees(c.Request.Context(), ownerID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"employees": rows})
}

// POST /api/employees
func (h *RosterHandler) CreateEmployee(c *gin.Context) {
	ownerID, err := callerOwnerID(c)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	var req struct {
		AccountID  string  `json:"account_id"`
		ContractID *string `json:"contract_id"`
		StartDate  string  `json:"start_date"`
		EndDate    *string `json:"end_date"`
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
	contractID, err := parseOptionalUUID("contract_id", req.ContractID)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	start, err := parseDate("start_date", req.StartDate)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	end, err := parseOptionalDate("end_date", req.EndDate)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	row, err := h.rosterService.CreateEmployee(c.Request.Context(), services.CreateEmployeeInput{
		AccountID:  accountID,
		OwnerID:    &ownerID,
		ContractID: contractID,
		StartDate:  start,
		EndDate:    end,
	})
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"employee": row})
}

// DELETE /api/employees/:id
func (h *RosterHandler) DeleteEmployee(c *gin.Context) {
	ownerID, id, ok := ownerAndPathID(c)
	if !ok {
		return
	}
	res, err := h.rosterService.DeleteEmployee(c.Request.Context(), ownerID, id)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"deleted": res})
}
