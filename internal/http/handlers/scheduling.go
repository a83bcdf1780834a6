package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/shiftplan-backend/internal/http/response"
	"github.com/yungbote/shiftplan-backend/internal/services"
)

// SchedulingHandler serves schedules and shifts for the calling owner.
type SchedulingHandler struct {
	schedulingService services.SchedulingService
}

func NewSchedulingHandler(schedulingService services.SchedulingService) *SchedulingHandler {
	return &SchedulingHandler{schedulingService: schedulingService}
}

type scheduleRequest struct {
	Date  string `json:"date"`
	Start string `json:"start"`
	End   string `json:"end"`
}

func (r scheduleRequest) window() (services.ScheduleWindow, error) {
	date, err := parseDate("date", r.Date)
	if err != nil {
		return services.ScheduleWindow{}, err
	}
	start, err := parseInstant("start", r.Start)
	if err != nil {
		return services.ScheduleWindow{}, err
	}
	end, err := parseInstant("end", r.End)
	if err != nil {
		return services.ScheduleWindow{}, err
	}
	return services.ScheduleWindow{Date: date, Start: start, End: end}, nil
}

type shiftRequest struct {
	EmployeeID string  `json:"employee_id"`
	TaskID     *string `json:"task_id"`
	ShiftDate  string  `json:"shift_date"`
	StartTime  string  `json:"start_time"`
	EndTime    string  `json:"end_time"`
}

func (r shiftRequest) input(scheduleID uuid.UUID) (services.ShiftInput, error) {
	employeeID, err := uuid.Parse(strings.TrimSpace(r.EmployeeID))
	if err != nil {
		return services.ShiftInput{}, fmt.Errorf("invalid employee_id")
	}
	taskID, err := parseOptionalUUID("task_id", r.TaskID)
	if err != nil {
		return services.ShiftInput{}, err
	}
	day, err := parseDate("shift_date", r.ShiftDate)
	if err != nil {
		return services.ShiftInput{}, err
	}
	start, err := parseInstant("start_time", r.StartTime)
	if err != nil {
		return services.ShiftInput{}, err
	}
	end, err := parseInstant("end_time", r.EndTime)
	if err != nil {
		return services.ShiftInput{}, err
	}
	return services.ShiftInput{
		ScheduleID: scheduleID,
		EmployeeID: employeeID,
		TaskID:     taskID,
		ShiftDate:  day,
		StartTime:  start,
		EndTime:    end,
	}, nil
}

// GET /api/schedules?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *SchedulingHandler) ListSchedules(c *gin.Context) {
	ownerID, err := callerOwnerID(c)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	from, to := c.Query("from"), c.Query("to")
	fromDate, err := parseOptionalDate("from", &from)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	toDate, err := parseOptionalDate("to", &to)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	rows, err := h.schedulingService.ListSchedules(c.Request.Context(), ownerID, fromDate, toDate)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"schedules": rows})
}

// POST /api/schedules
func (h *SchedulingHandler) CreateSchedule(c *gin.Context) {
	ownerID, err := callerOwnerID(c)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	var req scheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	win, err := req.window()
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	row, err := h.schedulingService.CreateSchedule(c.Request.Context(), ownerID, win)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"schedule": row})
}

// GET /api/schedules/:id
func (h *SchedulingHandler) GetSchedule(c *gin.Context) {
	ownerID, id, ok := ownerAndPathID(c)
	if !ok {
		return
	}
	row, err := h.schedulingService.GetSchedule(c.Request.Context(), ownerID, id)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"schedule": row})
}

// PUT /api/schedules/:id
func (h *SchedulingHandler) UpdateSchedule(c *gin.Context) {
	ownerID, id, ok := ownerAndPathID(c)
	if !ok {
		return
	}
	var req scheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	win, err := req.window()
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	row, err := h.schedulingService.UpdateSchedule(c.Request.Context(), ownerID, id, win)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"schedule": row})
}

// DELETE /api/schedules/:id
func (h *SchedulingHandler) DeleteSchedule(c *gin.Context) {
	ownerID, id, ok := ownerAndPathID(c)
	if !ok {
		return
	}
	res, err := h.schedulingService.DeleteSchedule(c.Request.Context(), ownerID, id)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"deleted": res})
}

// GET /api/schedules/:id/shifts
func (h *SchedulingHandler) ListShifts(c *gin.Context) {
	ownerID, id, ok := ownerAndPathID(c)
	if !ok {
		return
	}
	rows, err := h.schedulingService.ListShiftsBySchedule(c.Request.Context(), ownerID, id)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"shifts": rows})
}

// POST /api/schedules/:id/shifts
func (h *SchedulingHandler) CreateShift(c *gin.Context) {
	ownerID, scheduleID, ok := ownerAndPathID(c)
	if !ok {
		return
	}
	var req shiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	in, err := req.input(scheduleID)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	row, err := h.schedulingService.CreateShift(c.Request.Context(), ownerID, in)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"shift": row})
}

// PUT /api/shifts/:id
func (h *SchedulingHandler) UpdateShift(c *gin.Context) {
	ownerID, shiftID, ok := ownerAndPathID(c)
	if !ok {
		return
	}
	var req struct {
		ScheduleID string `json:"schedule_id"`
		shiftRequest
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	scheduleID, err := uuid.Parse(strings.TrimSpace(req.ScheduleID))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", fmt.Errorf("invalid schedule_id"))
		return
	}
	in, err := req.input(scheduleID)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	row, err := h.schedulingService.UpdateShift(c.Request.Context(), ownerID, shiftID, in)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"shift": row})
}

// DELETE /api/shifts/:id
func (h *SchedulingHandler) DeleteShift(c *gin.Context) {
	ownerID, shiftID, ok := ownerAndPathID(c)
	if !ok {
		return
	}
	if err := h.schedulingService.DeleteShift(c.Request.Context(), ownerID, shiftID); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondNoContent(c)
}

// GET /api/employees/:id/shifts?date=YYYY-MM-DD
func (h *SchedulingHandler) ListEmployeeDayShifts(c *gin.Context) {
	ownerID, employeeID, ok := ownerAndPathID(c)
	if !ok {
		return
	}
	day, err := parseDate("date", c.Query("date"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	rows, err := h.schedulingService.ListShiftsForEmployeeDay(c.Request.Context(), ownerID, employeeID, day)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"shifts": rows})
}
