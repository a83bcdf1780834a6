package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/yungbote/shiftplan-backend/internal/domain"
	domainagg "github.com/yungbote/shiftplan-backend/internal/domain/aggregates"
	"github.com/yungbote/shiftplan-backend/internal/http/response"
	"github.com/yungbote/shiftplan-backend/internal/platform/ctxutil"
	"github.com/yungbote/shiftplan-backend/internal/services"
)

type fakeSchedulingService struct {
	services.SchedulingService

	createShiftErr error
	gotShift       services.ShiftInput
	gotOwner       uuid.UUID
	gotFrom        *time.Time
	gotTo          *time.Time
	calls          int
}

func (f *fakeSchedulingService) CreateShift(_ context.Context, ownerID uuid.UUID, in services.ShiftInput) (*types.Shift, error) {
	f.calls++
	f.gotOwner = ownerID
	f.gotShift = in
	if f.createShiftErr != nil {
		return nil, f.createShiftErr
	}
	return &types.Shift{ID: uuid.New(), ScheduleID: in.ScheduleID, EmployeeID: in.EmployeeID}, nil
}

func (f *fakeSchedulingService) ListSchedules(_ context.Context, ownerID uuid.UUID, from, to *time.Time) ([]*types.Schedule, error) {
	f.calls++
	f.gotOwner = ownerID
	f.gotFrom, f.gotTo = from, to
	return []*types.Schedule{}, nil
}

type fakeRosterService struct {
	services.RosterService

	gotEmployee services.CreateEmployeeInput
	calls       int
}

func (f *fakeRosterService) CreateEmployee(_ context.Context, in services.CreateEmployeeInput) (*types.Employee, error) {
	f.calls++
	f.gotEmployee = in
	return &types.Employee{ID: uuid.New(), AccountID: in.AccountID}, nil
}

func (f *fakeRosterService) ListTasks(context.Context, uuid.UUID) ([]*types.Task, error) {
	f.calls++
	return []*types.Task{}, nil
}

type fakeAccountService struct {
	services.AccountService

	authErr error
}

func (f *fakeAccountService) Authenticate(_ context.Context, email, password string) (services.TokenResult, error) {
	if f.authErr != nil {
		return services.TokenResult{}, f.authErr
	}
	return services.TokenResult{AccessToken: "tok", TokenType: "Bearer", ExpiresIn: 3600}, nil
}

// asOwner stands in for RequireAuth + RequireOwner.
func asOwner(ownerID uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := ctxutil.WithRequestData(c.Request.Context(), &ctxutil.RequestData{
			AccountID: uuid.New(),
			OwnerID:   ownerID,
		})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func newTestRouter(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw...)
	return r
}

func doJSON(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) response.APIError {
	t.Helper()
	var env response.ErrorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode error body %q: %v", rec.Body.String(), err)
	}
	return env.Error
}

func TestCreateShiftParsesBody(t *testing.T) {
	ownerID, scheduleID, employeeID := uuid.New(), uuid.New(), uuid.New()
	svc := &fakeSchedulingService{}
	r := newTestRouter(asOwner(ownerID))
	r.POST("/api/schedules/:id/shifts", NewSchedulingHandler(svc).CreateShift)

	body := `{"employee_id":"` + employeeID.String() + `","shift_date":"2024-05-01",` +
		`"start_time":"2024-05-01T09:00:00Z","end_time":"2024-05-01T13:00:00Z"}`
	rec := doJSON(r, http.MethodPost, "/api/schedules/"+scheduleID.String()+"/shifts", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	if svc.gotOwner != ownerID {
		t.Fatalf("owner=%s want %s", svc.gotOwner, ownerID)
	}
	in := svc.gotShift
	if in.ScheduleID != scheduleID || in.EmployeeID != employeeID || in.TaskID != nil {
		t.Fatalf("unexpected ids: %+v", in)
	}
	if in.ShiftDate.Format(time.DateOnly) != "2024-05-01" || in.StartTime.Hour() != 9 || in.EndTime.Hour() != 13 {
		t.Fatalf("unexpected times: %+v", in)
	}
}

func TestCreateShiftOverlapCarriesConflicts(t *testing.T) {
	conflict := domainagg.ShiftRef{ID: uuid.New()}
	svc := &fakeSchedulingService{
		createShiftErr: domainagg.NewError(domainagg.CodeShiftOverlap, "Scheduling.Shift.Create",
			"shift overlaps existing shifts", &domainagg.OverlapError{Conflicts: []domainagg.ShiftRef{conflict}}),
	}
	r := newTestRouter(asOwner(uuid.New()))
	r.POST("/api/schedules/:id/shifts", NewSchedulingHandler(svc).CreateShift)

	body := `{"employee_id":"` + uuid.NewString() + `","shift_date":"2024-05-01",` +
		`"start_time":"2024-05-01T12:00:00Z","end_time":"2024-05-01T14:00:00Z"}`
	rec := doJSON(r, http.MethodPost, "/api/schedules/"+uuid.NewString()+"/shifts", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status=%d want 400", rec.Code)
	}
	apiErr := decodeError(t, rec)
	if apiErr.Code != string(domainagg.CodeShiftOverlap) {
		t.Fatalf("code=%q", apiErr.Code)
	}
	if len(apiErr.Conflicts) != 1 || apiErr.Conflicts[0].ID != conflict.ID {
		t.Fatalf("conflicts=%+v", apiErr.Conflicts)
	}
}

func TestCreateShiftRejectsMalformedInput(t *testing.T) {
	cases := map[string]string{
		"missing shift_date": `{"employee_id":"` + uuid.NewString() + `","start_time":"2024-05-01T09:00:00Z","end_time":"2024-05-01T13:00:00Z"}`,
		"bad employee":       `{"employee_id":"nope","shift_date":"2024-05-01","start_time":"2024-05-01T09:00:00Z","end_time":"2024-05-01T13:00:00Z"}`,
		"bad start":          `{"employee_id":"` + uuid.NewString() + `","shift_date":"2024-05-01","start_time":"9am","end_time":"2024-05-01T13:00:00Z"}`,
		"not json":           `{`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			svc := &fakeSchedulingService{}
			r := newTestRouter(asOwner(uuid.New()))
			r.POST("/api/schedules/:id/shifts", NewSchedulingHandler(svc).CreateShift)
			rec := doJSON(r, http.MethodPost, "/api/schedules/"+uuid.NewString()+"/shifts", body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status=%d want 400", rec.Code)
			}
			if code := decodeError(t, rec).Code; code != "invalid_request" {
				t.Fatalf("code=%q", code)
			}
			if svc.calls != 0 {
				t.Fatalf("service should not be called")
			}
		})
	}
}

func TestCreateShiftRejectsBadScheduleID(t *testing.T) {
	svc := &fakeSchedulingService{}
	r := newTestRouter(asOwner(uuid.New()))
	r.POST("/api/schedules/:id/shifts", NewSchedulingHandler(svc).CreateShift)
	rec := doJSON(r, http.MethodPost, "/api/schedules/not-a-uuid/shifts", `{}`)
	if rec.Code != http.StatusBadRequest || svc.calls != 0 {
		t.Fatalf("status=%d calls=%d", rec.Code, svc.calls)
	}
}

func TestListSchedulesDateRange(t *testing.T) {
	svc := &fakeSchedulingService{}
	r := newTestRouter(asOwner(uuid.New()))
	r.GET("/api/schedules", NewSchedulingHandler(svc).ListSchedules)

	rec := doJSON(r, http.MethodGet, "/api/schedules?from=2024-05-01", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	if svc.gotFrom == nil || svc.gotFrom.Format(time.DateOnly) != "2024-05-01" || svc.gotTo != nil {
		t.Fatalf("from=%v to=%v", svc.gotFrom, svc.gotTo)
	}

	rec = doJSON(r, http.MethodGet, "/api/schedules?to=05/01/2024", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status=%d want 400", rec.Code)
	}
}

func TestCreateEmployeeScopesToCaller(t *testing.T) {
	ownerID, accountID := uuid.New(), uuid.New()
	svc := &fakeRosterService{}
	r := newTestRouter(asOwner(ownerID))
	r.POST("/api/employees", NewRosterHandler(svc).CreateEmployee)

	body := `{"account_id":"` + accountID.String() + `","start_date":"2024-01-01","end_date":"2024-12-31"}`
	rec := doJSON(r, http.MethodPost, "/api/employees", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	in := svc.gotEmployee
	if in.OwnerID == nil || *in.OwnerID != ownerID || in.AccountID != accountID {
		t.Fatalf("unexpected input: %+v", in)
	}
	if in.ContractID != nil || in.EndDate == nil || in.EndDate.Format(time.DateOnly) != "2024-12-31" {
		t.Fatalf("unexpected optional fields: %+v", in)
	}
}

func TestRosterRoutesRequireOwner(t *testing.T) {
	svc := &fakeRosterService{}
	r := newTestRouter()
	r.GET("/api/tasks", NewRosterHandler(svc).ListTasks)
	rec := doJSON(r, http.MethodGet, "/api/tasks", "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status=%d want 403", rec.Code)
	}
	if code := decodeError(t, rec).Code; code != "not_owner" {
		t.Fatalf("code=%q", code)
	}
	if svc.calls != 0 {
		t.Fatalf("service should not be called")
	}
}

func TestTokenEndpoint(t *testing.T) {
	r := newTestRouter()
	r.POST("/api/token", NewAccountHandler(&fakeAccountService{}).Token)
	rec := doJSON(r, http.MethodPost, "/api/token", `{"email":"a@b.c","password":"secret"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d", rec.Code)
	}
	var tok services.TokenResult
	if err := json.Unmarshal(rec.Body.Bytes(), &tok); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if tok.AccessToken != "tok" || tok.TokenType != "Bearer" {
		t.Fatalf("unexpected token: %+v", tok)
	}

	r = newTestRouter()
	r.POST("/api/token", NewAccountHandler(&fakeAccountService{
		authErr: domainagg.NewError(domainagg.CodeValidation, "Account.Authenticate", "unable to log in with provided credentials", nil),
	}).Token)
	rec = doJSON(r, http.MethodPost, "/api/token", `{"email":"a@b.c","password":"wrong"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status=%d want 400", rec.Code)
	}
}

func TestHealthCheck(t *testing.T) {
	r := newTestRouter()
	r.GET("/healthcheck", NewHealthHandler(nil).HealthCheck)
	rec := doJSON(r, http.MethodGet, "/healthcheck", "")
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("status=%d body=%q", rec.Code, rec.Body.String())
	}
}
