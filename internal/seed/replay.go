package seed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/shiftplan-backend/internal/data/repos"
	"github.com/yungbote/shiftplan-backend/internal/domain/account"
	domainagg "github.com/yungbote/shiftplan-backend/internal/domain/aggregates"
	"github.com/yungbote/shiftplan-backend/internal/platform/dbctx"
	"github.com/yungbote/shiftplan-backend/internal/platform/logger"
	"github.com/yungbote/shiftplan-backend/internal/services"
)

// CodeInvalidInput marks seed rows whose fields could not be parsed.
const CodeInvalidInput = "invalid_input"

type Rejection struct {
	Entity  string
	Key     string
	Code    string
	Message string
}

type Report struct {
	Created    map[string]int
	Reused     int
	Rejections []Rejection
}

func (r Report) OK() bool { return len(r.Rejections) == 0 }

type Replayer struct {
	log        *logger.Logger
	accounts   services.AccountService
	accountDB  repos.AccountRepo
	roster     services.RosterService
	scheduling services.SchedulingService
}

func NewReplayer(
	log *logger.Logger,
	accounts services.AccountService,
	accountDB repos.AccountRepo,
	roster services.RosterService,
	scheduling services.SchedulingService,
) *Replayer {
	return &Replayer{
		log:        log.With("component", "SeedReplayer"),
		accounts:   accounts,
		accountDB:  accountDB,
		roster:     roster,
		scheduling: scheduling,
	}
}

// replayRun holds the per-run lookup tables.
type replayRun struct {
	ctx       context.Context
	report    *Report
	accountID map[string]uuid.UUID
}

// Replay writes doc in dependency order. A rejected row is recorded and its
// dependents are skipped; the remaining rows are still attempted.
func (p *Replayer) Replay(ctx context.Context, doc *Document) Report {
	report := Report{Created: map[string]int{}}
	if doc == nil {
		return report
	}
	run := &replayRun{ctx: ctx, report: &report, accountID: map[string]uuid.UUID{}}

	for _, entry := range doc.Superusers {
		p.account(run, entry, true)
	}
	for _, entry := range doc.Accounts {
		p.account(run, entry, false)
	}
	for _, entry := range doc.Owners {
		p.owner(run, entry)
	}
	p.log.Info("Seed replay finished",
		"created", report.Created,
		"reused_accounts", report.Reused,
		"rejections", len(report.Rejections),
	)
	return report
}

func (p *Replayer) reject(run *replayRun, entity, key string, err error) {
	code := string(domainagg.CodeOf(err))
	if code == "" {
		code = CodeInvalidInput
	}
	run.report.Rejections = append(run.report.Rejections, Rejection{Entity: entity, Key: key, Code: code, Message: err.Error()})
	p.log.Warn("Seed row rejected", "entity", entity, "key", key, "code", code, "error", err)
}

func (p *Replayer) account(run *replayRun, entry AccountSpec, superuser bool) {
	email := account.NormalizeEmail(strings.TrimSpace(entry.Email))
	existing, err := p.accountDB.GetByEmail(dbctx.Context{Ctx: run.ctx}, email)
	if err != nil {
		p.reject(run, "account", entry.Email, err)
		return
	}
	if existing != nil {
		run.accountID[email] = existing.ID
		run.report.Reused++
		return
	}

	var created uuid.UUID
	if superuser {
		row, err := p.accounts.RegisterSuperuser(run.ctx, entry.Email, entry.Password)
		if err != nil {
			p.reject(run, "superuser", entry.Email, err)
			return
		}
		created = row.ID
	} else {
		row, err := p.accounts.Register(run.ctx, services.RegisterInput{
			Email:    entry.Email,
			Password: entry.Password,
			Name:     entry.Name,
			Profile:  entry.Profile,
		})
		if err != nil {
			p.reject(run, "account", entry.Email, err)
			return
		}
		created = row.ID
	}
	run.accountID[email] = created
	run.report.Created["account"]++
}

func (p *Replayer) lookupAccount(run *replayRun, email string) (uuid.UUID, error) {
	id, ok := run.accountID[account.NormalizeEmail(strings.TrimSpace(email))]
	if !ok {
		return uuid.Nil, fmt.Errorf("account %q is not declared in the seed file", email)
	}
	return id, nil
}

func (p *Replayer) owner(run *replayRun, entry OwnerSpec) {
	accountID, err := p.lookupAccount(run, entry.Account)
	if err != nil {
		p.reject(run, "owner", entry.Account, err)
		return
	}
	owner, err := p.roster.CreateOwner(run.ctx, accountID)
	if err != nil {
		p.reject(run, "owner", entry.Account, err)
		return
	}
	run.report.Created["owner"]++

	contractByHours := map[int]uuid.UUID{}
	for _, hours := range entry.Contracts {
		row, err := p.roster.CreateContract(run.ctx, owner.ID, hours)
		if err != nil {
			p.reject(run, "contract", fmt.Sprintf("%s/%dh", entry.Account, hours), err)
			continue
		}
		contractByHours[hours] = row.ID
		run.report.Created["contract"]++
	}

	taskByName := map[string]uuid.UUID{}
	for _, name := range entry.Tasks {
		row, err := p.roster.CreateTask(run.ctx, owner.ID, name)
		if err != nil {
			p.reject(run, "task", entry.Account+"/"+name, err)
			continue
		}
		taskByName[strings.ToLower(row.Name)] = row.ID
		run.report.Created["task"]++
	}

	employeeByEmail := map[string]uuid.UUID{}
	for _, es := range entry.Employees {
		id, err := p.employee(run, owner.ID, es, contractByHours)
		if err != nil {
			p.reject(run, "employee", es.Account, err)
			continue
		}
		employeeByEmail[account.NormalizeEmail(strings.TrimSpace(es.Account))] = id
		run.report.Created["employee"]++
	}

	for _, ss := range entry.Schedules {
		p.schedule(run, owner.ID, ss, employeeByEmail, taskByName)
	}
}

func (p *Replayer) employee(run *replayRun, ownerID uuid.UUID, entry EmployeeSpec, contracts map[int]uuid.UUID) (uuid.UUID, error) {
	accountID, err := p.lookupAccount(run, entry.Account)
	if err != nil {
		return uuid.Nil, err
	}
	start, err := parseDay("start_date", entry.StartDate)
	if err != nil {
		return uuid.Nil, err
	}
	in := services.CreateEmployeeInput{AccountID: accountID, OwnerID: &ownerID, StartDate: start}
	if strings.TrimSpace(entry.EndDate) != "" {
		end, err := parseDay("end_date", entry.EndDate)
		if err != nil {
			return uuid.Nil, err
		}
		in.EndDate = &end
	}
	if entry.ContractHours != 0 {
		contractID, ok := contracts[entry.ContractHours]
		if !ok {
			return uuid.Nil, fmt.Errorf("no %dh contract declared for this owner", entry.ContractHours)
		}
		in.ContractID = &contractID
	}
	row, err := p.roster.CreateEmployee(run.ctx, in)
	if err != nil {
		return uuid.Nil, err
	}
	return row.ID, nil
}

func (p *Replayer) schedule(run *replayRun, ownerID uuid.UUID, entry ScheduleSpec, employees, tasks map[string]uuid.UUID) {
	win, err := scheduleWindow(entry)
	if err != nil {
		p.reject(run, "schedule", entry.Date, err)
		return
	}
	sched, err := p.scheduling.CreateSchedule(run.ctx, ownerID, win)
	if err != nil {
		p.reject(run, "schedule", entry.Date, err)
		return
	}
	run.report.Created["schedule"]++

	for _, sh := range entry.Shifts {
		key := fmt.Sprintf("%s/%s/%s", entry.Date, sh.Employee, sh.Start)
		in, err := shiftInput(sched.ID, entry.Date, sh, employees, tasks)
		if err != nil {
			p.reject(run, "shift", key, err)
			continue
		}
		if _, err := p.scheduling.CreateShift(run.ctx, ownerID, in); err != nil {
			p.reject(run, "shift", key, err)
			continue
		}
		run.report.Created["shift"]++
	}
}

func scheduleWindow(entry ScheduleSpec) (services.ScheduleWindow, error) {
	day, err := parseDay("date", entry.Date)
	if err != nil {
		return services.ScheduleWindow{}, err
	}
	start, err := parseInstant("start", entry.Start)
	if err != nil {
		return services.ScheduleWindow{}, err
	}
	end, err := parseInstant("end", entry.End)
	if err != nil {
		return services.ScheduleWindow{}, err
	}
	return services.ScheduleWindow{Date: day, Start: start, End: end}, nil
}

func shiftInput(scheduleID uuid.UUID, scheduleDate string, entry ShiftSpec, employees, tasks map[string]uuid.UUID) (services.ShiftInput, error) {
	employeeID, ok := employees[account.NormalizeEmail(strings.TrimSpace(entry.Employee))]
	if !ok {
		return services.ShiftInput{}, fmt.Errorf("employee %q is not declared under this owner", entry.Employee)
	}
	in := services.ShiftInput{ScheduleID: scheduleID, EmployeeID: employeeID}
	if name := strings.TrimSpace(entry.Task); name != "" {
		taskID, ok := tasks[strings.ToLower(name)]
		if !ok {
			return services.ShiftInput{}, fmt.Errorf("task %q is not declared under this owner", entry.Task)
		}
		in.TaskID = &taskID
	}
	date := entry.Date
	if strings.TrimSpace(date) == "" {
		date = scheduleDate
	}
	var err error
	if in.ShiftDate, err = parseDay("date", date); err != nil {
		return services.ShiftInput{}, err
	}
	if in.StartTime, err = parseInstant("start", entry.Start); err != nil {
		return services.ShiftInput{}, err
	}
	if in.EndTime, err = parseInstant("end", entry.End); err != nil {
		return services.ShiftInput{}, err
	}
	return in, nil
}

func parseDay(field, raw string) (time.Time, error) {
	d, err := time.ParseInLocation(time.DateOnly, strings.TrimSpace(raw), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be YYYY-MM-DD, got %q", field, raw)
	}
	return d, nil
}

func parseInstant(field, raw string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be RFC3339, got %q", field, raw)
	}
	return t, nil
}
