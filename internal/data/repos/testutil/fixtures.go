package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/shiftplan-backend/internal/domain"
	"github.com/yungbote/shiftplan-backend/internal/domain/scheduling"
)

// Day parses YYYY-MM-DD as a UTC date.
func Day(tb testing.TB, s string) time.Time {
	tb.Helper()
	t, err := time.ParseInLocation(time.DateOnly, s, time.UTC)
	if err != nil {
		tb.Fatalf("parse day %q: %v", s, err)
	}
	return t
}

// At parses "YYYY-MM-DD HH:MM" as a UTC instant.
func At(tb testing.TB, s string) time.Time {
	tb.Helper()
	t, err := time.ParseInLocation("2006-01-02 15:04", s, time.UTC)
	if err != nil {
		tb.Fatalf("parse instant %q: %v", s, err)
	}
	return t
}

func SeedAccount(tb testing.TB, ctx context.Context, tx *gorm.DB, email string) *types.Account {
	tb.Helper()
	a := &types.Account{
		ID:       uuid.New(),
		Email:    email,
		Password: "pw",
		IsActive: true,
	}
	if err := tx.WithContext(ctx).Create(a).Error; err != nil {
		tb.Fatalf("seed account: %v", err)
	}
	return a
}

func SeedSuperuser(tb testing.TB, ctx context.Context, tx *gorm.DB, email string) *types.Account {
	tb.Helper()
	a := &types.Account{
		ID:          uuid.New(),
		Email:       email,
		Password:    "pw",
		IsActive:    true,
		IsStaff:     true,
		IsSuperuser: true,
	}
	if err := tx.WithContext(ctx).Create(a).Error; err != nil {
		tb.Fatalf("seed superuser: %v", err)
	}
	return a
}

func SeedOwner(tb testing.TB, ctx context.Context, tx *gorm.DB) *types.Owner {
	tb.Helper()
	acct := SeedAccount(tb, ctx, tx, "owner-"+uuid.NewString()+"@example.com")
	o := &types.Owner{ID: uuid.New(), AccountID: acct.ID}
	if err := tx.WithContext(ctx).Create(o).Error; err != nil {
		tb.Fatalf("seed owner: %v", err)
	}
	return o
}

func SeedContract(tb testing.TB, ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, weekHours int) *types.Contract {
	tb.Helper()
	c := &types.Contract{ID: uuid.New(), OwnerID: ownerID, WeekHours: weekHours}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed contract: %v", err)
	}
	return c
}

func SeedTask(tb testing.TB, ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, name string) *types.Task {
	tb.Helper()
	t := &types.Task{ID: uuid.New(), OwnerID: ownerID, Name: name}
	if err := tx.WithContext(ctx).Create(t).Error; err != nil {
		tb.Fatalf("seed task: %v", err)
	}
	return t
}

func SeedEmployee(tb testing.TB, ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, contractID *uuid.UUID) *types.Employee {
	tb.Helper()
	acct := SeedAccount(tb, ctx, tx, "employee-"+uuid.NewString()+"@example.com")
	owner := ownerID
	e := &types.Employee{
		ID:         uuid.New(),
		AccountID:  acct.ID,
		OwnerID:    &owner,
		ContractID: contractID,
		StartDate:  scheduling.NormalizeDate(Day(tb, "2024-01-01")),
	}
	if err := tx.WithContext(ctx).Create(e).Error; err != nil {
		tb.Fatalf("seed employee: %v", err)
	}
	return e
}

// SeedSchedule creates a schedule on day ("YYYY-MM-DD") spanning the given
// "HH:MM" bounds.
func SeedSchedule(tb testing.TB, ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, day, start, end string) *types.Schedule {
	tb.Helper()
	s := &types.Schedule{
		ID:      uuid.New(),
		OwnerID: ownerID,
		Date:    scheduling.NormalizeDate(Day(tb, day)),
		Start:   At(tb, day+" "+start),
		End:     At(tb, day+" "+end),
	}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed schedule: %v", err)
	}
	return s
}

func SeedShift(tb testing.TB, ctx context.Context, tx *gorm.DB, sched *types.Schedule, employeeID uuid.UUID, start, end string) *types.Shift {
	tb.Helper()
	day := scheduling.FormatDate(sched.Date)
	s := &types.Shift{
		ID:         uuid.New(),
		ScheduleID: sched.ID,
		EmployeeID: employeeID,
		ShiftDate:  sched.Date,
		StartTime:  At(tb, day+" "+start),
		EndTime:    At(tb, day+" "+end),
	}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed shift: %v", err)
	}
	return s
}
