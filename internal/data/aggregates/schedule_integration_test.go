package aggregates

import (
	"testing"

	"github.com/google/uuid"

	repotest "github.com/yungbote/shiftplan-backend/internal/data/repos/testutil"
	types "github.com/yungbote/shiftplan-backend/internal/domain"
	domainagg "github.com/yungbote/shiftplan-backend/internal/domain/aggregates"
)

func TestScheduleAggregateCreate(t *testing.T) {
	f := newAggFixture(t)
	owner := repotest.SeedOwner(t, f.ctx, f.tx)
	agg := f.scheduleAggregate()

	res, err := agg.CreateSchedule(f.ctx, domainagg.ScheduleInput{
		OwnerID: owner.ID,
		Date:    repotest.Day(t, "2024-03-04"),
		Start:   repotest.At(t, "2024-03-04 07:00"),
		End:     repotest.At(t, "2024-03-05 02:00"),
	})
	if err != nil {
		t.Fatalf("CreateSchedule overnight window: %v", err)
	}
	if res.ScheduleID == uuid.Nil || res.OwnerID != owner.ID {
		t.Fatalf("CreateSchedule: unexpected result %+v", res)
	}

	_, err = agg.CreateSchedule(f.ctx, domainagg.ScheduleInput{
		OwnerID: owner.ID,
		Date:    repotest.Day(t, "2024-03-04"),
		Start:   repotest.At(t, "2024-03-04 08:00"),
		End:     repotest.At(t, "2024-03-04 18:00"),
	})
	if !domainagg.IsCode(err, domainagg.CodeConflict) {
		t.Fatalf("duplicate day: want conflict got %q (%v)", domainagg.CodeOf(err), err)
	}
	if len(f.hooks.Conflicts) != 1 {
		t.Fatalf("conflict hooks: %+v", f.hooks.Conflicts)
	}

	cases := []struct {
		name       string
		date       string
		start, end string
		want       domainagg.ErrorCode
	}{
		{name: "start on another day", date: "2024-03-06", start: "2024-03-07 08:00", end: "2024-03-07 18:00", want: domainagg.CodeDateMismatch},
		{name: "end before start", date: "2024-03-06", start: "2024-03-06 18:00", end: "2024-03-06 08:00", want: domainagg.CodeInvalidTimeRange},
		{name: "empty window", date: "2024-03-06", start: "2024-03-06 08:00", end: "2024-03-06 08:00", want: domainagg.CodeInvalidTimeRange},
	}
	for _, tc := range cases {
		_, err := agg.CreateSchedule(f.ctx, domainagg.ScheduleInput{
			OwnerID: owner.ID,
			Date:    repotest.Day(t, tc.date),
			Start:   repotest.At(t, tc.start),
			End:     repotest.At(t, tc.end),
		})
		if !domainagg.IsCode(err, tc.want) {
			t.Fatalf("%s: want %s got %q (%v)", tc.name, tc.want, domainagg.CodeOf(err), err)
		}
	}

	_, err = agg.CreateSchedule(f.ctx, domainagg.ScheduleInput{
		OwnerID: uuid.New(),
		Date:    repotest.Day(t, "2024-03-06"),
		Start:   repotest.At(t, "2024-03-06 08:00"),
		End:     repotest.At(t, "2024-03-06 18:00"),
	})
	if !domainagg.IsCode(err, domainagg.CodeNotFound) {
		t.Fatalf("unknown owner: want not_found got %q", domainagg.CodeOf(err))
	}
}

func TestScheduleAggregateUpdate(t *testing.T) {
	f := newAggFixture(t)
	owner := repotest.SeedOwner(t, f.ctx, f.tx)
	monday := repotest.SeedSchedule(t, f.ctx, f.tx, owner.ID, "2024-03-04", "07:00", "20:00")
	repotest.SeedSchedule(t, f.ctx, f.tx, owner.ID, "2024-03-05", "07:00", "20:00")
	agg := f.scheduleAggregate()

	res, err := agg.UpdateSchedule(f.ctx, domainagg.ScheduleInput{
		ScheduleID: monday.ID,
		OwnerID:    owner.ID,
		Date:       repotest.Day(t, "2024-03-04"),
		Start:      repotest.At(t, "2024-03-04 06:00"),
		End:        repotest.At(t, "2024-03-04 22:00"),
	})
	if err != nil {
		t.Fatalf("UpdateSchedule same day: %v", err)
	}
	if !res.Start.Equal(repotest.At(t, "2024-03-04 06:00")) {
		t.Fatalf("UpdateSchedule: start not applied: %v", res.Start)
	}

	_, err = agg.UpdateSchedule(f.ctx, domainagg.ScheduleInput{
		ScheduleID: monday.ID,
		OwnerID:    owner.ID,
		Date:       repotest.Day(t, "2024-03-05"),
		Start:      repotest.At(t, "2024-03-05 07:00"),
		End:        repotest.At(t, "2024-03-05 20:00"),
	})
	if !domainagg.IsCode(err, domainagg.CodeConflict) {
		t.Fatalf("move onto taken day: want conflict got %q", domainagg.CodeOf(err))
	}

	_, err = agg.UpdateSchedule(f.ctx, domainagg.ScheduleInput{
		ScheduleID: monday.ID,
		OwnerID:    uuid.New(),
		Date:       repotest.Day(t, "2024-03-04"),
		Start:      repotest.At(t, "2024-03-04 07:00"),
		End:        repotest.At(t, "2024-03-04 20:00"),
	})
	if !domainagg.IsCode(err, domainagg.CodeNotFound) {
		t.Fatalf("foreign owner: want not_found got %q", domainagg.CodeOf(err))
	}
}

func TestScheduleAggregateDeleteCascadesShifts(t *testing.T) {
	f := newAggFixture(t)
	owner := repotest.SeedOwner(t, f.ctx, f.tx)
	emp := repotest.SeedEmployee(t, f.ctx, f.tx, owner.ID, nil)
	sched := repotest.SeedSchedule(t, f.ctx, f.tx, owner.ID, "2024-03-04", "07:00", "20:00")
	keep := repotest.SeedSchedule(t, f.ctx, f.tx, owner.ID, "2024-03-05", "07:00", "20:00")
	repotest.SeedShift(t, f.ctx, f.tx, sched, emp.ID, "09:00", "13:00")
	repotest.SeedShift(t, f.ctx, f.tx, sched, emp.ID, "14:00", "18:00")
	repotest.SeedShift(t, f.ctx, f.tx, keep, emp.ID, "09:00", "13:00")
	agg := f.scheduleAggregate()

	res, err := agg.DeleteSchedule(f.ctx, domainagg.DeleteScheduleInput{OwnerID: owner.ID, ScheduleID: sched.ID})
	if err != nil {
		t.Fatalf("DeleteSchedule: %v", err)
	}
	if res.ShiftsRemoved != 2 {
		t.Fatalf("ShiftsRemoved: want=2 got=%d", res.ShiftsRemoved)
	}
	if n := f.countRows(t, &types.Schedule{}, "id = ?", sched.ID); n != 0 {
		t.Fatalf("schedule still present")
	}
	if n := f.countRows(t, &types.Shift{}, "schedule_id = ?", keep.ID); n != 1 {
		t.Fatalf("shifts of other schedules must survive: got %d", n)
	}
}
