package aggregates

import (
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/shiftplan-backend/internal/data/repos"
	repotest "github.com/yungbote/shiftplan-backend/internal/data/repos/testutil"
	types "github.com/yungbote/shiftplan-backend/internal/domain"
	domainagg "github.com/yungbote/shiftplan-backend/internal/domain/aggregates"
	"github.com/yungbote/shiftplan-backend/internal/platform/dbctx"
)

// lockingAccounts records which account reads went through the row lock.
type lockingAccounts struct {
	repos.AccountRepo

	mu       sync.Mutex
	locked   []uuid.UUID
	unlocked []uuid.UUID
}

func (l *lockingAccounts) LockByID(dbc dbctx.Context, id uuid.UUID) (*types.Account, error) {
	l.mu.Lock()
	l.locked = append(l.locked, id)
	l.mu.Unlock()
	return l.AccountRepo.LockByID(dbc, id)
}

func (l *lockingAccounts) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Account, error) {
	l.mu.Lock()
	l.unlocked = append(l.unlocked, id)
	l.mu.Unlock()
	return l.AccountRepo.GetByID(dbc, id)
}

func (l *lockingAccounts) assertLocked(t *testing.T, id uuid.UUID) {
	t.Helper()
	l.mu.Lock()
	defer l.mu.Unlock()
	found := false
	for _, got := range l.locked {
		if got == id {
			found = true
		}
	}
	if !found {
		t.Fatalf("account %s was not read under a row lock (locked=%v)", id, l.locked)
	}
	for _, got := range l.unlocked {
		if got == id {
			t.Fatalf("account %s was also read without a lock", id)
		}
	}
}

func TestCreateOwnerLocksAccountRow(t *testing.T) {
	f := newAggFixture(t)
	spy := &lockingAccounts{AccountRepo: f.accounts}
	f.accounts = spy

	acct := repotest.SeedAccount(t, f.ctx, f.tx, "lock-owner@example.com")
	if _, err := f.ownerAggregate().CreateOwner(f.ctx, domainagg.CreateOwnerInput{AccountID: acct.ID}); err != nil {
		t.Fatalf("CreateOwner: %v", err)
	}
	spy.assertLocked(t, acct.ID)
}

func TestCreateEmployeeLocksAccountRow(t *testing.T) {
	f := newAggFixture(t)
	spy := &lockingAccounts{AccountRepo: f.accounts}
	f.accounts = spy

	owner := repotest.SeedOwner(t, f.ctx, f.tx)
	acct := repotest.SeedAccount(t, f.ctx, f.tx, "lock-employee@example.com")
	_, err := f.rosterAggregate().CreateEmployee(f.ctx, domainagg.CreateEmployeeInput{
		AccountID: acct.ID,
		OwnerID:   &owner.ID,
		StartDate: repotest.Day(t, "2024-01-01"),
	})
	if err != nil {
		t.Fatalf("CreateEmployee: %v", err)
	}
	spy.assertLocked(t, acct.ID)
}

func TestRoleGuardsLockBeforeRejecting(t *testing.T) {
	f := newAggFixture(t)
	spy := &lockingAccounts{AccountRepo: f.accounts}
	f.accounts = spy

	owner := repotest.SeedOwner(t, f.ctx, f.tx)
	_, err := f.rosterAggregate().CreateEmployee(f.ctx, domainagg.CreateEmployeeInput{
		AccountID: owner.AccountID,
		OwnerID:   &owner.ID,
		StartDate: repotest.Day(t, "2024-01-01"),
	})
	if !domainagg.IsCode(err, domainagg.CodeRoleConflict) {
		t.Fatalf("owner as employee: want role_conflict got %q", domainagg.CodeOf(err))
	}
	spy.assertLocked(t, owner.AccountID)

	emp := repotest.SeedEmployee(t, f.ctx, f.tx, owner.ID, nil)
	_, err = f.ownerAggregate().CreateOwner(f.ctx, domainagg.CreateOwnerInput{AccountID: emp.AccountID})
	if !domainagg.IsCode(err, domainagg.CodeRoleConflict) {
		t.Fatalf("employee as owner: want role_conflict got %q", domainagg.CodeOf(err))
	}
	spy.assertLocked(t, emp.AccountID)
}
