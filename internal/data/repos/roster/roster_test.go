package roster

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/shiftplan-backend/internal/data/repos/testutil"
	"github.com/yungbote/shiftplan-backend/internal/platform/dbctx"
)

func TestEmployeeRepoDetach(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	owner := testutil.SeedOwner(t, ctx, tx)
	contract := testutil.SeedContract(t, ctx, tx, owner.ID, 38)
	emp := testutil.SeedEmployee(t, ctx, tx, owner.ID, &contract.ID)

	repo := NewEmployeeRepo(db, testutil.Logger(t))

	listed, err := repo.ListByOwner(dbc, owner.ID)
	if err != nil {
		t.Fatalf("ListByOwner: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != emp.ID {
		t.Fatalf("ListByOwner: unexpected result: %+v", listed)
	}

	n, err := repo.DetachContracts(dbc, []uuid.UUID{contract.ID})
	if err != nil {
		t.Fatalf("DetachContracts: %v", err)
	}
	if n != 1 {
		t.Fatalf("DetachContracts: expected 1 row, got %d", n)
	}
	n, err = repo.DetachOwner(dbc, owner.ID)
	if err != nil {
		t.Fatalf("DetachOwner: %v", err)
	}
	if n != 1 {
		t.Fatalf("DetachOwner: expected 1 row, got %d", n)
	}

	got, err := repo.LockByID(dbc, emp.ID)
	if err != nil {
		t.Fatalf("LockByID: %v", err)
	}
	if got == nil {
		t.Fatalf("LockByID: employee must survive detachment")
	}
	if got.OwnerID != nil || got.ContractID != nil {
		t.Fatalf("expected owner/contract links to be nulled, got owner=%v contract=%v", got.OwnerID, got.ContractID)
	}
}

func TestContractAndTaskRepos(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	owner := testutil.SeedOwner(t, ctx, tx)

	contracts := NewContractRepo(db, testutil.Logger(t))
	testutil.SeedContract(t, ctx, tx, owner.ID, 40)
	testutil.SeedContract(t, ctx, tx, owner.ID, 20)

	list, err := contracts.ListByOwner(dbc, owner.ID)
	if err != nil {
		t.Fatalf("ListByOwner: %v", err)
	}
	if len(list) != 2 || list[0].WeekHours != 20 || list[1].WeekHours != 40 {
		t.Fatalf("ListByOwner: expected [20 40], got %+v", list)
	}
	found, err := contracts.GetByOwnerHours(dbc, owner.ID, 40)
	if err != nil || found == nil {
		t.Fatalf("GetByOwnerHours: got=%v err=%v", found, err)
	}

	tasks := NewTaskRepo(db, testutil.Logger(t))
	testutil.SeedTask(t, ctx, tx, owner.ID, "Kitchen")
	task, err := tasks.GetByOwnerName(dbc, owner.ID, " Kitchen ")
	if err != nil || task == nil {
		t.Fatalf("GetByOwnerName: got=%v err=%v", task, err)
	}

	n, err := contracts.DeleteByOwner(dbc, owner.ID)
	if err != nil || n != 2 {
		t.Fatalf("DeleteByOwner(contracts): n=%d err=%v", n, err)
	}
	n, err = tasks.DeleteByOwner(dbc, owner.ID)
	if err != nil || n != 1 {
		t.Fatalf("DeleteByOwner(tasks): n=%d err=%v", n, err)
	}
}

func TestOwnerRepoLookup(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	owner := testutil.SeedOwner(t, ctx, tx)

	repo := NewOwnerRepo(db, testutil.Logger(t))
	got, err := repo.GetByAccountID(dbc, owner.AccountID)
	if err != nil {
		t.Fatalf("GetByAccountID: %v", err)
	}
	if got == nil || got.ID != owner.ID {
		t.Fatalf("GetByAccountID: unexpected result: %+v", got)
	}
	none, err := repo.GetByAccountID(dbc, uuid.New())
	if err != nil {
		t.Fatalf("GetByAccountID(missing): %v", err)
	}
	if none != nil {
		t.Fatalf("GetByAccountID(missing): expected nil")
	}
}
