package db

import (
	"fmt"

	"gorm.io/gorm"

	types "github.com/yungbote/shiftplan-backend/internal/domain"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(migratedModels()...)
}

func migratedModels() []interface{} {
	return []interface{}{
		// =========================
		// Identity
		// =========================
		&types.Account{},

		// =========================
		// Roster
		// =========================
		&types.Owner{},
		&types.Contract{},
		&types.Task{},
		&types.Employee{},

		// =========================
		// Scheduling
		// =========================
		&types.Schedule{},
		&types.Shift{},
	}
}

type foreignKey struct {
	name     string
	table    string
	column   string
	refTable string
	onDelete string
}

// deleteActionCode maps an ON DELETE action to pg_constraint.confdeltype.
var deleteActionCode = map[string]string{
	"CASCADE":   "c",
	"SET NULL":  "n",
	"RESTRICT":  "r",
	"NO ACTION": "a",
}

// statement creates the constraint, replacing a same-named one whose delete
// action differs.
func (fk foreignKey) statement() string {
	return fmt.Sprintf(`
		DO $$
		BEGIN
			IF NOT EXISTS (
				SELECT 1 FROM pg_constraint WHERE conname = '%s' AND confdeltype = '%s'
			) THEN
				ALTER TABLE "%s" DROP CONSTRAINT IF EXISTS "%s";
				ALTER TABLE "%s"
				ADD CONSTRAINT "%s"
				FOREIGN KEY ("%s")
				REFERENCES "%s"("id")
				ON DELETE %s;
			END IF;
		END $$;
	`, fk.name, deleteActionCode[fk.onDelete],
		fk.table, fk.name,
		fk.table, fk.name, fk.column, fk.refTable, fk.onDelete)
}

// rosterForeignKeys is the only source of foreign keys. Models must not carry
// association fields; AutoMigrate would name their constraints the same way.
var rosterForeignKeys = []foreignKey{
	{name: "fk_owner_account", table: "owner", column: "account_id", refTable: "account", onDelete: "CASCADE"},
	{name: "fk_employee_account", table: "employee", column: "account_id", refTable: "account", onDelete: "CASCADE"},
	{name: "fk_employee_owner", table: "employee", column: "owner_id", refTable: "owner", onDelete: "SET NULL"},
	{name: "fk_employee_contract", table: "employee", column: "contract_id", refTable: "contract", onDelete: "SET NULL"},
	{name: "fk_contract_owner", table: "contract", column: "owner_id", refTable: "owner", onDelete: "CASCADE"},
	{name: "fk_task_owner", table: "task", column: "owner_id", refTable: "owner", onDelete: "CASCADE"},
	{name: "fk_schedule_owner", table: "schedule", column: "owner_id", refTable: "owner", onDelete: "CASCADE"},
	{name: "fk_shift_schedule", table: "shift", column: "schedule_id", refTable: "schedule", onDelete: "CASCADE"},
	{name: "fk_shift_employee", table: "shift", column: "employee_id", refTable: "employee", onDelete: "CASCADE"},
	{name: "fk_shift_task", table: "shift", column: "task_id", refTable: "task", onDelete: "SET NULL"},
}

// EnsureSchedulingConstraints installs the Postgres-only referential actions
// and the per-employee shift exclusion constraint. It is a no-op on other dialects.
func EnsureSchedulingConstraints(db *gorm.DB) error {
	if db.Dialector.Name() != "postgres" {
		return nil
	}
	for _, fk := range rosterForeignKeys {
		if err := db.Exec(fk.statement()).Error; err != nil {
			return fmt.Errorf("create %s: %w", fk.name, err)
		}
	}

	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist;`).Error; err != nil {
		return fmt.Errorf("enable btree_gist: %w", err)
	}
	// Backstop for concurrent placements: open ranges let back-to-back shifts coexist.
	if err := db.Exec(`
		DO $$
		BEGIN
			IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'excl_shift_employee_overlap') THEN
				ALTER TABLE "shift"
				ADD CONSTRAINT "excl_shift_employee_overlap"
				EXCLUDE USING gist (
					employee_id WITH =,
					shift_date WITH =,
					tstzrange(start_time, end_time, '()') WITH &&
				);
			END IF;
		END $$;
	`).Error; err != nil {
		return fmt.Errorf("create excl_shift_employee_overlap: %w", err)
	}
	return nil
}
