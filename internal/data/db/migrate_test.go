package db

import (
	"strings"
	"sync"
	"testing"

	"gorm.io/gorm/schema"
)

func TestMigratedModelsDeclareNoGormConstraints(t *testing.T) {
	explicit := map[string]foreignKey{}
	for _, fk := range rosterForeignKeys {
		explicit[fk.name] = fk
	}

	cache := &sync.Map{}
	for _, model := range migratedModels() {
		s, err := schema.Parse(model, cache, schema.NamingStrategy{})
		if err != nil {
			t.Fatalf("parse %T: %v", model, err)
		}
		for name, rel := range s.Relationships.Relations {
			c := rel.ParseConstraint()
			if c == nil {
				continue
			}
			_, clash := explicit[c.Name]
			t.Fatalf("%s.%s generates constraint %q (same name as an explicit key: %v)", s.Table, name, c.Name, clash)
		}
	}
}

func TestAccountForeignKeysCascade(t *testing.T) {
	seen := map[string]bool{}
	for _, fk := range rosterForeignKeys {
		if seen[fk.name] {
			t.Fatalf("duplicate constraint name %q", fk.name)
		}
		seen[fk.name] = true
		if fk.refTable == "account" && fk.onDelete != "CASCADE" {
			t.Fatalf("%s: want ON DELETE CASCADE got %s", fk.name, fk.onDelete)
		}
	}
	for _, table := range []string{"owner", "employee"} {
		found := false
		for _, fk := range rosterForeignKeys {
			if fk.table == table && fk.column == "account_id" {
				found = true
			}
		}
		if !found {
			t.Fatalf("%s.account_id has no foreign key", table)
		}
	}
}

func TestForeignKeyStatementReplacesMismatchedAction(t *testing.T) {
	for _, fk := range rosterForeignKeys {
		code, ok := deleteActionCode[fk.onDelete]
		if !ok {
			t.Fatalf("%s: no confdeltype for %q", fk.name, fk.onDelete)
		}
		stmt := fk.statement()
		if !strings.Contains(stmt, "confdeltype = '"+code+"'") {
			t.Fatalf("%s: guard does not check the delete action:\n%s", fk.name, stmt)
		}
		if !strings.Contains(stmt, `DROP CONSTRAINT IF EXISTS "`+fk.name+`"`) {
			t.Fatalf("%s: stale constraint is not dropped:\n%s", fk.name, stmt)
		}
		if !strings.Contains(stmt, "ON DELETE "+fk.onDelete) {
			t.Fatalf("%s: missing ON DELETE %s", fk.name, fk.onDelete)
		}
	}
}
