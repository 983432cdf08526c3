package db

import (
	"reflect"
	"testing"

	"github.com/Datahenge/schemasync/schema"
)

func TestGroupForeignKeysComposite(t *testing.T) {
	rows := []foreignKeyRow{
		{name: "fk_children_parent", column: "x", refTable: "parents", refColumn: "a"},
		{name: "fk_children_parent", column: "y", refTable: "parents", refColumn: "b"},
		{name: "fk_children_owner", column: "owner_id", refTable: "owners", refColumn: "id"},
	}

	constraints := groupForeignKeys("app", rows)
	if len(constraints) != 2 {
		t.Fatalf("constraints = %d, want 2", len(constraints))
	}

	composite := constraints[0]
	if composite.ConstraintName.Name != "fk_children_parent" {
		t.Errorf("name = %q, want fk_children_parent", composite.ConstraintName.Name)
	}
	if want := []schema.LocalID{{Name: "x"}, {Name: "y"}}; !reflect.DeepEqual(composite.Columns, want) {
		t.Errorf("columns = %v, want %v", composite.Columns, want)
	}
	if composite.Reference.Table != (schema.QualifiedID{Namespace: "app", Name: "parents"}) {
		t.Errorf("referenced table = %v, want app.parents", composite.Reference.Table)
	}
	if want := []schema.LocalID{{Name: "a"}, {Name: "b"}}; !reflect.DeepEqual(composite.Reference.Columns, want) {
		t.Errorf("referenced columns = %v, want %v", composite.Reference.Columns, want)
	}

	want := `CONSTRAINT "fk_children_parent" FOREIGN KEY ("x", "y") REFERENCES "app"."parents" ("a", "b")`
	if got := composite.Spec(); got != want {
		t.Errorf("spec = %s, want %s", got, want)
	}

	single := constraints[1]
	if len(single.Columns) != 1 || single.Columns[0].Name != "owner_id" {
		t.Errorf("single-column constraint = %v", single.Columns)
	}
}

func TestGroupForeignKeysInterleaved(t *testing.T) {
	// grouping goes by name even if an engine interleaves constraint rows
	rows := []foreignKeyRow{
		{name: "fk_a", column: "x", refTable: "parents", refColumn: "a"},
		{name: "fk_b", column: "z", refTable: "owners", refColumn: "id"},
		{name: "fk_a", column: "y", refTable: "parents", refColumn: "b"},
	}

	constraints := groupForeignKeys("", rows)
	if len(constraints) != 2 {
		t.Fatalf("constraints = %d, want 2", len(constraints))
	}
	if want := []schema.LocalID{{Name: "x"}, {Name: "y"}}; !reflect.DeepEqual(constraints[0].Columns, want) {
		t.Errorf("columns = %v, want %v", constraints[0].Columns, want)
	}
}

func TestGroupForeignKeysEmpty(t *testing.T) {
	if got := groupForeignKeys("app", nil); got != nil {
		t.Errorf("expected nil for no rows, got %v", got)
	}
}
