//go:build integration
// +build integration

package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Datahenge/schemasync/dialect"
	"github.com/Datahenge/schemasync/schema"
)

func newSQLiteTestClient(t *testing.T) *SQLiteClient {
	t.Helper()
	ctx := context.Background()

	client, err := NewSQLiteClient(ctx, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open SQLite: %v", err)
	}
	t.Cleanup(func() { client.Close() })

	ddl := `
		CREATE TABLE users (
			id INTEGER NOT NULL,
			username TEXT NOT NULL,
			PRIMARY KEY (id)
		);
		CREATE TABLE orders (
			id INTEGER NOT NULL,
			user_id INTEGER NOT NULL,
			total TEXT,
			PRIMARY KEY (id),
			FOREIGN KEY (user_id) REFERENCES users (id)
		);
	`
	if err := client.Execute(ctx, ddl); err != nil {
		t.Fatalf("failed to create test tables: %v", err)
	}
	return client
}

func TestSQLiteExtraction(t *testing.T) {
	ctx := context.Background()
	client := newSQLiteTestClient(t)

	ns, err := NewSQLiteExtractor(client).ExtractNamespace(ctx, nil)
	if err != nil {
		t.Fatalf("failed to extract schema: %v", err)
	}

	if got := ns.Tables.Names(); len(got) != 2 || got[0] != "orders" || got[1] != "users" {
		t.Fatalf("tables = %v, want [orders users]", got)
	}

	users, _ := ns.Tables.Get("users")
	if got := users.Base().PrimaryKey; len(got) != 1 || got[0].Name != "id" {
		t.Errorf("users primary key = %v, want [id]", got)
	}
	username, ok := users.Base().Columns.Get("username")
	if !ok {
		t.Fatal("username column not found")
	}
	if username.Base().Nullable {
		t.Error("username should be NOT NULL")
	}
	if username.Base().Type != schema.DataType(schema.CharacterType{}) {
		t.Errorf("username type = %v, want text", username.Base().Type)
	}

	orders, _ := ns.Tables.Get("orders")
	if len(orders.Base().Constraints) != 1 {
		t.Fatalf("orders constraints = %v, want one foreign key", orders.Base().Constraints)
	}
	fk := orders.Base().Constraints[0]
	if fk.Kind != schema.ForeignKeyConstraint || fk.Reference.Table.Name != "users" {
		t.Errorf("unexpected foreign key: %+v", fk)
	}
}

func TestSQLiteExtractionRoundTrip(t *testing.T) {
	ctx := context.Background()
	client := newSQLiteTestClient(t)
	extractor := NewSQLiteExtractor(client)

	first, err := extractor.ExtractNamespace(ctx, nil)
	if err != nil {
		t.Fatalf("failed to extract schema: %v", err)
	}
	second, err := extractor.ExtractNamespace(ctx, nil)
	if err != nil {
		t.Fatalf("failed to extract schema: %v", err)
	}

	plan, err := dialect.For(dialect.SQLite).Mutator().MutateNamespace(first, second)
	if err != nil {
		t.Fatalf("diff failed: %v", err)
	}
	if plan != "" {
		t.Errorf("expected empty plan for identical extractions, got:\n%s", plan)
	}
}

func TestSQLiteSpecificTables(t *testing.T) {
	ctx := context.Background()
	client := newSQLiteTestClient(t)

	ns, err := NewSQLiteExtractor(client).ExtractNamespace(ctx, []string{"users"})
	if err != nil {
		t.Fatalf("failed to extract schema: %v", err)
	}
	if got := ns.Tables.Names(); len(got) != 1 || got[0] != "users" {
		t.Errorf("tables = %v, want [users]", got)
	}
}

func TestSQLiteCompositeForeignKey(t *testing.T) {
	ctx := context.Background()

	client, err := NewSQLiteClient(ctx, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open SQLite: %v", err)
	}
	t.Cleanup(func() { client.Close() })

	ddl := `
		CREATE TABLE parents (
			a INTEGER NOT NULL,
			b INTEGER NOT NULL,
			PRIMARY KEY (a, b)
		);
		CREATE TABLE children (
			id INTEGER NOT NULL,
			x INTEGER NOT NULL,
			y INTEGER NOT NULL,
			PRIMARY KEY (id),
			FOREIGN KEY (x, y) REFERENCES parents (a, b)
		);
	`
	if err := client.Execute(ctx, ddl); err != nil {
		t.Fatalf("failed to create test tables: %v", err)
	}

	ns, err := NewSQLiteExtractor(client).ExtractNamespace(ctx, nil)
	if err != nil {
		t.Fatalf("failed to extract schema: %v", err)
	}

	children, ok := ns.Tables.Get("children")
	if !ok {
		t.Fatal("children table not found")
	}
	constraints := children.Base().Constraints
	if len(constraints) != 1 {
		t.Fatalf("constraints = %d, want one composite foreign key", len(constraints))
	}
	fk := constraints[0]
	if len(fk.Columns) != 2 || len(fk.Reference.Columns) != 2 {
		t.Fatalf("foreign key not composite: columns=%v referenced=%v", fk.Columns, fk.Reference.Columns)
	}

	want := `ALTER TABLE "children"
ADD CONSTRAINT "fk_children_0" FOREIGN KEY ("x", "y") REFERENCES "parents" ("a", "b");`
	if got := children.AddConstraintsStmt(); got != want {
		t.Errorf("AddConstraintsStmt = %s, want %s", got, want)
	}
}

func TestSQLiteExecuteBulk(t *testing.T) {
	ctx := context.Background()
	client := newSQLiteTestClient(t)

	rows := [][]any{
		{1, "alice"},
		{2, "bob"},
	}
	if err := client.ExecuteBulk(ctx, "INSERT INTO users (id, username) VALUES (?, ?)", rows); err != nil {
		t.Fatalf("bulk insert failed: %v", err)
	}

	var count int
	if err := client.GetDB().QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
}
