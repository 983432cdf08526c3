package diff

import (
	"strings"

	"github.com/Datahenge/schemasync/schema"
)

// StandardHooks implements the SQL-standard ALTER COLUMN fragment set.
// PostgreSQL and SQLite use it unchanged; other dialects replace it.
type StandardHooks struct{}

// MutateColumn builds one fragment per changed attribute and joins them
// as ALTER COLUMN clauses. Matching columns short-circuit to "".
func (StandardHooks) MutateColumn(source, target schema.ColumnObject) (string, error) {
	s, t := source.Base(), target.Base()
	if s.Equal(t) {
		return "", nil
	}

	var changes []string
	if s.Type != t.Type {
		changes = append(changes, "SET DATA TYPE "+t.Type.String())
	}
	if s.Nullable && !t.Nullable {
		changes = append(changes, "SET NOT NULL")
	} else if !s.Nullable && t.Nullable {
		changes = append(changes, "DROP NOT NULL")
	}
	if s.Default != "" && t.Default == "" {
		changes = append(changes, "DROP DEFAULT")
	} else if s.Default != t.Default {
		changes = append(changes, "SET DEFAULT "+t.Default)
	}
	if s.Identity && !t.Identity {
		changes = append(changes, "DROP IDENTITY")
	} else if !s.Identity && t.Identity {
		changes = append(changes, "ADD GENERATED BY DEFAULT AS IDENTITY")
	}

	return joinColumnChanges(s.ColumnName, changes), nil
}

// MutateTableExtra returns nothing: the standard ALTER TABLE body covers
// every attribute the base model tracks.
func (StandardHooks) MutateTableExtra(source, target schema.TableObject) ([]string, error) {
	return nil, nil
}

// joinColumnChanges prefixes each change with its ALTER COLUMN clause and
// comma-joins the result, or returns "" for an empty set.
func joinColumnChanges(name schema.LocalID, changes []string) string {
	if len(changes) == 0 {
		return ""
	}
	fragments := make([]string, len(changes))
	for i, change := range changes {
		fragments[i] = "ALTER COLUMN " + name.String() + " " + change
	}
	return strings.Join(fragments, ",\n")
}
