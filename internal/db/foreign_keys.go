package db

import "github.com/Datahenge/schemasync/schema"

// foreignKeyRow is one column pairing of a foreign key, as reported by an
// engine's catalog. A composite key arrives as several rows sharing a
// constraint name, ordered by column position.
type foreignKeyRow struct {
	name      string
	column    string
	refTable  string
	refColumn string
}

// groupForeignKeys folds column-level rows into one constraint per name,
// so a composite foreign key keeps its full column lists instead of
// splitting into same-named single-column constraints.
func groupForeignKeys(namespace string, rows []foreignKeyRow) []*schema.Constraint {
	var constraints []*schema.Constraint
	byName := make(map[string]*schema.Constraint)
	for _, row := range rows {
		constraint, ok := byName[row.name]
		if !ok {
			constraint = &schema.Constraint{
				ConstraintName: schema.LocalID{Name: row.name},
				Kind:           schema.ForeignKeyConstraint,
				Reference: &schema.ConstraintReference{
					Table: schema.QualifiedID{Namespace: namespace, Name: row.refTable},
				},
			}
			byName[row.name] = constraint
			constraints = append(constraints, constraint)
		}
		constraint.Columns = append(constraint.Columns, schema.LocalID{Name: row.column})
		constraint.Reference.Columns = append(constraint.Reference.Columns, schema.LocalID{Name: row.refColumn})
	}
	return constraints
}
