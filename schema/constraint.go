package schema

import "strings"

// ConstraintKind discriminates the supported table constraints.
type ConstraintKind int

const (
	PrimaryKeyConstraint ConstraintKind = iota
	ForeignKeyConstraint
	UniqueConstraint
	CheckConstraint
)

// ConstraintReference names the table and columns a foreign key points at.
type ConstraintReference struct {
	Table   QualifiedID
	Columns []LocalID
}

// Constraint is a named table constraint. Foreign key and check
// constraints are deferred: they are omitted from CREATE TABLE and added
// through a separate ALTER TABLE once every table they may reference
// exists.
type Constraint struct {
	ConstraintName LocalID
	Kind           ConstraintKind
	Columns        []LocalID
	Reference      *ConstraintReference
	Check          string
}

// LocalName returns the unquoted constraint name.
func (c *Constraint) LocalName() string {
	return c.ConstraintName.Name
}

// Deferred reports whether the constraint requires a separate
// ALTER TABLE ... ADD CONSTRAINT statement instead of an inline clause.
func (c *Constraint) Deferred() bool {
	return c.Kind == ForeignKeyConstraint || c.Kind == CheckConstraint
}

// Spec renders the CONSTRAINT clause body.
func (c *Constraint) Spec() string {
	switch c.Kind {
	case PrimaryKeyConstraint:
		return "CONSTRAINT " + c.ConstraintName.String() + " PRIMARY KEY (" + joinIDs(c.Columns) + ")"
	case ForeignKeyConstraint:
		return "CONSTRAINT " + c.ConstraintName.String() +
			" FOREIGN KEY (" + joinIDs(c.Columns) + ")" +
			" REFERENCES " + c.Reference.Table.String() +
			" (" + joinIDs(c.Reference.Columns) + ")"
	case UniqueConstraint:
		return "CONSTRAINT " + c.ConstraintName.String() + " UNIQUE (" + joinIDs(c.Columns) + ")"
	default:
		return "CONSTRAINT " + c.ConstraintName.String() + " CHECK (" + c.Check + ")"
	}
}

func joinIDs(ids []LocalID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id.String()
	}
	return strings.Join(parts, ", ")
}
