// Package diff computes the ordered DDL statement sequence that transforms
// a source schema tree into a target schema tree.
//
// Objects are matched by logical name at every level: names present only
// in the target are created, names present only in the source are dropped,
// and names present in both are diffed recursively. Statement ordering per
// level is creates, then deferred constraint additions for new siblings,
// then mutations, then deferred constraint removals for removed siblings,
// then drops, so no statement references an object that does not yet
// exist and no drop leaves a dangling reference.
//
// Every method returns the empty string when the pair needs no change,
// letting callers distinguish a no-op at each recursion level.
package diff

import (
	"fmt"
	"strings"

	"github.com/Datahenge/schemasync/schema"
)

// Hooks customizes the mutation fragments that differ between dialects.
// The tree-walking algorithm itself never varies.
type Hooks interface {
	// MutateColumn returns the ALTER TABLE fragment set (comma-joined)
	// that reshapes source into target, or "" when the columns match.
	MutateColumn(source, target schema.ColumnObject) (string, error)

	// MutateTableExtra returns complete statements appended after the
	// table alteration, for attributes the ALTER TABLE body cannot
	// express (for example MySQL table comments).
	MutateTableExtra(source, target schema.TableObject) ([]string, error)
}

// Mutator is the diff engine. It reads two immutable trees and produces
// statements; it never modifies either tree.
type Mutator struct {
	hooks Hooks
}

// New builds a Mutator; nil hooks selects the SQL-standard behavior.
func New(hooks Hooks) *Mutator {
	if hooks == nil {
		hooks = StandardHooks{}
	}
	return &Mutator{hooks: hooks}
}

// MutateEnum diffs two enumeration types. Values may only be added; a
// value missing from the target is a hard error because stored rows may
// still reference it.
func (m *Mutator) MutateEnum(source, target *schema.EnumType) (string, error) {
	if source.TypeName != target.TypeName {
		return "", schema.Formationf("object mismatch: %s != %s", source.TypeName, target.TypeName)
	}

	targetValues := make(map[string]bool, len(target.Values))
	for _, v := range target.Values {
		targetValues[v] = true
	}
	var removed []string
	for _, v := range source.Values {
		if !targetValues[v] {
			removed = append(removed, v)
		}
	}
	if len(removed) > 0 {
		return "", schema.Formationf("operation not permitted; cannot drop values in enumeration %s: %s",
			target.TypeName, strings.Join(removed, ", "))
	}

	sourceValues := make(map[string]bool, len(source.Values))
	for _, v := range source.Values {
		sourceValues[v] = true
	}
	var fragments []string
	for _, v := range target.Values {
		if !sourceValues[v] {
			fragments = append(fragments, "ADD VALUE "+schema.QuoteString(v))
		}
	}
	if len(fragments) == 0 {
		return "", nil
	}
	return "ALTER TYPE " + target.TypeName.String() + "\n" + strings.Join(fragments, ",\n") + ";", nil
}

// MutateStruct diffs two composite types. Members are matched by name and
// type, so a member whose type changed is dropped and re-added.
func (m *Mutator) MutateStruct(source, target schema.StructObject) (string, error) {
	if source.Name() != target.Name() {
		return "", schema.Formationf("object mismatch: %s != %s", source.Name(), target.Name())
	}

	var fragments []string
	for _, sm := range source.Base().Members.Values() {
		if tm, ok := target.Base().Members.Get(sm.LocalName()); !ok || tm.Type != sm.Type {
			fragments = append(fragments, "DROP ATTRIBUTE "+sm.MemberName.String())
		}
	}
	for _, tm := range target.Base().Members.Values() {
		if sm, ok := source.Base().Members.Get(tm.LocalName()); !ok || sm.Type != tm.Type {
			fragments = append(fragments, "ADD ATTRIBUTE "+tm.Spec())
		}
	}
	if len(fragments) == 0 {
		return "", nil
	}
	return "ALTER TYPE " + target.Name().String() + "\n" + strings.Join(fragments, ",\n") + ";", nil
}

// MutateColumn diffs two columns through the dialect hooks.
func (m *Mutator) MutateColumn(source, target schema.ColumnObject) (string, error) {
	return m.hooks.MutateColumn(source, target)
}

// MutateTable diffs two tables into a single ALTER TABLE statement (or
// the dialect's multi-statement form). Column and constraint failures are
// wrapped in a TableFormationError attributing the owning table.
func (m *Mutator) MutateTable(source, target schema.TableObject) (string, error) {
	if source.Name() != target.Name() {
		return "", schema.Formationf("object mismatch: %s != %s", source.Name(), target.Name())
	}

	var fragments []string
	for _, targetColumn := range target.Base().Columns.Values() {
		sourceColumn, ok := source.Base().Columns.Get(targetColumn.LocalName())
		if !ok {
			spec, err := targetColumn.Spec()
			if err != nil {
				return "", &schema.TableFormationError{Table: target.Name(), Err: err}
			}
			fragments = append(fragments, "ADD COLUMN "+spec)
			continue
		}
		fragment, err := m.hooks.MutateColumn(sourceColumn, targetColumn)
		if err != nil {
			return "", &schema.TableFormationError{Table: target.Name(), Err: err}
		}
		if fragment != "" {
			fragments = append(fragments, fragment)
		}
	}
	for _, sourceColumn := range source.Base().Columns.Values() {
		if !target.Base().Columns.Has(sourceColumn.LocalName()) {
			fragments = append(fragments, "DROP COLUMN "+sourceColumn.Name().String())
		}
	}

	fragments = append(fragments, constraintDiff(source.Base(), target.Base())...)

	var statements []string
	if len(fragments) > 0 {
		statements = append(statements, target.AlterTableStmt(fragments))
	}
	extra, err := m.hooks.MutateTableExtra(source, target)
	if err != nil {
		return "", &schema.TableFormationError{Table: target.Name(), Err: err}
	}
	statements = append(statements, extra...)
	return strings.Join(statements, "\n"), nil
}

// constraintDiff matches deferred constraints by name: target-only
// constraints are added, source-only constraints are dropped, and a
// constraint whose rendered clause changed is dropped and re-added.
func constraintDiff(source, target *schema.Table) []string {
	sourceByName := make(map[string]*schema.Constraint)
	for _, c := range source.Constraints {
		if c.Deferred() {
			sourceByName[c.LocalName()] = c
		}
	}
	targetByName := make(map[string]*schema.Constraint)
	for _, c := range target.Constraints {
		if c.Deferred() {
			targetByName[c.LocalName()] = c
		}
	}

	var fragments []string
	for _, c := range target.Constraints {
		if !c.Deferred() {
			continue
		}
		existing, ok := sourceByName[c.LocalName()]
		if !ok {
			fragments = append(fragments, "ADD "+c.Spec())
		} else if existing.Spec() != c.Spec() {
			fragments = append(fragments, "DROP CONSTRAINT "+c.ConstraintName.String(), "ADD "+c.Spec())
		}
	}
	for _, c := range source.Constraints {
		if c.Deferred() && targetByName[c.LocalName()] == nil {
			fragments = append(fragments, "DROP CONSTRAINT "+c.ConstraintName.String())
		}
	}
	return fragments
}

// MutateNamespace diffs the contents of two namespaces in dependency
// order: enums, then structs, then tables.
func (m *Mutator) MutateNamespace(source, target *schema.Namespace) (string, error) {
	if source.NamespaceName != target.NamespaceName {
		return "", schema.Formationf("object mismatch: %s != %s", source.NamespaceName, target.NamespaceName)
	}

	var statements []string
	appendStmt := func(stmt string) {
		if stmt != "" {
			statements = append(statements, stmt)
		}
	}

	for _, e := range target.Enums.Values() {
		if !source.Enums.Has(e.LocalName()) {
			appendStmt(e.CreateStmt())
		}
	}
	for _, s := range target.Structs.Values() {
		if !source.Structs.Has(s.LocalName()) {
			appendStmt(s.CreateStmt())
		}
	}
	var created []schema.TableObject
	for _, t := range target.Tables.Values() {
		if !source.Tables.Has(t.LocalName()) {
			stmt, err := t.CreateStmt()
			if err != nil {
				return "", fmt.Errorf("namespace %s: %w", target.NamespaceName, err)
			}
			appendStmt(stmt)
			created = append(created, t)
		}
	}
	for _, t := range created {
		appendStmt(t.AddConstraintsStmt())
	}

	for _, se := range source.Enums.Values() {
		if te, ok := target.Enums.Get(se.LocalName()); ok {
			stmt, err := m.MutateEnum(se, te)
			if err != nil {
				return "", err
			}
			appendStmt(stmt)
		}
	}
	for _, ss := range source.Structs.Values() {
		if ts, ok := target.Structs.Get(ss.LocalName()); ok {
			stmt, err := m.MutateStruct(ss, ts)
			if err != nil {
				return "", err
			}
			appendStmt(stmt)
		}
	}
	for _, st := range source.Tables.Values() {
		if tt, ok := target.Tables.Get(st.LocalName()); ok {
			stmt, err := m.MutateTable(st, tt)
			if err != nil {
				return "", fmt.Errorf("namespace %s: %w", target.NamespaceName, err)
			}
			appendStmt(stmt)
		}
	}

	for _, t := range source.Tables.Values() {
		if !target.Tables.Has(t.LocalName()) {
			appendStmt(t.DropConstraintsStmt())
		}
	}
	for _, t := range source.Tables.Values() {
		if !target.Tables.Has(t.LocalName()) {
			appendStmt(t.DropStmt())
		}
	}
	for _, s := range source.Structs.Values() {
		if !target.Structs.Has(s.LocalName()) {
			appendStmt(s.DropStmt())
		}
	}
	for _, e := range source.Enums.Values() {
		if !target.Enums.Has(e.LocalName()) {
			appendStmt(e.DropStmt())
		}
	}

	return strings.Join(statements, "\n"), nil
}

// MutateCatalog diffs two catalogs. Deferred constraint additions for
// newly created namespaces run only after every new namespace exists, so
// cross-namespace foreign keys resolve.
func (m *Mutator) MutateCatalog(source, target *schema.Catalog) (string, error) {
	var statements []string
	appendStmt := func(stmt string) {
		if stmt != "" {
			statements = append(statements, stmt)
		}
	}

	var created []*schema.Namespace
	for _, n := range target.Namespaces.Values() {
		if !source.Namespaces.Has(n.LocalName()) {
			stmt, err := n.CreateStmt()
			if err != nil {
				return "", err
			}
			appendStmt(stmt)
			created = append(created, n)
		}
	}
	for _, n := range created {
		appendStmt(n.AddConstraintsStmt())
	}

	for _, sn := range source.Namespaces.Values() {
		if tn, ok := target.Namespaces.Get(sn.LocalName()); ok {
			stmt, err := m.MutateNamespace(sn, tn)
			if err != nil {
				return "", err
			}
			appendStmt(stmt)
		}
	}

	for _, n := range source.Namespaces.Values() {
		if !target.Namespaces.Has(n.LocalName()) {
			appendStmt(n.DropConstraintsStmt())
		}
	}
	for _, n := range source.Namespaces.Values() {
		if !target.Namespaces.Has(n.LocalName()) {
			appendStmt(n.DropStmt())
		}
	}

	return strings.Join(statements, "\n"), nil
}
