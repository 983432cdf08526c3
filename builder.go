package schemasync

import (
	"fmt"

	"github.com/Datahenge/schemasync/dialect"
	"github.com/Datahenge/schemasync/schema"
)

// Builder assembles a schema description tree for a dialect. It replaces
// runtime type introspection: callers describe tables, enumerations and
// composite types explicitly and receive the same tree an introspected
// database would produce.
//
// Definition order is preserved; it drives CREATE TABLE column order but
// never affects diff results.
type Builder struct {
	dialect    dialect.Dialect
	namespaces []*NamespaceBuilder
}

// NewBuilder creates a Builder for the given dialect.
func NewBuilder(d dialect.Dialect) *Builder {
	return &Builder{dialect: d}
}

// Namespace opens a namespace (database schema). An empty name stands for
// the engine's implicit default schema.
func (b *Builder) Namespace(name string) *NamespaceBuilder {
	nb := &NamespaceBuilder{dialect: b.dialect, name: name}
	b.namespaces = append(b.namespaces, nb)
	return nb
}

// Build assembles the catalog tree, failing on duplicate object names.
func (b *Builder) Build() (*schema.Catalog, error) {
	catalog := schema.NewCatalog()
	for _, nb := range b.namespaces {
		ns, err := nb.build()
		if err != nil {
			return nil, err
		}
		if err := catalog.Namespaces.Add(ns); err != nil {
			return nil, err
		}
	}
	return catalog, nil
}

// NamespaceBuilder collects the objects of one namespace.
type NamespaceBuilder struct {
	dialect dialect.Dialect
	name    string
	enums   []*schema.EnumType
	structs []*schema.StructType
	tables  []*TableBuilder
}

// Enum declares an enumeration type with its permitted values in order.
func (nb *NamespaceBuilder) Enum(name string, values ...string) *NamespaceBuilder {
	nb.enums = append(nb.enums, &schema.EnumType{
		TypeName: schema.QualifiedID{Namespace: nb.name, Name: name},
		Values:   values,
	})
	return nb
}

// Struct declares a composite type with its members in order.
func (nb *NamespaceBuilder) Struct(name string, members ...schema.StructMember) *NamespaceBuilder {
	nb.structs = append(nb.structs, &schema.StructType{
		TypeName: schema.QualifiedID{Namespace: nb.name, Name: name},
		Members:  schema.NewObjectMap(members...),
	})
	return nb
}

// Table opens a table definition.
func (nb *NamespaceBuilder) Table(name string) *TableBuilder {
	tb := &TableBuilder{
		dialect: nb.dialect,
		name:    schema.QualifiedID{Namespace: nb.name, Name: name},
	}
	nb.tables = append(nb.tables, tb)
	return tb
}

func (nb *NamespaceBuilder) build() (*schema.Namespace, error) {
	ns := schema.NewNamespace(nb.name)
	for _, enum := range nb.enums {
		if err := ns.Enums.Add(enum); err != nil {
			return nil, fmt.Errorf("namespace %s: %w", nb.name, err)
		}
	}
	for _, st := range nb.structs {
		if err := ns.Structs.Add(nb.dialect.Struct(st)); err != nil {
			return nil, fmt.Errorf("namespace %s: %w", nb.name, err)
		}
	}
	for _, tb := range nb.tables {
		if err := ns.Tables.Add(tb.build()); err != nil {
			return nil, fmt.Errorf("namespace %s: %w", nb.name, err)
		}
	}
	return ns, nil
}

// TableBuilder collects the columns and constraints of one table.
type TableBuilder struct {
	dialect     dialect.Dialect
	name        schema.QualifiedID
	columns     []schema.ColumnObject
	primaryKey  []schema.LocalID
	constraints []*schema.Constraint
	description string
}

// Column appends a column definition.
func (tb *TableBuilder) Column(col schema.Column) *TableBuilder {
	tb.columns = append(tb.columns, tb.dialect.Column(&col))
	return tb
}

// PrimaryKey sets the primary key columns.
func (tb *TableBuilder) PrimaryKey(columns ...string) *TableBuilder {
	tb.primaryKey = localIDs(columns)
	return tb
}

// ForeignKey adds a named foreign key; it renders as a deferred
// constraint once all tables exist.
func (tb *TableBuilder) ForeignKey(name string, columns []string, refTable string, refColumns []string) *TableBuilder {
	tb.constraints = append(tb.constraints, &schema.Constraint{
		ConstraintName: schema.LocalID{Name: name},
		Kind:           schema.ForeignKeyConstraint,
		Columns:        localIDs(columns),
		Reference: &schema.ConstraintReference{
			Table:   schema.QualifiedID{Namespace: tb.name.Namespace, Name: refTable},
			Columns: localIDs(refColumns),
		},
	})
	return tb
}

// Unique adds a named unique constraint, rendered inline in CREATE TABLE.
func (tb *TableBuilder) Unique(name string, columns ...string) *TableBuilder {
	tb.constraints = append(tb.constraints, &schema.Constraint{
		ConstraintName: schema.LocalID{Name: name},
		Kind:           schema.UniqueConstraint,
		Columns:        localIDs(columns),
	})
	return tb
}

// Check adds a named check constraint over the given condition.
func (tb *TableBuilder) Check(name string, condition string) *TableBuilder {
	tb.constraints = append(tb.constraints, &schema.Constraint{
		ConstraintName: schema.LocalID{Name: name},
		Kind:           schema.CheckConstraint,
		Check:          condition,
	})
	return tb
}

// Describe attaches a human-readable table description.
func (tb *TableBuilder) Describe(description string) *TableBuilder {
	tb.description = description
	return tb
}

func (tb *TableBuilder) build() schema.TableObject {
	return tb.dialect.Table(&schema.Table{
		TableName:   tb.name,
		Columns:     schema.NewObjectMap(tb.columns...),
		PrimaryKey:  tb.primaryKey,
		Constraints: tb.constraints,
		Description: tb.description,
	})
}

func localIDs(names []string) []schema.LocalID {
	ids := make([]schema.LocalID, len(names))
	for i, name := range names {
		ids[i] = schema.LocalID{Name: name}
	}
	return ids
}
