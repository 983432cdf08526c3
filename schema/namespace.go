package schema

import (
	"fmt"
	"strings"
)

// Namespace groups the enumeration types, composite types and tables that
// share a database schema. An empty name stands for the engine's implicit
// default schema (SQLite, single-database MySQL) and suppresses the
// CREATE SCHEMA / DROP SCHEMA statements.
type Namespace struct {
	NamespaceName LocalID
	Enums         *ObjectMap[*EnumType]
	Structs       *ObjectMap[StructObject]
	Tables        *ObjectMap[TableObject]
}

// NewNamespace builds an empty namespace.
func NewNamespace(name string) *Namespace {
	return &Namespace{
		NamespaceName: LocalID{Name: name},
		Enums:         NewObjectMap[*EnumType](),
		Structs:       NewObjectMap[StructObject](),
		Tables:        NewObjectMap[TableObject](),
	}
}

// LocalName returns the unquoted namespace name.
func (n *Namespace) LocalName() string {
	return n.NamespaceName.Name
}

// CreateStmt renders the namespace and everything in it, in dependency
// order: enums, then structs, then tables. Deferred constraints are not
// included; see AddConstraintsStmt.
func (n *Namespace) CreateStmt() (string, error) {
	var items []string
	if n.NamespaceName.Name != "" {
		items = append(items, "CREATE SCHEMA IF NOT EXISTS "+n.NamespaceName.String()+";")
	}
	for _, e := range n.Enums.Values() {
		items = append(items, e.CreateStmt())
	}
	for _, s := range n.Structs.Values() {
		items = append(items, s.CreateStmt())
	}
	for _, t := range n.Tables.Values() {
		stmt, err := t.CreateStmt()
		if err != nil {
			return "", fmt.Errorf("namespace %s: %w", n.NamespaceName, err)
		}
		items = append(items, stmt)
	}
	return strings.Join(items, "\n"), nil
}

// AddConstraintsStmt renders the deferred constraint additions for every
// table in the namespace, or an empty string when there are none.
func (n *Namespace) AddConstraintsStmt() string {
	var items []string
	for _, t := range n.Tables.Values() {
		if stmt := t.AddConstraintsStmt(); stmt != "" {
			items = append(items, stmt)
		}
	}
	return strings.Join(items, "\n")
}

// DropConstraintsStmt renders the deferred constraint removals for every
// table in the namespace, emitted before the namespace is dropped.
func (n *Namespace) DropConstraintsStmt() string {
	var items []string
	for _, t := range n.Tables.Values() {
		if stmt := t.DropConstraintsStmt(); stmt != "" {
			items = append(items, stmt)
		}
	}
	return strings.Join(items, "\n")
}

// DropStmt renders the namespace teardown in reverse dependency order:
// tables, then structs, then enums, then the schema itself.
func (n *Namespace) DropStmt() string {
	var items []string
	for _, t := range reversed(n.Tables) {
		items = append(items, t.DropStmt())
	}
	for _, s := range reversed(n.Structs) {
		items = append(items, s.DropStmt())
	}
	for _, e := range reversed(n.Enums) {
		items = append(items, e.DropStmt())
	}
	if n.NamespaceName.Name != "" {
		items = append(items, "DROP SCHEMA "+n.NamespaceName.String()+";")
	}
	return strings.Join(items, "\n")
}

// Catalog is the top-level container of namespaces.
type Catalog struct {
	Namespaces *ObjectMap[*Namespace]
}

// NewCatalog builds a catalog over the given namespaces.
func NewCatalog(namespaces ...*Namespace) *Catalog {
	return &Catalog{Namespaces: NewObjectMap(namespaces...)}
}

// CreateStmt renders every namespace in the catalog.
func (c *Catalog) CreateStmt() (string, error) {
	var items []string
	for _, n := range c.Namespaces.Values() {
		stmt, err := n.CreateStmt()
		if err != nil {
			return "", err
		}
		items = append(items, stmt)
	}
	return strings.Join(items, "\n"), nil
}

// AddConstraintsStmt renders deferred constraint additions across all
// namespaces.
func (c *Catalog) AddConstraintsStmt() string {
	var items []string
	for _, n := range c.Namespaces.Values() {
		if stmt := n.AddConstraintsStmt(); stmt != "" {
			items = append(items, stmt)
		}
	}
	return strings.Join(items, "\n")
}

// DropStmt renders the teardown of every namespace.
func (c *Catalog) DropStmt() string {
	var items []string
	for _, n := range c.Namespaces.Values() {
		items = append(items, n.DropStmt())
	}
	return strings.Join(items, "\n")
}
