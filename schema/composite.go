package schema

import "strings"

// EnumType is a named enumeration of permitted string values. Values are
// additive-only across schema versions: the diff engine rejects a target
// that removes values, since stored rows may still reference them.
type EnumType struct {
	TypeName QualifiedID
	Values   []string
}

// Name returns the qualified type identifier.
func (e *EnumType) Name() QualifiedID {
	return e.TypeName
}

// LocalName returns the unquoted type name.
func (e *EnumType) LocalName() string {
	return e.TypeName.Name
}

// CreateStmt renders the CREATE TYPE ... AS ENUM statement.
func (e *EnumType) CreateStmt() string {
	values := make([]string, len(e.Values))
	for i, v := range e.Values {
		values[i] = QuoteString(v)
	}
	return "CREATE TYPE " + e.TypeName.String() + " AS ENUM (" + strings.Join(values, ", ") + ");"
}

// DropStmt renders the DROP TYPE statement.
func (e *EnumType) DropStmt() string {
	return "DROP TYPE " + e.TypeName.String() + ";"
}

// StructMember is one member of a composite type. Members are identified
// by name and type: a member whose type changes is treated as dropped and
// re-added.
type StructMember struct {
	MemberName  LocalID
	Type        DataType
	Description string
}

// LocalName returns the unquoted member name.
func (m StructMember) LocalName() string {
	return m.MemberName.Name
}

// Spec renders the member definition.
func (m StructMember) Spec() string {
	return m.MemberName.String() + " " + m.Type.String()
}

// StructObject is the capability set a composite type exposes. Dialect
// variants wrap a base StructType and override rendering.
type StructObject interface {
	Named
	Name() QualifiedID
	Base() *StructType
	CreateStmt() string
	DropStmt() string
}

// StructType is a named composite (record) type for dialects that
// support them as column types.
type StructType struct {
	TypeName    QualifiedID
	Members     *ObjectMap[StructMember]
	Description string
}

// Name returns the qualified type identifier.
func (s *StructType) Name() QualifiedID {
	return s.TypeName
}

// LocalName returns the unquoted type name.
func (s *StructType) LocalName() string {
	return s.TypeName.Name
}

// Base returns the underlying struct definition.
func (s *StructType) Base() *StructType {
	return s
}

// CreateStmt renders the CREATE TYPE ... AS statement.
func (s *StructType) CreateStmt() string {
	members := make([]string, 0, s.Members.Len())
	for _, m := range s.Members.Values() {
		members = append(members, m.Spec())
	}
	return "CREATE TYPE " + s.TypeName.String() + " AS (\n" + strings.Join(members, ",\n") + "\n);"
}

// DropStmt renders the DROP TYPE statement.
func (s *StructType) DropStmt() string {
	return "DROP TYPE " + s.TypeName.String() + ";"
}
