// Package schema defines the database object model: a typed tree of
// namespaces, tables, columns, enumeration and composite types, together
// with the identifier and literal quoting rules shared by all dialects.
//
// Objects in the tree render themselves as DDL through CreateStmt/DropStmt
// and related methods. Rendering is pure; the package performs no I/O.
package schema

import "strings"

// LocalID is an unqualified SQL identifier.
//
// Equality and map keys always use the unquoted logical name; String
// produces the quoted form for embedding in a statement.
type LocalID struct {
	Name string
}

// LocalName returns the unquoted logical name.
func (id LocalID) LocalName() string {
	return id.Name
}

func (id LocalID) String() string {
	return quoteIdent(id.Name)
}

// QualifiedID is an identifier optionally prefixed with a namespace.
// An empty Namespace renders like a LocalID.
type QualifiedID struct {
	Namespace string
	Name      string
}

// LocalName returns the unquoted object name without the namespace prefix.
func (id QualifiedID) LocalName() string {
	return id.Name
}

func (id QualifiedID) String() string {
	if id.Namespace != "" {
		return quoteIdent(id.Namespace) + "." + quoteIdent(id.Name)
	}
	return quoteIdent(id.Name)
}

// quoteIdent wraps a name in double quotes, doubling embedded quotes.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// QuoteString renders s as a plain SQL string literal, doubling apostrophes.
func QuoteString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

var literalEscaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	"\b", `\b`,
	"\f", `\f`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

// QuoteLiteral renders s as a SQL string literal. Literals containing
// control characters use the extended escape form E'...' so the characters
// survive as escape sequences; everything else renders as a plain literal
// with doubled apostrophes.
func QuoteLiteral(s string) string {
	if strings.ContainsAny(s, "\b\f\n\r\t") {
		return "E'" + literalEscaper.Replace(s) + "'"
	}
	return QuoteString(s)
}
