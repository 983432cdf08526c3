package schema

// ColumnObject is the capability set a column exposes to the object model
// and the diff engine. Dialect variants wrap a base Column and override
// the rendering methods.
type ColumnObject interface {
	Named
	Name() LocalID
	Base() *Column
	Spec() (string, error)
	DataSpec() (string, error)
}

// Column holds the attributes of a table column and provides the
// SQL-standard rendering. Default is a SQL expression, empty when the
// column has none; Description is free text, empty when absent.
type Column struct {
	ColumnName  LocalID
	Type        DataType
	Nullable    bool
	Default     string
	Identity    bool
	Description string
}

// Name returns the column identifier.
func (c *Column) Name() LocalID {
	return c.ColumnName
}

// LocalName returns the unquoted column name.
func (c *Column) LocalName() string {
	return c.ColumnName.Name
}

// Base returns the underlying column definition.
func (c *Column) Base() *Column {
	return c
}

// Spec renders the full column definition: name followed by DataSpec.
func (c *Column) Spec() (string, error) {
	spec, err := c.DataSpec()
	if err != nil {
		return "", err
	}
	return c.ColumnName.String() + " " + spec, nil
}

// DataSpec renders everything after the column name.
func (c *Column) DataSpec() (string, error) {
	spec := c.Type.String()
	if !c.Nullable {
		spec += " NOT NULL"
	}
	if c.Default != "" {
		spec += " DEFAULT " + c.Default
	}
	if c.Identity {
		spec += " GENERATED BY DEFAULT AS IDENTITY"
	}
	return spec, nil
}

// Equal reports structural equality: every attribute must match for two
// columns to be considered unchanged by the diff engine.
func (c *Column) Equal(other *Column) bool {
	return c.ColumnName == other.ColumnName &&
		c.Type == other.Type &&
		c.Nullable == other.Nullable &&
		c.Default == other.Default &&
		c.Identity == other.Identity &&
		c.Description == other.Description
}
