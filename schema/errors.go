package schema

import "fmt"

// FormationError reports a structural problem: a source state that cannot
// mutate into a target state, misaligned trees, or an attribute a dialect
// cannot express.
type FormationError struct {
	Message string
}

func (e *FormationError) Error() string {
	return e.Message
}

// Formationf builds a FormationError from a format string.
func Formationf(format string, args ...any) *FormationError {
	return &FormationError{Message: fmt.Sprintf(format, args...)}
}

// ColumnFormationError attributes a failure to a specific column,
// preserving the underlying cause.
type ColumnFormationError struct {
	Column LocalID
	Err    error
}

func (e *ColumnFormationError) Error() string {
	return fmt.Sprintf("column %s: %v", e.Column, e.Err)
}

func (e *ColumnFormationError) Unwrap() error {
	return e.Err
}

// TableFormationError attributes a failure to the table that owns it,
// typically wrapping a ColumnFormationError raised while diffing or
// rendering one of its columns.
type TableFormationError struct {
	Table QualifiedID
	Err   error
}

func (e *TableFormationError) Error() string {
	return fmt.Sprintf("table %s: %v", e.Table, e.Err)
}

func (e *TableFormationError) Unwrap() error {
	return e.Err
}
