package schema

import (
	"fmt"
	"strings"
)

// DataType is the closed set of SQL column types the object model knows
// about. All implementations are small comparable value types, so two
// types can be compared with == during diffing.
type DataType interface {
	fmt.Stringer
	sqlType()
}

// BooleanType is a boolean column type.
type BooleanType struct{}

func (BooleanType) sqlType()       {}
func (BooleanType) String() string { return "boolean" }

// IntegerType is an integer column type of the given byte width (2, 4 or 8).
type IntegerType struct {
	Width int
}

func (IntegerType) sqlType() {}

func (t IntegerType) String() string {
	switch t.Width {
	case 2:
		return "smallint"
	case 8:
		return "bigint"
	default:
		return "integer"
	}
}

// FloatType is a single-precision floating point column type.
type FloatType struct{}

func (FloatType) sqlType()       {}
func (FloatType) String() string { return "real" }

// DoubleType is a double-precision floating point column type.
type DoubleType struct{}

func (DoubleType) sqlType()       {}
func (DoubleType) String() string { return "double precision" }

// DecimalType is an exact numeric type. Zero Precision means unspecified.
type DecimalType struct {
	Precision int
	Scale     int
}

func (DecimalType) sqlType() {}

func (t DecimalType) String() string {
	if t.Precision > 0 && t.Scale > 0 {
		return fmt.Sprintf("decimal(%d, %d)", t.Precision, t.Scale)
	}
	if t.Precision > 0 {
		return fmt.Sprintf("decimal(%d)", t.Precision)
	}
	return "decimal"
}

// CharacterType is a character type; zero Limit renders as unbounded text.
type CharacterType struct {
	Limit int
}

func (CharacterType) sqlType() {}

func (t CharacterType) String() string {
	if t.Limit > 0 {
		return fmt.Sprintf("varchar(%d)", t.Limit)
	}
	return "text"
}

// UUIDType is a universally unique identifier column type.
type UUIDType struct{}

func (UUIDType) sqlType()       {}
func (UUIDType) String() string { return "uuid" }

// DateType is a calendar date column type.
type DateType struct{}

func (DateType) sqlType()       {}
func (DateType) String() string { return "date" }

// TimeType is a time-of-day column type. Zero Precision means unspecified.
type TimeType struct {
	Precision    int
	WithTimeZone bool
}

func (TimeType) sqlType() {}

func (t TimeType) String() string {
	return temporalSpec("time", t.Precision, t.WithTimeZone)
}

// TimestampType is a point-in-time column type. Zero Precision means
// unspecified.
type TimestampType struct {
	Precision    int
	WithTimeZone bool
}

func (TimestampType) sqlType() {}

func (t TimestampType) String() string {
	return temporalSpec("timestamp", t.Precision, t.WithTimeZone)
}

// IntervalType is a time interval column type.
type IntervalType struct{}

func (IntervalType) sqlType()       {}
func (IntervalType) String() string { return "interval" }

// ArrayType is an array of an inner type.
type ArrayType struct {
	Inner DataType
}

func (ArrayType) sqlType() {}

func (t ArrayType) String() string { return t.Inner.String() + " ARRAY" }

// EnumRefType references an enumeration type defined in the catalog.
// Dialects without named enumeration types substitute their own storage
// representation when rendering.
type EnumRefType struct {
	Ref QualifiedID
}

func (EnumRefType) sqlType() {}

func (t EnumRefType) String() string { return t.Ref.String() }

// NamedType references a user-defined (composite) type in the catalog.
type NamedType struct {
	Ref QualifiedID
}

func (NamedType) sqlType() {}

func (t NamedType) String() string { return t.Ref.String() }

// RawType carries a type specification verbatim. Introspection falls back
// to it for engine types with no structured mapping, so a source tree can
// still round-trip through the diff engine.
type RawType struct {
	Spec string
}

func (RawType) sqlType() {}

func (t RawType) String() string { return t.Spec }

func temporalSpec(base string, precision int, withTimeZone bool) string {
	s := base
	if precision > 0 {
		s += fmt.Sprintf("(%d)", precision)
	}
	if withTimeZone {
		return s + " with time zone"
	}
	return s + " without time zone"
}

// TypeSpec holds the raw column type facts reported by a database's
// information schema. Pointer fields are nil when the engine did not
// report a value.
type TypeSpec struct {
	Name           string
	CharacterLimit *int
	Precision      *int
	Scale          *int
	TimePrecision  *int
}

// ParseDataType maps an information-schema type description onto the data
// type model. Unrecognized names become a RawType rather than an error, so
// introspected schemas never lose columns.
func ParseDataType(spec TypeSpec) DataType {
	switch strings.ToLower(spec.Name) {
	case "boolean", "bool":
		return BooleanType{}
	case "smallint":
		return IntegerType{Width: 2}
	case "integer", "int":
		return IntegerType{Width: 4}
	case "bigint":
		return IntegerType{Width: 8}
	case "real":
		return FloatType{}
	case "double precision":
		return DoubleType{}
	case "numeric", "decimal":
		return DecimalType{Precision: intOrZero(spec.Precision), Scale: intOrZero(spec.Scale)}
	case "character varying", "varchar":
		return CharacterType{Limit: intOrZero(spec.CharacterLimit)}
	case "text":
		return CharacterType{}
	case "uuid":
		return UUIDType{}
	case "date":
		return DateType{}
	case "time", "time without time zone":
		return TimeType{Precision: intOrZero(spec.TimePrecision)}
	case "time with time zone":
		return TimeType{Precision: intOrZero(spec.TimePrecision), WithTimeZone: true}
	case "timestamp", "timestamp without time zone":
		return TimestampType{Precision: intOrZero(spec.TimePrecision)}
	case "timestamp with time zone":
		return TimestampType{Precision: intOrZero(spec.TimePrecision), WithTimeZone: true}
	case "interval":
		return IntervalType{}
	default:
		return RawType{Spec: spec.Name}
	}
}

func intOrZero(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
