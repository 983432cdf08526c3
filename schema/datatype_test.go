package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDataTypeString(t *testing.T) {
	tests := []struct {
		name string
		typ  DataType
		want string
	}{
		{name: "boolean", typ: BooleanType{}, want: "boolean"},
		{name: "smallint", typ: IntegerType{Width: 2}, want: "smallint"},
		{name: "integer", typ: IntegerType{Width: 4}, want: "integer"},
		{name: "bigint", typ: IntegerType{Width: 8}, want: "bigint"},
		{name: "real", typ: FloatType{}, want: "real"},
		{name: "double", typ: DoubleType{}, want: "double precision"},
		{name: "decimal bare", typ: DecimalType{}, want: "decimal"},
		{name: "decimal precision", typ: DecimalType{Precision: 10}, want: "decimal(10)"},
		{name: "decimal precision and scale", typ: DecimalType{Precision: 10, Scale: 2}, want: "decimal(10, 2)"},
		{name: "text", typ: CharacterType{}, want: "text"},
		{name: "varchar", typ: CharacterType{Limit: 255}, want: "varchar(255)"},
		{name: "uuid", typ: UUIDType{}, want: "uuid"},
		{name: "date", typ: DateType{}, want: "date"},
		{name: "time", typ: TimeType{}, want: "time without time zone"},
		{name: "timestamp", typ: TimestampType{}, want: "timestamp without time zone"},
		{name: "timestamp with precision and tz", typ: TimestampType{Precision: 6, WithTimeZone: true}, want: "timestamp(6) with time zone"},
		{name: "interval", typ: IntervalType{}, want: "interval"},
		{name: "array", typ: ArrayType{Inner: IntegerType{Width: 8}}, want: "bigint ARRAY"},
		{name: "enum reference", typ: EnumRefType{Ref: QualifiedID{Namespace: "public", Name: "mood"}}, want: `"public"."mood"`},
		{name: "named reference", typ: NamedType{Ref: QualifiedID{Name: "address"}}, want: `"address"`},
		{name: "raw passthrough", typ: RawType{Spec: "tsvector"}, want: "tsvector"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.typ.String())
		})
	}
}

func TestDataTypeEquality(t *testing.T) {
	// value types compare by their attributes
	assert.Equal(t, DataType(IntegerType{Width: 8}), DataType(IntegerType{Width: 8}))
	assert.NotEqual(t, DataType(IntegerType{Width: 8}), DataType(IntegerType{Width: 4}))
	assert.NotEqual(t, DataType(CharacterType{Limit: 255}), DataType(CharacterType{}))
}

func TestParseDataType(t *testing.T) {
	tests := []struct {
		spec string
		want DataType
	}{
		{spec: "boolean", want: BooleanType{}},
		{spec: "smallint", want: IntegerType{Width: 2}},
		{spec: "integer", want: IntegerType{Width: 4}},
		{spec: "bigint", want: IntegerType{Width: 8}},
		{spec: "real", want: FloatType{}},
		{spec: "double precision", want: DoubleType{}},
		{spec: "numeric", want: DecimalType{}},
		{spec: "text", want: CharacterType{}},
		{spec: "uuid", want: UUIDType{}},
		{spec: "date", want: DateType{}},
		{spec: "interval", want: IntervalType{}},
		{spec: "tsvector", want: RawType{Spec: "tsvector"}},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseDataType(TypeSpec{Name: tt.spec}))
		})
	}
}

func TestParseDataTypeWithModifiers(t *testing.T) {
	limit := 80
	assert.Equal(t, DataType(CharacterType{Limit: 80}),
		ParseDataType(TypeSpec{Name: "character varying", CharacterLimit: &limit}))

	precision, scale := 12, 4
	assert.Equal(t, DataType(DecimalType{Precision: 12, Scale: 4}),
		ParseDataType(TypeSpec{Name: "numeric", Precision: &precision, Scale: &scale}))

	tp := 3
	assert.Equal(t, DataType(TimestampType{Precision: 3, WithTimeZone: true}),
		ParseDataType(TypeSpec{Name: "timestamp with time zone", TimePrecision: &tp}))
}
