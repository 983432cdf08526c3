package db

import (
	"testing"

	"github.com/Datahenge/schemasync/schema"
)

func TestParseMySQLType(t *testing.T) {
	tests := []struct {
		columnType string
		want       schema.DataType
	}{
		{columnType: "tinyint(1)", want: schema.BooleanType{}},
		{columnType: "tinyint(4)", want: schema.RawType{Spec: "tinyint(4)"}},
		{columnType: "smallint", want: schema.IntegerType{Width: 2}},
		{columnType: "int", want: schema.IntegerType{Width: 4}},
		{columnType: "int(11)", want: schema.IntegerType{Width: 4}},
		{columnType: "bigint(20)", want: schema.IntegerType{Width: 8}},
		{columnType: "float", want: schema.FloatType{}},
		{columnType: "double", want: schema.DoubleType{}},
		{columnType: "decimal(10,2)", want: schema.DecimalType{Precision: 10, Scale: 2}},
		{columnType: "varchar(255)", want: schema.CharacterType{Limit: 255}},
		{columnType: "text", want: schema.CharacterType{}},
		{columnType: "longtext", want: schema.CharacterType{}},
		{columnType: "date", want: schema.DateType{}},
		{columnType: "time", want: schema.TimeType{}},
		{columnType: "datetime", want: schema.TimestampType{}},
		{columnType: "timestamp(6)", want: schema.TimestampType{Precision: 6}},
		{columnType: "json", want: schema.RawType{Spec: "json"}},
		{columnType: "enum('a','b')", want: schema.RawType{Spec: "enum('a','b')"}},
	}

	for _, tt := range tests {
		t.Run(tt.columnType, func(t *testing.T) {
			if got := parseMySQLType(tt.columnType); got != tt.want {
				t.Errorf("parseMySQLType(%q) = %v, want %v", tt.columnType, got, tt.want)
			}
		})
	}
}

func TestParseDatabaseName(t *testing.T) {
	tests := []struct {
		name    string
		conn    string
		want    string
		wantErr bool
	}{
		{name: "plain", conn: "user:pass@tcp(localhost:3306)/mydb", want: "mydb"},
		{name: "with params", conn: "user:pass@tcp(localhost:3306)/mydb?parseTime=true", want: "mydb"},
		{name: "no database", conn: "user:pass@tcp(localhost:3306)/", wantErr: true},
		{name: "no slash", conn: "user:pass@localhost", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDatabaseName(tt.conn)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseDatabaseName(%q) expected error, got %q", tt.conn, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDatabaseName(%q) unexpected error: %v", tt.conn, err)
			}
			if got != tt.want {
				t.Errorf("ParseDatabaseName(%q) = %q, want %q", tt.conn, got, tt.want)
			}
		})
	}
}
