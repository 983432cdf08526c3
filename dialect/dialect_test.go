package dialect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		name string
		want Kind
	}{
		{name: "postgres", want: Postgres},
		{name: "postgresql", want: Postgres},
		{name: "MySQL", want: MySQL},
		{name: "mariadb", want: MySQL},
		{name: "sqlserver", want: MSSQL},
		{name: "mssql", want: MSSQL},
		{name: "oracle", want: Oracle},
		{name: "sqlite3", want: SQLite},
		{name: "sqlite", want: SQLite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseKind(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseKindUnsupported(t *testing.T) {
	_, err := ParseKind("dbase")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported dialect")
}

func TestKindRoundTrip(t *testing.T) {
	for _, kind := range []Kind{Postgres, MySQL, MSSQL, Oracle, SQLite} {
		got, err := ParseKind(kind.String())
		require.NoError(t, err)
		assert.Equal(t, kind, got)
		assert.Equal(t, kind, For(kind).Kind())
	}
}
