package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectMapOrder(t *testing.T) {
	m := NewObjectMap[ColumnObject](
		&Column{ColumnName: LocalID{Name: "zebra"}, Type: CharacterType{}},
		&Column{ColumnName: LocalID{Name: "apple"}, Type: CharacterType{}},
		&Column{ColumnName: LocalID{Name: "mango"}, Type: CharacterType{}},
	)

	// insertion order, never sorted
	assert.Equal(t, []string{"zebra", "apple", "mango"}, m.Names())
	assert.Equal(t, 3, m.Len())
}

func TestObjectMapLookup(t *testing.T) {
	column := &Column{ColumnName: LocalID{Name: "id"}, Type: IntegerType{Width: 8}}
	m := NewObjectMap[ColumnObject](column)

	got, ok := m.Get("id")
	require.True(t, ok)
	assert.Same(t, ColumnObject(column), got)

	_, ok = m.Get("missing")
	assert.False(t, ok)
	assert.True(t, m.Has("id"))
	assert.False(t, m.Has("missing"))
}

func TestObjectMapAddDuplicate(t *testing.T) {
	m := NewObjectMap[ColumnObject](
		&Column{ColumnName: LocalID{Name: "id"}, Type: IntegerType{Width: 8}},
	)

	err := m.Add(&Column{ColumnName: LocalID{Name: "id"}, Type: CharacterType{}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already in collection")
}

func TestObjectMapConstructorLastWins(t *testing.T) {
	m := NewObjectMap[ColumnObject](
		&Column{ColumnName: LocalID{Name: "id"}, Type: IntegerType{Width: 4}},
		&Column{ColumnName: LocalID{Name: "id"}, Type: IntegerType{Width: 8}},
	)

	require.Equal(t, 1, m.Len())
	got, ok := m.Get("id")
	require.True(t, ok)
	assert.Equal(t, DataType(IntegerType{Width: 8}), got.Base().Type)
}
