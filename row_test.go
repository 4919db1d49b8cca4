package tablegateway

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var postTypes = map[string]ColumnType{
	"id":    TypeInteger,
	"title": TypeString,
	"views": TypeInteger,
}

func TestRow_setMarksModified(t *testing.T) {
	row := NewRow(postTypes)

	assert.False(t, row.IsModified("title"))

	row.Set("title", "Hello")

	assert.True(t, row.IsModified("title"))
	assert.False(t, row.IsModified("views"))
	assert.Equal(t, "Hello", row.Get("title"))
}

func TestRow_setCoerces(t *testing.T) {
	row := NewRow(postTypes)

	row.Set("views", "5")
	assert.Equal(t, int64(5), row.Get("views"))

	row.Set("views", "")
	assert.Nil(t, row.Get("views"))
	assert.True(t, row.IsModified("views"))
}

func TestRow_setNullIsStillModified(t *testing.T) {
	row := NewRow(postTypes)

	row.Set("title", nil)

	assert.True(t, row.IsModified("title"))
	assert.Nil(t, row.Get("title"))
}

func TestRow_loadDoesNotMarkModified(t *testing.T) {
	row := NewRow(postTypes)

	row.Load(map[string]any{"id": int64(5), "title": "Hello", "views": "12"})

	assert.False(t, row.IsModified("id"))
	assert.False(t, row.IsModified("title"))
	assert.Equal(t, int64(5), row.Get("id"))
	assert.Equal(t, "Hello", row.Get("title"))
	assert.Equal(t, int64(12), row.Get("views"))
}

func TestRow_getUnassignedReturnsNil(t *testing.T) {
	row := NewRow(postTypes)

	assert.Nil(t, row.Get("title"))
	assert.Nil(t, row.Get("no_such_column"))
}

func TestRow_valuesReturnsCopy(t *testing.T) {
	row := NewRow(postTypes)
	row.Set("title", "Hello")

	values := row.Values()
	values["title"] = "mutated"

	assert.Equal(t, "Hello", row.Get("title"))
}
