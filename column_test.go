package tablegateway

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoerce_integer(t *testing.T) {
	assert.Equal(t, int64(5), Coerce(TypeInteger, "5"))
	assert.Equal(t, int64(5), Coerce(TypeInteger, 5))
	assert.Equal(t, int64(5), Coerce(TypeInteger, int32(5)))
	assert.Equal(t, int64(5), Coerce(TypeInteger, []byte("5")))
	assert.Equal(t, int64(-12), Coerce(TypeInteger, " -12 "))
	assert.Equal(t, int64(1), Coerce(TypeInteger, true))
}

func TestCoerce_real(t *testing.T) {
	assert.Equal(t, 2.5, Coerce(TypeReal, "2.5"))
	assert.Equal(t, 2.0, Coerce(TypeReal, 2))
	assert.Equal(t, 2.5, Coerce(TypeReal, float32(2.5)))
}

func TestCoerce_string(t *testing.T) {
	assert.Equal(t, "hello", Coerce(TypeString, "hello"))
	assert.Equal(t, "hello", Coerce(TypeString, []byte("hello")))
	assert.Equal(t, "5", Coerce(TypeString, 5))
}

func TestCoerce_bool(t *testing.T) {
	assert.Equal(t, true, Coerce(TypeBool, "true"))
	assert.Equal(t, true, Coerce(TypeBool, 1))
	assert.Equal(t, false, Coerce(TypeBool, int64(0)))
	assert.Equal(t, false, Coerce(TypeBool, false))
}

func TestCoerce_emptyBecomesNil(t *testing.T) {
	for _, columnType := range []ColumnType{TypeUnknown, TypeInteger, TypeReal, TypeString, TypeBool} {
		assert.Nil(t, Coerce(columnType, nil))
		assert.Nil(t, Coerce(columnType, ""))
		assert.Nil(t, Coerce(columnType, []byte{}))
	}
}

func TestCoerce_unknownTypePassesThrough(t *testing.T) {
	assert.Equal(t, "5", Coerce(TypeUnknown, "5"))
	assert.Equal(t, 2.5, Coerce(TypeUnknown, 2.5))
}

func TestCoerce_unparseableKeptVerbatim(t *testing.T) {
	assert.Equal(t, "abc", Coerce(TypeInteger, "abc"))
	assert.Equal(t, "abc", Coerce(TypeReal, "abc"))
	assert.Equal(t, "abc", Coerce(TypeBool, "abc"))
}

func TestNormalizeArg(t *testing.T) {
	assert.Nil(t, normalizeArg(nil))
	assert.Nil(t, normalizeArg(""))
	assert.Equal(t, int64(5), normalizeArg(5))
	assert.Equal(t, int64(5), normalizeArg(uint32(5)))
	assert.Equal(t, "hello", normalizeArg("hello"))
	assert.Equal(t, 2.5, normalizeArg(2.5))
}
