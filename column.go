package tablegateway

import (
	"fmt"
	"strconv"
	"strings"
)

// ColumnType is the declared scalar type of a table column.  Types are
// supplied once per table through TableDefinition.ColumnTypes; columns
// without a declared type store values unmodified.
type ColumnType int

const (
	TypeUnknown ColumnType = iota
	TypeInteger
	TypeReal
	TypeString
	TypeBool
)

// Coerce converts value to the declared column type.  Nil, an empty string
// and an empty byte slice always coerce to nil, regardless of the declared
// type; a typed column never stores "".  Values that cannot be converted are
// returned unmodified so that assignment never fails.
func Coerce(columnType ColumnType, value any) any {
	if isEmpty(value) {
		return nil
	}

	switch columnType {
	case TypeInteger:
		return coerceInteger(value)
	case TypeReal:
		return coerceReal(value)
	case TypeString:
		return coerceString(value)
	case TypeBool:
		return coerceBool(value)
	}

	return value
}

func isEmpty(value any) bool {
	if value == nil {
		return true
	}

	switch v := value.(type) {
	case string:
		return v == ""
	case []byte:
		return len(v) == 0
	}

	return false
}

func coerceInteger(value any) any {
	switch v := value.(type) {
	case int:
		return int64(v)
	case int8:
		return int64(v)
	case int16:
		return int64(v)
	case int32:
		return int64(v)
	case int64:
		return v
	case uint:
		return int64(v)
	case uint8:
		return int64(v)
	case uint16:
		return int64(v)
	case uint32:
		return int64(v)
	case uint64:
		return int64(v)
	case float32:
		return int64(v)
	case float64:
		return int64(v)
	case bool:
		if v {
			return int64(1)
		}
		return int64(0)
	case string:
		parsed, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return value
		}
		return parsed
	case []byte:
		return coerceInteger(string(v))
	}

	return value
}

func coerceReal(value any) any {
	switch v := value.(type) {
	case float32:
		return float64(v)
	case float64:
		return v
	case int:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return value
		}
		return parsed
	case []byte:
		return coerceReal(string(v))
	}

	return value
}

func coerceString(value any) any {
	switch v := value.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	}

	return fmt.Sprintf("%v", value)
}

func coerceBool(value any) any {
	switch v := value.(type) {
	case bool:
		return v
	case int:
		return v != 0
	case int64:
		return v != 0
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return value
		}
		return parsed
	case []byte:
		return coerceBool(string(v))
	}

	return value
}

// normalizeArg adjusts a value to its positional bind form: integer kinds
// bind as int64, nil and the empty string bind as NULL, everything else is
// passed to the driver as-is.
func normalizeArg(value any) any {
	if isEmpty(value) {
		return nil
	}

	switch v := value.(type) {
	case int:
		return int64(v)
	case int8:
		return int64(v)
	case int16:
		return int64(v)
	case int32:
		return int64(v)
	case uint:
		return int64(v)
	case uint8:
		return int64(v)
	case uint16:
		return int64(v)
	case uint32:
		return int64(v)
	case uint64:
		return int64(v)
	}

	return value
}
