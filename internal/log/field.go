package log

import (
	"fmt"
	"math"
	"time"
)

// Log field types.
const (
	TypeBool fieldType = iota + 1
	TypeBytes
	TypeDuration
	TypeErr
	TypeFloat64
	TypeInt
	TypeInt32
	TypeInt32s
	TypeInt64
	TypeString
	TypeStrings
	TypeUint8
	TypeUint64
)

type fieldType byte

func (f fieldType) String() string {
	switch f {
	case TypeBool:
		return "Bool"
	case TypeBytes:
		return "Bytes"
	case TypeDuration:
		return "Duration"
	case TypeErr:
		return "Err"
	case TypeFloat64:
		return "Float64"
	case TypeInt:
		return "Int"
	case TypeInt32:
		return "Int32"
	case TypeInt32s:
		return "Int32s"
	case TypeInt64:
		return "Int64"
	case TypeString:
		return "String"
	case TypeStrings:
		return "Strings"
	case TypeUint8:
		return "Uint8"
	case TypeUint64:
		return "Uint64"
	default:
		return fmt.Sprintf("fieldType(%d)", byte(f))
	}
}

// Field represents a key/value pair for adding to a log entry.
type Field struct {
	key  string
	typ  fieldType
	ival int64
	sval string
	xval interface{}
}

// Bool represents a field with a boolean value.
func Bool(key string, value bool) Field {
	f := Field{key: key, typ: TypeBool}
	if value {
		f.ival = 1
	}
	return f
}

// Bytes represents a field with a byte slice value.
func Bytes(key string, value []byte) Field {
	return Field{
		key:  key,
		typ:  TypeBytes,
		xval: value,
	}
}

// Duration represents a field with a duration value.
func Duration(key string, value time.Duration) Field {
	return Field{
		key:  key,
		typ:  TypeDuration,
		ival: int64(value),
	}
}

// Err represents a field with an error value. It automatically uses "error" as
// the Field key.
func Err(value error) Field {
	return Field{
		key:  "error",
		typ:  TypeErr,
		sval: value.Error(),
	}
}

// Float64 represents a field with a float64 value.
func Float64(key string, value float64) Field {
	return Field{
		key:  key,
		typ:  TypeFloat64,
		ival: int64(math.Float64bits(value)),
	}
}

// Int represents a field with an int value.
func Int(key string, value int) Field {
	return Field{
		key:  key,
		typ:  TypeInt,
		ival: int64(value),
	}
}

// Int32 represents a field with an int32 value.
func Int32(key string, value int32) Field {
	return Field{
		key:  key,
		typ:  TypeInt32,
		ival: int64(value),
	}
}

// Int32s represents a field with an array of int32 values.
func Int32s(key string, value []int32) Field {
	return Field{
		key:  key,
		typ:  TypeInt32s,
		xval: value,
	}
}

// Int64 represents a field with an int64 value.
func Int64(key string, value int64) Field {
	return Field{
		key:  key,
		typ:  TypeInt64,
		ival: value,
	}
}

// String represents a field with a string value.
func String(key string, value string) Field {
	return Field{
		key:  key,
		typ:  TypeString,
		sval: value,
	}
}

// Strings represents a field with an array of string values.
func Strings(key string, value []string) Field {
	return Field{
		key:  key,
		typ:  TypeStrings,
		xval: value,
	}
}

// Uint8 represents a field with a uint8 value.
func Uint8(key string, value uint8) Field {
	return Field{
		key:  key,
		typ:  TypeUint8,
		ival: int64(value),
	}
}

// Uint64 represents a field with a uint64 value.
func Uint64(key string, value uint64) Field {
	return Field{
		key:  key,
		typ:  TypeUint64,
		ival: int64(value),
	}
}
