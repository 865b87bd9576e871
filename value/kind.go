package value

import (
	"iter"
	"reflect"
	"strings"
)

// Kind identifies the variant of a dynamically typed value.
type Kind uint8

const (
	Null    Kind = iota // NULL
	Bool                // BOOLEAN
	Integer             // INTEGER
	Float               // FLOAT
	String              // STRING
	Array               // ARRAY
	Object              // OBJECT
)

var kindName = [...]string{
	Null:    "NULL",
	Bool:    "BOOLEAN",
	Integer: "INTEGER",
	Float:   "FLOAT",
	String:  "STRING",
	Array:   "ARRAY",
	Object:  "OBJECT",
}

// String returns the upper-case type name of k.
func (k Kind) String() string {
	if int(k) < len(kindName) {
		return kindName[k]
	}

	return kindName[Null]
}

// Numeric reports whether k is [Integer] or [Float].
func (k Kind) Numeric() bool { return k == Integer || k == Float }

// Container reports whether k is [Array] or [Object].
func (k Kind) Container() bool { return k == Array || k == Object }

// Kinds returns an iterator over all defined kinds in declaration order.
func Kinds() iter.Seq[Kind] {
	return func(yield func(Kind) bool) {
		for k := range Kind(len(kindName)) {
			if !yield(k) {
				return
			}
		}
	}
}

// ParseKind returns the [Kind] named by s. Matching ignores case and
// surrounding whitespace. Unrecognized names yield [Null].
func ParseKind(s string) Kind {
	s = strings.ToUpper(strings.TrimSpace(s))

	for k := range Kinds() {
		if k.String() == s {
			return k
		}
	}

	return Null
}

// Of classifies v.
func Of(v any) Kind {
	switch v.(type) {
	case nil:
		return Null
	case bool:
		return Bool
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, uintptr:
		return Integer
	case float32, float64:
		return Float
	case string:
		return String
	case []any:
		return Array
	case map[string]any:
		return Object
	}

	return ofReflect(reflect.ValueOf(v))
}

func ofReflect(rv reflect.Value) Kind {
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return Null
		}

		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Bool:
		return Bool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32,
		reflect.Uint64, reflect.Uintptr:
		return Integer
	case reflect.Float32, reflect.Float64:
		return Float
	case reflect.String:
		return String
	case reflect.Slice, reflect.Array:
		return Array
	case reflect.Map, reflect.Struct:
		return Object
	default:
		return Null
	}
}
