package value

import (
	"math"
	"reflect"
	"strconv"
)

// number extracts the numeric content of v. The integer result is valid when
// isInt is true; otherwise the float result is valid. ok is false when v is
// not a number.
func number(v any) (i int64, f float64, isInt, ok bool) {
	switch n := v.(type) {
	case int:
		return int64(n), 0, true, true
	case int64:
		return n, 0, true, true
	case int32:
		return int64(n), 0, true, true
	case float64:
		return 0, n, false, true
	case float32:
		return 0, float64(n), false, true
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return 0, 0, false, false
		}

		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), 0, true, true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32,
		reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return math.MaxInt64, 0, true, true
		}

		return int64(u), 0, true, true
	case reflect.Float32, reflect.Float64:
		return 0, rv.Float(), false, true
	default:
		return 0, 0, false, false
	}
}

// truncate converts f to an integer by discarding its fractional part,
// saturating at the int64 bounds. NaN converts to zero.
func truncate(f float64) int64 {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt64:
		return math.MaxInt64
	case f <= math.MinInt64:
		return math.MinInt64
	default:
		return int64(f)
	}
}

// FormatFloat returns the shortest decimal text that parses back to f,
// without an exponent. Non-finite values format as "NaN", "+Inf", and "-Inf".
func FormatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// FormatNumber returns the decimal text of numeric v, and false if v is not a
// number.
func FormatNumber(v any) (string, bool) {
	i, f, isInt, ok := number(v)

	switch {
	case !ok:
		return "", false
	case isInt:
		return strconv.FormatInt(i, 10), true
	default:
		return FormatFloat(f), true
	}
}

// boolean extracts the boolean content of v, including named bool types.
func boolean(v any) (bool, bool) {
	if b, ok := v.(bool); ok {
		return b, true
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Bool {
		return rv.Bool(), true
	}

	return false, false
}

// text extracts the string content of v, including named string types.
func text(v any) (string, bool) {
	if s, ok := v.(string); ok {
		return s, true
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.String {
		return rv.String(), true
	}

	return "", false
}

// size returns the number of elements in container v.
func size(v any) int {
	switch c := v.(type) {
	case []any:
		return len(c)
	case map[string]any:
		return len(c)
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return 0
		}

		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len()
	case reflect.Struct:
		return rv.NumField()
	default:
		return 0
	}
}
