package value

import (
	"math"
	"strconv"
)

// first returns the first element of args, and false if args is empty.
func first(args []any) (any, bool) {
	if len(args) == 0 {
		return nil, false
	}

	return args[0], true
}

// ToInt converts the first of args to an integer.
//
// With no arguments the result is 0. Floats are truncated toward zero,
// booleans convert to 1 or 0, and strings are parsed with [Atoi]. Every other
// kind converts to 0.
func ToInt(args ...any) int64 {
	v, ok := first(args)
	if !ok {
		return 0
	}

	if i, f, isInt, ok := number(v); ok {
		if isInt {
			return i
		}

		return truncate(f)
	}

	if b, ok := boolean(v); ok {
		if b {
			return 1
		}

		return 0
	}

	if s, ok := text(v); ok {
		return Atoi(s)
	}

	return 0
}

// ToFloat converts the first of args to a float.
//
// With no arguments the result is NaN. Booleans convert to 1 or 0 and strings
// are parsed as decimal floats. Unparseable strings and every non-scalar kind
// convert to NaN.
func ToFloat(args ...any) float64 {
	v, ok := first(args)
	if !ok {
		return math.NaN()
	}

	if i, f, isInt, ok := number(v); ok {
		if isInt {
			return float64(i)
		}

		return f
	}

	if b, ok := boolean(v); ok {
		if b {
			return 1
		}

		return 0
	}

	if s, ok := text(v); ok {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return math.NaN()
		}

		return f
	}

	return math.NaN()
}

// ToBool converts the first of args to a boolean.
//
// With no arguments the result is false. Numbers are true when non-zero;
// strings, arrays, and objects are true when non-empty; null is false.
func ToBool(args ...any) bool {
	v, ok := first(args)
	if !ok {
		return false
	}

	switch k := Of(v); k {
	case Null:
		return false
	case Bool:
		b, _ := boolean(v)

		return b
	case Integer, Float:
		return ToFloat(v) != 0
	case String:
		s, _ := text(v)

		return s != ""
	default:
		return size(v) > 0
	}
}

// ToText converts the first of args to a string.
//
// With no arguments the result is the empty string. Null converts to "null",
// and arrays and objects convert to compact JSON, or "null" if they cannot be
// encoded.
func ToText(args ...any) string {
	v, ok := first(args)
	if !ok {
		return ""
	}

	return Stringify(v)
}

// Stringify returns the text form of v: numbers in decimal, booleans as
// "true" or "false", strings unchanged, containers as compact JSON, and
// everything else as "null".
func Stringify(v any) string {
	return render(v, "null", "null")
}

// Display returns the text form of v used when splicing results into
// templates. It differs from [Stringify] only in its fallback for containers
// that cannot be encoded: "[]" for arrays and "{}" for objects.
func Display(v any) string {
	return render(v, "[]", "{}")
}

func render(v any, arrayFallback, objectFallback string) string {
	switch Of(v) {
	case Null:
		return "null"
	case Bool:
		b, _ := boolean(v)

		return strconv.FormatBool(b)
	case Integer, Float:
		s, _ := FormatNumber(v)

		return s
	case String:
		s, _ := text(v)

		return s
	case Array:
		s, err := JSON(v)
		if err != nil {
			return arrayFallback
		}

		return s
	case Object:
		s, err := JSON(v)
		if err != nil {
			return objectFallback
		}

		return s
	default:
		return "null"
	}
}
