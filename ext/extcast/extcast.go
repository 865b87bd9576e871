// Package extcast provides the type-cast functions int, float, bool and str.
//
// Every cast is total: any argument, or none at all, yields a value.
package extcast

import (
	"github.com/ardnew/exprx/lang"
	"github.com/ardnew/exprx/value"
)

// All returns every cast function.
func All() []lang.Function {
	return []lang.Function{Int(), Float(), Bool(), Str()}
}

// Int returns the definition for int(value).
func Int() lang.Function {
	return lang.Function{
		Name:      "int",
		Signature: "(value)",
		Help:      "convert to a 64-bit integer; text is parsed by its integer prefix",
		Fn: func(args ...any) (any, error) {
			return value.ToInt(args...), nil
		},
	}
}

// Float returns the definition for float(value).
func Float() lang.Function {
	return lang.Function{
		Name:      "float",
		Signature: "(value)",
		Help:      "convert to a 64-bit float; unparseable values are NaN",
		Fn: func(args ...any) (any, error) {
			return value.ToFloat(args...), nil
		},
	}
}

// Bool returns the definition for bool(value).
func Bool() lang.Function {
	return lang.Function{
		Name:      "bool",
		Signature: "(value)",
		Help:      "convert to a boolean; numbers test non-zero, text and containers test non-empty",
		Fn: func(args ...any) (any, error) {
			return value.ToBool(args...), nil
		},
	}
}

// Str returns the definition for str(value).
func Str() lang.Function {
	return lang.Function{
		Name:      "str",
		Signature: "(value)",
		Help:      "convert to text; containers become compact JSON",
		Fn: func(args ...any) (any, error) {
			return value.ToText(args...), nil
		},
	}
}
