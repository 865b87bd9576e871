// Package lang wraps [github.com/expr-lang/expr] behind a small expression
// handle.
//
// An [Expr] couples expression source text with the names it may reference:
// constants ([Expr.Const]), functions ([Expr.Func]), and context values
// ([Expr.Bind]). All three share a single namespace, and attaching a name
// replaces any previous attachment under that name.
//
//	e := lang.New(`greet($.name)`).
//		Func(lang.Function{Name: "greet", Fn: greet}).
//		Bind("$", map[string]any{"name": "Kar"})
//
//	result, err := e.Exec(ctx)
//
// # Errors
//
// Every failure is an [*Error] that matches one of the package sentinels with
// [errors.Is], carries the offending source as a structured attribute, and
// implements [log/slog.LogValuer].
//
// # Caching
//
// Compilation dominates the cost of short expressions. A [Cache] shared
// through [WithCache] compiles each distinct source and binding layout once.
//
// # Null
//
// The identifier "null" is accepted as a spelling of nil unless an expression
// attaches its own value under that name.
package lang
