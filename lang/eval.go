package lang

import (
	"context"
	"log/slog"

	"github.com/expr-lang/expr/vm"

	"github.com/ardnew/exprx/value"
)

// Exec compiles and runs the expression, returning its result.
//
// Failures are reported as an [*Error] matching [ErrCanceled] when ctx is
// already done, [ErrExprCompile] when the source does not compile, or
// [ErrExprEvaluate] when evaluation fails (including failures returned by
// attached functions).
func (e *Expr) Exec(ctx context.Context) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, ErrCanceled.Wrap(context.Cause(ctx)).
			With(slog.String("source", e.source))
	}

	program, err := e.Compile(ctx)
	if err != nil {
		return nil, err
	}

	return e.Run(ctx, program)
}

// Run runs a program previously compiled from e against the values currently
// attached to e.
func (e *Expr) Run(ctx context.Context, program *vm.Program) (any, error) {
	result, err := vm.Run(program, e.env())
	if err != nil {
		return nil, ErrExprEvaluate.Wrap(err).
			With(slog.String("source", e.source))
	}

	e.logger.TraceContext(
		ctx,
		"exec",
		slog.String("source", e.source),
		slog.String("result_kind", value.Of(result).String()),
	)

	return result, nil
}

// Eval is shorthand for New(source, opts...).Exec(ctx).
func Eval(ctx context.Context, source string, opts ...Option) (any, error) {
	return New(source, opts...).Exec(ctx)
}

// FormatResult renders an evaluation result as text: strings unquoted,
// numbers in decimal, null as "null", and containers as compact JSON.
func FormatResult(result any) string {
	return value.Display(result)
}
