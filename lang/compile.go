package lang

import (
	"context"
	"log/slog"
	"maps"
	"slices"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Compile compiles the expression against the names currently attached to e.
// The returned program is only valid for environments holding the same names
// with values of the same types.
func (e *Expr) Compile(ctx context.Context) (*vm.Program, error) {
	if e.cache != nil {
		return e.cache.load(ctx, e)
	}

	return e.compile(ctx)
}

func (e *Expr) compile(ctx context.Context) (*vm.Program, error) {
	opts := make([]expr.Option, 0, len(e.funcs)+2)
	opts = append(opts, expr.Env(e.env()))

	for _, name := range slices.Sorted(maps.Keys(e.funcs)) {
		opts = append(opts, expr.Function(name, e.funcs[name].Fn))
	}

	opts = append(opts, expr.Patch(&nullPatcher{bound: e.Has, logger: e.logger}))

	program, err := expr.Compile(e.source, opts...)
	if err != nil {
		return nil, ErrExprCompile.Wrap(err).
			With(slog.String("source", e.source))
	}

	e.logger.TraceContext(
		ctx,
		"compile",
		slog.String("source", e.source),
		slog.Int("names", len(e.names)),
		slog.Int("functions", len(e.funcs)),
	)

	return program, nil
}
