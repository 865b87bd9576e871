package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ardnew/exprx/ext"
	"github.com/ardnew/exprx/lang"
	"github.com/ardnew/exprx/log"
	"github.com/ardnew/exprx/template"
)

// Eval evaluates a single expression with the context bound to "$".
type Eval struct {
	Expr  string            `arg:"" help:"Expression to evaluate"                  name:"expr"`
	NoExt bool              `       help:"Disable every extension group"            name:"no-ext"`
	Set   map[string]string `       help:"Assign a context value (dotted key=value)" placeholder:"KEY=VALUE" short:"S"`
}

// Run executes the eval command.
func (e *Eval) Run(ctx context.Context, cfg ext.Config) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	data, err := loadContext(ctx, e.Set)
	if err != nil {
		return lang.WrapError(err).With(slog.String("command", "eval"))
	}

	if e.NoExt {
		cfg = ext.Config{}
	}

	x := ext.Apply(lang.New(e.Expr, lang.WithLogger(log.Default())), cfg).
		Bind(template.DefaultName, data)

	log.TraceContext(ctx, "eval",
		slog.String("expr", e.Expr),
		slog.Int("names", x.Len()),
	)

	result, err := x.Exec(ctx)
	if err != nil {
		return lang.WrapError(err).With(
			slog.String("command", "eval"),
			slog.String("expr", e.Expr),
		)
	}

	_, err = fmt.Fprintln(streamsFrom(ctx).out, lang.FormatResult(result))

	return err
}
