package cmd

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/ardnew/exprx/ext"
	"github.com/ardnew/exprx/lang"
	"github.com/ardnew/exprx/log"
	"github.com/ardnew/exprx/telemetry"
	"github.com/ardnew/exprx/template"
)

// source selects where a template is read from.
type source struct {
	Template string `arg:"" help:"Template text"                                 optional:""`
	File     string `       help:"Read the template from a file or '-' for stdin"             short:"f"`
}

// read returns the template text. File takes precedence over the argument.
func (s source) read(ctx context.Context) (string, error) {
	if s.File != "" {
		buf, err := readInput(ctx, s.File)
		if err != nil {
			return "", err
		}

		return string(buf), nil
	}

	if s.Template == "" {
		return "", ErrNoTemplate
	}

	return s.Template, nil
}

// Render resolves the markers of a template and prints the result.
type Render struct {
	Input source `embed:""`

	Ext   bool              `               help:"Evaluate markers with the extension groups enabled" negatable:""`
	Cache bool              `default:"true" help:"Reuse compiled programs across markers"            negatable:""`
	Set   map[string]string `               help:"Assign a context value (dotted key=value)"         placeholder:"KEY=VALUE" short:"S"`
}

// Run executes the render command.
func (r *Render) Run(ctx context.Context, cfg ext.Config) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	tmpl, err := r.Input.read(ctx)
	if err != nil {
		return lang.WrapError(err).With(slog.String("command", "render"))
	}

	data, err := loadContext(ctx, r.Set)
	if err != nil {
		return lang.WrapError(err).With(slog.String("command", "render"))
	}

	opts := []template.Option{
		template.WithCache(r.Cache),
		template.WithLogger(log.Default()),
		template.WithMetrics(telemetry.NewRecorder()),
	}

	if r.Ext {
		opts = append(opts, template.WithExtensions(cfg))
	}

	log.TraceContext(ctx, "render",
		slog.String("file", r.Input.File),
		slog.Int("length", len(tmpl)),
		slog.Bool("ext", r.Ext),
	)

	out, err := template.New(opts...).Resolve(ctx, tmpl, data)
	if err != nil {
		return lang.WrapError(err).With(slog.String("command", "render"))
	}

	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}

	_, err = io.WriteString(streamsFrom(ctx).out, out)

	return err
}
