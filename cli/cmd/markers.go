package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/ardnew/exprx/lang"
	"github.com/ardnew/exprx/template"
)

// Markers lists the markers found in a template without evaluating them.
type Markers struct {
	Input  source   `embed:""`
	Output encoding `embed:""`
}

// Run executes the markers command.
func (m *Markers) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	tmpl, err := m.Input.read(ctx)
	if err != nil {
		return lang.WrapError(err).With(slog.String("command", "markers"))
	}

	found := template.Markers(tmpl)
	if found == nil {
		found = []template.Marker{}
	}

	err = m.Output.encode(ctx, streamsFrom(ctx).out, found, func(w io.Writer) error {
		for _, mk := range found {
			_, err := fmt.Fprintf(w, "%d:%d\t%s\n",
				mk.Start, mk.End, strconv.Quote(mk.Body))
			if err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return lang.WrapError(err).With(slog.String("command", "markers"))
	}

	return nil
}
