package cmd

import (
	"context"
	"io"
	"log/slog"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/ardnew/exprx/ext"
	"github.com/ardnew/exprx/lang"
)

// Kinds accepted by the --kind flag of list.
const (
	kindAll       = "all"
	kindFunctions = "functions"
	kindConstants = "constants"
)

var headerStyle = lipgloss.NewStyle().Bold(true)

// List enumerates the functions and constants installed by the enabled
// extension groups.
type List struct {
	Kind   string   `default:"all" enum:"all,functions,constants" help:"Restrict the listing to one kind." short:"k"`
	Output encoding `embed:""`
}

// Run executes the list command.
func (l *List) Run(ctx context.Context, cfg ext.Config) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	entries := filterEntries(ext.Catalog(cfg), l.Kind)

	err = l.Output.encode(ctx, streamsFrom(ctx).out, entries, func(w io.Writer) error {
		_, err := io.WriteString(w, entryTable(entries)+"\n")

		return err
	})
	if err != nil {
		return lang.WrapError(err).With(slog.String("command", "list"))
	}

	return nil
}

func filterEntries(entries []ext.Entry, kind string) []ext.Entry {
	want := ""

	switch kind {
	case kindFunctions:
		want = ext.KindFunction
	case kindConstants:
		want = ext.KindConstant
	}

	out := make([]ext.Entry, 0, len(entries))

	for _, e := range entries {
		if want == "" || e.Kind == want {
			out = append(out, e)
		}
	}

	return out
}

// entryTable renders entries as an aligned borderless table.
func entryTable(entries []ext.Entry) string {
	t := table.New().
		Border(lipgloss.HiddenBorder()).
		BorderTop(false).
		BorderBottom(false).
		Headers("GROUP", "NAME", "VALUE", "DESCRIPTION").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}

			return lipgloss.NewStyle()
		})

	for _, e := range entries {
		name, val := e.Name, e.Value
		if e.Kind == ext.KindFunction {
			name += e.Signature
		}

		t.Row(e.Group, name, val, e.Help)
	}

	return t.String()
}
