package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/exprx/cli/cmd/repl"
	"github.com/ardnew/exprx/ext"
	"github.com/ardnew/exprx/lang"
	"github.com/ardnew/exprx/log"
)

// Repl starts an interactive evaluator.
type Repl struct {
	History bool `default:"true" help:"Persist input history in the cache directory." negatable:""`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context, cfg ext.Config) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	data, err := loadContext(ctx, nil)
	if err != nil {
		return lang.WrapError(err).With(slog.String("command", "repl"))
	}

	var dir string

	if ktx := kongContextFrom(ctx); ktx != nil && r.History {
		dir = ktx.Model.Vars()[CacheIdentifier]
	}

	err = repl.Run(ctx, repl.Config{
		Ext:        cfg,
		Data:       data,
		HistoryDir: dir,
		Logger:     log.Default(),
		Load: func(path string) (any, error) {
			buf, err := readInput(ctx, path)
			if err != nil {
				return nil, err
			}

			doc, err := decodeDocument(buf)
			if err != nil {
				return nil, lang.ErrDecodeContext.With(slog.String("file", path)).Wrap(err)
			}

			return doc, nil
		},
	})
	if err != nil {
		return lang.WrapError(err).With(slog.String("command", "repl"))
	}

	return nil
}
