package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"

	"github.com/goccy/go-yaml"
)

// Output formats accepted by the --format flag of list and markers.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// encoding selects the output format of a structured command.
type encoding struct {
	Format string `default:"text" enum:"text,json,yaml" help:"Output format."                             short:"o"`
	Indent int    `default:"2"                          help:"Indent width for json/yaml; 0 is compact."`
}

// encode writes v to w in the selected format. The text format is delegated
// to text.
func (e encoding) encode(
	ctx context.Context,
	w io.Writer,
	v any,
	text func(io.Writer) error,
) error {
	var (
		buf []byte
		err error
	)

	switch e.Format {
	case formatJSON:
		var b bytes.Buffer

		enc := json.NewEncoder(&b)
		enc.SetEscapeHTML(false)

		if e.Indent > 0 {
			enc.SetIndent("", strings.Repeat(" ", e.Indent))
		}

		err = enc.Encode(v)
		buf = b.Bytes()

	case formatYAML:
		var opts []yaml.EncodeOption
		if e.Indent > 0 {
			opts = append(opts, yaml.Indent(e.Indent))
		} else {
			opts = append(opts, yaml.Flow(true))
		}

		buf, err = yaml.MarshalContext(ctx, v, opts...)

	default:
		err = text(w)
	}

	if err == nil && buf != nil {
		_, err = w.Write(buf)
	}

	if err != nil {
		return ErrEncodeOutput.With(slog.String("format", e.Format)).Wrap(err)
	}

	return nil
}
