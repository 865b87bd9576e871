package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestStyleHandler_Layout(t *testing.T) {
	var buf bytes.Buffer

	// A bytes.Buffer is not a terminal, so lipgloss renders without color.
	l := Make(&buf, WithPretty(true), WithTimeLayout("none"))
	l.With(slog.String("name", "tmpl")).
		Warn("marker failed",
			slog.String("body", "$.x + 1"),
			slog.Bool("fatal", false),
			slog.Any("err", errors.New("boom")),
			slog.Group("ctx", slog.Int("depth", 2)),
		)

	got := strings.TrimSpace(buf.String())
	want := `WARN  marker failed name=tmpl body="$.x + 1" fatal=false err=boom ctx.depth=2`

	if got != want {
		t.Errorf("got  %q\nwant %q", got, want)
	}
}

func TestStyleHandler_BoundAttrs(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf, WithPretty(true), WithTimeLayout("none"))
	l.With(slog.String("a", "1")).With(slog.Int("b", 2)).Info("resolved")

	got := strings.TrimSpace(buf.String())
	want := "INFO  resolved a=1 b=2"

	if got != want {
		t.Errorf("got  %q\nwant %q", got, want)
	}
}

func TestStyleHandler_WithGroup(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf, WithPretty(true), WithTimeLayout("none"))
	l.Logger = l.WithGroup("ext")
	l.Info("loaded", slog.Int("count", 4))

	if !strings.Contains(buf.String(), "ext.count=4") {
		t.Errorf("output %q missing grouped key", buf.String())
	}
}

func TestIndentHandler(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf, WithFormat(FormatJSON), WithPretty(true), WithTimeLayout("none"))
	l.With(slog.String("a", "b")).Info("indented")

	out := buf.String()
	if !strings.Contains(out, "\n  \"msg\": \"indented\"") {
		t.Errorf("output is not indented: %q", out)
	}

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if rec["a"] != "b" {
		t.Errorf("attr a = %v", rec["a"])
	}
}

func TestQuoteIfNeeded(t *testing.T) {
	tests := map[string]string{
		"plain":    "plain",
		"":         `""`,
		"two word": `"two word"`,
		"k=v":      `"k=v"`,
		"tab\t":    `"tab\t"`,
	}

	for in, want := range tests {
		if got := quoteIfNeeded(in); got != want {
			t.Errorf("quoteIfNeeded(%q) = %q, want %q", in, got, want)
		}
	}
}
