package log

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// palette holds the lipgloss styles used by styleHandler. Styles are bound to
// a renderer for the output writer, so color is dropped automatically when
// the writer is not a terminal.
type palette struct {
	key, msg, source  lipgloss.Style
	str, num, boolean lipgloss.Style
	err, when         lipgloss.Style
	level             map[slog.Level]lipgloss.Style
}

func newPalette(w io.Writer) *palette {
	r := lipgloss.NewRenderer(w)
	color := func(c string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(c))
	}

	return &palette{
		key:     color("8"),
		msg:     r.NewStyle().Bold(true),
		source:  color("8").Italic(true),
		str:     r.NewStyle(),
		num:     color("6"),
		boolean: color("5"),
		err:     color("1"),
		when:    color("4"),
		level: map[slog.Level]lipgloss.Style{
			slog.Level(LevelTrace): color("8").Bold(true),
			slog.Level(LevelDebug): color("4").Bold(true),
			slog.Level(LevelInfo):  color("2").Bold(true),
			slog.Level(LevelWarn):  color("3").Bold(true),
			slog.Level(LevelError): color("1").Bold(true),
		},
	}
}

func (p *palette) forLevel(l slog.Level) lipgloss.Style {
	for _, named := range slices.Backward(levels[:]) {
		if l >= slog.Level(named) {
			return p.level[slog.Level(named)]
		}
	}

	return p.level[slog.Level(LevelTrace)]
}

// styleHandler is a [slog.Handler] that writes colorized key=value lines.
type styleHandler struct {
	opts   slog.HandlerOptions
	mu     *sync.Mutex
	w      io.Writer
	style  *palette
	groups []string
	attrs  []byte // preformatted attributes from WithAttrs
}

func newStyleHandler(w io.Writer, opts *slog.HandlerOptions) *styleHandler {
	return &styleHandler{
		opts:  *opts,
		mu:    &sync.Mutex{},
		w:     w,
		style: newPalette(w),
	}
}

func (h *styleHandler) Enabled(_ context.Context, level slog.Level) bool {
	threshold := slog.LevelInfo
	if h.opts.Level != nil {
		threshold = h.opts.Level.Level()
	}

	return level >= threshold
}

func (h *styleHandler) Handle(_ context.Context, r slog.Record) error {
	var buf bytes.Buffer

	if !r.Time.IsZero() {
		if a := h.builtin(slog.Time(slog.TimeKey, r.Time)); !a.Equal(slog.Attr{}) {
			buf.WriteString(h.style.when.Render(a.Value.String()))
		}
	}

	if a := h.builtin(slog.Any(slog.LevelKey, r.Level)); !a.Equal(slog.Attr{}) {
		sep(&buf)
		buf.WriteString(
			h.style.forLevel(r.Level).Render(fmt.Sprintf("%-5s", a.Value.String())),
		)
	}

	if h.opts.AddSource {
		if src := r.Source(); src != nil {
			sep(&buf)
			buf.WriteString(
				h.style.source.Render(src.File + ":" + strconv.Itoa(src.Line)),
			)
		}
	}

	sep(&buf)
	buf.WriteString(h.style.msg.Render(r.Message))
	buf.Write(h.attrs)

	prefix := groupPrefix(h.groups)

	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(&buf, h.groups, prefix, a)

		return true
	})

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *styleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}

	c := *h
	buf := bytes.NewBuffer(slices.Clone(h.attrs))
	prefix := groupPrefix(h.groups)

	for _, a := range attrs {
		h.writeAttr(buf, h.groups, prefix, a)
	}

	c.attrs = buf.Bytes()

	return &c
}

func (h *styleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.groups = append(slices.Clip(h.groups), name)

	return &c
}

func (h *styleHandler) builtin(a slog.Attr) slog.Attr {
	if h.opts.ReplaceAttr == nil {
		return a
	}

	return h.opts.ReplaceAttr(nil, a)
}

func (h *styleHandler) writeAttr(
	buf *bytes.Buffer,
	groups []string,
	prefix string,
	a slog.Attr,
) {
	a.Value = a.Value.Resolve()

	if a.Value.Kind() != slog.KindGroup && h.opts.ReplaceAttr != nil {
		a = h.opts.ReplaceAttr(groups, a)
		a.Value = a.Value.Resolve()
	}

	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		members := a.Value.Group()
		if len(members) == 0 {
			return
		}

		if a.Key != "" {
			groups = append(slices.Clip(groups), a.Key)
			prefix += a.Key + "."
		}

		for _, m := range members {
			h.writeAttr(buf, groups, prefix, m)
		}

		return
	}

	// Attributes always follow the message, bound ones included.
	buf.WriteByte(' ')
	buf.WriteString(h.style.key.Render(prefix + a.Key + "="))
	buf.WriteString(h.value(a.Value))
}

func (h *styleHandler) value(v slog.Value) string {
	switch v.Kind() {
	case slog.KindString:
		return h.style.str.Render(quoteIfNeeded(v.String()))

	case slog.KindInt64, slog.KindUint64, slog.KindFloat64:
		return h.style.num.Render(v.String())

	case slog.KindBool:
		return h.style.boolean.Render(v.String())

	case slog.KindDuration:
		return h.style.when.Render(v.Duration().String())

	case slog.KindTime:
		return h.style.when.Render(v.Time().Format(time.RFC3339))

	default:
		if err, ok := v.Any().(error); ok {
			return h.style.err.Render(quoteIfNeeded(err.Error()))
		}

		return h.style.str.Render(quoteIfNeeded(fmt.Sprint(v.Any())))
	}
}

func sep(buf *bytes.Buffer) {
	if buf.Len() > 0 {
		buf.WriteByte(' ')
	}
}

func groupPrefix(groups []string) string {
	if len(groups) == 0 {
		return ""
	}

	return strings.Join(groups, ".") + "."
}

func quoteIfNeeded(s string) string {
	if s == "" || strings.ContainsFunc(s, func(r rune) bool {
		return r <= ' ' || r == '=' || r == '"' || !strconv.IsPrint(r)
	}) {
		return strconv.Quote(s)
	}

	return s
}

// indentHandler is a [slog.Handler] that writes each JSON record indented
// across multiple lines.
type indentHandler struct {
	inner slog.Handler
	sink  *indentSink
}

// indentSink captures one record from the inner JSON handler at a time and
// re-indents it before writing to the real output.
type indentSink struct {
	mu  sync.Mutex
	buf bytes.Buffer
	w   io.Writer
}

func (s *indentSink) Write(p []byte) (int, error) { return s.buf.Write(p) }

func newIndentHandler(w io.Writer, opts *slog.HandlerOptions) *indentHandler {
	sink := &indentSink{w: w}

	return &indentHandler{
		inner: slog.NewJSONHandler(sink, opts),
		sink:  sink,
	}
}

func (h *indentHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *indentHandler) Handle(ctx context.Context, r slog.Record) error {
	h.sink.mu.Lock()
	defer h.sink.mu.Unlock()

	h.sink.buf.Reset()

	if err := h.inner.Handle(ctx, r); err != nil {
		return err
	}

	var out bytes.Buffer
	if err := json.Indent(&out, bytes.TrimSpace(h.sink.buf.Bytes()), "", "  "); err != nil {
		return err
	}

	out.WriteByte('\n')

	_, err := h.sink.w.Write(out.Bytes())

	return err
}

func (h *indentHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &indentHandler{inner: h.inner.WithAttrs(attrs), sink: h.sink}
}

func (h *indentHandler) WithGroup(name string) slog.Handler {
	return &indentHandler{inner: h.inner.WithGroup(name), sink: h.sink}
}
