package template

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/ardnew/exprx/ext"
	"github.com/ardnew/exprx/lang"
	"github.com/ardnew/exprx/log"
	"github.com/ardnew/exprx/telemetry"
	"github.com/ardnew/exprx/value"
)

// DefaultName is the identifier the template context is bound to.
const DefaultName = "$"

// Resolver resolves templates. The zero value is ready to use: it binds the
// context to "$", installs no extensions and compiles every marker afresh.
//
// A Resolver is safe for concurrent use once configured.
type Resolver struct {
	name    string
	ext     ext.Config
	cache   *lang.Cache
	logger  log.Logger
	metrics telemetry.Recorder
}

// Option configures a [Resolver].
type Option func(*Resolver)

// WithExtensions installs the extension groups selected by cfg into every
// marker expression.
func WithExtensions(cfg ext.Config) Option {
	return func(r *Resolver) { r.ext = cfg }
}

// WithCache controls whether compiled programs are kept and reused across
// calls to [Resolver.Resolve].
func WithCache(enable bool) Option {
	return func(r *Resolver) {
		if enable {
			r.cache = lang.NewCache()
		} else {
			r.cache = nil
		}
	}
}

// WithLogger sets the logger used for trace-level diagnostics.
func WithLogger(logger log.Logger) Option {
	return func(r *Resolver) { r.logger = logger }
}

// WithMetrics sets the metrics recorder.
func WithMetrics(rec telemetry.Recorder) Option {
	return func(r *Resolver) { r.metrics = rec }
}

// WithName sets the identifier the context is bound to. An empty name
// restores [DefaultName].
func WithName(name string) Option {
	return func(r *Resolver) { r.name = name }
}

// New returns a Resolver configured by opts.
func New(opts ...Option) *Resolver {
	r := &Resolver{}

	for _, opt := range opts {
		opt(r)
	}

	if r.cache != nil {
		r.cache.OnLookup(r.recorder().RecordCache)
	}

	return r
}

// Resolve resolves tmpl against data using a zero [Resolver].
func Resolve(ctx context.Context, tmpl string, data any) (string, error) {
	var r Resolver

	return r.Resolve(ctx, tmpl, data)
}

// Name returns the identifier the context is bound to.
func (r *Resolver) Name() string {
	if r.name == "" {
		return DefaultName
	}

	return r.name
}

// Markers returns every marker in tmpl. See [Markers].
func (r *Resolver) Markers(tmpl string) []Marker { return Markers(tmpl) }

// Resolve evaluates every marker in tmpl against data and returns tmpl with
// each marker replaced by its displayed result.
//
// Distinct markers are evaluated in order of first appearance. The first
// failure stops resolution; the returned error matches
// [lang.ErrTemplateResolve] and wraps the evaluation error. A context that is
// done before all markers are evaluated yields [lang.ErrCanceled].
func (r *Resolver) Resolve(ctx context.Context, tmpl string, data any) (out string, err error) {
	var evaluated int

	start := time.Now()
	ctx, span := telemetry.StartResolveSpan(ctx, r.Name(), len(tmpl))

	defer func() {
		telemetry.EndSpan(span, err)
		r.recorder().RecordResolve(ctx, evaluated, time.Since(start), err)
	}()

	markers := Markers(tmpl)
	if len(markers) == 0 {
		return tmpl, nil
	}

	seen := make(map[string]bool, len(markers))
	pairs := make([]string, 0, 2*len(markers))

	for _, m := range markers {
		if seen[m.Span] {
			continue
		}

		seen[m.Span] = true

		var text string

		if !m.Blank() {
			if err := ctx.Err(); err != nil {
				return "", lang.ErrCanceled.Wrap(context.Cause(ctx)).
					With(slog.String("marker", m.Span))
			}

			evaluated++

			text, err = r.eval(ctx, m.Body, data)
			if err != nil {
				return "", lang.ErrTemplateResolve.Wrap(err).With(
					slog.String("marker", m.Span),
					slog.Int("offset", m.Start),
				)
			}
		}

		pairs = append(pairs, m.Span, text)
	}

	r.logger.TraceContext(ctx, "resolved template",
		slog.Int("markers", len(markers)),
		slog.Int("evaluated", evaluated),
	)

	return strings.NewReplacer(pairs...).Replace(tmpl), nil
}

func (r *Resolver) eval(ctx context.Context, body string, data any) (text string, err error) {
	start := time.Now()
	ctx, span := telemetry.StartEvalSpan(ctx, body)

	defer func() {
		telemetry.EndSpan(span, err)
		r.recorder().RecordEval(ctx, time.Since(start), err)
	}()

	e := lang.New(body, lang.WithLogger(r.logger), lang.WithCache(r.cache))

	result, err := ext.Apply(e, r.ext).Bind(r.Name(), data).Exec(ctx)
	if err != nil {
		return "", err
	}

	return value.Display(result), nil
}

func (r *Resolver) recorder() telemetry.Recorder {
	if r.metrics == nil {
		return telemetry.Noop{}
	}

	return r.metrics
}
