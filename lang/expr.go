package lang

import (
	"iter"
	"maps"
	"slices"

	"github.com/ardnew/exprx/log"
)

// kind identifies the namespace an attached name belongs to.
type kind uint8

const (
	kindConst kind = iota + 1
	kindFunc
	kindBind
)

// Expr is a handle to an expression source and the names attached to it.
//
// Constants, functions, and context values share a single namespace:
// attaching a name replaces whatever was previously attached under it.
// An Expr is not safe for concurrent mutation, but once fully configured it
// may be executed concurrently.
type Expr struct {
	source string
	names  map[string]kind
	consts map[string]any
	funcs  map[string]Function
	binds  map[string]any
	logger log.Logger
	cache  *Cache
}

// Option configures an [Expr].
type Option func(*Expr)

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(e *Expr) {
		e.logger = logger
	}
}

// WithCache compiles programs through c, reusing the program of any earlier
// expression with identical source and attached names.
func WithCache(c *Cache) Option {
	return func(e *Expr) {
		e.cache = c
	}
}

// New returns a handle for the expression source.
func New(source string, opts ...Option) *Expr {
	e := &Expr{
		source: source,
		names:  make(map[string]kind),
		consts: make(map[string]any),
		funcs:  make(map[string]Function),
		binds:  make(map[string]any),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Source returns the expression source text.
func (e *Expr) Source() string { return e.source }

// Const attaches a named constant.
func (e *Expr) Const(name string, v any) *Expr {
	e.detach(name)
	e.names[name] = kindConst
	e.consts[name] = v

	return e
}

// Consts attaches each of the given constants in order.
func (e *Expr) Consts(cs ...Constant) *Expr {
	for _, c := range cs {
		e.Const(c.Name, c.Value)
	}

	return e
}

// Func attaches each of the given functions in order.
func (e *Expr) Func(fns ...Function) *Expr {
	for _, fn := range fns {
		e.detach(fn.Name)
		e.names[fn.Name] = kindFunc
		e.funcs[fn.Name] = fn
	}

	return e
}

// Bind attaches a named context value.
func (e *Expr) Bind(name string, v any) *Expr {
	e.detach(name)
	e.names[name] = kindBind
	e.binds[name] = v

	return e
}

// Has reports whether name is attached to e.
func (e *Expr) Has(name string) bool {
	_, ok := e.names[name]

	return ok
}

// Len returns the number of names attached to e.
func (e *Expr) Len() int { return len(e.names) }

// Names returns an iterator over the attached names in sorted order.
func (e *Expr) Names() iter.Seq[string] {
	return slices.Values(slices.Sorted(maps.Keys(e.names)))
}

// Function returns the function attached under name.
func (e *Expr) Function(name string) (Function, bool) {
	fn, ok := e.funcs[name]

	return fn, ok
}

// Value returns the constant or context value attached under name.
func (e *Expr) Value(name string) (any, bool) {
	switch e.names[name] {
	case kindConst:
		return e.consts[name], true
	case kindBind:
		return e.binds[name], true
	default:
		return nil, false
	}
}

func (e *Expr) detach(name string) {
	switch e.names[name] {
	case kindConst:
		delete(e.consts, name)
	case kindFunc:
		delete(e.funcs, name)
	case kindBind:
		delete(e.binds, name)
	}

	delete(e.names, name)
}

// env returns the variable environment of e: every constant and context
// value keyed by name.
func (e *Expr) env() map[string]any {
	env := make(map[string]any, len(e.consts)+len(e.binds))

	maps.Copy(env, e.consts)
	maps.Copy(env, e.binds)

	return env
}
