// Package ext installs optional function and constant groups into an
// expression.
//
// The groups live in sub-packages:
//   - extcast: int, float, bool, str
//   - extmath: MIN_INT, MAX_INT, PI, TAU, NAN, INFINITY, ...
//   - extregex: is_match, extract
//   - extdatetime: day, month, year, weekday, is_weekday, is_weekend, time
//
// # All groups
//
//	e := ext.Apply(lang.New(`int("42") + MAX_INT`), ext.Default())
//
// # Selected groups
//
//	e := ext.Apply(lang.New(src), ext.Config{Regex: true})
//
// # A single function
//
//	e := lang.New(src).Func(extregex.Extract())
package ext

import (
	"iter"

	"github.com/ardnew/exprx/ext/extcast"
	"github.com/ardnew/exprx/ext/extdatetime"
	"github.com/ardnew/exprx/ext/extmath"
	"github.com/ardnew/exprx/ext/extregex"
	"github.com/ardnew/exprx/lang"
	"github.com/ardnew/exprx/value"
)

// Config selects which groups [Apply] installs. The toggles are
// independent.
type Config struct {
	Maths    bool `json:"maths"    yaml:"maths"`
	Datetime bool `json:"datetime" yaml:"datetime"`
	Cast     bool `json:"cast"     yaml:"cast"`
	Regex    bool `json:"regex"    yaml:"regex"`
}

// Default returns a Config with every group enabled.
func Default() Config {
	return Config{Maths: true, Datetime: true, Cast: true, Regex: true}
}

// Any reports whether at least one group is enabled.
func (c Config) Any() bool {
	return c.Maths || c.Datetime || c.Cast || c.Regex
}

type group struct {
	name      string
	enabled   func(Config) bool
	functions func() []lang.Function
	constants func() []lang.Constant
}

// groups is in installation order.
var groups = [...]group{
	{
		name:      "cast",
		enabled:   func(c Config) bool { return c.Cast },
		functions: extcast.All,
	},
	{
		name:      "maths",
		enabled:   func(c Config) bool { return c.Maths },
		constants: extmath.Constants,
	},
	{
		name:      "regex",
		enabled:   func(c Config) bool { return c.Regex },
		functions: extregex.All,
	},
	{
		name:      "datetime",
		enabled:   func(c Config) bool { return c.Datetime },
		functions: extdatetime.All,
	},
}

// Groups returns an iterator over the group names in installation order.
func Groups() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, g := range groups {
			if !yield(g.name) {
				return
			}
		}
	}
}

// Apply installs every group enabled by cfg into e and returns e. Groups are
// installed in the order cast, maths, regex, datetime; a later name
// replaces an earlier one. With no group enabled, e is returned untouched.
func Apply(e *lang.Expr, cfg Config) *lang.Expr {
	for _, g := range groups {
		if !g.enabled(cfg) {
			continue
		}

		if g.functions != nil {
			e.Func(g.functions()...)
		}

		if g.constants != nil {
			e.Consts(g.constants()...)
		}
	}

	return e
}

// Entry describes one installable name.
type Entry struct {
	Group     string `json:"group"               yaml:"group"`
	Kind      string `json:"kind"                yaml:"kind"`
	Name      string `json:"name"                yaml:"name"`
	Signature string `json:"signature,omitempty" yaml:"signature,omitempty"`
	Value     string `json:"value,omitempty"     yaml:"value,omitempty"`
	Help      string `json:"help"                yaml:"help"`
}

// Entry kinds.
const (
	KindFunction = "function"
	KindConstant = "constant"
)

// Catalog lists every name that [Apply] would install for cfg, grouped in
// installation order. Constant values are rendered as text.
func Catalog(cfg Config) []Entry {
	var entries []Entry

	for _, g := range groups {
		if !g.enabled(cfg) {
			continue
		}

		if g.functions != nil {
			for _, fn := range g.functions() {
				entries = append(entries, Entry{
					Group:     g.name,
					Kind:      KindFunction,
					Name:      fn.Name,
					Signature: fn.Signature,
					Help:      fn.Help,
				})
			}
		}

		if g.constants != nil {
			for _, c := range g.constants() {
				entries = append(entries, Entry{
					Group: g.name,
					Kind:  KindConstant,
					Name:  c.Name,
					Value: value.Display(c.Value),
					Help:  c.Help,
				})
			}
		}
	}

	return entries
}
