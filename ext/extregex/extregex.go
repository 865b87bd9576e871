// Package extregex provides regular expression functions.
//
// The first argument of each function is converted to text with
// [value.Stringify]; the second must be a pattern string in RE2 syntax.
// Calls with fewer than two arguments return a zero result without
// compiling anything.
package extregex

import (
	"log/slog"
	"regexp"
	"sync"
	"sync/atomic"
	"unicode/utf8"

	"github.com/ardnew/exprx/lang"
	"github.com/ardnew/exprx/value"
)

// All returns every regex function.
func All() []lang.Function {
	return []lang.Function{IsMatch(), Extract()}
}

// IsMatch returns the definition for is_match(value, pattern).
func IsMatch() lang.Function {
	return lang.Function{
		Name:      "is_match",
		Signature: "(value, pattern)",
		Help:      "report whether pattern matches anywhere in value",
		Fn: func(args ...any) (any, error) {
			if len(args) < 2 {
				return false, nil
			}

			re, err := pattern(args[1])
			if err != nil {
				return nil, err
			}

			return re.MatchString(value.Stringify(args[0])), nil
		},
	}
}

// Extract returns the definition for extract(value, pattern).
func Extract() lang.Function {
	return lang.Function{
		Name:      "extract",
		Signature: "(value, pattern)",
		Help:      "return the leftmost match of pattern in value, or empty text",
		Fn: func(args ...any) (any, error) {
			if len(args) < 2 {
				return "", nil
			}

			re, err := pattern(args[1])
			if err != nil {
				return nil, err
			}

			s := value.Stringify(args[0])

			loc := re.FindStringIndex(s)
			if loc == nil {
				return "", nil
			}

			return runeSlice(s, loc[0], loc[1]), nil
		},
	}
}

// runeSlice returns the characters of s spanning the byte offsets
// [lo, hi), counted in runes so that invalid UTF-8 is replaced rather than
// split.
func runeSlice(s string, lo, hi int) string {
	start := utf8.RuneCountInString(s[:lo])
	end := start + utf8.RuneCountInString(s[lo:hi])

	return string([]rune(s)[start:end])
}

func pattern(arg any) (*regexp.Regexp, error) {
	expr, ok := arg.(string)
	if !ok {
		return nil, lang.ErrRegexPattern.With(
			slog.String("kind", value.Of(arg).String()),
		)
	}

	return compile(expr)
}

// memoLimit bounds the number of patterns kept compiled. Patterns seen after
// the limit is reached are compiled on every call.
const memoLimit = 512

var memo struct {
	sync.Map // string → *regexp.Regexp
	size atomic.Int64
}

func compile(expr string) (*regexp.Regexp, error) {
	if re, ok := memo.Load(expr); ok {
		return re.(*regexp.Regexp), nil
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, lang.ErrRegexCompile.Wrap(err).
			With(slog.String("pattern", expr))
	}

	if reserve() {
		if _, loaded := memo.LoadOrStore(expr, re); loaded {
			memo.size.Add(-1)
		}
	}

	return re, nil
}

// reserve claims one memo slot, reporting false once all are taken.
func reserve() bool {
	for {
		n := memo.size.Load()
		if n >= memoLimit {
			return false
		}

		if memo.size.CompareAndSwap(n, n+1) {
			return true
		}
	}
}
