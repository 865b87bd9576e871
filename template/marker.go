package template

import (
	"regexp"
	"strings"
	"sync"
)

// Delimiters of a marker.
const (
	Open  = "<?"
	Close = "?>"
)

// markerPattern matches a marker body up to the first '?'. A body that
// contains '?' (a ternary, a regex quantifier) never forms a marker and is
// left in the output unchanged.
var markerPattern = sync.OnceValue(func() *regexp.Regexp {
	return regexp.MustCompile(regexp.QuoteMeta(Open) + `([^?]*)` + regexp.QuoteMeta(Close))
})

// Marker is one embedded expression found in a template.
type Marker struct {
	// Span is the exact marker text, delimiters included.
	Span string `json:"span"  yaml:"span"`
	// Body is the expression with surrounding whitespace removed.
	Body string `json:"body"  yaml:"body"`
	// Start and End are the byte offsets of Span in the template.
	Start int `json:"start" yaml:"start"`
	End   int `json:"end"   yaml:"end"`
}

// Blank reports whether the marker has no expression to evaluate.
func (m Marker) Blank() bool { return m.Body == "" }

// Markers returns every marker in tmpl, first to last, without overlap.
func Markers(tmpl string) []Marker {
	locs := markerPattern().FindAllStringSubmatchIndex(tmpl, -1)
	if len(locs) == 0 {
		return nil
	}

	markers := make([]Marker, len(locs))

	for i, loc := range locs {
		markers[i] = Marker{
			Span:  tmpl[loc[0]:loc[1]],
			Body:  strings.TrimSpace(tmpl[loc[2]:loc[3]]),
			Start: loc[0],
			End:   loc[1],
		}
	}

	return markers
}
