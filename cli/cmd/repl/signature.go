package repl

import (
	"strings"
	"unicode/utf8"

	"github.com/ardnew/exprx/ext"
)

// builtins maps expr-lang builtin functions to their parameter names.
// Registry functions with the same name take precedence.
var builtins = map[string][]string{
	"abs":       {"n"},
	"all":       {"array", "predicate"},
	"any":       {"array", "predicate"},
	"ceil":      {"n"},
	"concat":    {"array", "...arrays"},
	"count":     {"array", "predicate"},
	"filter":    {"array", "predicate"},
	"find":      {"array", "predicate"},
	"findIndex": {"array", "predicate"},
	"first":     {"array"},
	"flatten":   {"array"},
	"floor":     {"n"},
	"groupBy":   {"array", "mapper"},
	"hasPrefix": {"string", "prefix"},
	"hasSuffix": {"string", "suffix"},
	"indexOf":   {"string", "substring"},
	"join":      {"array", "separator"},
	"keys":      {"map"},
	"last":      {"array"},
	"len":       {"v"},
	"lower":     {"string"},
	"map":       {"array", "mapper"},
	"max":       {"...n"},
	"mean":      {"array"},
	"median":    {"array"},
	"min":       {"...n"},
	"none":      {"array", "predicate"},
	"now":       {},
	"one":       {"array", "predicate"},
	"reduce":    {"array", "reducer", "initial"},
	"repeat":    {"string", "n"},
	"replace":   {"string", "old", "new"},
	"reverse":   {"array"},
	"round":     {"n"},
	"sort":      {"array", "order"},
	"sortBy":    {"array", "mapper", "order"},
	"split":     {"string", "separator"},
	"string":    {"v"},
	"sum":       {"array"},
	"toJSON":    {"v"},
	"fromJSON":  {"string"},
	"trim":      {"string"},
	"trimLeft":  {"string"},
	"trimRight": {"string"},
	"type":      {"v"},
	"upper":     {"string"},
	"values":    {"map"},
}

// functionCall describes the call whose argument list contains the cursor.
type functionCall struct {
	name     string
	argIndex int
	inCall   bool
}

// detectFunctionCall reports the innermost unclosed call to the left of the
// cursor and the index of the argument being typed.
func detectFunctionCall(input string, cursor int) functionCall {
	cursor = min(cursor, len(input))

	depth := 0
	open := -1

scan:
	for i := cursor; i > 0; {
		r, size := utf8.DecodeLastRuneInString(input[:i])
		i -= size

		switch r {
		case ')', ']':
			depth++
		case '[':
			// An unclosed bracket is an array literal under construction.
			if depth > 0 {
				depth--
			}
		case '(':
			if depth == 0 {
				open = i

				break scan
			}

			depth--
		}
	}

	if open < 0 {
		return functionCall{}
	}

	start := open
	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if r != '_' && r != '$' && !isAlnum(r) {
			break
		}

		start -= size
	}

	name := input[start:open]
	if name == "" {
		return functionCall{}
	}

	arg := 0
	depth = 0

	for _, r := range input[open+1 : cursor] {
		switch r {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case ',':
			if depth == 0 {
				arg++
			}
		}
	}

	return functionCall{name: name, argIndex: arg, inCall: true}
}

func isAlnum(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9'
}

// signatures indexes the parameter names and help of every callable name.
type signatures map[string]signature

type signature struct {
	params []string
	help   string
}

func newSignatures(cfg ext.Config) signatures {
	sigs := make(signatures, len(builtins))

	for name, params := range builtins {
		sigs[name] = signature{params: params}
	}

	for _, e := range ext.Catalog(cfg) {
		if e.Kind == ext.KindFunction {
			sigs[e.Name] = signature{params: splitParams(e.Signature), help: e.Help}
		}
	}

	return sigs
}

// splitParams splits a signature such as "(value, pattern)" into its
// parameter names.
func splitParams(sig string) []string {
	sig = strings.TrimSuffix(strings.TrimPrefix(strings.TrimSpace(sig), "("), ")")
	if strings.TrimSpace(sig) == "" {
		return nil
	}

	params := strings.Split(sig, ",")
	for i := range params {
		params[i] = strings.TrimSpace(params[i])
	}

	return params
}

// hint renders the signature of name with the parameter at argIndex
// highlighted. It returns "" for unknown names.
func (s signatures) hint(name string, argIndex int) string {
	sig, ok := s[name]
	if !ok {
		return ""
	}

	var b strings.Builder

	b.WriteString(signatureNameStyle.Render(name))
	b.WriteString(signatureStyle.Render("("))

	for i, p := range sig.params {
		if i > 0 {
			b.WriteString(signatureStyle.Render(", "))
		}

		variadic := strings.HasPrefix(p, "...")
		if (variadic && argIndex >= i) || (!variadic && argIndex == i) {
			b.WriteString(currentParamStyle.Render(p))
		} else {
			b.WriteString(signatureStyle.Render(p))
		}
	}

	b.WriteString(signatureStyle.Render(")"))

	if sig.help != "" {
		b.WriteString(hintStyle.Render("  " + sig.help))
	}

	return b.String()
}
