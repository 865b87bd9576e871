package repl

import (
	"maps"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/exprx/ext"
)

// commandPrefix introduces a REPL command instead of an expression.
const commandPrefix = ":"

// commands are the available REPL commands, without the prefix.
var commands = []string{"ctx", "help", "list", "clear", "quit"}

// isWordBoundary returns true if the rune is a word delimiter for completion
// purposes: whitespace, the member-access dot, and expr-lang
// operator/punctuation characters.
func isWordBoundary(r rune) bool {
	switch r {
	case '.', ' ', '\t',
		'(', ')', '[', ']', '{', '}',
		'+', '-', '*', '/', '%', '^',
		'<', '>', '=', '!',
		'&', '|', ',', '?', ':', ';',
		'"', '\'', '`':
		return true
	}

	return false
}

// wordBounds returns the word at the cursor position and its byte boundaries
// within input. The word is empty when the cursor sits on a boundary.
func wordBounds(input string, cursor int) (word string, start, end int) {
	cursor = min(cursor, len(input))

	start = cursor
	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isWordBoundary(r) {
			break
		}

		start -= size
	}

	end = cursor
	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if isWordBoundary(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// parentPath returns the member-access chain leading up to the word starting
// at wordStart. For "x + $.user.na" with the word "na" it is "$.user".
// Top-level words have no parent.
func parentPath(input string, wordStart int) string {
	if wordStart == 0 || input[wordStart-1] != '.' {
		return ""
	}

	prefix := input[:wordStart-1]
	pos := len(prefix)

	for pos > 0 {
		r, size := utf8.DecodeLastRuneInString(prefix[:pos])
		if r != '.' && isWordBoundary(r) {
			break
		}

		pos -= size
	}

	return strings.TrimSpace(prefix[pos:])
}

// completer supplies completion candidates for expressions.
type completer struct {
	names []string // registry, builtin, and context names at the top level
	funcs map[string]bool
	name  string // identifier the context is bound to
	data  func() any
}

func newCompleter(cfg ext.Config, name string, data func() any) completer {
	c := completer{name: name, data: data, funcs: make(map[string]bool)}

	for _, e := range ext.Catalog(cfg) {
		if e.Kind == ext.KindFunction {
			c.funcs[e.Name] = true
		}

		c.names = append(c.names, e.Name)
	}

	for n := range builtins {
		if !slices.Contains(c.names, n) {
			c.funcs[n] = true
			c.names = append(c.names, n)
		}
	}

	slices.Sort(c.names)
	c.names = append(c.names, name)

	return c
}

// candidates returns the names completing a word under parent.
func (c completer) candidates(parent string) []string {
	if parent == "" {
		return c.names
	}

	segments := strings.Split(parent, ".")
	if segments[0] != c.name {
		return nil
	}

	cur := c.data()

	for _, seg := range segments[1:] {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}

		cur = m[seg]
	}

	m, ok := cur.(map[string]any)
	if !ok {
		return nil
	}

	return slices.Sorted(maps.Keys(m))
}

// isFunction reports whether name is displayed with a "()" suffix.
func (c completer) isFunction(name string) bool { return c.funcs[name] }

// computeMatches calculates the fuzzy match results for the word at the cursor.
// A top-level empty word yields no matches so the hint line stays visible;
// an empty word after a dot lists every member.
func (m model) computeMatches() (
	matches fuzzy.Matches,
	wordStart, wordEnd int,
) {
	input := m.input.Value()
	cursor := m.input.Position()

	word, wordStart, wordEnd := wordBounds(input, cursor)

	var candidates []string

	if strings.HasPrefix(input, commandPrefix) {
		// Only the command name itself completes.
		if wordStart != len(commandPrefix) {
			return nil, wordStart, wordEnd
		}

		candidates = commands
	} else {
		parent := parentPath(input, wordStart)
		candidates = m.complete.candidates(parent)

		if word == "" {
			if parent == "" || len(candidates) == 0 {
				return nil, wordStart, wordEnd
			}

			matches = make(fuzzy.Matches, len(candidates))
			for i, s := range candidates {
				matches[i] = fuzzy.Match{Str: s, Index: i}
			}

			return matches, wordStart, wordEnd
		}
	}

	if word == "" || len(candidates) == 0 {
		return nil, wordStart, wordEnd
	}

	return fuzzy.Find(word, candidates), wordStart, wordEnd
}

// renderCandidateBar builds the single-line completion bar, ellipsized to fit
// within width. The selected candidate (when tabbing) uses the selected style.
func (m model) renderCandidateBar() string {
	if len(m.matches) == 0 || m.width <= 0 {
		return ""
	}

	const sep = "  "

	sepWidth := lipgloss.Width(sep)
	ellipsis := hintStyle.Render("...")
	ellipsisWidth := lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, match := range m.matches {
		rendered := m.renderCandidate(match, m.tabActive && i == m.suggIdx)

		w := lipgloss.Width(rendered)
		if i > 0 {
			w += sepWidth
		}

		if i > 0 && used+w+ellipsisWidth > m.width {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += w
	}

	return b.String()
}

// renderCandidate renders a single candidate with its matched characters
// highlighted.
func (m model) renderCandidate(match fuzzy.Match, selected bool) string {
	base, highlight := suggestionStyle, matchStyle
	if selected {
		base, highlight = selectedStyle, selectedMatchStyle
	}

	matched := make(map[int]bool, len(match.MatchedIndexes))
	for _, idx := range match.MatchedIndexes {
		matched[idx] = true
	}

	var b strings.Builder

	for i, r := range match.Str {
		if matched[i] {
			b.WriteString(highlight.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}

	if m.complete.isFunction(match.Str) {
		b.WriteString(base.Render("()"))
	}

	return b.String()
}
