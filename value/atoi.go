package value

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Atoi parses the leading integer of s, tolerating surrounding noise.
//
// The token is isolated by trimming s, cutting it at the first whitespace
// character, cutting it at the first letter, and then cutting it at the first
// non-alphanumeric character after the first character. A leading sign is
// therefore kept while a fractional part such as ".42" is dropped.
//
// Out-of-range tokens saturate to [math.MinInt64] or [math.MaxInt64]. Tokens
// that are not valid integers are parsed as floats and rounded half away
// from zero. Anything else yields 0.
func Atoi(s string) int64 {
	tok := strings.TrimSpace(s)

	if i := strings.IndexFunc(tok, unicode.IsSpace); i >= 0 {
		tok = tok[:i]
	}

	if i := strings.IndexFunc(tok, unicode.IsLetter); i >= 0 {
		tok = tok[:i]
	}

	for pos, r := range tok {
		if pos > 0 && !unicode.IsLetter(r) && !unicode.IsNumber(r) {
			tok = tok[:pos]

			break
		}
	}

	if tok == "" {
		return 0
	}

	n, err := strconv.ParseInt(tok, 10, 64)
	if err == nil || errors.Is(err, strconv.ErrRange) {
		// ParseInt saturates with the correct sign on overflow.
		return n
	}

	f, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0
	}

	return truncate(math.Round(f))
}
