package value

import (
	"math"
	"testing"
)

func TestAtoi(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int64
	}{
		{"plain", "42", 42},
		{"fraction dropped", "42.42", 42},
		{"surrounding space", "  42  ", 42},
		{"explicit plus", "+5", 5},
		{"negative with suffix", "-17abc", -17},
		{"first field only", "12 34", 12},
		{"letters first", "not a num", 0},
		{"empty", "", 0},
		{"sign only", "-", 0},
		{"inner dash", "4-2", 4},
		{"positive overflow", "9223372036854775808", math.MaxInt64},
		{"negative overflow", "-9223372036854775809", math.MinInt64},
		{"bare fraction rounds up", ".5", 1},
		{"bare fraction rounds down", ".4", 0},
		{"non-ascii digit", "٣", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Atoi(tt.in); got != tt.want {
				t.Errorf("Atoi(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func FuzzAtoi(f *testing.F) {
	for _, seed := range []string{"42", "-1.5e3", " +7 days", "٣٤", ""} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, s string) {
		// Atoi must never panic.
		_ = Atoi(s)
	})
}
