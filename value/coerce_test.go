package value

import (
	"math"
	"testing"
)

func TestToInt(t *testing.T) {
	tests := []struct {
		name string
		args []any
		want int64
	}{
		{"no arguments", nil, 0},
		{"int", []any{42}, 42},
		{"float truncates", []any{42.42}, 42},
		{"negative float truncates toward zero", []any{-42.9}, -42},
		{"nan", []any{math.NaN()}, 0},
		{"inf saturates", []any{math.Inf(1)}, math.MaxInt64},
		{"large uint saturates", []any{uint64(math.MaxUint64)}, math.MaxInt64},
		{"true", []any{true}, 1},
		{"false", []any{false}, 0},
		{"numeric string", []any{"42"}, 42},
		{"fractional string", []any{"42.42"}, 42},
		{"empty string", []any{""}, 0},
		{"garbage string", []any{"not a num"}, 0},
		{"array", []any{[]any{42, 42}}, 0},
		{"range", []any{[]int{0, 1, 2}}, 0},
		{"object", []any{map[string]any{"a": 1}}, 0},
		{"null", []any{nil}, 0},
		{"extra arguments ignored", []any{7, 8}, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToInt(tt.args...); got != tt.want {
				t.Errorf("ToInt(%v) = %d, want %d", tt.args, got, tt.want)
			}
		})
	}
}

func TestToFloat(t *testing.T) {
	nan := math.NaN()

	tests := []struct {
		name string
		args []any
		want float64
	}{
		{"no arguments", nil, nan},
		{"int", []any{42}, 42},
		{"float", []any{42.42}, 42.42},
		{"numeric string", []any{"42.42"}, 42.42},
		{"integer string", []any{"42"}, 42},
		{"true", []any{true}, 1},
		{"false", []any{false}, 0},
		{"empty string", []any{""}, nan},
		{"garbage string", []any{"not a num"}, nan},
		{"array", []any{[]any{42, 42}}, nan},
		{"object", []any{map[string]any{}}, nan},
		{"null", []any{nil}, nan},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToFloat(tt.args...)

			if math.IsNaN(tt.want) {
				if !math.IsNaN(got) {
					t.Errorf("ToFloat(%v) = %v, want NaN", tt.args, got)
				}

				return
			}

			if got != tt.want {
				t.Errorf("ToFloat(%v) = %v, want %v", tt.args, got, tt.want)
			}
		})
	}
}

func TestToBool(t *testing.T) {
	tests := []struct {
		name string
		args []any
		want bool
	}{
		{"no arguments", nil, false},
		{"one", []any{1}, true},
		{"one float", []any{1.0}, true},
		{"zero", []any{0}, false},
		{"zero float", []any{0.0}, false},
		{"negative", []any{-42}, true},
		{"negative float", []any{-42.42}, true},
		{"nan", []any{math.NaN()}, true},
		{"true", []any{true}, true},
		{"false", []any{false}, false},
		{"empty string", []any{""}, false},
		{"string", []any{"42"}, true},
		{"array", []any{[]any{42, 42}}, true},
		{"empty array", []any{[]any{}}, false},
		{"empty range", []any{[]int{}}, false},
		{"object", []any{map[string]any{"a": 1}}, true},
		{"empty object", []any{map[string]any{}}, false},
		{"null", []any{nil}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToBool(tt.args...); got != tt.want {
				t.Errorf("ToBool(%v) = %t, want %t", tt.args, got, tt.want)
			}
		})
	}
}

func TestToText(t *testing.T) {
	tests := []struct {
		name string
		args []any
		want string
	}{
		{"no arguments", nil, ""},
		{"int", []any{42}, "42"},
		{"float", []any{42.42}, "42.42"},
		{"whole float", []any{42.0}, "42"},
		{"nan", []any{math.NaN()}, "NaN"},
		{"inf", []any{math.Inf(1)}, "+Inf"},
		{"neg inf", []any{math.Inf(-1)}, "-Inf"},
		{"max int", []any{int64(math.MaxInt64)}, "9223372036854775807"},
		{"true", []any{true}, "true"},
		{"string", []any{"a<b>"}, "a<b>"},
		{"array", []any{[]any{42, 42}}, "[42,42]"},
		{"empty array", []any{[]any{}}, "[]"},
		{"typed array", []any{[]string{"a", "<"}}, `["a","<"]`},
		{"object", []any{map[string]any{"b": 2, "a": "x"}}, `{"a":"x","b":2}`},
		{"unencodable array", []any{[]any{math.NaN()}}, "null"},
		{"unencodable object", []any{map[string]any{"x": math.Inf(1)}}, "null"},
		{"null", []any{nil}, "null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToText(tt.args...); got != tt.want {
				t.Errorf("ToText(%v) = %q, want %q", tt.args, got, tt.want)
			}
		})
	}
}

func TestDisplay_Fallbacks(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"null", nil, "null"},
		{"bool", false, "false"},
		{"string unquoted", "Kar", "Kar"},
		{"array", []any{1, "a"}, `[1,"a"]`},
		{"object", map[string]any{"k": []any{}}, `{"k":[]}`},
		{"unencodable array", []any{math.NaN()}, "[]"},
		{"unencodable object", map[string]any{"x": math.NaN()}, "{}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Display(tt.in); got != tt.want {
				t.Errorf("Display(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	in := map[int][]string{1: {"a"}}

	got, ok := Normalize(in).(map[string]any)
	if !ok {
		t.Fatalf("Normalize(%v) returned %T, want map[string]any", in, Normalize(in))
	}

	arr, ok := got["1"].([]any)
	if !ok || len(arr) != 1 || arr[0] != "a" {
		t.Errorf("Normalize(%v)[\"1\"] = %#v, want []any{\"a\"}", in, got["1"])
	}
}
