package extcast

import (
	"math"
	"testing"
)

func call(t *testing.T, name string, args ...any) any {
	t.Helper()

	for _, fn := range All() {
		if fn.Name == name {
			got, err := fn.Fn(args...)
			if err != nil {
				t.Fatalf("%s(%v): unexpected error %v", name, args, err)
			}

			return got
		}
	}

	t.Fatalf("no function %q", name)

	return nil
}

func TestAll_Names(t *testing.T) {
	want := []string{"int", "float", "bool", "str"}

	fns := All()
	if len(fns) != len(want) {
		t.Fatalf("got %d functions, want %d", len(fns), len(want))
	}

	for i, fn := range fns {
		if fn.Name != want[i] {
			t.Errorf("All()[%d].Name = %q, want %q", i, fn.Name, want[i])
		}

		if fn.Help == "" || fn.Signature == "" {
			t.Errorf("%s is missing documentation", fn.Name)
		}
	}
}

func TestCasts_Total(t *testing.T) {
	inputs := [][]any{
		nil,
		{nil},
		{true},
		{int64(-3)},
		{uint8(7)},
		{math.NaN()},
		{math.Inf(-1)},
		{"  12abc"},
		{[]any{1, "a"}},
		{map[string]any{"k": math.NaN()}},
		{struct{ A int }{1}},
	}

	for _, fn := range All() {
		for _, args := range inputs {
			if _, err := fn.Fn(args...); err != nil {
				t.Errorf("%s(%v) returned error %v", fn.Name, args, err)
			}
		}
	}
}

func TestCasts(t *testing.T) {
	tests := []struct {
		fn   string
		args []any
		want any
	}{
		{"int", []any{true}, int64(1)},
		{"int", []any{"-42.9"}, int64(-42)},
		{"int", []any{"1e3"}, int64(1)},
		{"int", nil, int64(0)},
		{"float", []any{"2.5"}, 2.5},
		{"float", []any{int64(3)}, 3.0},
		{"bool", []any{"0"}, true},
		{"bool", []any{map[string]any{}}, false},
		{"str", []any{map[string]any{"b": 1, "a": "<x>"}}, `{"a":"<x>","b":1}`},
		{"str", []any{[]any{}}, "[]"},
		{"str", []any{map[string]any{"n": math.NaN()}}, "null"},
		{"str", []any{1.5}, "1.5"},
		{"str", []any{"as is"}, "as is"},
		{"str", []any{nil}, "null"},
	}

	for _, tt := range tests {
		t.Run(tt.fn, func(t *testing.T) {
			if got := call(t, tt.fn, tt.args...); got != tt.want {
				t.Errorf("%s(%v) = %#v, want %#v", tt.fn, tt.args, got, tt.want)
			}
		})
	}
}

func TestFloat_NaN(t *testing.T) {
	for _, arg := range []any{"", "not a num", nil, []any{42}} {
		got, _ := call(t, "float", arg).(float64)
		if !math.IsNaN(got) {
			t.Errorf("float(%v) = %v, want NaN", arg, got)
		}
	}
}
