package value

import (
	"testing"
)

type label string

func TestOf(t *testing.T) {
	var nilMap map[string]int

	tests := []struct {
		name string
		in   any
		want Kind
	}{
		{"nil", nil, Null},
		{"bool", true, Bool},
		{"int", 42, Integer},
		{"uint8", uint8(7), Integer},
		{"float32", float32(1.5), Float},
		{"float64", 42.42, Float},
		{"string", "42", String},
		{"named string", label("x"), String},
		{"any slice", []any{1, "a"}, Array},
		{"int slice", []int{0, 1, 2}, Array},
		{"any map", map[string]any{"a": 1}, Object},
		{"typed nil map", nilMap, Object},
		{"struct", struct{ A int }{1}, Object},
		{"nil pointer", (*int)(nil), Null},
		{"func", func() {}, Null},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Of(tt.in); got != tt.want {
				t.Errorf("Of(%#v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{Integer, "INTEGER"},
		{Float, "FLOAT"},
		{Bool, "BOOLEAN"},
		{String, "STRING"},
		{Array, "ARRAY"},
		{Object, "OBJECT"},
		{Null, "NULL"},
		{Kind(200), "NULL"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
	}{
		{"INTEGER", Integer},
		{"float", Float},
		{" Boolean ", Bool},
		{"STRING", String},
		{"ARRAY", Array},
		{"OBJECT", Object},
		{"NULL", Null},
		{"_", Null},
		{"", Null},
	}

	for _, tt := range tests {
		if got := ParseKind(tt.in); got != tt.want {
			t.Errorf("ParseKind(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestKinds_RoundTrip(t *testing.T) {
	n := 0

	for k := range Kinds() {
		n++

		if got := ParseKind(k.String()); got != k {
			t.Errorf("ParseKind(%q) = %v, want %v", k.String(), got, k)
		}
	}

	if n != 7 {
		t.Errorf("Kinds() yielded %d kinds, want 7", n)
	}
}
