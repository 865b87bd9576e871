package repl

import (
	"strings"
	"testing"

	"github.com/ardnew/exprx/ext"
)

func TestDetectFunctionCall(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		cursor     int
		wantName   string
		wantIndex  int
		wantInCall bool
	}{
		{"no_call", "greeting", 8, "", 0, false},
		{"open_paren", "extract(", 8, "extract", 0, true},
		{"first_arg", "extract($.s", 11, "extract", 0, true},
		{"second_arg", "extract($.s,", 12, "extract", 1, true},
		{"second_arg_value", `extract($.s, "a+"`, 17, "extract", 1, true},
		{"nested_closed", "str(int(1), ", 12, "str", 1, true},
		{"nested_open", "str(int(", 8, "int", 0, true},
		{"array_commas", "len([1, 2, ", 11, "len", 0, true},
		{"after_close", "len(x) + ", 9, "", 0, false},
		{"grouping_only", "(1 + ", 5, "", 0, false},
		{"cursor_before_call", "x + day(", 3, "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := detectFunctionCall(tt.input, tt.cursor)
			if got.name != tt.wantName || got.argIndex != tt.wantIndex ||
				got.inCall != tt.wantInCall {
				t.Errorf("detectFunctionCall(%q, %d) = %+v, want {%s %d %v}",
					tt.input, tt.cursor, got,
					tt.wantName, tt.wantIndex, tt.wantInCall)
			}
		})
	}
}

func TestSplitParams(t *testing.T) {
	tests := []struct {
		sig  string
		want []string
	}{
		{"(value, pattern)", []string{"value", "pattern"}},
		{"(tz)", []string{"tz"}},
		{"()", nil},
		{"", nil},
	}

	for _, tt := range tests {
		got := splitParams(tt.sig)
		if strings.Join(got, "|") != strings.Join(tt.want, "|") {
			t.Errorf("splitParams(%q) = %q, want %q", tt.sig, got, tt.want)
		}
	}
}

func TestSignatures_Hint(t *testing.T) {
	sigs := newSignatures(ext.Default())

	hint := sigs.hint("extract", 1)
	for _, want := range []string{"extract", "value", "pattern"} {
		if !strings.Contains(hint, want) {
			t.Errorf("hint(extract) = %q, missing %q", hint, want)
		}
	}

	if hint := sigs.hint("split", 0); !strings.Contains(hint, "separator") {
		t.Errorf("hint(split) = %q, missing builtin params", hint)
	}

	if hint := sigs.hint("nope", 0); hint != "" {
		t.Errorf("hint(nope) = %q, want empty", hint)
	}
}
