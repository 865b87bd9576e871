package lang

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"
)

func TestExpr_Exec(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*Expr) *Expr
		src   string
		want  any
	}{
		{
			name: "literal",
			src:  "40 + 2",
			want: 42,
		},
		{
			name:  "constant",
			src:   "ANSWER * 2",
			setup: func(e *Expr) *Expr { return e.Const("ANSWER", 21) },
			want:  42,
		},
		{
			name: "context",
			src:  "$.name",
			setup: func(e *Expr) *Expr {
				return e.Bind("$", map[string]any{"name": "Kar"})
			},
			want: "Kar",
		},
		{
			name: "function",
			src:  `twice("ab")`,
			setup: func(e *Expr) *Expr {
				return e.Func(Function{
					Name: "twice",
					Fn: func(args ...any) (any, error) {
						s, _ := args[0].(string)

						return s + s, nil
					},
				})
			},
			want: "abab",
		},
		{
			name: "function overrides builtin",
			src:  `int("x")`,
			setup: func(e *Expr) *Expr {
				return e.Func(Function{
					Name: "int",
					Fn:   func(...any) (any, error) { return "custom", nil },
				})
			},
			want: "custom",
		},
		{
			name: "null is nil",
			src:  "null == nil",
			want: true,
		},
		{
			name:  "bound null shadows nil",
			src:   "null",
			setup: func(e *Expr) *Expr { return e.Const("null", "shadowed") },
			want:  "shadowed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(tt.src)
			if tt.setup != nil {
				e = tt.setup(e)
			}

			got, err := e.Exec(t.Context())
			if err != nil {
				t.Fatalf("Exec() error = %v", err)
			}

			if got != tt.want {
				t.Errorf("Exec() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestExpr_Names_SingleNamespace(t *testing.T) {
	e := New("x").
		Const("x", 1).
		Func(Function{Name: "f", Fn: func(...any) (any, error) { return nil, nil }}).
		Bind("$", nil).
		Bind("x", 2)

	got := slices.Collect(e.Names())
	want := []string{"$", "f", "x"}

	if !slices.Equal(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}

	if v, ok := e.Value("x"); !ok || v != 2 {
		t.Errorf("Value(x) = %v, %t, want 2, true", v, ok)
	}

	e.Const("f", "now a constant")

	if _, ok := e.Function("f"); ok {
		t.Error("Function(f) still attached after Const(f)")
	}

	if e.Len() != 3 {
		t.Errorf("Len() = %d, want 3", e.Len())
	}
}

func TestExpr_Exec_Errors(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name string
		e    *Expr
		want *Error
	}{
		{
			name: "syntax",
			e:    New("1 +"),
			want: ErrExprCompile,
		},
		{
			name: "unknown name",
			e:    New("missing + 1"),
			want: ErrExprCompile,
		},
		{
			name: "function failure",
			e: New("fail()").Func(Function{
				Name: "fail",
				Fn:   func(...any) (any, error) { return nil, boom },
			}),
			want: ErrExprEvaluate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.e.Exec(t.Context())
			if !errors.Is(err, tt.want) {
				t.Fatalf("Exec() error = %v, want %v", err, tt.want)
			}

			if !strings.Contains(err.Error(), tt.want.Error()) {
				t.Errorf("Exec() error = %q, want prefix %q", err, tt.want)
			}
		})
	}
}

func TestExpr_Exec_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := New("1").Exec(ctx)
	if !errors.Is(err, ErrCanceled) {
		t.Fatalf("Exec() error = %v, want %v", err, ErrCanceled)
	}

	if !errors.Is(err, context.Canceled) {
		t.Errorf("Exec() error = %v, want to wrap %v", err, context.Canceled)
	}
}

func TestFormatResult(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, "null"},
		{"text", "text"},
		{42, "42"},
		{[]any{1, 2}, "[1,2]"},
	}

	for _, tt := range tests {
		if got := FormatResult(tt.in); got != tt.want {
			t.Errorf("FormatResult(%#v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
