package lang

// Func is the signature shared by every function installed into an
// expression. Arguments arrive exactly as the expression passed them; a
// function must not retain them after returning.
type Func func(args ...any) (any, error)

// Function describes a named function available to expressions.
type Function struct {
	// Name is the identifier used to call the function.
	Name string
	// Signature documents the accepted arguments, e.g. "(value, pattern)".
	Signature string
	// Help is a one-line description shown by interactive tooling.
	Help string
	// Fn implements the function.
	Fn Func
}

// Constant describes a named, immutable value available to expressions.
type Constant struct {
	Name  string
	Value any
	Help  string
}

// Binding is implemented by [Function] and [Constant] so that both can be
// listed together.
type Binding interface {
	BindingName() string
	BindingHelp() string
}

// BindingName implements [Binding].
func (f Function) BindingName() string { return f.Name }

// BindingHelp implements [Binding].
func (f Function) BindingHelp() string { return f.Name + f.Signature + ": " + f.Help }

// BindingName implements [Binding].
func (c Constant) BindingName() string { return c.Name }

// BindingHelp implements [Binding].
func (c Constant) BindingHelp() string { return c.Name + ": " + c.Help }
