package ports

import (
	"context"

	"github.com/bnema/scriptbridge/internal/domain"
)

// Scope is the interpreter state handed to scope-aware primitives. Stack is a
// list of frames; the last frame is the one being evaluated.
type Scope struct {
	Stack [][]domain.Value
	Vars  map[string]domain.Value
}

// NewScope returns a scope with a single empty frame.
func NewScope(vars map[string]domain.Value) Scope {
	if vars == nil {
		vars = map[string]domain.Value{}
	}
	return Scope{Stack: [][]domain.Value{{}}, Vars: vars}
}

// Extend returns a copy of s whose last frame has values appended. The
// receiver is not modified.
func (s Scope) Extend(values ...domain.Value) Scope {
	stack := make([][]domain.Value, len(s.Stack))
	copy(stack, s.Stack)
	if len(stack) == 0 {
		stack = append(stack, nil)
	}

	last := stack[len(stack)-1]
	top := make([]domain.Value, 0, len(last)+len(values))
	top = append(top, last...)
	top = append(top, values...)
	stack[len(stack)-1] = top

	return Scope{Stack: stack, Vars: s.Vars}
}

type PrimitiveFunc func(ctx context.Context, args []domain.Value, scope *Scope) (domain.Value, error)

// Primitive is a host function callable from scripts. Scope-aware
// primitives receive the caller's scope; others get nil.
type Primitive struct {
	Name       string
	ScopeAware bool
	Call       PrimitiveFunc
}

// Env is what the host lends the interpreter for one execution.
type Env struct {
	Primitives map[string]Primitive
	// Output receives text the script prints.
	Output func(text string)
	// Check must be called at every evaluation step the interpreter chooses;
	// a non-nil result is fatal and the run has to unwind with that error.
	Check func() error
}

// Interpreter is the opaque script engine.
type Interpreter interface {
	// Eval runs program text starting from scope.
	Eval(ctx context.Context, code string, scope Scope, env Env) error
	// Exec re-enters with an accumulated scope: the last value of the top
	// frame is the program, the values before it are its operands. It
	// returns the value left on top, or domain.Undefined.
	Exec(ctx context.Context, scope Scope, env Env) (domain.Value, error)
	// DefaultVars are the interpreter's base bindings. They win over
	// primitives of the same name.
	DefaultVars() map[string]domain.Value
	// Format renders a value the way the language prints it.
	Format(v domain.Value) string
}
