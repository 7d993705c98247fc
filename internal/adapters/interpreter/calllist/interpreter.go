// Package calllist is a small line-oriented script language used by the CLI
// host. Each statement is a call: a word followed by its arguments.
//
//	let who = (me)
//	print "hello" (at $who 2)
//	cmdset {print "hi"} greet
//
// Words resolve to variables first, then builtins, then host primitives.
// Braces quote code as text; "$" is the previous statement's value and $1, $2
// are the operands of an Exec call. Scope-aware primitives see the current
// variables and an empty frame.
package calllist

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/bnema/scriptbridge/internal/domain"
	"github.com/bnema/scriptbridge/internal/ports"
)

const Name = "calllist"

type Interpreter struct {
	version string
}

var _ ports.Interpreter = (*Interpreter)(nil)

func New(version string) *Interpreter {
	return &Interpreter{version: version}
}

func (i *Interpreter) DefaultVars() map[string]domain.Value {
	return map[string]domain.Value{
		"true":        domain.Number(1),
		"false":       domain.Number(0),
		"nan":         domain.Number(math.NaN()),
		"interpreter": domain.Text(Name + " " + i.version),
	}
}

func (i *Interpreter) Format(v domain.Value) string {
	return v.String()
}

func (i *Interpreter) Eval(ctx context.Context, code string, scope ports.Scope, env ports.Env) error {
	_, err := i.run(ctx, code, scope.Vars, nil, env)
	return err
}

func (i *Interpreter) Exec(ctx context.Context, scope ports.Scope, env ports.Env) (domain.Value, error) {
	if len(scope.Stack) == 0 {
		return domain.Undefined, nil
	}
	top := scope.Stack[len(scope.Stack)-1]
	if len(top) == 0 {
		return domain.Undefined, nil
	}

	program := top[len(top)-1]
	code, ok := program.Text()
	if !ok {
		return program, nil
	}

	operands := append([]domain.Value(nil), top[:len(top)-1]...)
	return i.run(ctx, code, scope.Vars, operands, env)
}

func (i *Interpreter) run(ctx context.Context, code string, bindings map[string]domain.Value, operands []domain.Value, env ports.Env) (domain.Value, error) {
	program, err := parse(code)
	if err != nil {
		return domain.Undefined, err
	}

	vars := make(map[string]domain.Value, len(bindings))
	for k, v := range bindings {
		vars[k] = v
	}

	st := &state{
		interp:   i,
		env:      env,
		vars:     vars,
		operands: operands,
		last:     domain.Undefined,
	}
	return st.exec(ctx, program)
}

type state struct {
	interp   *Interpreter
	env      ports.Env
	vars     map[string]domain.Value
	operands []domain.Value
	last     domain.Value
}

func (s *state) check() error {
	if s.env.Check == nil {
		return nil
	}
	return s.env.Check()
}

func (s *state) exec(ctx context.Context, program []statement) (domain.Value, error) {
	for _, stmt := range program {
		if err := s.check(); err != nil {
			return domain.Undefined, err
		}
		if err := ctx.Err(); err != nil {
			return domain.Undefined, err
		}

		value, err := s.eval(ctx, stmt.expr)
		if err != nil {
			return domain.Undefined, err
		}
		if stmt.bind != "" {
			s.vars[stmt.bind] = value
			continue
		}
		s.last = value
	}
	return s.last, nil
}

func (s *state) eval(ctx context.Context, e expr) (domain.Value, error) {
	switch e := e.(type) {
	case literal:
		return e.value, nil
	case varRef:
		return s.lookup(e.name)
	case listExpr:
		items := make([]domain.Value, 0, len(e.items))
		for _, item := range e.items {
			v, err := s.eval(ctx, item)
			if err != nil {
				return domain.Undefined, err
			}
			items = append(items, v)
		}
		return domain.List(items...), nil
	case callExpr:
		args := make([]domain.Value, 0, len(e.args))
		for _, arg := range e.args {
			v, err := s.eval(ctx, arg)
			if err != nil {
				return domain.Undefined, err
			}
			args = append(args, v)
		}
		return s.call(ctx, e, args)
	default:
		return domain.Undefined, fmt.Errorf("unsupported expression %T", e)
	}
}

func (s *state) lookup(name string) (domain.Value, error) {
	if name == "$" {
		return s.last, nil
	}
	if n, err := strconv.Atoi(name); err == nil {
		if n < 1 || n > len(s.operands) {
			return domain.Undefined, nil
		}
		return s.operands[n-1], nil
	}
	if v, ok := s.vars[name]; ok {
		return v, nil
	}
	return domain.Undefined, fmt.Errorf("undefined variable %q", name)
}

func (s *state) call(ctx context.Context, call callExpr, args []domain.Value) (domain.Value, error) {
	if err := s.check(); err != nil {
		return domain.Undefined, err
	}

	if v, ok := s.vars[call.name]; ok {
		if code, isCode := v.Text(); isCode {
			return s.invoke(ctx, code, args)
		}
		return v, nil
	}

	if builtin, ok := builtins[call.name]; ok {
		return builtin(ctx, s, args)
	}

	primitive, ok := s.env.Primitives[call.name]
	if !ok {
		return domain.Undefined, fmt.Errorf("line %d: unknown word %q", call.line, call.name)
	}

	var scope *ports.Scope
	if primitive.ScopeAware {
		fresh := ports.NewScope(s.vars)
		scope = &fresh
	}
	return primitive.Call(ctx, args, scope)
}

// invoke runs code as a nested program whose operands are args.
func (s *state) invoke(ctx context.Context, code string, args []domain.Value) (domain.Value, error) {
	stack := []domain.Value{}
	stack = append(stack, args...)
	stack = append(stack, domain.Text(code))
	return s.interp.Exec(ctx, ports.Scope{Stack: [][]domain.Value{stack}, Vars: s.vars}, s.env)
}

func (s *state) output(args []domain.Value) {
	if s.env.Output == nil {
		return
	}
	parts := make([]string, 0, len(args))
	for _, arg := range args {
		parts = append(parts, s.interp.Format(arg))
	}
	s.env.Output(strings.Join(parts, " "))
}
