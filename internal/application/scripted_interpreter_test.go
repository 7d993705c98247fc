package application

import (
	"context"
	"fmt"

	"github.com/bnema/scriptbridge/internal/domain"
	"github.com/bnema/scriptbridge/internal/ports"
)

// program stands in for interpreted code in tests. Programs are looked up by
// their exact source text.
type program func(ctx context.Context, run *scriptRun) (domain.Value, error)

type scriptedInterpreter struct {
	programs map[string]program
	defaults map[string]domain.Value
}

func newScriptedInterpreter(programs map[string]program) *scriptedInterpreter {
	return &scriptedInterpreter{programs: programs, defaults: map[string]domain.Value{}}
}

type scriptRun struct {
	scope    ports.Scope
	env      ports.Env
	operands []domain.Value
}

func (r *scriptRun) call(ctx context.Context, name string, args ...domain.Value) (domain.Value, error) {
	if err := r.env.Check(); err != nil {
		return domain.Undefined, err
	}
	p, ok := r.env.Primitives[name]
	if !ok {
		return domain.Undefined, fmt.Errorf("undefined primitive %s", name)
	}

	var scope *ports.Scope
	if p.ScopeAware {
		s := r.scope
		scope = &s
	}
	return p.Call(ctx, args, scope)
}

func (r *scriptRun) operand(i int) domain.Value {
	if i < len(r.operands) {
		return r.operands[i]
	}
	return domain.Undefined
}

func (s *scriptedInterpreter) Eval(ctx context.Context, code string, scope ports.Scope, env ports.Env) error {
	p, ok := s.programs[code]
	if !ok {
		return fmt.Errorf("syntax error near %q", code)
	}
	_, err := p(ctx, &scriptRun{scope: scope, env: env})
	return err
}

func (s *scriptedInterpreter) Exec(ctx context.Context, scope ports.Scope, env ports.Env) (domain.Value, error) {
	top := scope.Stack[len(scope.Stack)-1]
	if len(top) == 0 {
		return domain.Undefined, fmt.Errorf("nothing to execute")
	}
	code := top[len(top)-1].String()
	p, ok := s.programs[code]
	if !ok {
		return domain.Undefined, fmt.Errorf("syntax error near %q", code)
	}
	return p(ctx, &scriptRun{scope: scope, env: env, operands: top[:len(top)-1]})
}

func (s *scriptedInterpreter) DefaultVars() map[string]domain.Value {
	out := make(map[string]domain.Value, len(s.defaults))
	for k, v := range s.defaults {
		out[k] = v
	}
	return out
}

func (s *scriptedInterpreter) Format(v domain.Value) string {
	return v.String()
}

func calls(steps ...func(ctx context.Context, run *scriptRun) error) program {
	return func(ctx context.Context, run *scriptRun) (domain.Value, error) {
		for _, step := range steps {
			if err := step(ctx, run); err != nil {
				return domain.Undefined, err
			}
		}
		return domain.Undefined, nil
	}
}

func step(name string, args ...domain.Value) func(ctx context.Context, run *scriptRun) error {
	return func(ctx context.Context, run *scriptRun) error {
		_, err := run.call(ctx, name, args...)
		return err
	}
}
