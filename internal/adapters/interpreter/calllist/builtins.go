package calllist

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/scriptbridge/internal/domain"
)

type builtin func(ctx context.Context, s *state, args []domain.Value) (domain.Value, error)

var builtins map[string]builtin

func init() {
	builtins = map[string]builtin{
		"print": builtinPrint,
		"exec":  builtinExec,
		"if":    builtinIf,
		"loop":  builtinLoop,
		"eq":    builtinEq,
		"not":   builtinNot,
		"at":    builtinAt,
		"len":   builtinLen,
		"join":  builtinJoin,
		"add":   builtinAdd,
	}
}

func arg(args []domain.Value, i int) domain.Value {
	if i < len(args) {
		return args[i]
	}
	return domain.Undefined
}

func boolean(b bool) domain.Value {
	if b {
		return domain.Number(1)
	}
	return domain.Number(0)
}

func builtinPrint(_ context.Context, s *state, args []domain.Value) (domain.Value, error) {
	s.output(args)
	return domain.Undefined, nil
}

// exec {code} operands... runs code with the operands bound to $1, $2, ...
func builtinExec(ctx context.Context, s *state, args []domain.Value) (domain.Value, error) {
	code, ok := arg(args, 0).Text()
	if !ok {
		return arg(args, 0), nil
	}
	return s.invoke(ctx, code, args[1:])
}

// branch runs a block in the caller's variables; non-code values are
// returned as they are.
func (s *state) branch(ctx context.Context, v domain.Value) (domain.Value, error) {
	code, ok := v.Text()
	if !ok {
		return v, nil
	}
	program, err := parse(code)
	if err != nil {
		return domain.Undefined, err
	}
	child := &state{
		interp:   s.interp,
		env:      s.env,
		vars:     s.vars,
		operands: s.operands,
		last:     domain.Undefined,
	}
	return child.exec(ctx, program)
}

// if cond {then} {else}
func builtinIf(ctx context.Context, s *state, args []domain.Value) (domain.Value, error) {
	if arg(args, 0).Truthy() {
		return s.branch(ctx, arg(args, 1))
	}
	if len(args) > 2 {
		return s.branch(ctx, args[2])
	}
	return domain.Undefined, nil
}

// loop {body} repeats body while it yields a truthy value.
func builtinLoop(ctx context.Context, s *state, args []domain.Value) (domain.Value, error) {
	body := arg(args, 0)
	for {
		if err := s.check(); err != nil {
			return domain.Undefined, err
		}
		if err := ctx.Err(); err != nil {
			return domain.Undefined, err
		}
		v, err := s.branch(ctx, body)
		if err != nil {
			return domain.Undefined, err
		}
		if !v.Truthy() {
			return v, nil
		}
	}
}

func builtinEq(_ context.Context, _ *state, args []domain.Value) (domain.Value, error) {
	a, b := arg(args, 0), arg(args, 1)
	return boolean(a.Kind() == b.Kind() && a.String() == b.String()), nil
}

func builtinNot(_ context.Context, _ *state, args []domain.Value) (domain.Value, error) {
	return boolean(!arg(args, 0).Truthy()), nil
}

// at list index | at record key
func builtinAt(_ context.Context, _ *state, args []domain.Value) (domain.Value, error) {
	container, key := arg(args, 0), arg(args, 1)
	if items, ok := container.List(); ok {
		i, ok := key.Int()
		if !ok || i < 0 || i >= len(items) {
			return domain.Undefined, nil
		}
		return items[i], nil
	}
	if fields, ok := container.Record(); ok {
		v, ok := fields[key.String()]
		if !ok {
			return domain.Undefined, nil
		}
		return v, nil
	}
	if text, ok := container.Text(); ok {
		runes := []rune(text)
		i, ok := key.Int()
		if !ok || i < 0 || i >= len(runes) {
			return domain.Undefined, nil
		}
		return domain.Text(string(runes[i])), nil
	}
	return domain.Undefined, fmt.Errorf("at: cannot index %s", container.Kind())
}

func builtinLen(_ context.Context, _ *state, args []domain.Value) (domain.Value, error) {
	v := arg(args, 0)
	switch v.Kind() {
	case domain.KindList:
		items, _ := v.List()
		return domain.Number(float64(len(items))), nil
	case domain.KindRecord:
		fields, _ := v.Record()
		return domain.Number(float64(len(fields))), nil
	case domain.KindText:
		text, _ := v.Text()
		return domain.Number(float64(len([]rune(text)))), nil
	default:
		return domain.Undefined, fmt.Errorf("len: no length for %s", v.Kind())
	}
}

func builtinJoin(_ context.Context, s *state, args []domain.Value) (domain.Value, error) {
	var b strings.Builder
	for _, v := range args {
		b.WriteString(s.interp.Format(v))
	}
	return domain.Text(b.String()), nil
}

var errNotANumber = errors.New("add: operands must be numbers")

func builtinAdd(_ context.Context, _ *state, args []domain.Value) (domain.Value, error) {
	var sum float64
	for _, v := range args {
		n, ok := v.Number()
		if !ok {
			return domain.Undefined, errNotANumber
		}
		sum += n
	}
	return domain.Number(sum), nil
}
