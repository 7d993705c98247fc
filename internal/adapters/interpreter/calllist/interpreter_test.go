package calllist

import (
	"context"
	"errors"
	"testing"

	"github.com/bnema/scriptbridge/internal/domain"
	"github.com/bnema/scriptbridge/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	printed []string
	calls   []string
}

func (r *recorder) env(primitives ...ports.Primitive) ports.Env {
	table := map[string]ports.Primitive{}
	for _, p := range primitives {
		table[p.Name] = p
	}
	return ports.Env{
		Primitives: table,
		Output:     func(text string) { r.printed = append(r.printed, text) },
	}
}

func echo(r *recorder, name string) ports.Primitive {
	return ports.Primitive{
		Name: name,
		Call: func(_ context.Context, args []domain.Value, _ *ports.Scope) (domain.Value, error) {
			r.calls = append(r.calls, name+domain.List(args...).String())
			return domain.List(args...), nil
		},
	}
}

func TestEvalPrintsAndCallsPrimitives(t *testing.T) {
	t.Parallel()

	interp := New("test")
	rec := &recorder{}
	code := `
# greeting
let who = (me)
print "hello" (at $who 1) ; outimg "u.png"
print $
`
	err := interp.Eval(context.Background(), code, ports.NewScope(interp.DefaultVars()), rec.env(
		echo(rec, "outimg"),
		ports.Primitive{Name: "me", Call: func(context.Context, []domain.Value, *ports.Scope) (domain.Value, error) {
			return domain.List(domain.Text("hi"), domain.Text("m1")), nil
		}},
	))

	require.NoError(t, err)
	assert.Equal(t, []string{"hello m1", "[u.png]"}, rec.printed)
	assert.Equal(t, []string{"outimg[u.png]"}, rec.calls)
}

func TestEvalLiterals(t *testing.T) {
	t.Parallel()

	interp := New("test")
	rec := &recorder{}
	err := interp.Eval(context.Background(),
		`print 1.5 -2 "a\"b" [1 "x" [null]] undefined {raw { nested } "}"}`,
		ports.NewScope(nil), rec.env())

	require.NoError(t, err)
	assert.Equal(t, []string{`1.5 -2 a"b [1, x, [null]] undefined raw { nested } "}"`}, rec.printed)
}

func TestExecBindsOperands(t *testing.T) {
	t.Parallel()

	interp := New("test")
	scope := ports.NewScope(nil).Extend(domain.Text("arg"), domain.Text(`join "got " $1 $2`))

	got, err := interp.Exec(context.Background(), scope, ports.Env{})
	require.NoError(t, err)
	assert.Equal(t, "got argundefined", got.String())
}

func TestExecReturnsNonCodeProgramAsIs(t *testing.T) {
	t.Parallel()

	interp := New("test")
	got, err := interp.Exec(context.Background(), ports.NewScope(nil).Extend(domain.Number(7)), ports.Env{})
	require.NoError(t, err)
	assert.Equal(t, "7", got.String())

	got, err = interp.Exec(context.Background(), ports.NewScope(nil), ports.Env{})
	require.NoError(t, err)
	assert.True(t, got.IsUndefined())
}

func TestScopeAwarePrimitiveReceivesVariables(t *testing.T) {
	t.Parallel()

	interp := New("test")
	var seen *ports.Scope
	env := ports.Env{Primitives: map[string]ports.Primitive{
		"cmd": {Name: "cmd", ScopeAware: true, Call: func(_ context.Context, _ []domain.Value, scope *ports.Scope) (domain.Value, error) {
			seen = scope
			return domain.Null, nil
		}},
	}}

	require.NoError(t, interp.Eval(context.Background(), "let x = 3\ncmd 1 name", ports.NewScope(nil), env))
	require.NotNil(t, seen)
	assert.Equal(t, "3", seen.Vars["x"].String())
	assert.Equal(t, [][]domain.Value{{}}, seen.Stack)
}

func TestVariablesShadowPrimitives(t *testing.T) {
	t.Parallel()

	interp := New("test")
	rec := &recorder{}
	code := "let outimg = {print \"shadowed\" $1}\noutimg x"

	require.NoError(t, interp.Eval(context.Background(), code, ports.NewScope(nil), rec.env(echo(rec, "outimg"))))
	assert.Equal(t, []string{"shadowed x"}, rec.printed)
	assert.Empty(t, rec.calls)
}

func TestControlFlowBuiltins(t *testing.T) {
	t.Parallel()

	interp := New("test")
	rec := &recorder{}
	code := `
let n = 0
loop {let n = (add $n 1); print $n; not (eq $n 2)}
if (eq 1 1) {print "yes"} {print "no"}
if 0 {print "yes"} {print "no"}
print (len "héllo") (len [1 2]) (at "abc" 5)
`
	require.NoError(t, interp.Eval(context.Background(), code, ports.NewScope(nil), rec.env()))
	assert.Equal(t, []string{"1", "2", "yes", "no", "5 2 undefined"}, rec.printed)
}

func TestCheckStopsTightLoop(t *testing.T) {
	t.Parallel()

	interp := New("test")
	tripped := errors.New("tripped")
	steps := 0
	env := ports.Env{Check: func() error {
		steps++
		if steps > 50 {
			return tripped
		}
		return nil
	}}

	err := interp.Eval(context.Background(), "loop {1}", ports.NewScope(nil), env)
	assert.ErrorIs(t, err, tripped)
}

func TestPrimitiveErrorsPropagateUnchanged(t *testing.T) {
	t.Parallel()

	interp := New("test")
	failure := &domain.PrimitiveError{Primitive: "cat", Err: errors.New("boom")}
	env := ports.Env{Primitives: map[string]ports.Primitive{
		"cat": {Name: "cat", Call: func(context.Context, []domain.Value, *ports.Scope) (domain.Value, error) {
			return domain.Undefined, failure
		}},
	}}

	err := interp.Eval(context.Background(), `cat "http://x"`, ports.NewScope(nil), env)
	var primitiveErr *domain.PrimitiveError
	require.ErrorAs(t, err, &primitiveErr)
	assert.Equal(t, "cat", primitiveErr.Primitive)
}

func TestSyntaxAndRuntimeErrors(t *testing.T) {
	t.Parallel()

	interp := New("test")
	testCases := []struct {
		name    string
		code    string
		wantErr string
	}{
		{name: "stray token", code: "<b>", wantErr: `syntax error near "<"`},
		{name: "unterminated string", code: `print "abc`, wantErr: "unterminated string"},
		{name: "unterminated block", code: "print {abc", wantErr: "unterminated block"},
		{name: "unclosed call", code: "print (add 1 2", wantErr: "expected )"},
		{name: "let without name", code: "let = 1", wantErr: "expected a name"},
		{name: "unknown word", code: "nosuch 1", wantErr: `line 1: unknown word "nosuch"`},
		{name: "undefined variable", code: "print $nope", wantErr: `undefined variable "nope"`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := interp.Eval(context.Background(), tc.code, ports.NewScope(nil), ports.Env{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestDefaultVars(t *testing.T) {
	t.Parallel()

	vars := New("1.2.3").DefaultVars()
	assert.Equal(t, "calllist 1.2.3", vars["interpreter"].String())
	assert.True(t, vars["nan"].IsNaN())
	assert.True(t, vars["true"].Truthy())
	assert.False(t, vars["false"].Truthy())
}

func TestEvalBareDollarIsPreviousValue(t *testing.T) {
	t.Parallel()

	for _, code := range []string{"add 2 3; print $", "add 2 3\nprint $$", "add 2 3; print (at [$] 0)"} {
		interp := New("test")
		rec := &recorder{}
		err := interp.Eval(context.Background(), code, ports.NewScope(nil), rec.env())

		require.NoError(t, err, code)
		assert.Equal(t, []string{"5"}, rec.printed, code)
	}
}
