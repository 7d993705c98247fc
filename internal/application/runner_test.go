package application

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bnema/scriptbridge/internal/adapters/repo/memory"
	"github.com/bnema/scriptbridge/internal/domain"
	"github.com/bnema/scriptbridge/internal/ports"
	"github.com/bnema/scriptbridge/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type runnerFixture struct {
	runner     *Runner
	interp     *scriptedInterpreter
	platform   *mocks.MockPlatform
	renderer   *mocks.MockRenderer
	events     *fakeEvents
	commands   *memory.CommandRepository
	identities *memory.IdentityRepository
	members    *memory.MemberCache
}

func newRunnerFixture(t *testing.T, programs map[string]program) *runnerFixture {
	t.Helper()

	help, err := LoadHelpCatalog()
	require.NoError(t, err)

	f := &runnerFixture{
		interp:     newScriptedInterpreter(programs),
		platform:   mocks.NewMockPlatform(t),
		renderer:   mocks.NewMockRenderer(t),
		events:     newFakeEvents(),
		commands:   memory.NewCommandRepository(),
		identities: memory.NewIdentityRepository(),
		members:    memory.NewMemberCache(nil),
	}
	f.platform.EXPECT().Name().Return("console").Maybe()

	f.runner = NewRunner(RunnerDeps{
		Interpreter: f.interp,
		Platform:    f.platform,
		Renderer:    f.renderer,
		Identities:  f.identities,
		Commands:    NewCommandService(f.commands, f.interp),
		Notes:       NewNoteService(memory.NewNoteRepository(), f.identities),
		Members:     NewMemberResolver(f.members, nil),
		Gate:        NewContinuationGate(f.events, f.identities, time.Second, nil),
		Fetcher:     NewFetcher(time.Second),
		Help:        help,
		Version:     "test",
	})
	return f
}

func session(user string) domain.SessionContext {
	return domain.SessionContext{
		Platform:  "console",
		SelfID:    "bot",
		ChannelID: "c1",
		GuildID:   "g1",
		UserID:    user,
		UserName:  user,
		MessageID: "m0",
		Content:   "¿code",
	}
}

func TestRunnerOutimgSendDispatchesOneImage(t *testing.T) {
	f := newRunnerFixture(t, map[string]program{
		"img": calls(step("outimg", domain.Text("u.png")), step("send")),
	})
	f.platform.EXPECT().Send(mockAnyContext(), "c1", []domain.Fragment{domain.ImageFragment("u.png")}).Return([]string{"m1"}, nil).Once()

	fragments, err := f.runner.Run(context.Background(), "img", session("alice"))
	require.NoError(t, err)
	assert.Empty(t, fragments)
}

func TestRunnerReturnsUndeliveredFragmentsInOrder(t *testing.T) {
	f := newRunnerFixture(t, map[string]program{
		"out": func(ctx context.Context, run *scriptRun) (domain.Value, error) {
			run.env.Output("hello")
			_, err := run.call(ctx, "outat", domain.Text("bob"))
			return domain.Undefined, err
		},
	})

	fragments, err := f.runner.Run(context.Background(), "out", session("alice"))
	require.NoError(t, err)
	assert.Equal(t, []domain.Fragment{domain.TextFragment("hello"), domain.MentionFragment("bob")}, fragments)
}

func TestRunnerNoutAndSends(t *testing.T) {
	f := newRunnerFixture(t, map[string]program{
		"batch": calls(
			step("outimg", domain.Text("a")),
			step("outimg", domain.Text("b")),
			step("outimg", domain.Text("c")),
			step("nout"),
			step("outfile", domain.Text("d")),
			step("sends", domain.Number(2)),
			step("nouts", domain.Number(9)),
		),
	})
	f.platform.EXPECT().Send(mockAnyContext(), "c1", []domain.Fragment{domain.ImageFragment("b"), domain.FileFragment("d")}).Return([]string{"m1"}, nil).Once()

	fragments, err := f.runner.Run(context.Background(), "batch", session("alice"))
	require.NoError(t, err)
	assert.Empty(t, fragments)
}

func TestRunnerSendsToTargetsOtherChannel(t *testing.T) {
	f := newRunnerFixture(t, map[string]program{
		"relay": calls(step("outimg", domain.Text("a")), step("sendsto", domain.Text("c9"), domain.Number(1))),
	})
	f.platform.EXPECT().Send(mockAnyContext(), "c9", []domain.Fragment{domain.ImageFragment("a")}).Return([]string{"m2"}, nil).Once()

	_, err := f.runner.Run(context.Background(), "relay", session("alice"))
	require.NoError(t, err)
}

func TestRunnerRendersHTMLAtDelivery(t *testing.T) {
	f := newRunnerFixture(t, map[string]program{
		"pic": calls(step("outimag", domain.Text("hi")), step("send")),
	})
	f.renderer.EXPECT().Render(mockAnyContext(), ports.RenderRequest{Markup: Htmlize("hi", TextStyle), Selector: RenderSelector}).Return([]byte("png"), nil).Once()
	f.platform.EXPECT().Send(mockAnyContext(), "c1", []domain.Fragment{domain.RenderedImage([]byte("png"))}).Return([]string{"m1"}, nil).Once()

	_, err := f.runner.Run(context.Background(), "pic", session("alice"))
	require.NoError(t, err)
}

func TestRunnerRenderSizeFailureFailsSend(t *testing.T) {
	f := newRunnerFixture(t, map[string]program{
		"pic": calls(step("outsvg", domain.List(domain.Number(0), domain.Number(0))), step("send")),
	})
	f.renderer.EXPECT().Render(mockAnyContext(), mock.Anything).Return(nil, domain.ErrRenderSize).Once()

	_, err := f.runner.Run(context.Background(), "pic", session("alice"))
	require.ErrorIs(t, err, domain.ErrRenderSize)

	var primitiveErr *domain.PrimitiveError
	require.ErrorAs(t, err, &primitiveErr)
	assert.Equal(t, "send", primitiveErr.Primitive)
}

func TestRunnerCmdMissingCodeFails(t *testing.T) {
	f := newRunnerFixture(t, map[string]program{
		"call": calls(step("cmd", domain.Text("x"), domain.Text("nope"))),
	})

	_, err := f.runner.Run(context.Background(), "call", session("alice"))
	require.ErrorIs(t, err, domain.ErrCommandNotFound)

	reply := f.runner.TryRun(context.Background(), "call", session("alice"))
	assert.Equal(t, []domain.Fragment{domain.TextFragment("cmd: command not found")}, reply)
}

func TestRunnerCmdSharesBufferAndScope(t *testing.T) {
	f := newRunnerFixture(t, map[string]program{
		"setup": calls(step("cmdset", domain.Text("echo-arg"), domain.Text("greet"))),
		"echo-arg": func(_ context.Context, run *scriptRun) (domain.Value, error) {
			run.env.Output("hello " + run.operand(0).String())
			return domain.Number(7), nil
		},
		"call": func(ctx context.Context, run *scriptRun) (domain.Value, error) {
			v, err := run.call(ctx, "cmd", domain.Text("world"), domain.Text("greet"))
			if err != nil {
				return domain.Undefined, err
			}
			run.env.Output("got " + v.String())
			return domain.Undefined, nil
		},
	})

	_, err := f.runner.Run(context.Background(), "setup", session("alice"))
	require.NoError(t, err)

	fragments, err := f.runner.Run(context.Background(), "call", session("alice"))
	require.NoError(t, err)
	assert.Equal(t, []domain.Fragment{domain.TextFragment("hello world"), domain.TextFragment("got 7")}, fragments)
}

func TestRunnerCommandStoreRoundTrip(t *testing.T) {
	var got []domain.Value
	collect := func(name string, args ...domain.Value) func(context.Context, *scriptRun) error {
		return func(ctx context.Context, run *scriptRun) error {
			v, err := run.call(ctx, name, args...)
			got = append(got, v)
			return err
		}
	}
	f := newRunnerFixture(t, map[string]program{
		"cmds": calls(
			step("cmdset", domain.Text("X"), domain.Text("a")),
			step("cmdsethelp", domain.Text("H"), domain.Text("a")),
			collect("cmdget", domain.Text("a")),
			collect("cmdgethelp", domain.Text("a")),
			collect("cmdgeth", domain.Text("a")),
			collect("cmdall"),
			step("cmddel", domain.Text("a")),
			collect("cmdget", domain.Text("a")),
		),
	})

	_, err := f.runner.Run(context.Background(), "cmds", session("alice"))
	require.NoError(t, err)
	assert.Equal(t, []domain.Value{
		domain.Text("X"),
		domain.Text("H"),
		domain.Null,
		domain.List(domain.Text("a")),
		domain.Null,
	}, got)
}

func TestRunnerRunCommandUsesArgument(t *testing.T) {
	f := newRunnerFixture(t, map[string]program{
		"echo-arg": func(_ context.Context, run *scriptRun) (domain.Value, error) {
			run.env.Output(run.operand(0).String())
			return domain.Undefined, nil
		},
	})
	require.NoError(t, f.commands.Upsert(context.Background(), "echo", domain.CommandPatch{Code: domain.StringPtr("echo-arg")}))

	fragments, err := f.runner.RunCommand(context.Background(), "echo", "a b", session("alice"))
	require.NoError(t, err)
	assert.Equal(t, []domain.Fragment{domain.TextFragment("a b")}, fragments)

	reply := f.runner.TryRunCommand(context.Background(), "missing", "", session("alice"))
	assert.Equal(t, []domain.Fragment{domain.TextFragment("command not found")}, reply)
}

func TestRunnerWatchdogStopsTightLoop(t *testing.T) {
	f := newRunnerFixture(t, map[string]program{
		"spin": func(_ context.Context, run *scriptRun) (domain.Value, error) {
			for {
				if err := run.env.Check(); err != nil {
					return domain.Undefined, err
				}
			}
		},
	})
	f.runner.deps.Watchdog = WatchdogOptions{Threshold: 30 * time.Millisecond, Heartbeat: 5 * time.Millisecond}

	_, err := f.runner.Run(context.Background(), "spin", session("alice"))
	require.ErrorIs(t, err, domain.ErrExecutionTimeout)

	reply := f.runner.TryRun(context.Background(), "spin", session("alice"))
	assert.Equal(t, []domain.Fragment{domain.TextFragment("execution timeout")}, reply)
}

func TestRunnerSleepKeepsWatchdogFed(t *testing.T) {
	f := newRunnerFixture(t, map[string]program{
		"nap": calls(step("sleep", domain.Number(0.1)), step("me")),
	})
	f.runner.deps.Watchdog = WatchdogOptions{Threshold: 40 * time.Millisecond, Heartbeat: 5 * time.Millisecond}

	_, err := f.runner.Run(context.Background(), "nap", session("alice"))
	require.NoError(t, err)
}

func TestRunnerDefaultsOverridePrimitives(t *testing.T) {
	var seen bool
	f := newRunnerFixture(t, map[string]program{
		"probe": func(_ context.Context, run *scriptRun) (domain.Value, error) {
			_, seen = run.env.Primitives["send"]
			assert.Equal(t, domain.Number(1), run.scope.Vars["send"])
			return domain.Undefined, nil
		},
	})
	f.interp.defaults["send"] = domain.Number(1)

	_, err := f.runner.Run(context.Background(), "probe", session("alice"))
	require.NoError(t, err)
	assert.False(t, seen)
}

func TestRunnerNotesRoundTripAndPrivateIsolation(t *testing.T) {
	var got []domain.Value
	read := func(name string, args ...domain.Value) func(context.Context, *scriptRun) error {
		return func(ctx context.Context, run *scriptRun) error {
			v, err := run.call(ctx, name, args...)
			got = append(got, v)
			return err
		}
	}
	f := newRunnerFixture(t, map[string]program{
		"alice-writes": calls(step("notewe", domain.Text("secret")), step("notewd", domain.Text("guarded"))),
		"alice-reads":  calls(read("notere")),
		"bob-reads":    calls(read("notere"), read("noterd", domain.Number(1)), read("noterc", domain.Number(1))),
		"bob-writes":   calls(step("notewc", domain.Number(1), domain.Text("hi alice"))),
	})

	ctx := context.Background()
	_, err := f.runner.Run(ctx, "alice-writes", session("alice"))
	require.NoError(t, err)
	_, err = f.runner.Run(ctx, "bob-reads", session("bob"))
	require.NoError(t, err)
	_, err = f.runner.Run(ctx, "bob-writes", session("bob"))
	require.NoError(t, err)
	_, err = f.runner.Run(ctx, "bob-reads", session("bob"))
	require.NoError(t, err)
	_, err = f.runner.Run(ctx, "alice-reads", session("alice"))
	require.NoError(t, err)

	assert.Equal(t, []domain.Value{
		domain.Null, domain.Text("guarded"), domain.Null,
		domain.Null, domain.Text("guarded"), domain.Text("hi alice"),
		domain.Text("secret"),
	}, got)
}

func TestRunnerNoteWriteRejectsBadIdentity(t *testing.T) {
	f := newRunnerFixture(t, map[string]program{
		"bad": calls(step("notewc", domain.Text("abc"), domain.Text("x"))),
	})

	_, err := f.runner.Run(context.Background(), "bad", session("alice"))
	require.ErrorIs(t, err, errInvalidIdentity)
}

func TestRunnerMeProjectsSession(t *testing.T) {
	var got domain.Value
	f := newRunnerFixture(t, map[string]program{
		"me": func(ctx context.Context, run *scriptRun) (domain.Value, error) {
			v, err := run.call(ctx, "me")
			got = v
			return domain.Undefined, err
		},
	})

	_, err := f.runner.Run(context.Background(), "me", session("alice"))
	require.NoError(t, err)
	assert.Equal(t, domain.List(
		domain.Text("¿code"), domain.Text("m0"), domain.Text("alice"), domain.Text("alice"),
		domain.Number(1), domain.Text("c1"), domain.Undefined,
	), got)
}

func TestRunnerPromptWaitsForValidatedMessage(t *testing.T) {
	f := newRunnerFixture(t, map[string]program{
		"ask": func(ctx context.Context, run *scriptRun) (domain.Value, error) {
			v, err := run.call(ctx, "prompt", domain.Undefined, domain.Text("is-yes"))
			if err != nil {
				return domain.Undefined, err
			}
			items, _ := v.List()
			run.env.Output("answer " + items[0].String())
			return domain.Undefined, nil
		},
		"is-yes": func(_ context.Context, run *scriptRun) (domain.Value, error) {
			items, _ := run.operand(0).List()
			if items[0].String() == "yes" {
				return domain.Number(1), nil
			}
			return domain.Number(0), nil
		},
	})

	done := make(chan []domain.Fragment, 1)
	go func() {
		fragments, err := f.runner.Run(context.Background(), "ask", session("alice"))
		assert.NoError(t, err)
		done <- fragments
	}()
	<-f.events.subscribed

	assert.False(t, f.events.deliver(chatEvent("c2", "bob", "no")))
	assert.True(t, f.events.deliver(chatEvent("c3", "carol", "yes")))

	assert.Equal(t, []domain.Fragment{domain.TextFragment("answer yes")}, <-done)
}

func TestRunnerPrReturnsContent(t *testing.T) {
	var got domain.Value
	f := newRunnerFixture(t, map[string]program{
		"pr": func(ctx context.Context, run *scriptRun) (domain.Value, error) {
			v, err := run.call(ctx, "pr")
			got = v
			return domain.Undefined, err
		},
	})

	done := make(chan error, 1)
	go func() {
		_, err := f.runner.Run(context.Background(), "pr", session("alice"))
		done <- err
	}()
	<-f.events.subscribed

	assert.False(t, f.events.deliver(chatEvent("c1", "bob", "not me")))
	assert.True(t, f.events.deliver(chatEvent("c1", "alice", "42")))
	require.NoError(t, <-done)
	assert.Equal(t, domain.Text("42"), got)
}

func TestRunnerFindMessageScansPages(t *testing.T) {
	var got domain.Value
	f := newRunnerFixture(t, map[string]program{
		"find": func(ctx context.Context, run *scriptRun) (domain.Value, error) {
			v, err := run.call(ctx, "findmsg", domain.Text("from-bob"))
			got = v
			return domain.Undefined, err
		},
		"from-bob": func(_ context.Context, run *scriptRun) (domain.Value, error) {
			items, _ := run.operand(0).List()
			if items[3].String() == "bob" {
				return domain.Number(1), nil
			}
			return domain.Number(0), nil
		},
	})
	f.platform.EXPECT().ListMessages(mockAnyContext(), "c1", "").Return(domain.MessagePage{
		Messages: []domain.Message{{ID: "m3", ChannelID: "c1", UserID: "alice", Content: "a"}},
		Next:     "p2",
	}, nil)
	f.platform.EXPECT().ListMessages(mockAnyContext(), "c1", "p2").Return(domain.MessagePage{
		Messages: []domain.Message{{ID: "m2", ChannelID: "c1", UserID: "bob", Content: "b"}},
	}, nil)

	_, err := f.runner.Run(context.Background(), "find", session("alice"))
	require.NoError(t, err)
	items, ok := got.List()
	require.True(t, ok)
	assert.Equal(t, domain.Text("m2"), items[1])
	assert.True(t, items[4].IsUndefined())
}

func TestRunnerGetMessageFailsWhenMissing(t *testing.T) {
	f := newRunnerFixture(t, map[string]program{
		"get": calls(step("msgbyid", domain.Text(""), domain.Text("m404"))),
	})
	f.platform.EXPECT().GetMessage(mockAnyContext(), "c1", "m404").Return(domain.Message{}, domain.ErrMessageNotFound)

	_, err := f.runner.Run(context.Background(), "get", session("alice"))
	require.ErrorIs(t, err, domain.ErrMessageNotFound)
}

func TestRunnerGuildMembersFallsBackToCache(t *testing.T) {
	var got domain.Value
	f := newRunnerFixture(t, map[string]program{
		"who": func(ctx context.Context, run *scriptRun) (domain.Value, error) {
			v, err := run.call(ctx, "guildmem", domain.Text("g1"))
			got = v
			return domain.Undefined, err
		},
	})
	require.NoError(t, f.members.Put(context.Background(), "console:g1", domain.Member{UserID: "u1", Name: "A"}, domain.MemberTTL))
	require.NoError(t, f.members.Put(context.Background(), "console:g1", domain.Member{UserID: "u2", Name: "B"}, domain.MemberTTL))
	f.platform.EXPECT().GuildMembers(mockAnyContext(), "g1", "").Return(domain.MemberPage{}, errors.New("forbidden"))

	_, err := f.runner.Run(context.Background(), "who", session("alice"))
	require.NoError(t, err)
	assert.Equal(t, domain.List(
		domain.List(domain.Text("A"), domain.Text("u1")),
		domain.List(domain.Text("B"), domain.Text("u2")),
	), got)
}

func TestRunnerFetchPrimitives(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("AB"))
	}))
	defer server.Close()

	var got []domain.Value
	collect := func(name string, args ...domain.Value) func(context.Context, *scriptRun) error {
		return func(ctx context.Context, run *scriptRun) error {
			v, err := run.call(ctx, name, args...)
			got = append(got, v)
			return err
		}
	}
	f := newRunnerFixture(t, map[string]program{
		"net": calls(
			collect("cat", domain.Text(server.URL)),
			collect("ca", domain.Text(server.URL)),
			collect("fech", domain.Text("GET"), domain.Text(server.URL), domain.List(), domain.Undefined),
		),
	})

	_, err := f.runner.Run(context.Background(), "net", session("alice"))
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, domain.Text("AB"), got[0])
	assert.Equal(t, domain.List(domain.Number(65), domain.Number(66)), got[1])

	resp, _ := got[2].List()
	assert.Equal(t, domain.Number(404), resp[0])
	assert.Equal(t, domain.Text("Not Found"), resp[1])
	assert.Equal(t, domain.List(domain.Number(65), domain.Number(66)), resp[3])
}

func TestRunnerReesc(t *testing.T) {
	var got domain.Value
	f := newRunnerFixture(t, map[string]program{
		"esc": func(ctx context.Context, run *scriptRun) (domain.Value, error) {
			v, err := run.call(ctx, "reesc", domain.Text("a.b*c-(d)"))
			got = v
			return domain.Undefined, err
		},
	})

	_, err := f.runner.Run(context.Background(), "esc", session("alice"))
	require.NoError(t, err)
	assert.Equal(t, domain.Text(`a\.b\*c\x2d\(d\)`), got)
}

func TestRunnerHelpPrimitives(t *testing.T) {
	var got []domain.Value
	collect := func(name string, args ...domain.Value) func(context.Context, *scriptRun) error {
		return func(ctx context.Context, run *scriptRun) error {
			v, err := run.call(ctx, name, args...)
			got = append(got, v)
			return err
		}
	}
	f := newRunnerFixture(t, map[string]program{
		"help": calls(
			collect("help", domain.Text("cmd")),
			collect("help", domain.Text("no-such-topic")),
			collect("helpall"),
		),
	})

	fragments, err := f.runner.Run(context.Background(), "help", session("alice"))
	require.NoError(t, err)
	assert.Contains(t, got[0].String(), "cmd(arg, name)")
	assert.Equal(t, domain.Null, got[1])
	require.Len(t, fragments, 1)
	assert.Equal(t, domain.FragmentHTML, fragments[0].Kind)
}

func TestRunnerUnknownProgramIsEscaped(t *testing.T) {
	f := newRunnerFixture(t, map[string]program{})

	reply := f.runner.TryRun(context.Background(), "<b>", session("alice"))
	assert.Equal(t, []domain.Fragment{domain.TextFragment(`syntax error near &#34;&lt;b&gt;&#34;`)}, reply)
}

func mockAnyContext() interface{} {
	return mock.Anything
}

func TestRunnerValidatorCommandLoopTripsWatchdog(t *testing.T) {
	f := newRunnerFixture(t, map[string]program{
		"find": calls(step("findmsg", domain.Text("via-cmd"))),
		"via-cmd": func(ctx context.Context, run *scriptRun) (domain.Value, error) {
			return run.call(ctx, "cmd", domain.Undefined, domain.Text("spin"))
		},
		"spin-loop": func(_ context.Context, run *scriptRun) (domain.Value, error) {
			for {
				if err := run.env.Check(); err != nil {
					return domain.Undefined, err
				}
			}
		},
	})
	f.runner.deps.Watchdog = WatchdogOptions{Threshold: 50 * time.Millisecond, Heartbeat: 5 * time.Millisecond}
	require.NoError(t, f.commands.Upsert(context.Background(), "spin", domain.CommandPatch{Code: domain.StringPtr("spin-loop")}))
	f.platform.EXPECT().ListMessages(mockAnyContext(), "c1", "").Return(domain.MessagePage{
		Messages: []domain.Message{{ID: "m1", ChannelID: "c1", UserID: "bob", Content: "b"}},
	}, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	started := time.Now()
	_, err := f.runner.Run(ctx, "find", session("alice"))
	require.ErrorIs(t, err, domain.ErrExecutionTimeout)
	assert.Less(t, time.Since(started), time.Second)
}

func TestRunnerPromptValidatorCommandLoopTripsWatchdog(t *testing.T) {
	f := newRunnerFixture(t, map[string]program{
		"ask": calls(step("prompt", domain.Undefined, domain.Text("via-cmd"))),
		"via-cmd": func(ctx context.Context, run *scriptRun) (domain.Value, error) {
			return run.call(ctx, "cmd", domain.Undefined, domain.Text("spin"))
		},
		"spin-loop": func(_ context.Context, run *scriptRun) (domain.Value, error) {
			for {
				if err := run.env.Check(); err != nil {
					return domain.Undefined, err
				}
			}
		},
	})
	f.runner.deps.Watchdog = WatchdogOptions{Threshold: 50 * time.Millisecond, Heartbeat: 5 * time.Millisecond}
	require.NoError(t, f.commands.Upsert(context.Background(), "spin", domain.CommandPatch{Code: domain.StringPtr("spin-loop")}))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		_, err := f.runner.Run(ctx, "ask", session("alice"))
		done <- err
	}()
	<-f.events.subscribed
	assert.False(t, f.events.deliver(chatEvent("c1", "bob", "hi")))

	err := <-done
	require.ErrorIs(t, err, domain.ErrExecutionTimeout)
	assert.NoError(t, ctx.Err())
}

func TestRunnerPromptTimeoutKeepsValidatorOutputInsideRun(t *testing.T) {
	const lateWrites = 20
	f := newRunnerFixture(t, map[string]program{
		"ask": calls(step("prompt", domain.Undefined, domain.Text("slow"))),
		"slow": func(_ context.Context, run *scriptRun) (domain.Value, error) {
			time.Sleep(150 * time.Millisecond)
			for i := 0; i < lateWrites; i++ {
				run.env.Output("late")
			}
			return domain.Number(0), nil
		},
	})
	f.runner.deps.Gate = NewContinuationGate(f.events, f.identities, 100*time.Millisecond, nil)

	done := make(chan []domain.Fragment, 1)
	go func() {
		fragments, err := f.runner.Run(context.Background(), "ask", session("alice"))
		assert.NoError(t, err)
		done <- fragments
	}()
	<-f.events.subscribed

	delivered := make(chan bool, 1)
	go func() { delivered <- f.events.deliver(chatEvent("c1", "bob", "hi")) }()

	fragments := <-done
	assert.Len(t, fragments, lateWrites)
	assert.False(t, <-delivered)
}
