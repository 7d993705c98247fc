package application

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"time"

	"github.com/bnema/scriptbridge/internal/domain"
	"github.com/bnema/scriptbridge/internal/ports"
	"github.com/google/uuid"
)

// RenderSelector picks the element screenshotted for html fragments: the
// first element inside the document body.
const RenderSelector = "body > *"

type RunnerDeps struct {
	Interpreter ports.Interpreter
	Platform    ports.Platform
	Renderer    ports.Renderer
	Identities  ports.IdentityRepository
	Commands    *CommandService
	Notes       *NoteService
	Members     *MemberResolver
	Gate        *ContinuationGate
	Fetcher     *Fetcher
	Help        *HelpCatalog
	Watchdog    WatchdogOptions
	Logger      *slog.Logger
	Version     string
}

// Runner executes scripts for chat sessions. Each call owns its output
// buffer and watchdog.
type Runner struct {
	deps   RunnerDeps
	logger *slog.Logger
}

func NewRunner(deps RunnerDeps) *Runner {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Fetcher == nil {
		deps.Fetcher = NewFetcher(0)
	}
	if deps.Version == "" {
		deps.Version = "dev"
	}

	return &Runner{deps: deps, logger: deps.Logger}
}

// Run evaluates code and returns the fragments left undelivered.
func (r *Runner) Run(ctx context.Context, code string, sc domain.SessionContext) ([]domain.Fragment, error) {
	return r.execute(ctx, sc, "code", func(x *execution) error {
		return r.deps.Interpreter.Eval(ctx, code, x.scope, x.env)
	})
}

// RunCommand invokes a stored command with arg as its operand.
func (r *Runner) RunCommand(ctx context.Context, name, arg string, sc domain.SessionContext) ([]domain.Fragment, error) {
	return r.execute(ctx, sc, "command:"+name, func(x *execution) error {
		if r.deps.Commands == nil {
			return domain.ErrCommandNotFound
		}
		_, err := r.deps.Commands.Invoke(ctx, x.env, name, domain.Text(arg), x.scope)
		return err
	})
}

// TryRun is Run with failures turned into escaped display text.
func (r *Runner) TryRun(ctx context.Context, code string, sc domain.SessionContext) []domain.Fragment {
	return reply(r.Run(ctx, code, sc))
}

func (r *Runner) TryRunCommand(ctx context.Context, name, arg string, sc domain.SessionContext) []domain.Fragment {
	return reply(r.RunCommand(ctx, name, arg, sc))
}

func reply(fragments []domain.Fragment, err error) []domain.Fragment {
	if err != nil {
		return []domain.Fragment{domain.TextFragment(html.EscapeString(err.Error()))}
	}
	return fragments
}

// Deliver sends fragments to a channel, rendering html fragments to images
// first when a renderer is configured.
func (r *Runner) Deliver(ctx context.Context, channelID string, fragments []domain.Fragment) ([]string, error) {
	if len(fragments) == 0 {
		return nil, nil
	}

	rendered := make([]domain.Fragment, 0, len(fragments))
	for _, f := range fragments {
		if f.Kind != domain.FragmentHTML || r.deps.Renderer == nil {
			rendered = append(rendered, f)
			continue
		}
		png, err := r.deps.Renderer.Render(ctx, ports.RenderRequest{Markup: f.Source, Selector: RenderSelector})
		if err != nil {
			return nil, fmt.Errorf("render html fragment: %w", err)
		}
		rendered = append(rendered, domain.RenderedImage(png))
	}

	ids, err := r.deps.Platform.Send(ctx, channelID, rendered)
	if err != nil {
		return nil, fmt.Errorf("send message: %w", err)
	}
	return ids, nil
}

type execution struct {
	id       string
	runner   *Runner
	session  domain.SessionContext
	buffer   *OutputBuffer
	watchdog *Watchdog
	scope    ports.Scope
	env      ports.Env
}

func (r *Runner) execute(ctx context.Context, sc domain.SessionContext, what string, body func(x *execution) error) ([]domain.Fragment, error) {
	x := &execution{
		id:       uuid.NewString(),
		runner:   r,
		session:  sc,
		buffer:   NewOutputBuffer(),
		watchdog: StartWatchdog(r.deps.Watchdog),
	}
	defer x.watchdog.Stop()

	defaults := r.deps.Interpreter.DefaultVars()
	primitives := x.primitives()
	for name := range defaults {
		delete(primitives, name)
	}
	x.scope = ports.NewScope(defaults)
	x.env = ports.Env{
		Primitives: primitives,
		Output: func(text string) {
			x.buffer.Push(domain.TextFragment(text))
		},
		Check: x.watchdog.Check,
	}

	started := time.Now()
	r.logger.Info("execution_start",
		"execution_id", x.id,
		"run", what,
		"platform", sc.Platform,
		"channel_id", sc.ChannelID,
		"user_id", sc.UserID,
	)

	err := body(x)
	attrs := []any{
		"execution_id", x.id,
		"duration_ms", time.Since(started).Milliseconds(),
		"pending_fragments", x.buffer.Len(),
	}
	if err != nil {
		r.logger.Warn("execution_failed", append(attrs, "error", err)...)
		return nil, err
	}

	r.logger.Info("execution_finish", attrs...)
	return x.buffer.PeekAll(), nil
}
