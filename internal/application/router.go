package application

import (
	"context"
	"html"
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/bnema/scriptbridge/internal/domain"
	"github.com/bnema/scriptbridge/internal/interpolate"
)

const (
	codePrefix    = "¿"
	commandPrefix = "¿¿"
	braceMarker   = "$¿{"
	parenMarker   = "$¿("
)

type RouterConfig struct {
	// RequireAppel makes shortcuts in group channels answer only when the
	// bot is addressed.
	RequireAppel   bool
	Interpolate    bool
	InterpolateCmd bool
}

// RunRequest describes what a routed message is about to run. Command is set
// for stored command runs.
type RunRequest struct {
	Code    string
	Command string
	Arg     string
	Session domain.SessionContext
}

type RunHook func(ctx context.Context, req RunRequest)

// Router maps incoming chat messages to executions: "¿code" runs code,
// "¿¿name arg" runs a stored command, and "$¿{…}" / "$¿(…)" segments are
// expanded in place when enabled.
type Router struct {
	runner *Runner
	cfg    RouterConfig
	hooks  []RunHook
	logger *slog.Logger
}

func NewRouter(runner *Runner, cfg RouterConfig, logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{runner: runner, cfg: cfg, logger: logger}
}

// OnRun registers a hook called before every routed execution.
func (r *Router) OnRun(hook RunHook) {
	r.hooks = append(r.hooks, hook)
}

func (r *Router) emit(ctx context.Context, req RunRequest) {
	for _, hook := range r.hooks {
		hook(ctx, req)
	}
}

// Handle reports whether the message was routed, and the reply to deliver.
func (r *Router) Handle(ctx context.Context, sc domain.SessionContext) ([]domain.Fragment, bool) {
	if sc.HasAt && !sc.AtSelf {
		return nil, false
	}

	content := html.UnescapeString(sc.Content)
	addressed := sc.IsDirect || !r.cfg.RequireAppel || sc.Appel
	if addressed {
		switch {
		case strings.HasPrefix(content, commandPrefix):
			name, arg := splitCommand(strings.TrimPrefix(content, commandPrefix))
			if sc.QuoteContent != "" {
				arg = appendQuote(arg, html.UnescapeString(sc.QuoteContent))
			}
			r.logger.Debug("route_command", "name", name, "channel_id", sc.ChannelID)
			r.emit(ctx, RunRequest{Command: name, Arg: arg, Session: sc})
			return r.runner.TryRunCommand(ctx, name, arg, sc), true
		case strings.HasPrefix(content, codePrefix):
			code := strings.TrimPrefix(content, codePrefix)
			r.logger.Debug("route_code", "channel_id", sc.ChannelID)
			r.emit(ctx, RunRequest{Code: code, Session: sc})
			return r.runner.TryRun(ctx, code, sc), true
		}
	}

	if r.hasMarker(content) {
		return r.Expand(ctx, content, sc), true
	}
	return nil, false
}

func splitCommand(s string) (name, arg string) {
	name, arg, _ = strings.Cut(s, " ")
	return name, arg
}

func appendQuote(arg, quote string) string {
	if last, _ := utf8.DecodeLastRuneInString(arg); arg != "" && !unicode.IsSpace(last) {
		arg += " "
	}
	return arg + quote
}

func (r *Router) hasMarker(text string) bool {
	return (r.cfg.Interpolate && strings.Contains(text, braceMarker)) ||
		(r.cfg.InterpolateCmd && strings.Contains(text, parenMarker))
}

// Expand replaces every enabled interpolation segment in plain (unescaped)
// text with the output of running it. Adjacent text is merged into single
// fragments.
func (r *Router) Expand(ctx context.Context, text string, sc domain.SessionContext) []domain.Fragment {
	var out []domain.Fragment
	for {
		i, marker := r.nextMarker(text)
		if i < 0 {
			out = appendText(out, text)
			return out
		}
		out = appendText(out, text[:i])
		raw := text[i+len(marker):]

		var produced []domain.Fragment
		if marker == braceMarker {
			code, rest := interpolate.Brace(raw)
			r.emit(ctx, RunRequest{Code: code, Session: sc})
			produced = r.runner.TryRun(ctx, code, sc)
			text = rest
		} else {
			name, args, rest := interpolate.Paren(raw)
			r.emit(ctx, RunRequest{Command: name, Arg: args, Session: sc})
			produced = r.runner.TryRunCommand(ctx, name, args, sc)
			text = rest
		}

		for _, f := range produced {
			if f.Kind == domain.FragmentText {
				out = appendText(out, f.Source)
				continue
			}
			out = append(out, f)
		}
	}
}

func (r *Router) nextMarker(text string) (int, string) {
	best, marker := -1, ""
	if r.cfg.Interpolate {
		if i := strings.Index(text, braceMarker); i >= 0 {
			best, marker = i, braceMarker
		}
	}
	if r.cfg.InterpolateCmd {
		if i := strings.Index(text, parenMarker); i >= 0 && (best < 0 || i < best) {
			best, marker = i, parenMarker
		}
	}
	return best, marker
}

func appendText(out []domain.Fragment, text string) []domain.Fragment {
	if text == "" {
		return out
	}
	if n := len(out); n > 0 && out[n-1].Kind == domain.FragmentText {
		out[n-1].Source += text
		return out
	}
	return append(out, domain.TextFragment(text))
}
