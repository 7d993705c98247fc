package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bnema/scriptbridge/internal/domain"
	"github.com/bnema/scriptbridge/internal/ports"
)

var errInvalidIdentity = errors.New("invalid identity id")

func arg(args []domain.Value, i int) domain.Value {
	if i < len(args) {
		return args[i]
	}
	return domain.Undefined
}

func (x *execution) text(v domain.Value) string {
	if s, ok := v.Text(); ok {
		return s
	}
	if v.IsAbsent() {
		return ""
	}
	return x.runner.deps.Interpreter.Format(v)
}

func (x *execution) count(v domain.Value) int {
	n, _ := v.Int()
	return n
}

// filterIDs reads a single id or a list of ids. Falsy values mean no filter.
func (x *execution) filterIDs(v domain.Value) []string {
	if !v.Truthy() {
		return nil
	}
	if items, ok := v.List(); ok {
		ids := make([]string, 0, len(items))
		for _, item := range items {
			ids = append(ids, x.text(item))
		}
		return ids
	}
	return []string{x.text(v)}
}

func (x *execution) primitives() map[string]ports.Primitive {
	table := map[string]ports.Primitive{}
	plain := func(name string, call ports.PrimitiveFunc) {
		table[name] = ports.Primitive{Name: name, Call: wrapPrimitive(name, call)}
	}
	blocking := func(name string, call ports.PrimitiveFunc) {
		table[name] = ports.Primitive{Name: name, Call: wrapPrimitive(name, x.parked(call))}
	}
	scoped := func(name string, park bool, call ports.PrimitiveFunc) {
		if park {
			call = x.parked(call)
		}
		table[name] = ports.Primitive{Name: name, ScopeAware: true, Call: wrapPrimitive(name, call)}
	}

	plain("help", x.help)
	plain("helpall", x.helpAll)
	plain("outhelp", x.outHelp)
	plain("you", x.you)
	plain("me", x.me)

	blocking("pr", x.pr)
	blocking("propt", x.propt)
	scoped("prompt", true, x.prompt)

	plain("outimg", x.pushWith(domain.ImageFragment))
	plain("outaudio", x.pushWith(domain.AudioFragment))
	plain("outvideo", x.pushWith(domain.VideoFragment))
	plain("outfile", x.pushWith(domain.FileFragment))
	plain("outquote", x.pushWith(domain.QuoteFragment))
	plain("outat", x.pushWith(domain.MentionFragment))
	plain("outimag", x.outImag)
	plain("outksq", x.outKsq)
	plain("outsvg", x.outSVG)
	plain("outhtml", x.pushWith(domain.HTMLFragment))
	plain("nout", x.nout)
	plain("nouts", x.nouts)

	blocking("nsend", x.nsend)
	blocking("send", x.send)
	blocking("sends", x.sends)
	blocking("sendsto", x.sendsTo)

	blocking("cat", x.cat)
	blocking("ca", x.ca)
	blocking("fetch", x.fetchText)
	blocking("fech", x.fetchBytes)
	plain("reesc", x.reesc)

	scoped("findmsg", false, x.findMessage)
	blocking("getmsg", x.getMessage)
	blocking("msgbyid", x.getMessage)
	blocking("sleep", x.sleep)

	blocking("notewc", x.noteWritePublic)
	blocking("notewd", x.noteWriteProtected)
	blocking("notewe", x.noteWritePrivate)
	blocking("noterc", x.noteReadPublic)
	blocking("noterd", x.noteReadProtected)
	blocking("notere", x.noteReadPrivate)

	blocking("guildmem", x.guildMembers)

	commands := x.runner.deps.Commands
	blocking("cmdset", x.commandSet(commands.SetCode))
	blocking("cmdsethelp", x.commandSet(commands.SetHelp))
	blocking("cmdseth", x.commandSet(commands.SetShortHelp))
	blocking("cmdget", x.commandGet(commands.Code))
	blocking("cmdgethelp", x.commandGet(commands.Help))
	blocking("cmdgeth", x.commandGet(commands.ShortHelp))
	blocking("cmdall", x.commandAll)
	blocking("cmddel", x.commandDelete)
	scoped("cmd", false, x.command)

	return table
}

func wrapPrimitive(name string, call ports.PrimitiveFunc) ports.PrimitiveFunc {
	return func(ctx context.Context, args []domain.Value, scope *ports.Scope) (domain.Value, error) {
		v, err := call(ctx, args, scope)
		if err != nil {
			var already *domain.PrimitiveError
			if errors.As(err, &already) || errors.Is(err, domain.ErrExecutionTimeout) {
				return domain.Undefined, err
			}
			return domain.Undefined, &domain.PrimitiveError{Primitive: name, Err: err}
		}
		return v, nil
	}
}

// parked keeps the watchdog fed while call blocks.
func (x *execution) parked(call ports.PrimitiveFunc) ports.PrimitiveFunc {
	return func(ctx context.Context, args []domain.Value, scope *ports.Scope) (domain.Value, error) {
		resume := x.watchdog.Park()
		defer resume()
		return call(ctx, args, scope)
	}
}

func (x *execution) help(_ context.Context, args []domain.Value, _ *ports.Scope) (domain.Value, error) {
	catalog := x.runner.deps.Help
	if catalog == nil {
		return domain.Null, nil
	}
	topic := arg(args, 0)
	if topic.IsAbsent() {
		return domain.Text(catalog.Overview()), nil
	}
	body, ok := catalog.Topic(x.text(topic))
	if !ok {
		return domain.Null, nil
	}
	return domain.Text(body), nil
}

func (x *execution) helpAll(context.Context, []domain.Value, *ports.Scope) (domain.Value, error) {
	if x.runner.deps.Help == nil {
		return domain.Undefined, nil
	}
	x.buffer.Push(domain.HTMLFragment(Htmlize(x.runner.deps.Help.Listing(), TextStyle)))
	return domain.Undefined, nil
}

func (x *execution) outHelp(_ context.Context, args []domain.Value, _ *ports.Scope) (domain.Value, error) {
	if x.runner.deps.Help == nil {
		return domain.Undefined, nil
	}
	topic := x.text(arg(args, 0))
	page, ok, err := x.runner.deps.Help.TopicHTML(topic)
	if err != nil {
		return domain.Undefined, err
	}
	if !ok {
		return domain.Undefined, fmt.Errorf("unknown help topic %q", topic)
	}
	x.buffer.Push(domain.HTMLFragment(page))
	return domain.Undefined, nil
}

func (x *execution) you(context.Context, []domain.Value, *ports.Scope) (domain.Value, error) {
	platform := "none"
	if x.runner.deps.Platform != nil {
		platform = x.runner.deps.Platform.Name()
	}
	return domain.Text(fmt.Sprintf("scriptbridge %s on %s, execution %s", x.runner.deps.Version, platform, x.id)), nil
}

func (x *execution) me(ctx context.Context, _ []domain.Value, _ *ports.Scope) (domain.Value, error) {
	var identity *domain.IdentityID
	if x.runner.deps.Identities != nil && x.session.UserID != "" {
		id, err := x.runner.deps.Identities.Resolve(ctx, x.session.Platform, x.session.UserID)
		if err != nil {
			return domain.Undefined, fmt.Errorf("resolve identity: %w", err)
		}
		identity = &id
	}
	return domain.Projection(x.session.Message(), identity), nil
}

func (x *execution) pr(ctx context.Context, _ []domain.Value, _ *ports.Scope) (domain.Value, error) {
	projection, err := x.runner.deps.Gate.Wait(ctx, GateRequest{
		Platform:   x.session.Platform,
		ChannelIDs: []string{x.session.ChannelID},
		UserIDs:    []string{x.session.UserID},
	})
	if err != nil {
		return domain.Undefined, err
	}
	items, ok := projection.List()
	if !ok || len(items) == 0 {
		return domain.Undefined, nil
	}
	return items[0], nil
}

func (x *execution) propt(ctx context.Context, args []domain.Value, _ *ports.Scope) (domain.Value, error) {
	return x.runner.deps.Gate.Wait(ctx, GateRequest{
		Platform:   x.session.Platform,
		ChannelIDs: []string{x.session.ChannelID},
		UserIDs:    x.filterIDs(arg(args, 0)),
	})
}

func (x *execution) prompt(ctx context.Context, args []domain.Value, scope *ports.Scope) (domain.Value, error) {
	validator := arg(args, 1)
	base := x.scopeOf(scope)
	return x.runner.deps.Gate.Wait(ctx, GateRequest{
		Platform:   x.session.Platform,
		ChannelIDs: x.filterIDs(arg(args, 0)),
		Validate:   x.validator(base, validator),
	})
}

func (x *execution) scopeOf(scope *ports.Scope) ports.Scope {
	if scope == nil {
		return x.scope
	}
	return *scope
}

// validator re-enters the interpreter with the caller's scope extended by
// [projection, validator]. Validation is script time, so the watchdog counts
// it even inside a parked wait.
func (x *execution) validator(base ports.Scope, validator domain.Value) Validator {
	return func(ctx context.Context, projection domain.Value) (domain.Value, error) {
		done := x.watchdog.Busy()
		defer done()
		if err := x.watchdog.Check(); err != nil {
			return domain.Undefined, err
		}
		return x.runner.deps.Interpreter.Exec(ctx, base.Extend(projection, validator), x.env)
	}
}

func (x *execution) pushWith(build func(string) domain.Fragment) ports.PrimitiveFunc {
	return func(_ context.Context, args []domain.Value, _ *ports.Scope) (domain.Value, error) {
		x.buffer.Push(build(x.text(arg(args, 0))))
		return domain.Undefined, nil
	}
}

func (x *execution) outImag(_ context.Context, args []domain.Value, _ *ports.Scope) (domain.Value, error) {
	style := TextStyle
	if custom, ok := StyleFromValue(arg(args, 1)); ok {
		style = custom
	}
	x.buffer.Push(domain.HTMLFragment(Htmlize(x.text(arg(args, 0)), style)))
	return domain.Undefined, nil
}

func (x *execution) outKsq(_ context.Context, args []domain.Value, _ *ports.Scope) (domain.Value, error) {
	x.buffer.Push(domain.HTMLFragment(Htmlize(x.text(arg(args, 0)), SquareStyle)))
	return domain.Undefined, nil
}

func (x *execution) outSVG(_ context.Context, args []domain.Value, _ *ports.Scope) (domain.Value, error) {
	x.buffer.Push(domain.HTMLFragment(Svglize(arg(args, 0), x.runner.deps.Interpreter.Format)))
	return domain.Undefined, nil
}

func (x *execution) nout(context.Context, []domain.Value, *ports.Scope) (domain.Value, error) {
	x.buffer.Pop()
	return domain.Undefined, nil
}

func (x *execution) nouts(_ context.Context, args []domain.Value, _ *ports.Scope) (domain.Value, error) {
	x.buffer.PopMany(x.count(arg(args, 0)))
	return domain.Undefined, nil
}

func (x *execution) nsend(ctx context.Context, args []domain.Value, _ *ports.Scope) (domain.Value, error) {
	if err := x.runner.deps.Platform.DeleteMessage(ctx, x.session.ChannelID, x.text(arg(args, 0))); err != nil {
		return domain.Undefined, err
	}
	return domain.Undefined, nil
}

func (x *execution) send(ctx context.Context, _ []domain.Value, _ *ports.Scope) (domain.Value, error) {
	f, ok := x.buffer.Pop()
	if !ok {
		return domain.List(), nil
	}
	return x.deliver(ctx, x.session.ChannelID, []domain.Fragment{f})
}

func (x *execution) sends(ctx context.Context, args []domain.Value, _ *ports.Scope) (domain.Value, error) {
	return x.deliver(ctx, x.session.ChannelID, x.buffer.PopMany(x.count(arg(args, 0))))
}

func (x *execution) sendsTo(ctx context.Context, args []domain.Value, _ *ports.Scope) (domain.Value, error) {
	return x.deliver(ctx, x.text(arg(args, 0)), x.buffer.PopMany(x.count(arg(args, 1))))
}

func (x *execution) deliver(ctx context.Context, channelID string, fragments []domain.Fragment) (domain.Value, error) {
	ids, err := x.runner.Deliver(ctx, channelID, fragments)
	if err != nil {
		return domain.Undefined, err
	}
	return domain.ValueOf(ids), nil
}

func (x *execution) cat(ctx context.Context, args []domain.Value, _ *ports.Scope) (domain.Value, error) {
	body, err := x.runner.deps.Fetcher.Get(ctx, x.text(arg(args, 0)))
	if err != nil {
		return domain.Undefined, err
	}
	return domain.Text(string(body)), nil
}

func (x *execution) ca(ctx context.Context, args []domain.Value, _ *ports.Scope) (domain.Value, error) {
	body, err := x.runner.deps.Fetcher.Get(ctx, x.text(arg(args, 0)))
	if err != nil {
		return domain.Undefined, err
	}
	return domain.Bytes(body), nil
}

func (x *execution) fetchText(ctx context.Context, args []domain.Value, _ *ports.Scope) (domain.Value, error) {
	return x.fetch(ctx, args, func(body []byte) domain.Value { return domain.Text(string(body)) })
}

func (x *execution) fetchBytes(ctx context.Context, args []domain.Value, _ *ports.Scope) (domain.Value, error) {
	return x.fetch(ctx, args, domain.Bytes)
}

func (x *execution) fetch(ctx context.Context, args []domain.Value, body func([]byte) domain.Value) (domain.Value, error) {
	req := FetchRequest{
		Method:  x.text(arg(args, 0)),
		URL:     x.text(arg(args, 1)),
		Headers: x.headerPairs(arg(args, 2)),
		Body:    x.requestBody(arg(args, 3)),
	}

	resp, err := x.runner.deps.Fetcher.Do(ctx, req)
	if err != nil {
		return domain.Undefined, err
	}

	headers := make([]domain.Value, 0, len(resp.Headers))
	for _, h := range resp.Headers {
		headers = append(headers, domain.List(domain.Text(h.Name), domain.Text(h.Value)))
	}
	return domain.List(
		domain.Number(float64(resp.Status)),
		domain.Text(resp.StatusText),
		domain.List(headers...),
		body(resp.Body),
	), nil
}

func (x *execution) headerPairs(v domain.Value) []Header {
	items, _ := v.List()
	headers := make([]Header, 0, len(items))
	for _, item := range items {
		pair, ok := item.List()
		if !ok || len(pair) < 2 {
			continue
		}
		headers = append(headers, Header{Name: x.text(pair[0]), Value: x.text(pair[1])})
	}
	return headers
}

// requestBody sends numbers as decimal text and lists as raw bytes.
func (x *execution) requestBody(v domain.Value) []byte {
	switch v.Kind() {
	case domain.KindUndefined, domain.KindNull:
		return nil
	case domain.KindList:
		data, _ := v.Bytes()
		return data
	default:
		return []byte(x.text(v))
	}
}

var regexpEscaper = strings.NewReplacer(
	`|`, `\|`, `\`, `\\`, `{`, `\{`, `}`, `\}`, `(`, `\(`, `)`, `\)`,
	`[`, `\[`, `]`, `\]`, `^`, `\^`, `$`, `\$`, `+`, `\+`, `*`, `\*`,
	`?`, `\?`, `.`, `\.`, `-`, `\x2d`,
)

func (x *execution) reesc(_ context.Context, args []domain.Value, _ *ports.Scope) (domain.Value, error) {
	return domain.Text(regexpEscaper.Replace(x.text(arg(args, 0)))), nil
}

func (x *execution) projectMessage(ctx context.Context, m domain.Message) (domain.Value, error) {
	var identity *domain.IdentityID
	if x.runner.deps.Identities != nil && m.UserID != "" {
		id, err := x.runner.deps.Identities.Lookup(ctx, x.session.Platform, m.UserID)
		switch {
		case err == nil:
			identity = &id
		case !errors.Is(err, domain.ErrIdentityNotFound):
			return domain.Undefined, fmt.Errorf("lookup identity: %w", err)
		}
	}
	return domain.Projection(m, identity), nil
}

func (x *execution) findMessage(ctx context.Context, args []domain.Value, scope *ports.Scope) (domain.Value, error) {
	validate := x.validator(x.scopeOf(scope), arg(args, 0))

	next := ""
	for {
		resume := x.watchdog.Park()
		page, err := x.runner.deps.Platform.ListMessages(ctx, x.session.ChannelID, next)
		resume()
		if err != nil {
			return domain.Undefined, fmt.Errorf("list messages: %w", err)
		}
		for _, m := range page.Messages {
			resume := x.watchdog.Park()
			projection, err := x.projectMessage(ctx, m)
			resume()
			if err != nil {
				return domain.Undefined, err
			}
			verdict, err := validate(ctx, projection)
			if err != nil {
				return domain.Undefined, err
			}
			if verdict.Truthy() || verdict.IsNaN() {
				return projection, nil
			}
		}
		if page.Next == "" || page.Next == next {
			return domain.Undefined, nil
		}
		next = page.Next
	}
}

func (x *execution) getMessage(ctx context.Context, args []domain.Value, _ *ports.Scope) (domain.Value, error) {
	channelID := x.session.ChannelID
	if channel := arg(args, 0); channel.Truthy() {
		channelID = x.text(channel)
	}

	m, err := x.runner.deps.Platform.GetMessage(ctx, channelID, x.text(arg(args, 1)))
	if err != nil {
		return domain.Undefined, err
	}
	return x.projectMessage(ctx, m)
}

func (x *execution) sleep(ctx context.Context, args []domain.Value, _ *ports.Scope) (domain.Value, error) {
	seconds, _ := arg(args, 0).Number()
	if seconds <= 0 {
		return domain.Undefined, nil
	}

	timer := time.NewTimer(time.Duration(seconds * float64(time.Second)))
	defer timer.Stop()

	select {
	case <-timer.C:
		return domain.Undefined, nil
	case <-ctx.Done():
		return domain.Undefined, ctx.Err()
	}
}

func identityArg(v domain.Value) (domain.IdentityID, error) {
	uid, ok := domain.ParseIdentityID(v)
	if !ok {
		return 0, fmt.Errorf("%w: %s", errInvalidIdentity, v)
	}
	return uid, nil
}

func (x *execution) noteWritePublic(ctx context.Context, args []domain.Value, _ *ports.Scope) (domain.Value, error) {
	uid, err := identityArg(arg(args, 0))
	if err != nil {
		return domain.Undefined, err
	}
	return domain.Undefined, x.runner.deps.Notes.SetPublic(ctx, uid, x.text(arg(args, 1)))
}

func (x *execution) noteWriteProtected(ctx context.Context, args []domain.Value, _ *ports.Scope) (domain.Value, error) {
	return domain.Undefined, x.runner.deps.Notes.SetProtected(ctx, x.session, x.text(arg(args, 0)))
}

func (x *execution) noteWritePrivate(ctx context.Context, args []domain.Value, _ *ports.Scope) (domain.Value, error) {
	return domain.Undefined, x.runner.deps.Notes.SetPrivate(ctx, x.session, x.text(arg(args, 0)))
}

func (x *execution) noteReadPublic(ctx context.Context, args []domain.Value, _ *ports.Scope) (domain.Value, error) {
	uid, err := identityArg(arg(args, 0))
	if err != nil {
		return domain.Undefined, err
	}
	return x.runner.deps.Notes.Public(ctx, uid)
}

func (x *execution) noteReadProtected(ctx context.Context, args []domain.Value, _ *ports.Scope) (domain.Value, error) {
	uid, err := identityArg(arg(args, 0))
	if err != nil {
		return domain.Undefined, err
	}
	return x.runner.deps.Notes.Protected(ctx, uid)
}

func (x *execution) noteReadPrivate(ctx context.Context, _ []domain.Value, _ *ports.Scope) (domain.Value, error) {
	return x.runner.deps.Notes.Private(ctx, x.session)
}

func (x *execution) guildMembers(ctx context.Context, args []domain.Value, _ *ports.Scope) (domain.Value, error) {
	members, err := x.runner.deps.Members.Resolve(ctx, x.runner.deps.Platform, x.text(arg(args, 0)))
	if err != nil {
		return domain.Undefined, err
	}

	out := make([]domain.Value, 0, len(members))
	for _, m := range members {
		out = append(out, domain.List(domain.Text(m.Name), domain.Text(m.UserID)))
	}
	return domain.List(out...), nil
}

// commandSet adapts a setter to the script argument order (value, name).
func (x *execution) commandSet(set func(ctx context.Context, name, value string) error) ports.PrimitiveFunc {
	return func(ctx context.Context, args []domain.Value, _ *ports.Scope) (domain.Value, error) {
		return domain.Undefined, set(ctx, x.text(arg(args, 1)), x.text(arg(args, 0)))
	}
}

func (x *execution) commandGet(get func(ctx context.Context, name string) (domain.Value, error)) ports.PrimitiveFunc {
	return func(ctx context.Context, args []domain.Value, _ *ports.Scope) (domain.Value, error) {
		return get(ctx, x.text(arg(args, 0)))
	}
}

func (x *execution) commandAll(ctx context.Context, _ []domain.Value, _ *ports.Scope) (domain.Value, error) {
	names, err := x.runner.deps.Commands.Names(ctx)
	if err != nil {
		return domain.Undefined, err
	}
	return domain.ValueOf(names), nil
}

func (x *execution) commandDelete(ctx context.Context, args []domain.Value, _ *ports.Scope) (domain.Value, error) {
	return domain.Undefined, x.runner.deps.Commands.Delete(ctx, x.text(arg(args, 0)))
}

func (x *execution) command(ctx context.Context, args []domain.Value, scope *ports.Scope) (domain.Value, error) {
	return x.runner.deps.Commands.Invoke(ctx, x.env, x.text(arg(args, 1)), arg(args, 0), x.scopeOf(scope))
}
