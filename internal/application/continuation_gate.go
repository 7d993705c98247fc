package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/bnema/scriptbridge/internal/domain"
	"github.com/bnema/scriptbridge/internal/ports"
)

const DefaultPromptTimeout = time.Minute

// Validator judges a candidate message projection. A falsy result that is
// not NaN keeps the wait going.
type Validator func(ctx context.Context, projection domain.Value) (domain.Value, error)

// GateRequest scopes one wait. Empty ChannelIDs or UserIDs match any.
type GateRequest struct {
	Platform   string
	ChannelIDs []string
	UserIDs    []string
	Validate   Validator
	Timeout    time.Duration
}

func (r GateRequest) matches(ev domain.Event) bool {
	if ev.Type != domain.EventMessageCreated {
		return false
	}
	if r.Platform != "" && ev.Platform != r.Platform {
		return false
	}
	if ev.SelfID != "" && ev.Message.UserID == ev.SelfID {
		return false
	}
	if len(r.ChannelIDs) > 0 && !slices.Contains(r.ChannelIDs, ev.Message.ChannelID) {
		return false
	}
	if len(r.UserIDs) > 0 && !slices.Contains(r.UserIDs, ev.Message.UserID) {
		return false
	}
	return true
}

// ContinuationGate suspends an execution until the next platform message that
// satisfies a request, or until the request times out.
type ContinuationGate struct {
	events     ports.EventSource
	identities ports.IdentityRepository
	timeout    time.Duration
	logger     *slog.Logger
}

func NewContinuationGate(events ports.EventSource, identities ports.IdentityRepository, timeout time.Duration, logger *slog.Logger) *ContinuationGate {
	if timeout <= 0 {
		timeout = DefaultPromptTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &ContinuationGate{events: events, identities: identities, timeout: timeout, logger: logger}
}

type gateOutcome struct {
	value domain.Value
	err   error
}

type gateWait struct {
	mu      sync.Mutex
	settled bool
	dispose func()
	timer   *time.Timer

	disposeOnce sync.Once
	done        chan struct{}
	result      chan gateOutcome
	validating  chan struct{}

	// ctx bounds candidate validation; settle cancels it.
	ctx    context.Context
	cancel context.CancelFunc
}

func newGateWait(ctx context.Context) *gateWait {
	vctx, cancel := context.WithCancel(ctx)
	return &gateWait{
		done:       make(chan struct{}),
		result:     make(chan gateOutcome, 1),
		validating: make(chan struct{}, 1),
		ctx:        vctx,
		cancel:     cancel,
	}
}

// settle records the first outcome and releases the subscription and timer.
// It reports whether this call won.
func (w *gateWait) settle(o gateOutcome) bool {
	w.mu.Lock()
	if w.settled {
		w.mu.Unlock()
		return false
	}
	w.settled = true
	close(w.done)
	w.result <- o
	timer := w.timer
	dispose := w.dispose
	w.mu.Unlock()

	w.cancel()
	if timer != nil {
		timer.Stop()
	}
	if dispose != nil {
		w.release(dispose)
	}
	return true
}

func (w *gateWait) release(dispose func()) {
	w.disposeOnce.Do(dispose)
}

// quiesce blocks until no validation is in flight. Later candidates see the
// wait settled and never reach the validator.
func (w *gateWait) quiesce() {
	w.validating <- struct{}{}
}

// outcome returns the settled result once validation has drained, so a
// validator never touches execution state after Wait returns.
func (w *gateWait) outcome() (domain.Value, error) {
	o := <-w.result
	w.quiesce()
	return o.value, o.err
}

func (w *gateWait) isSettled() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.settled
}

func (g *ContinuationGate) Wait(ctx context.Context, req GateRequest) (domain.Value, error) {
	timeout := req.Timeout
	if timeout <= 0 {
		timeout = g.timeout
	}

	w := newGateWait(ctx)
	handler := func(evCtx context.Context, ev domain.Event) bool {
		if !req.matches(ev) {
			return false
		}

		select {
		case w.validating <- struct{}{}:
		case <-w.done:
			return false
		case <-evCtx.Done():
			return false
		}
		defer func() { <-w.validating }()

		if w.isSettled() {
			return false
		}

		projection := g.project(w.ctx, ev)
		if req.Validate != nil {
			verdict, err := req.Validate(w.ctx, projection)
			if err != nil {
				w.settle(gateOutcome{value: domain.Undefined, err: fmt.Errorf("validate message: %w", err)})
				return false
			}
			if !verdict.Truthy() && !verdict.IsNaN() {
				return false
			}
		}

		if !w.settle(gateOutcome{value: projection}) {
			return false
		}
		g.logger.Debug("gate_accept", "platform", ev.Platform, "channel_id", ev.Message.ChannelID, "message_id", ev.Message.ID)
		return true
	}

	filter := ports.EventFilter{
		Types:      []domain.EventType{domain.EventMessageCreated},
		Platform:   req.Platform,
		ChannelIDs: req.ChannelIDs,
	}
	dispose, err := g.events.Subscribe(filter, handler)
	if err != nil {
		w.cancel()
		return domain.Undefined, fmt.Errorf("subscribe to messages: %w", err)
	}

	w.mu.Lock()
	w.dispose = dispose
	settledEarly := w.settled
	if !settledEarly {
		w.timer = time.AfterFunc(timeout, func() {
			if w.settle(gateOutcome{value: domain.Undefined}) {
				g.logger.Debug("gate_timeout", "platform", req.Platform, "timeout", timeout)
			}
		})
	}
	w.mu.Unlock()
	if settledEarly {
		w.release(dispose)
	}

	select {
	case <-w.done:
	case <-ctx.Done():
		w.settle(gateOutcome{value: domain.Undefined, err: ctx.Err()})
	}
	return w.outcome()
}

func (g *ContinuationGate) project(ctx context.Context, ev domain.Event) domain.Value {
	identity := ev.Identity
	if identity == nil && g.identities != nil && ev.Message.UserID != "" {
		id, err := g.identities.Lookup(ctx, ev.Platform, ev.Message.UserID)
		switch {
		case err == nil:
			identity = &id
		case !errors.Is(err, domain.ErrIdentityNotFound):
			g.logger.Warn("gate_identity_lookup_failed", "platform", ev.Platform, "user_id", ev.Message.UserID, "error", err)
		}
	}

	return domain.Projection(ev.Message, identity)
}
