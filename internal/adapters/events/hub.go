package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/bnema/scriptbridge/internal/domain"
	"github.com/bnema/scriptbridge/internal/ports"
)

var ErrHubClosed = errors.New("event hub is closed")

type subscription struct {
	id      uint64
	filter  ports.EventFilter
	handler ports.EventHandler
}

// Hub dispatches platform events to subscribers in subscription order until
// one of them consumes the event.
type Hub struct {
	logger *slog.Logger

	mu     sync.RWMutex
	closed bool
	nextID uint64
	subs   []subscription
}

var _ ports.EventSource = (*Hub)(nil)

func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{logger: logger}
}

func (h *Hub) Subscribe(filter ports.EventFilter, handler ports.EventHandler) (func(), error) {
	if handler == nil {
		return nil, fmt.Errorf("handler is required")
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil, ErrHubClosed
	}

	h.nextID++
	id := h.nextID
	h.subs = append(h.subs, subscription{id: id, filter: filter, handler: handler})
	h.logger.Debug("hub_subscribe", "subscription_id", id, "platform", filter.Platform, "subscriber_count", len(h.subs))

	var once sync.Once
	return func() {
		once.Do(func() { h.remove(id) })
	}, nil
}

func (h *Hub) remove(id uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.subs = slices.DeleteFunc(h.subs, func(s subscription) bool { return s.id == id })
	h.logger.Debug("hub_unsubscribe", "subscription_id", id, "subscriber_count", len(h.subs))
}

// Publish delivers ev and reports whether a subscriber consumed it.
func (h *Hub) Publish(ctx context.Context, ev domain.Event) bool {
	h.mu.RLock()
	if h.closed {
		h.mu.RUnlock()
		return false
	}
	matched := make([]subscription, 0, len(h.subs))
	for _, s := range h.subs {
		if matches(s.filter, ev) {
			matched = append(matched, s)
		}
	}
	h.mu.RUnlock()

	for _, s := range matched {
		if ctx.Err() != nil {
			return false
		}
		if s.handler(ctx, ev) {
			h.logger.Debug("hub_event_consumed", "subscription_id", s.id, "type", ev.Type, "channel_id", ev.Message.ChannelID)
			return true
		}
	}
	return false
}

// Len reports the number of live subscriptions.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	h.subs = nil
}

func matches(filter ports.EventFilter, ev domain.Event) bool {
	if len(filter.Types) > 0 && !slices.Contains(filter.Types, ev.Type) {
		return false
	}
	if filter.Platform != "" && filter.Platform != ev.Platform {
		return false
	}
	if len(filter.ChannelIDs) > 0 && !slices.Contains(filter.ChannelIDs, ev.Message.ChannelID) {
		return false
	}
	return true
}
