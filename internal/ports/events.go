package ports

import (
	"context"

	"github.com/bnema/scriptbridge/internal/domain"
)

// EventHandler reports whether it consumed the event. Unconsumed events keep
// propagating to the remaining handlers and to the host.
type EventHandler func(ctx context.Context, ev domain.Event) bool

// EventFilter narrows a subscription. Empty fields match anything.
type EventFilter struct {
	Types      []domain.EventType
	Platform   string
	ChannelIDs []string
}

type EventSource interface {
	// Subscribe registers handler and returns its disposal func. Disposing
	// more than once is a no-op.
	Subscribe(filter EventFilter, handler EventHandler) (func(), error)
}
