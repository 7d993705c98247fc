package ports

import (
	"context"

	"github.com/bnema/scriptbridge/internal/domain"
)

// Platform is the bot API of one chat platform.
type Platform interface {
	Name() string
	Send(ctx context.Context, channelID string, fragments []domain.Fragment) ([]string, error)
	DeleteMessage(ctx context.Context, channelID, messageID string) error
	GetMessage(ctx context.Context, channelID, messageID string) (domain.Message, error)
	// ListMessages pages through channel history, newest first.
	ListMessages(ctx context.Context, channelID, next string) (domain.MessagePage, error)
	GuildMembers(ctx context.Context, guildID, next string) (domain.MemberPage, error)
}

type Renderer interface {
	Render(ctx context.Context, req RenderRequest) ([]byte, error)
}

// RenderRequest asks for a PNG of the element matched by Selector (the
// document body when empty).
type RenderRequest struct {
	Markup   string
	Selector string
}

type ArtifactStore interface {
	Put(ctx context.Context, key string, data []byte) (string, error)
}
