package console

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"sync"

	"github.com/bnema/scriptbridge/internal/domain"
	"github.com/bnema/scriptbridge/internal/logutil"
	"github.com/bnema/scriptbridge/internal/ports"
	"github.com/google/uuid"
)

const (
	DefaultName     = "console"
	DefaultSelfID   = "sb"
	defaultPageSize = 50
)

type Options struct {
	Name      string
	SelfID    string
	SelfName  string
	Out       io.Writer
	Artifacts ports.ArtifactStore
	Clock     ports.Clock
	Logger    *slog.Logger
	PageSize  int
}

// Platform is a chat platform backed by a terminal. It keeps the history of
// every channel in memory so scripts can page, fetch and delete messages.
type Platform struct {
	name      string
	selfID    string
	selfName  string
	artifacts ports.ArtifactStore
	clock     ports.Clock
	logger    *slog.Logger
	pageSize  int
	styles    styles

	outMu sync.Mutex
	out   io.Writer

	mu      sync.RWMutex
	history map[string][]domain.Message
	members map[string][]domain.Member
}

var _ ports.Platform = (*Platform)(nil)

func New(opts Options) *Platform {
	if opts.Name == "" {
		opts.Name = DefaultName
	}
	if opts.SelfID == "" {
		opts.SelfID = DefaultSelfID
	}
	if opts.SelfName == "" {
		opts.SelfName = opts.SelfID
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	if opts.Clock == nil {
		opts.Clock = ports.SystemClock{}
	}
	if opts.Logger == nil {
		opts.Logger = logutil.Discard()
	}
	if opts.PageSize <= 0 {
		opts.PageSize = defaultPageSize
	}

	return &Platform{
		name:      opts.Name,
		selfID:    opts.SelfID,
		selfName:  opts.SelfName,
		artifacts: opts.Artifacts,
		clock:     opts.Clock,
		logger:    opts.Logger,
		pageSize:  opts.PageSize,
		styles:    newStyles(),
		out:       opts.Out,
		history:   map[string][]domain.Message{},
		members:   map[string][]domain.Member{},
	}
}

func (p *Platform) Name() string { return p.name }

func (p *Platform) SelfID() string { return p.selfID }

// Record appends an incoming message to its channel history, assigning an id
// and timestamp when missing.
func (p *Platform) Record(msg domain.Message) domain.Message {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = p.clock.Now()
	}
	msg.Platform = p.name

	p.mu.Lock()
	p.history[msg.ChannelID] = append(p.history[msg.ChannelID], msg)
	p.mu.Unlock()

	return msg
}

// SetMembers replaces the member list GuildMembers serves for a guild.
func (p *Platform) SetMembers(guildID string, members []domain.Member) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.members[guildID] = append([]domain.Member(nil), members...)
}

func (p *Platform) Send(ctx context.Context, channelID string, fragments []domain.Fragment) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(fragments) == 0 {
		return nil, nil
	}

	id := uuid.NewString()
	locations := map[int]string{}
	for i, f := range fragments {
		if !f.Inline() || p.artifacts == nil {
			continue
		}
		location, err := p.artifacts.Put(ctx, fmt.Sprintf("%s/%s-%d.png", channelID, id, i), f.Data)
		if err != nil {
			return nil, fmt.Errorf("store artifact: %w", err)
		}
		locations[i] = location
	}

	p.outMu.Lock()
	_, err := fmt.Fprintln(p.out, renderMessage(p.selfName, fragments, locations, p.styles))
	p.outMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("write message: %w", err)
	}

	p.Record(domain.Message{
		ID:        id,
		ChannelID: channelID,
		UserID:    p.selfID,
		UserName:  p.selfName,
		Content:   plainContent(fragments),
		QuoteID:   quoteOf(fragments),
	})
	p.logger.Debug("console_send", "channel_id", channelID, "message_id", id, "fragments", len(fragments))

	return []string{id}, nil
}

func (p *Platform) DeleteMessage(ctx context.Context, channelID, messageID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	messages := p.history[channelID]
	for i := range messages {
		if messages[i].ID == messageID {
			p.history[channelID] = append(messages[:i:i], messages[i+1:]...)
			return nil
		}
	}
	return domain.ErrMessageNotFound
}

func (p *Platform) GetMessage(ctx context.Context, channelID, messageID string) (domain.Message, error) {
	if err := ctx.Err(); err != nil {
		return domain.Message{}, err
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	for _, msg := range p.history[channelID] {
		if msg.ID == messageID {
			return msg, nil
		}
	}
	return domain.Message{}, domain.ErrMessageNotFound
}

// ListMessages pages newest first; next is the offset into that order.
func (p *Platform) ListMessages(ctx context.Context, channelID, next string) (domain.MessagePage, error) {
	if err := ctx.Err(); err != nil {
		return domain.MessagePage{}, err
	}

	offset := 0
	if next != "" {
		parsed, err := strconv.Atoi(next)
		if err != nil || parsed < 0 {
			return domain.MessagePage{}, fmt.Errorf("invalid page cursor %q", next)
		}
		offset = parsed
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	messages := p.history[channelID]
	page := domain.MessagePage{}
	for i := len(messages) - 1 - offset; i >= 0 && len(page.Messages) < p.pageSize; i-- {
		page.Messages = append(page.Messages, messages[i])
	}
	if end := offset + len(page.Messages); end < len(messages) {
		page.Next = strconv.Itoa(end)
	}
	return page, nil
}

func (p *Platform) GuildMembers(ctx context.Context, guildID, next string) (domain.MemberPage, error) {
	if err := ctx.Err(); err != nil {
		return domain.MemberPage{}, err
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	return domain.MemberPage{Members: append([]domain.Member(nil), p.members[guildID]...)}, nil
}
