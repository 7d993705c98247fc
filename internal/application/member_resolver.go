package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bnema/scriptbridge/internal/domain"
	"github.com/bnema/scriptbridge/internal/ports"
)

// MemberResolver lists guild members live and falls back to the member cache
// when the platform fails or returns nobody. Results are never merged.
type MemberResolver struct {
	cache  ports.MemberCache
	logger *slog.Logger
}

func NewMemberResolver(cache ports.MemberCache, logger *slog.Logger) *MemberResolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &MemberResolver{cache: cache, logger: logger}
}

func (r *MemberResolver) Resolve(ctx context.Context, platform ports.Platform, guildID string) ([]domain.Member, error) {
	members, err := fetchAllMembers(ctx, platform, guildID)
	if err == nil && len(members) > 0 {
		return members, nil
	}
	if err != nil && shouldSkipFallback(err) {
		return nil, err
	}

	directoryID := domain.DirectoryID(platform.Name(), guildID)
	if err != nil {
		r.logger.Warn("member_live_fetch_failed", "directory_id", directoryID, "error", err)
	}

	cached, cacheErr := r.cache.List(ctx, directoryID)
	if cacheErr != nil {
		if err != nil {
			return nil, fmt.Errorf("live member fetch failed: %w; cached member list failed: %w", err, cacheErr)
		}
		return nil, fmt.Errorf("list cached members: %w", cacheErr)
	}

	r.logger.Debug("member_cache_fallback", "directory_id", directoryID, "count", len(cached))
	return cached, nil
}

func fetchAllMembers(ctx context.Context, platform ports.Platform, guildID string) ([]domain.Member, error) {
	var (
		members []domain.Member
		next    string
	)
	for {
		page, err := platform.GuildMembers(ctx, guildID, next)
		if err != nil {
			return nil, fmt.Errorf("list guild members: %w", err)
		}
		members = append(members, page.Members...)
		if page.Next == "" || page.Next == next {
			return members, nil
		}
		next = page.Next
	}
}

func shouldSkipFallback(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// MemberTracker keeps the member cache current from platform events.
type MemberTracker struct {
	cache  ports.MemberCache
	logger *slog.Logger
}

func NewMemberTracker(cache ports.MemberCache, logger *slog.Logger) *MemberTracker {
	if logger == nil {
		logger = slog.Default()
	}
	return &MemberTracker{cache: cache, logger: logger}
}

// Attach subscribes the tracker to guild messages and member removals. The
// handlers never consume events.
func (t *MemberTracker) Attach(events ports.EventSource) (func(), error) {
	disposeMessages, err := events.Subscribe(ports.EventFilter{Types: []domain.EventType{domain.EventMessageCreated}}, t.OnMessage)
	if err != nil {
		return nil, fmt.Errorf("subscribe to messages: %w", err)
	}
	disposeRemovals, err := events.Subscribe(ports.EventFilter{Types: []domain.EventType{domain.EventGuildMemberRemoved}}, t.OnMemberRemoved)
	if err != nil {
		disposeMessages()
		return nil, fmt.Errorf("subscribe to member removals: %w", err)
	}

	return func() {
		disposeMessages()
		disposeRemovals()
	}, nil
}

func (t *MemberTracker) OnMessage(ctx context.Context, ev domain.Event) bool {
	if ev.IsDirect || ev.Message.GuildID == "" || ev.Message.UserID == "" {
		return false
	}

	member := ev.Member
	member.UserID = ev.Message.UserID
	if member.Name == "" {
		member.Name = ev.Message.UserName
	}

	directoryID := domain.DirectoryID(ev.Platform, ev.Message.GuildID)
	if err := t.cache.Put(ctx, directoryID, member, domain.MemberTTL); err != nil {
		t.logger.Warn("member_cache_put_failed", "directory_id", directoryID, "user_id", member.UserID, "error", err)
	}
	return false
}

func (t *MemberTracker) OnMemberRemoved(ctx context.Context, ev domain.Event) bool {
	guildID := ev.Message.GuildID
	userID := ev.Member.UserID
	if guildID == "" || userID == "" {
		return false
	}

	directoryID := domain.DirectoryID(ev.Platform, guildID)
	if err := t.cache.Delete(ctx, directoryID, userID); err != nil {
		t.logger.Warn("member_cache_delete_failed", "directory_id", directoryID, "user_id", userID, "error", err)
	}
	return false
}
