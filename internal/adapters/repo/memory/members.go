package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/bnema/scriptbridge/internal/domain"
	"github.com/bnema/scriptbridge/internal/ports"
)

// MemberCache holds member snapshots per directory. Expired snapshots are
// dropped lazily on List.
type MemberCache struct {
	clock ports.Clock

	mu          sync.Mutex
	directories map[string]map[string]domain.MemberSnapshot
}

var _ ports.MemberCache = (*MemberCache)(nil)

func NewMemberCache(clock ports.Clock) *MemberCache {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	return &MemberCache{clock: clock, directories: map[string]map[string]domain.MemberSnapshot{}}
}

func (c *MemberCache) Put(ctx context.Context, directoryID string, member domain.Member, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	directory, ok := c.directories[directoryID]
	if !ok {
		directory = map[string]domain.MemberSnapshot{}
		c.directories[directoryID] = directory
	}

	snapshot := domain.MemberSnapshot{DirectoryID: directoryID, Member: member}
	if ttl > 0 {
		snapshot.ExpiresAt = c.clock.Now().Add(ttl)
	}
	directory[member.UserID] = snapshot
	return nil
}

func (c *MemberCache) Delete(ctx context.Context, directoryID, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.directories[directoryID], userID)
	return nil
}

func (c *MemberCache) List(ctx context.Context, directoryID string) ([]domain.Member, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	directory := c.directories[directoryID]
	ids := make([]string, 0, len(directory))
	for id, snapshot := range directory {
		if snapshot.Expired(now) {
			delete(directory, id)
			continue
		}
		ids = append(ids, id)
	}
	sort.Strings(ids)

	members := make([]domain.Member, 0, len(ids))
	for _, id := range ids {
		members = append(members, directory[id].Member)
	}
	return members, nil
}
