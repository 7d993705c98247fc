package toml

import (
	"context"
	"sort"
	"time"

	"github.com/bnema/scriptbridge/internal/domain"
	"github.com/bnema/scriptbridge/internal/ports"
)

type MemberCache struct {
	store *Store
}

var _ ports.MemberCache = (*MemberCache)(nil)

func (c *MemberCache) Put(ctx context.Context, directoryID string, member domain.Member, ttl time.Duration) error {
	entry := memberSchema{
		Directory: directoryID,
		UserID:    member.UserID,
		Name:      member.Name,
		Nick:      member.Nick,
	}
	if ttl > 0 {
		entry.ExpiresAt = formatTime(c.store.clock.Now().Add(ttl))
	}

	return c.store.update(ctx, func(file *fileSchema) (bool, error) {
		for i := range file.Members {
			if file.Members[i].Directory == directoryID && file.Members[i].UserID == member.UserID {
				file.Members[i] = entry
				return true, nil
			}
		}
		file.Members = append(file.Members, entry)
		return true, nil
	})
}

func (c *MemberCache) Delete(ctx context.Context, directoryID, userID string) error {
	return c.store.update(ctx, func(file *fileSchema) (bool, error) {
		for i := range file.Members {
			if file.Members[i].Directory == directoryID && file.Members[i].UserID == userID {
				file.Members = append(file.Members[:i], file.Members[i+1:]...)
				return true, nil
			}
		}
		return false, nil
	})
}

// List prunes expired snapshots of every directory while it holds the write
// lock.
func (c *MemberCache) List(ctx context.Context, directoryID string) ([]domain.Member, error) {
	var members []domain.Member
	err := c.store.update(ctx, func(file *fileSchema) (bool, error) {
		now := c.store.clock.Now()
		kept := file.Members[:0]
		pruned := false
		for _, entry := range file.Members {
			snapshot := fromMemberSchema(entry)
			if snapshot.Expired(now) {
				pruned = true
				continue
			}
			kept = append(kept, entry)
			if entry.Directory == directoryID {
				members = append(members, snapshot.Member)
			}
		}
		file.Members = kept
		return pruned, nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(members, func(i, j int) bool { return members[i].UserID < members[j].UserID })
	if members == nil {
		members = []domain.Member{}
	}
	return members, nil
}

func fromMemberSchema(entry memberSchema) domain.MemberSnapshot {
	return domain.MemberSnapshot{
		DirectoryID: entry.Directory,
		Member: domain.Member{
			UserID: entry.UserID,
			Name:   entry.Name,
			Nick:   entry.Nick,
		},
		ExpiresAt: parseTime(entry.ExpiresAt),
	}
}
