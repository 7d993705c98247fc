package memory

import (
	"context"
	"sync"

	"github.com/bnema/scriptbridge/internal/domain"
	"github.com/bnema/scriptbridge/internal/ports"
)

type IdentityRepository struct {
	mu     sync.Mutex
	ids    map[string]domain.IdentityID
	lastID domain.IdentityID
}

var _ ports.IdentityRepository = (*IdentityRepository)(nil)

func NewIdentityRepository() *IdentityRepository {
	return &IdentityRepository{ids: map[string]domain.IdentityID{}}
}

func identityKey(platform, userID string) string {
	return platform + "\x00" + userID
}

func (r *IdentityRepository) Resolve(ctx context.Context, platform, userID string) (domain.IdentityID, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := identityKey(platform, userID)
	if id, ok := r.ids[key]; ok {
		return id, nil
	}
	r.lastID++
	r.ids[key] = r.lastID
	return r.lastID, nil
}

func (r *IdentityRepository) Lookup(ctx context.Context, platform, userID string) (domain.IdentityID, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.ids[identityKey(platform, userID)]
	if !ok {
		return 0, domain.ErrIdentityNotFound
	}
	return id, nil
}
