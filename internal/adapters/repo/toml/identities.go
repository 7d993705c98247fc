package toml

import (
	"context"

	"github.com/bnema/scriptbridge/internal/domain"
	"github.com/bnema/scriptbridge/internal/ports"
)

type IdentityRepository struct {
	store *Store
}

var _ ports.IdentityRepository = (*IdentityRepository)(nil)

func (r *IdentityRepository) Resolve(ctx context.Context, platform, userID string) (domain.IdentityID, error) {
	var id domain.IdentityID
	err := r.store.update(ctx, func(file *fileSchema) (bool, error) {
		if found, ok := findIdentity(*file, platform, userID); ok {
			id = found
			return false, nil
		}
		file.LastIdentity = nextIdentity(*file)
		file.Identities = append(file.Identities, identitySchema{
			ID:       file.LastIdentity,
			Platform: platform,
			UserID:   userID,
		})
		id = domain.IdentityID(file.LastIdentity)
		return true, nil
	})
	return id, err
}

func (r *IdentityRepository) Lookup(ctx context.Context, platform, userID string) (domain.IdentityID, error) {
	var id domain.IdentityID
	err := r.store.view(ctx, func(file fileSchema) error {
		found, ok := findIdentity(file, platform, userID)
		if !ok {
			return domain.ErrIdentityNotFound
		}
		id = found
		return nil
	})
	return id, err
}

// List returns every bound identity in allocation order.
func (r *IdentityRepository) List(ctx context.Context) ([]domain.Identity, error) {
	var identities []domain.Identity
	err := r.store.view(ctx, func(file fileSchema) error {
		identities = make([]domain.Identity, 0, len(file.Identities))
		for _, entry := range file.Identities {
			identities = append(identities, domain.Identity{
				ID:       domain.IdentityID(entry.ID),
				Platform: entry.Platform,
				UserID:   entry.UserID,
			})
		}
		return nil
	})
	return identities, err
}

func findIdentity(file fileSchema, platform, userID string) (domain.IdentityID, bool) {
	for _, entry := range file.Identities {
		if entry.Platform == platform && entry.UserID == userID {
			return domain.IdentityID(entry.ID), true
		}
	}
	return 0, false
}

// nextIdentity never reuses an id, even when the counter was lost from a
// hand-edited file.
func nextIdentity(file fileSchema) uint64 {
	last := file.LastIdentity
	for _, entry := range file.Identities {
		if entry.ID > last {
			last = entry.ID
		}
	}
	return last + 1
}
