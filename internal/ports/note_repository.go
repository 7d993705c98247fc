package ports

import (
	"context"

	"github.com/bnema/scriptbridge/internal/domain"
)

type NoteRepository interface {
	Get(ctx context.Context, uid domain.IdentityID) (domain.Note, error)
	Upsert(ctx context.Context, uid domain.IdentityID, patch domain.NotePatch) error
}

type IdentityRepository interface {
	// Resolve returns the identity bound to the platform account, creating it
	// on first use.
	Resolve(ctx context.Context, platform, userID string) (domain.IdentityID, error)
	// Lookup never creates and returns domain.ErrIdentityNotFound instead.
	Lookup(ctx context.Context, platform, userID string) (domain.IdentityID, error)
}
