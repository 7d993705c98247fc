package ports

import (
	"context"

	"github.com/bnema/scriptbridge/internal/domain"
)

type CommandRepository interface {
	Get(ctx context.Context, name string) (domain.StoredCommand, error)
	Upsert(ctx context.Context, name string, patch domain.CommandPatch) error
	Delete(ctx context.Context, name string) error
	ListNames(ctx context.Context) ([]string, error)
}
