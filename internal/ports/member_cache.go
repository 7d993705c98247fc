package ports

import (
	"context"
	"time"

	"github.com/bnema/scriptbridge/internal/domain"
)

type MemberCache interface {
	Put(ctx context.Context, directoryID string, member domain.Member, ttl time.Duration) error
	Delete(ctx context.Context, directoryID, userID string) error
	List(ctx context.Context, directoryID string) ([]domain.Member, error)
}
