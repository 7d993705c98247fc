package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bnema/scriptbridge/internal/domain"
	"github.com/bnema/scriptbridge/internal/ports"
)

type IdentityRepository struct {
	db *sql.DB
}

var _ ports.IdentityRepository = (*IdentityRepository)(nil)

func (r *IdentityRepository) Resolve(ctx context.Context, platform, userID string) (domain.IdentityID, error) {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO identities (platform, user_id) VALUES (?, ?)
		ON CONFLICT(platform, user_id) DO NOTHING
	`, platform, userID)
	if err != nil {
		return 0, fmt.Errorf("insert identity: %w", err)
	}
	return r.Lookup(ctx, platform, userID)
}

func (r *IdentityRepository) Lookup(ctx context.Context, platform, userID string) (domain.IdentityID, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		`SELECT id FROM identities WHERE platform = ? AND user_id = ?`, platform, userID,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, domain.ErrIdentityNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("query identity: %w", err)
	}
	return domain.IdentityID(id), nil
}
