package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/bnema/scriptbridge/internal/domain"
	"github.com/bnema/scriptbridge/internal/ports"
)

// MemberCache stores expiry as unix nanoseconds; zero never expires.
type MemberCache struct {
	db    *sql.DB
	clock ports.Clock
}

var _ ports.MemberCache = (*MemberCache)(nil)

func (c *MemberCache) Put(ctx context.Context, directoryID string, member domain.Member, ttl time.Duration) error {
	var expiresAt int64
	if ttl > 0 {
		expiresAt = c.clock.Now().Add(ttl).UnixNano()
	}

	_, err := c.db.ExecContext(ctx, `
		INSERT INTO members (directory, user_id, name, nick, expires_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(directory, user_id) DO UPDATE SET
			name = excluded.name,
			nick = excluded.nick,
			expires_at = excluded.expires_at
	`, directoryID, member.UserID, member.Name, member.Nick, expiresAt)
	if err != nil {
		return fmt.Errorf("upsert member: %w", err)
	}
	return nil
}

func (c *MemberCache) Delete(ctx context.Context, directoryID, userID string) error {
	_, err := c.db.ExecContext(ctx,
		`DELETE FROM members WHERE directory = ? AND user_id = ?`, directoryID, userID)
	if err != nil {
		return fmt.Errorf("delete member: %w", err)
	}
	return nil
}

func (c *MemberCache) List(ctx context.Context, directoryID string) ([]domain.Member, error) {
	now := c.clock.Now().UnixNano()

	if _, err := c.db.ExecContext(ctx,
		`DELETE FROM members WHERE expires_at != 0 AND expires_at <= ?`, now); err != nil {
		return nil, fmt.Errorf("prune members: %w", err)
	}

	rows, err := c.db.QueryContext(ctx, `
		SELECT user_id, name, nick FROM members
		WHERE directory = ?
		ORDER BY user_id
	`, directoryID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	defer rows.Close()

	members := []domain.Member{}
	for rows.Next() {
		var member domain.Member
		if err := rows.Scan(&member.UserID, &member.Name, &member.Nick); err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		members = append(members, member)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	return members, nil
}
