package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bnema/scriptbridge/internal/domain"
	"github.com/bnema/scriptbridge/internal/ports"
)

type CommandRepository struct {
	db *sql.DB
}

var _ ports.CommandRepository = (*CommandRepository)(nil)

func (r *CommandRepository) Get(ctx context.Context, name string) (domain.StoredCommand, error) {
	var code, help, short sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT code, help, short_help FROM commands WHERE name = ?`, name,
	).Scan(&code, &help, &short)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.StoredCommand{}, domain.ErrCommandNotFound
	}
	if err != nil {
		return domain.StoredCommand{}, fmt.Errorf("query command: %w", err)
	}

	return domain.StoredCommand{
		Name:      name,
		Code:      stringPtr(code),
		Help:      stringPtr(help),
		ShortHelp: stringPtr(short),
	}, nil
}

// Upsert only overwrites the columns present in the patch.
func (r *CommandRepository) Upsert(ctx context.Context, name string, patch domain.CommandPatch) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO commands (name, code, help, short_help)
		VALUES (?1, ?2, ?3, ?4)
		ON CONFLICT(name) DO UPDATE SET
			code = CASE WHEN ?5 THEN excluded.code ELSE commands.code END,
			help = CASE WHEN ?6 THEN excluded.help ELSE commands.help END,
			short_help = CASE WHEN ?7 THEN excluded.short_help ELSE commands.short_help END
	`,
		name,
		nullString(patch.Code),
		nullString(patch.Help),
		nullString(patch.ShortHelp),
		patch.Code != nil,
		patch.Help != nil,
		patch.ShortHelp != nil,
	)
	if err != nil {
		return fmt.Errorf("upsert command: %w", err)
	}
	return nil
}

func (r *CommandRepository) Delete(ctx context.Context, name string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM commands WHERE name = ?`, name); err != nil {
		return fmt.Errorf("delete command: %w", err)
	}
	return nil
}

func (r *CommandRepository) ListNames(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name FROM commands ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list commands: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan command: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list commands: %w", err)
	}
	return names, nil
}
