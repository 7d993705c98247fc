package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bnema/scriptbridge/internal/domain"
	"github.com/bnema/scriptbridge/internal/ports"
)

type NoteRepository struct {
	db *sql.DB
}

var _ ports.NoteRepository = (*NoteRepository)(nil)

func (r *NoteRepository) Get(ctx context.Context, uid domain.IdentityID) (domain.Note, error) {
	var public, protected, private sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT public, protected, private FROM notes WHERE uid = ?`, int64(uid),
	).Scan(&public, &protected, &private)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Note{}, domain.ErrNoteNotFound
	}
	if err != nil {
		return domain.Note{}, fmt.Errorf("query note: %w", err)
	}

	return domain.Note{
		UID:       uid,
		Public:    stringPtr(public),
		Protected: stringPtr(protected),
		Private:   stringPtr(private),
	}, nil
}

func (r *NoteRepository) Upsert(ctx context.Context, uid domain.IdentityID, patch domain.NotePatch) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO notes (uid, public, protected, private)
		VALUES (?1, ?2, ?3, ?4)
		ON CONFLICT(uid) DO UPDATE SET
			public = CASE WHEN ?5 THEN excluded.public ELSE notes.public END,
			protected = CASE WHEN ?6 THEN excluded.protected ELSE notes.protected END,
			private = CASE WHEN ?7 THEN excluded.private ELSE notes.private END
	`,
		int64(uid),
		nullString(patch.Public),
		nullString(patch.Protected),
		nullString(patch.Private),
		patch.Public != nil,
		patch.Protected != nil,
		patch.Private != nil,
	)
	if err != nil {
		return fmt.Errorf("upsert note: %w", err)
	}
	return nil
}
