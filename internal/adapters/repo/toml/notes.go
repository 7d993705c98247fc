package toml

import (
	"context"

	"github.com/bnema/scriptbridge/internal/domain"
	"github.com/bnema/scriptbridge/internal/ports"
)

type NoteRepository struct {
	store *Store
}

var _ ports.NoteRepository = (*NoteRepository)(nil)

func (r *NoteRepository) Get(ctx context.Context, uid domain.IdentityID) (domain.Note, error) {
	var note domain.Note
	err := r.store.view(ctx, func(file fileSchema) error {
		for _, entry := range file.Notes {
			if entry.UID == uint64(uid) {
				note = fromNoteSchema(entry)
				return nil
			}
		}
		return domain.ErrNoteNotFound
	})
	return note, err
}

func (r *NoteRepository) Upsert(ctx context.Context, uid domain.IdentityID, patch domain.NotePatch) error {
	return r.store.update(ctx, func(file *fileSchema) (bool, error) {
		for i := range file.Notes {
			if file.Notes[i].UID == uint64(uid) {
				file.Notes[i] = toNoteSchema(fromNoteSchema(file.Notes[i]).Apply(patch))
				return true, nil
			}
		}
		note := domain.Note{UID: uid}.Apply(patch)
		file.Notes = append(file.Notes, toNoteSchema(note))
		return true, nil
	})
}

func toNoteSchema(note domain.Note) noteSchema {
	return noteSchema{
		UID:       uint64(note.UID),
		Public:    note.Public,
		Protected: note.Protected,
		Private:   note.Private,
	}
}

func fromNoteSchema(entry noteSchema) domain.Note {
	return domain.Note{
		UID:       domain.IdentityID(entry.UID),
		Public:    entry.Public,
		Protected: entry.Protected,
		Private:   entry.Private,
	}
}
