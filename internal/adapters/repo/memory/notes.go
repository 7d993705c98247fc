package memory

import (
	"context"
	"sync"

	"github.com/bnema/scriptbridge/internal/domain"
	"github.com/bnema/scriptbridge/internal/ports"
)

type NoteRepository struct {
	mu    sync.RWMutex
	notes map[domain.IdentityID]domain.Note
}

var _ ports.NoteRepository = (*NoteRepository)(nil)

func NewNoteRepository() *NoteRepository {
	return &NoteRepository{notes: map[domain.IdentityID]domain.Note{}}
}

func (r *NoteRepository) Get(ctx context.Context, uid domain.IdentityID) (domain.Note, error) {
	if err := ctx.Err(); err != nil {
		return domain.Note{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	note, ok := r.notes[uid]
	if !ok {
		return domain.Note{}, domain.ErrNoteNotFound
	}
	return note, nil
}

func (r *NoteRepository) Upsert(ctx context.Context, uid domain.IdentityID, patch domain.NotePatch) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	note, ok := r.notes[uid]
	if !ok {
		note = domain.Note{UID: uid}
	}
	r.notes[uid] = note.Apply(patch)
	return nil
}
