package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/scriptbridge/internal/domain"
	"github.com/bnema/scriptbridge/internal/ports"
)

// NoteService reads and writes identity notes. Public notes can be written
// for any identity; protected and private notes only for the caller's own.
type NoteService struct {
	notes      ports.NoteRepository
	identities ports.IdentityRepository
}

func NewNoteService(notes ports.NoteRepository, identities ports.IdentityRepository) *NoteService {
	return &NoteService{notes: notes, identities: identities}
}

// Self resolves the identity of the session's author, creating it on first
// use.
func (s *NoteService) Self(ctx context.Context, sc domain.SessionContext) (domain.IdentityID, error) {
	uid, err := s.identities.Resolve(ctx, sc.Platform, sc.UserID)
	if err != nil {
		return 0, fmt.Errorf("resolve identity: %w", err)
	}
	return uid, nil
}

func (s *NoteService) SetPublic(ctx context.Context, target domain.IdentityID, text string) error {
	return s.write(ctx, target, domain.NotePublic, text)
}

func (s *NoteService) SetProtected(ctx context.Context, sc domain.SessionContext, text string) error {
	self, err := s.Self(ctx, sc)
	if err != nil {
		return err
	}
	return s.write(ctx, self, domain.NoteProtected, text)
}

func (s *NoteService) SetPrivate(ctx context.Context, sc domain.SessionContext, text string) error {
	self, err := s.Self(ctx, sc)
	if err != nil {
		return err
	}
	return s.write(ctx, self, domain.NotePrivate, text)
}

func (s *NoteService) Public(ctx context.Context, target domain.IdentityID) (domain.Value, error) {
	return s.read(ctx, target, domain.NotePublic)
}

func (s *NoteService) Protected(ctx context.Context, target domain.IdentityID) (domain.Value, error) {
	return s.read(ctx, target, domain.NoteProtected)
}

func (s *NoteService) Private(ctx context.Context, sc domain.SessionContext) (domain.Value, error) {
	self, err := s.Self(ctx, sc)
	if err != nil {
		return domain.Undefined, err
	}
	return s.read(ctx, self, domain.NotePrivate)
}

func (s *NoteService) write(ctx context.Context, uid domain.IdentityID, field domain.NoteField, text string) error {
	if err := s.notes.Upsert(ctx, uid, domain.PatchField(field, text)); err != nil {
		return fmt.Errorf("upsert %s note: %w", field, err)
	}
	return nil
}

func (s *NoteService) read(ctx context.Context, uid domain.IdentityID, field domain.NoteField) (domain.Value, error) {
	note, err := s.notes.Get(ctx, uid)
	if err != nil {
		if errors.Is(err, domain.ErrNoteNotFound) {
			return domain.Null, nil
		}
		return domain.Undefined, fmt.Errorf("get note: %w", err)
	}
	return domain.TextOrNull(note.Field(field)), nil
}
