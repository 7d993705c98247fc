package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/bnema/scriptbridge/internal/domain"
	"github.com/bnema/scriptbridge/internal/ports"
)

type CommandRepository struct {
	mu       sync.RWMutex
	commands map[string]domain.StoredCommand
}

var _ ports.CommandRepository = (*CommandRepository)(nil)

func NewCommandRepository() *CommandRepository {
	return &CommandRepository{commands: map[string]domain.StoredCommand{}}
}

func (r *CommandRepository) Get(ctx context.Context, name string) (domain.StoredCommand, error) {
	if err := ctx.Err(); err != nil {
		return domain.StoredCommand{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	command, ok := r.commands[name]
	if !ok {
		return domain.StoredCommand{}, domain.ErrCommandNotFound
	}
	return command, nil
}

func (r *CommandRepository) Upsert(ctx context.Context, name string, patch domain.CommandPatch) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	command, ok := r.commands[name]
	if !ok {
		command = domain.StoredCommand{Name: name}
	}
	r.commands[name] = command.Apply(patch)
	return nil
}

func (r *CommandRepository) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.commands, name)
	return nil
}

func (r *CommandRepository) ListNames(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
