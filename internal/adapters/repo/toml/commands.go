package toml

import (
	"context"
	"sort"

	"github.com/bnema/scriptbridge/internal/domain"
	"github.com/bnema/scriptbridge/internal/ports"
)

type CommandRepository struct {
	store *Store
}

var _ ports.CommandRepository = (*CommandRepository)(nil)

func (r *CommandRepository) Get(ctx context.Context, name string) (domain.StoredCommand, error) {
	var command domain.StoredCommand
	err := r.store.view(ctx, func(file fileSchema) error {
		for _, entry := range file.Commands {
			if entry.Name == name {
				command = fromCommandSchema(entry)
				return nil
			}
		}
		return domain.ErrCommandNotFound
	})
	return command, err
}

func (r *CommandRepository) Upsert(ctx context.Context, name string, patch domain.CommandPatch) error {
	return r.store.update(ctx, func(file *fileSchema) (bool, error) {
		for i := range file.Commands {
			if file.Commands[i].Name == name {
				file.Commands[i] = toCommandSchema(fromCommandSchema(file.Commands[i]).Apply(patch))
				return true, nil
			}
		}
		command := domain.StoredCommand{Name: name}.Apply(patch)
		file.Commands = append(file.Commands, toCommandSchema(command))
		return true, nil
	})
}

func (r *CommandRepository) Delete(ctx context.Context, name string) error {
	return r.store.update(ctx, func(file *fileSchema) (bool, error) {
		for i := range file.Commands {
			if file.Commands[i].Name == name {
				file.Commands = append(file.Commands[:i], file.Commands[i+1:]...)
				return true, nil
			}
		}
		return false, nil
	})
}

func (r *CommandRepository) ListNames(ctx context.Context) ([]string, error) {
	var names []string
	err := r.store.view(ctx, func(file fileSchema) error {
		names = make([]string, 0, len(file.Commands))
		for _, entry := range file.Commands {
			names = append(names, entry.Name)
		}
		return nil
	})
	sort.Strings(names)
	return names, err
}

func toCommandSchema(command domain.StoredCommand) commandSchema {
	return commandSchema{
		Name:      command.Name,
		Code:      command.Code,
		Help:      command.Help,
		ShortHelp: command.ShortHelp,
	}
}

func fromCommandSchema(entry commandSchema) domain.StoredCommand {
	return domain.StoredCommand{
		Name:      entry.Name,
		Code:      entry.Code,
		Help:      entry.Help,
		ShortHelp: entry.ShortHelp,
	}
}
