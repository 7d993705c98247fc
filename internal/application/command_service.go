package application

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/bnema/scriptbridge/internal/domain"
	"github.com/bnema/scriptbridge/internal/ports"
)

type CommandService struct {
	repo        ports.CommandRepository
	interpreter ports.Interpreter
}

func NewCommandService(repo ports.CommandRepository, interpreter ports.Interpreter) *CommandService {
	return &CommandService{repo: repo, interpreter: interpreter}
}

func (s *CommandService) SetCode(ctx context.Context, name, code string) error {
	return s.upsert(ctx, name, domain.CommandPatch{Code: &code})
}

func (s *CommandService) SetHelp(ctx context.Context, name, help string) error {
	return s.upsert(ctx, name, domain.CommandPatch{Help: &help})
}

func (s *CommandService) SetShortHelp(ctx context.Context, name, shortHelp string) error {
	return s.upsert(ctx, name, domain.CommandPatch{ShortHelp: &shortHelp})
}

func (s *CommandService) upsert(ctx context.Context, name string, patch domain.CommandPatch) error {
	if err := domain.ValidateCommandName(name); err != nil {
		return err
	}
	if err := s.repo.Upsert(ctx, name, patch); err != nil {
		return fmt.Errorf("upsert command: %w", err)
	}
	return nil
}

func (s *CommandService) Get(ctx context.Context, name string) (domain.StoredCommand, error) {
	command, err := s.repo.Get(ctx, name)
	if err != nil {
		return domain.StoredCommand{}, fmt.Errorf("get command: %w", err)
	}
	return command, nil
}

func (s *CommandService) Code(ctx context.Context, name string) (domain.Value, error) {
	return s.field(ctx, name, func(c domain.StoredCommand) *string { return c.Code })
}

func (s *CommandService) Help(ctx context.Context, name string) (domain.Value, error) {
	return s.field(ctx, name, func(c domain.StoredCommand) *string { return c.Help })
}

func (s *CommandService) ShortHelp(ctx context.Context, name string) (domain.Value, error) {
	return s.field(ctx, name, func(c domain.StoredCommand) *string { return c.ShortHelp })
}

func (s *CommandService) field(ctx context.Context, name string, pick func(domain.StoredCommand) *string) (domain.Value, error) {
	command, err := s.repo.Get(ctx, name)
	if err != nil {
		if errors.Is(err, domain.ErrCommandNotFound) {
			return domain.Null, nil
		}
		return domain.Undefined, fmt.Errorf("get command: %w", err)
	}
	return domain.TextOrNull(pick(command)), nil
}

func (s *CommandService) Names(ctx context.Context) ([]string, error) {
	names, err := s.repo.ListNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("list commands: %w", err)
	}
	sort.Strings(names)
	return names, nil
}

func (s *CommandService) Delete(ctx context.Context, name string) error {
	if err := s.repo.Delete(ctx, name); err != nil {
		return fmt.Errorf("delete command: %w", err)
	}
	return nil
}

// Invoke re-enters the interpreter with the stored code of name. The caller's
// scope is extended by [arg, code]; env is shared with the caller so output
// and the execution deadline carry over.
func (s *CommandService) Invoke(ctx context.Context, env ports.Env, name string, arg domain.Value, scope ports.Scope) (domain.Value, error) {
	command, err := s.repo.Get(ctx, name)
	if err != nil && !errors.Is(err, domain.ErrCommandNotFound) {
		return domain.Undefined, fmt.Errorf("get command: %w", err)
	}
	if err != nil || command.Code == nil {
		return domain.Undefined, domain.ErrCommandNotFound
	}

	result, err := s.interpreter.Exec(ctx, scope.Extend(arg, domain.Text(*command.Code)), env)
	if err != nil {
		return domain.Undefined, err
	}
	if result.IsUndefined() {
		return domain.Null, nil
	}
	return result, nil
}
