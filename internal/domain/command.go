package domain

import (
	"fmt"
	"strings"
)

// StoredCommand is a named script. Nil fields were never written.
type StoredCommand struct {
	Name      string
	Code      *string
	Help      *string
	ShortHelp *string
}

// CommandPatch carries the fields an upsert should overwrite; nil fields are
// left unchanged.
type CommandPatch struct {
	Code      *string
	Help      *string
	ShortHelp *string
}

func (c StoredCommand) Apply(patch CommandPatch) StoredCommand {
	if patch.Code != nil {
		c.Code = StringPtr(*patch.Code)
	}
	if patch.Help != nil {
		c.Help = StringPtr(*patch.Help)
	}
	if patch.ShortHelp != nil {
		c.ShortHelp = StringPtr(*patch.ShortHelp)
	}
	return c
}

func (p CommandPatch) Empty() bool {
	return p.Code == nil && p.Help == nil && p.ShortHelp == nil
}

func ValidateCommandName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("command name is required")
	}
	return nil
}

func StringPtr(s string) *string { return &s }
