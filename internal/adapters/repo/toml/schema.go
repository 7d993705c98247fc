package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version      int              `toml:"version"`
	LastIdentity uint64           `toml:"last_identity"`
	Commands     []commandSchema  `toml:"commands"`
	Notes        []noteSchema     `toml:"notes"`
	Identities   []identitySchema `toml:"identities"`
	Members      []memberSchema   `toml:"members"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported store schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type commandSchema struct {
	Name      string  `toml:"name"`
	Code      *string `toml:"code,omitempty"`
	Help      *string `toml:"help,omitempty"`
	ShortHelp *string `toml:"short_help,omitempty"`
}

type noteSchema struct {
	UID       uint64  `toml:"uid"`
	Public    *string `toml:"public,omitempty"`
	Protected *string `toml:"protected,omitempty"`
	Private   *string `toml:"private,omitempty"`
}

type identitySchema struct {
	ID       uint64 `toml:"id"`
	Platform string `toml:"platform"`
	UserID   string `toml:"user_id"`
}

type memberSchema struct {
	Directory string `toml:"directory"`
	UserID    string `toml:"user_id"`
	Name      string `toml:"name"`
	Nick      string `toml:"nick,omitempty"`
	ExpiresAt string `toml:"expires_at,omitempty"`
}
