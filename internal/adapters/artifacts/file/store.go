package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bnema/scriptbridge/internal/ports"
)

const (
	storeDirMode    = 0o700
	artifactFileMod = 0o600
)

// Store keeps delivered binary artifacts (rendered images, files) under a
// root directory. Put returns the absolute path written.
type Store struct {
	root string
	mu   sync.Mutex
}

var _ ports.ArtifactStore = (*Store)(nil)

func NewStore(root string) *Store {
	return &Store{root: filepath.Clean(root)}
}

func (s *Store) Put(ctx context.Context, key string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path, err := s.pathForKey(key)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), storeDirMode); err != nil {
		return "", fmt.Errorf("create artifact directory: %w", err)
	}

	if err := os.WriteFile(path, data, artifactFileMod); err != nil {
		return "", fmt.Errorf("write artifact %q: %w", key, err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return path, nil
	}
	return abs, nil
}

func (s *Store) pathForKey(key string) (string, error) {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return "", errors.New("artifact key is empty")
	}

	cleaned := filepath.Clean(trimmed)
	if filepath.IsAbs(cleaned) || strings.HasPrefix(cleaned, "..") || cleaned == "." {
		return "", fmt.Errorf("invalid artifact key %q", key)
	}

	return filepath.Join(s.root, cleaned), nil
}
