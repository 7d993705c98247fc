// Package pass reads credentials from the pass password manager.
package pass

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/bnema/scriptbridge/internal/ports"
)

var ErrUnavailable = errors.New("pass command unavailable")

type runFunc func(ctx context.Context, args ...string) (stdout string, stderr string, err error)

type Reader struct {
	run runFunc
}

var _ ports.SecretReader = (*Reader)(nil)

func NewReader() *Reader {
	return &Reader{run: runPassCommand}
}

// Lookup returns the first line of a pass entry.
func (r *Reader) Lookup(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return "", errors.New("pass entry is empty")
	}

	stdout, stderr, err := r.run(ctx, "show", key)
	if err != nil {
		if errors.Is(err, ErrUnavailable) {
			return "", err
		}
		if stderr == "" {
			return "", fmt.Errorf("pass show %q: %w", key, err)
		}
		return "", fmt.Errorf("pass show %q: %w: %s", key, err, stderr)
	}

	line, _, _ := strings.Cut(stdout, "\n")
	line = strings.TrimSuffix(line, "\r")
	if line == "" {
		return "", fmt.Errorf("pass entry %q is empty", key)
	}
	return line, nil
}

func runPassCommand(ctx context.Context, args ...string) (string, string, error) {
	path, err := exec.LookPath("pass")
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", "", ErrUnavailable
		}
		return "", "", fmt.Errorf("locate pass command: %w", err)
	}

	cmd := exec.CommandContext(ctx, path, args...)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	return stdout.String(), strings.TrimSpace(stderr.String()), err
}
