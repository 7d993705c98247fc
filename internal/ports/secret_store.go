package ports

import "context"

// SecretReader looks up credentials kept outside the config file.
type SecretReader interface {
	Lookup(ctx context.Context, key string) (string, error)
}
