package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreRejectsInvalidKeys(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())
	testCases := []struct {
		name    string
		key     string
		wantErr string
	}{
		{name: "empty", key: "", wantErr: "artifact key is empty"},
		{name: "whitespace", key: "   ", wantErr: "artifact key is empty"},
		{name: "absolute", key: "/absolute/path.png", wantErr: "invalid artifact key"},
		{name: "traversal", key: "../escape.png", wantErr: "invalid artifact key"},
		{name: "deep traversal", key: "../../x.png", wantErr: "invalid artifact key"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := store.Put(context.Background(), tc.key, []byte("png"))
			require.Error(t, err)
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestStorePutWritesFileWithPermissions(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	store := NewStore(root)
	key := "c1/render-1.png"
	want := []byte{0x89, 'P', 'N', 'G'}

	location, err := store.Put(context.Background(), key, want)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, key), location)

	got, err := os.ReadFile(location)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	info, err := os.Stat(location)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(artifactFileMod), info.Mode().Perm())
}

func TestStorePutHonorsCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	root := t.TempDir()
	_, err := NewStore(root).Put(ctx, "x.png", []byte("png"))
	require.ErrorIs(t, err, context.Canceled)

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
