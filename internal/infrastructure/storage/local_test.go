package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swiftsupply/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

func TestLocalStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	s, err := NewLocalStore(dir)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "photo.png", []byte("png-bytes"), "image/png"))

	loc, err := s.Locate(ctx, "photo.png")
	require.NoError(t, err)
	assert.Empty(t, loc.RedirectURL)
	data, err := os.ReadFile(loc.Path)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	require.NoError(t, s.Delete(ctx, "photo.png"))
	_, err = s.Locate(ctx, "photo.png")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, s.Delete(ctx, "photo.png"), "deleting a missing image is fine")
}

func TestLocalStore_RejectsTraversal(t *testing.T) {
	s, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	for _, name := range []string{"../x.png", "a/b.png", `a\b.png`, ".hidden", "", "  "} {
		assert.ErrorIs(t, s.Save(ctx, name, []byte("x"), ""), ErrInvalidName, name)
		_, err := s.Locate(ctx, name)
		assert.ErrorIs(t, err, ErrInvalidName, name)
	}
}

func TestNew(t *testing.T) {
	t.Run("local", func(t *testing.T) {
		s, err := New(context.Background(), &config.StorageConfig{Driver: "local", UploadDir: t.TempDir()}, zap.NewNop())
		require.NoError(t, err)
		assert.IsType(t, &LocalStore{}, s)
	})

	t.Run("unknown driver", func(t *testing.T) {
		_, err := New(context.Background(), &config.StorageConfig{Driver: "ftp"}, zap.NewNop())
		assert.Error(t, err)
	})
}
