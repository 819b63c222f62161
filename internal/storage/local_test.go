package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalArchive(t *testing.T) {
	ctx := context.Background()
	archive, err := NewLocalArchive("http://localhost:8080/", t.TempDir())
	require.NoError(t, err)

	t.Run("Save and open", func(t *testing.T) {
		require.NoError(t, archive.Save(ctx, "statements/2024-03.json", strings.NewReader(`{"total":"500"}`)))

		exists, size, err := archive.Exists(ctx, "statements/2024-03.json")
		require.NoError(t, err)
		assert.True(t, exists)
		assert.Equal(t, int64(15), size)

		rc, err := archive.Open(ctx, "statements/2024-03.json")
		require.NoError(t, err)
		defer rc.Close()
		body, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, `{"total":"500"}`, string(body))
	})

	t.Run("Overwrite", func(t *testing.T) {
		require.NoError(t, archive.Save(ctx, "a.json", strings.NewReader("one")))
		require.NoError(t, archive.Save(ctx, "a.json", strings.NewReader("two")))
		_, size, err := archive.Exists(ctx, "a.json")
		require.NoError(t, err)
		assert.Equal(t, int64(3), size)
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := archive.Open(ctx, "statements/1999-01.json")
		assert.ErrorIs(t, err, ErrNotFound)

		exists, _, err := archive.Exists(ctx, "statements/1999-01.json")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("Rejects escaping keys", func(t *testing.T) {
		for _, key := range []string{"", "../secret", "/etc/passwd", "a/../../b", "a\\b", "./a"} {
			_, err := archive.Open(ctx, key)
			assert.ErrorIs(t, err, ErrInvalidKey, key)
		}
	})

	t.Run("Delete is idempotent", func(t *testing.T) {
		require.NoError(t, archive.Save(ctx, "gone.json", strings.NewReader("x")))
		assert.NoError(t, archive.Delete(ctx, "gone.json"))
		assert.NoError(t, archive.Delete(ctx, "gone.json"))
	})

	t.Run("Download URL", func(t *testing.T) {
		assert.Equal(t, "http://localhost:8080/api/v1/statements/statements/2024-03.json", archive.DownloadURL("statements/2024-03.json"))
	})
}
