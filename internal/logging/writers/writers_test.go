package writers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateWriter(t *testing.T) {
	t.Run("empty string returns stdout", func(t *testing.T) {
		w, err := CreateWriter("")
		require.NoError(t, err)
		assert.Equal(t, os.Stdout, w)
	})

	t.Run("stdout", func(t *testing.T) {
		w, err := CreateWriter("stdout")
		require.NoError(t, err)
		assert.Equal(t, os.Stdout, w)
	})

	t.Run("stderr", func(t *testing.T) {
		w, err := CreateWriter("stderr")
		require.NoError(t, err)
		assert.Equal(t, os.Stderr, w)
	})

	t.Run("plain file path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "machine.log")
		w, err := CreateWriter(path)
		require.NoError(t, err)
		require.NotNil(t, w)

		_, err = w.Write([]byte("hello\n"))
		require.NoError(t, err)

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "hello\n", string(content))
	})

	t.Run("file scheme", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "machine.log")
		w, err := CreateWriter("file://" + path)
		require.NoError(t, err)
		assert.NotNil(t, w)
	})

	t.Run("creates parent directories", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "deeper", "machine.log")
		w, err := CreateWriter(path)
		require.NoError(t, err)
		require.NotNil(t, w)

		_, err = os.Stat(filepath.Dir(path))
		assert.NoError(t, err)
	})

	t.Run("appends to existing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "machine.log")
		require.NoError(t, os.WriteFile(path, []byte("first\n"), 0o644))

		w, err := CreateWriter(path)
		require.NoError(t, err)
		_, err = w.Write([]byte("second\n"))
		require.NoError(t, err)

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "first\nsecond\n", string(content))
	})

	t.Run("unsupported scheme", func(t *testing.T) {
		w, err := CreateWriter("s3://bucket/logs")
		require.Error(t, err)
		assert.Nil(t, w)
	})
}
