package io

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMediaFileSystem_CreateEmpty(t *testing.T) {
	mfs := &MediaFileSystem{}

	t.Run("creates empty file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "a.trace")
		require.NoError(t, mfs.CreateEmpty(path))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Zero(t, info.Size())
	})

	t.Run("refuses existing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "a.trace")
		require.NoError(t, os.WriteFile(path, []byte("data"), 0o644))

		err := mfs.CreateEmpty(path)
		assert.ErrorIs(t, err, ErrFileExists)

		b, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "data", string(b))
	})

	t.Run("missing parent", func(t *testing.T) {
		err := mfs.CreateEmpty(filepath.Join(t.TempDir(), "missing", "a.trace"))
		assert.Error(t, err)
	})
}

func TestMediaFileSystem_Append(t *testing.T) {
	mfs := &MediaFileSystem{}

	t.Run("appends to existing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "a.trace")
		require.NoError(t, os.WriteFile(path, []byte("first\n"), 0o644))

		w, err := mfs.Append(path)
		require.NoError(t, err)
		_, err = w.Write([]byte("second\n"))
		require.NoError(t, err)
		require.NoError(t, w.Close())

		b, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "first\nsecond\n", string(b))
	})

	t.Run("does not create", func(t *testing.T) {
		_, err := mfs.Append(filepath.Join(t.TempDir(), "missing.trace"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestMediaFileSystem_FileExists(t *testing.T) {
	mfs := &MediaFileSystem{}
	dir := t.TempDir()

	assert.True(t, mfs.FileExists(dir))
	assert.False(t, mfs.FileExists(filepath.Join(dir, "nope")))
}

func TestMediaFileSystem_Stat(t *testing.T) {
	mfs := &MediaFileSystem{}
	path := filepath.Join(t.TempDir(), "a.trace")
	require.NoError(t, os.WriteFile(path, []byte("abc"), 0o644))

	info, err := mfs.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(3), info.Size())

	_, err = mfs.Stat(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
