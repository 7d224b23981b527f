package storage

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalPhotoStore_Save(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalPhotoStore(dir)
	require.NoError(t, err)

	ref, err := store.Save(context.Background(), "Me.JPG", strings.NewReader("jpeg-bytes"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(ref, "caregivers/"))
	assert.True(t, strings.HasSuffix(ref, ".jpg"))
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(ref)))
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(data))
}

func TestLocalPhotoStore_RejectsUnknownType(t *testing.T) {
	store, err := NewLocalPhotoStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Save(context.Background(), "cv.pdf", strings.NewReader("%PDF"))
	assert.ErrorIs(t, err, ErrUnsupportedPhoto)
}

func TestLocalPhotoStore_RejectsOversized(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalPhotoStore(dir)
	require.NoError(t, err)

	_, err = store.Save(context.Background(), "big.png", bytes.NewReader(make([]byte, MaxPhotoSize+10)))
	assert.ErrorIs(t, err, ErrPhotoTooLarge)

	entries, err := os.ReadDir(filepath.Join(dir, "caregivers"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLocalPhotoStore_Delete(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalPhotoStore(dir)
	require.NoError(t, err)

	ref, err := store.Save(context.Background(), "me.png", strings.NewReader("png"))
	require.NoError(t, err)

	require.NoError(t, store.Delete(context.Background(), ref))
	_, err = os.Stat(filepath.Join(dir, filepath.FromSlash(ref)))
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, store.Delete(context.Background(), ref), "deleting twice is fine")
	assert.Error(t, store.Delete(context.Background(), "../outside.png"))
}
