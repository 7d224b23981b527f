package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// MaxPhotoSize caps a single caregiver photo upload.
const MaxPhotoSize = 5 << 20

var (
	// ErrUnsupportedPhoto is returned for files that are not jpeg, png or webp images.
	ErrUnsupportedPhoto = errors.New("unsupported photo type")
	// ErrPhotoTooLarge is returned when an upload exceeds MaxPhotoSize.
	ErrPhotoTooLarge = errors.New("photo too large")
)

var allowedExtensions = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true}

// PhotoStore persists caregiver photos and hands back an opaque reference stored on the profile.
type PhotoStore interface {
	Save(ctx context.Context, filename string, r io.Reader) (string, error)
	// Delete removes a stored photo. Deleting a missing reference is not an error.
	Delete(ctx context.Context, ref string) error
}

// LocalPhotoStore writes photos under a directory, named by a random id plus the original extension.
type LocalPhotoStore struct {
	dir string
}

// NewLocalPhotoStore creates the directory if needed.
func NewLocalPhotoStore(dir string) (*LocalPhotoStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalPhotoStore{dir: dir}, nil
}

// Save copies at most MaxPhotoSize bytes of r and returns the stored file name.
func (s *LocalPhotoStore) Save(ctx context.Context, filename string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		return "", ErrUnsupportedPhoto
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ref := "caregivers/" + uuid.NewString() + ext
	path := filepath.Join(s.dir, filepath.FromSlash(ref))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create photo dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create photo: %w", err)
	}
	n, err := io.Copy(f, io.LimitReader(r, MaxPhotoSize+1))
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err == nil && n > MaxPhotoSize {
		err = fmt.Errorf("%w: over %d bytes", ErrPhotoTooLarge, MaxPhotoSize)
	}
	if err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("write photo: %w", err)
	}
	return ref, nil
}

// Delete removes the file behind ref.
func (s *LocalPhotoStore) Delete(_ context.Context, ref string) error {
	clean := filepath.Clean(filepath.FromSlash(ref))
	if filepath.IsAbs(clean) || strings.HasPrefix(clean, "..") {
		return fmt.Errorf("%w: %q", ErrUnsupportedPhoto, ref)
	}
	if err := os.Remove(filepath.Join(s.dir, clean)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove photo: %w", err)
	}
	return nil
}
