package objectstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"

	"github.com/spf13/afero"

	"github.com/yungbote/assetdesk-backend/internal/platform/logger"
)

// LocalStore keeps objects on an afero filesystem rooted at the media dir.
type LocalStore struct {
	log     *logger.Logger
	fs      afero.Fs
	baseURL string
}

// NewLocalDiskStore roots a LocalStore at dir on the OS filesystem.
func NewLocalDiskStore(log *logger.Logger, dir, baseURL string) (*LocalStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("local storage root is required")
	}
	osFs := afero.NewOsFs()
	if err := osFs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root %q: %w", dir, err)
	}
	return NewLocalStore(log, afero.NewBasePathFs(osFs, dir), baseURL), nil
}

func NewLocalStore(log *logger.Logger, fs afero.Fs, baseURL string) *LocalStore {
	if baseURL == "" {
		baseURL = "/media"
	}
	return &LocalStore{
		log:     log.With("service", "LocalStore"),
		fs:      fs,
		baseURL: baseURL,
	}
}

func (s *LocalStore) Put(ctx context.Context, key string, r io.Reader, _ string) error {
	k, err := CleanKey(key)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if dir := path.Dir(k); dir != "." {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir %q: %w", dir, err)
		}
	}
	f, err := s.fs.Create(k)
	if err != nil {
		return fmt.Errorf("create %q: %w", k, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = s.fs.Remove(k)
		return fmt.Errorf("write %q: %w", k, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %q: %w", k, err)
	}
	s.log.Debug("object stored", "key", k)
	return nil
}

func (s *LocalStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	k, err := CleanKey(key)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := s.fs.Open(k)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if st, statErr := f.Stat(); statErr == nil && st.IsDir() {
		_ = f.Close()
		return nil, ErrNotFound
	}
	return f, nil
}

// Delete is idempotent; a missing key is not an error.
func (s *LocalStore) Delete(ctx context.Context, key string) error {
	k, err := CleanKey(key)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.fs.Remove(k); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove %q: %w", k, err)
	}
	return nil
}

func (s *LocalStore) URL(key string) string {
	k, err := CleanKey(key)
	if err != nil {
		return ""
	}
	return JoinURL(s.baseURL, k)
}
