package storage

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// LocalStore 本地磁盘存储
type LocalStore struct {
	root string
}

func NewLocalStore(root string) (*LocalStore, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Wrap(err, "resolve upload root")
	}
	if err = os.MkdirAll(abs, 0o755); err != nil {
		return nil, errors.Wrap(err, "create upload root")
	}
	return &LocalStore{root: abs}, nil
}

func (s *LocalStore) Root() string {
	return s.root
}

func (s *LocalStore) fullPath(name string) (string, error) {
	cleaned, err := CleanName(name)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.root, filepath.FromSlash(cleaned)), nil
}

func (s *LocalStore) Save(_ context.Context, name string, reader io.Reader, _ int64, _ string) error {
	full, err := s.fullPath(name)
	if err != nil {
		return err
	}
	if err = os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return errors.Wrapf(err, "mkdir for %s", name)
	}

	file, err := os.Create(full)
	if err != nil {
		return errors.Wrapf(err, "create %s", name)
	}
	if _, err = io.Copy(file, reader); err != nil {
		_ = file.Close()
		_ = os.Remove(full)
		return errors.Wrapf(err, "write %s", name)
	}
	return errors.Wrapf(file.Close(), "close %s", name)
}

func (s *LocalStore) Open(_ context.Context, name string) (io.ReadCloser, error) {
	full, err := s.fullPath(name)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(full)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", name)
	}
	return file, nil
}

func (s *LocalStore) Remove(_ context.Context, name string) error {
	full, err := s.fullPath(name)
	if err != nil {
		return err
	}
	if err = os.Remove(full); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return errors.Wrapf(err, "remove %s", name)
	}
	return nil
}
