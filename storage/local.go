// Package storage keeps uploaded files on the local filesystem.
package storage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNotExist is returned when no stored file matches
var ErrNotExist = errors.New("stored file does not exist")

// File is an opened stored file
type File interface {
	io.ReadSeekCloser
	Stat() (fs.FileInfo, error)
}

// LocalStore stores files flat inside one directory
type LocalStore struct {
	dir string
}

// NewLocalStore creates the directory when missing
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

// Dir returns the storage directory
func (s *LocalStore) Dir() string {
	return s.dir
}

// path resolves name inside the store, refusing anything but a bare file name
func (s *LocalStore) path(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return "", fmt.Errorf("invalid file name %q", name)
	}
	return filepath.Join(s.dir, name), nil
}

// Save writes r to name, replacing any existing file
func (s *LocalStore) Save(name string, r io.Reader) (err error) {
	p, err := s.path(name)
	if err != nil {
		return err
	}

	f, err := os.Create(p)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close file: %w", cerr)
		}
		if err != nil {
			_ = os.Remove(p)
		}
	}()

	if _, err = io.Copy(f, r); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// Open opens name for reading
func (s *LocalStore) Open(name string) (File, error) {
	p, err := s.path(name)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotExist, name)
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return f, nil
}

// Remove deletes name and reports whether it existed
func (s *LocalStore) Remove(name string) (bool, error) {
	p, err := s.path(name)
	if err != nil {
		return false, err
	}

	if err := os.Remove(p); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to remove file: %w", err)
	}
	return true, nil
}

// FindByPrefix returns the first stored name, in lexical order, starting
// with prefix
func (s *LocalStore) FindByPrefix(prefix string) (string, error) {
	if prefix == "" || strings.ContainsAny(prefix, `/\`) {
		return "", fmt.Errorf("%w: prefix %q", ErrNotExist, prefix)
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return "", fmt.Errorf("failed to list upload dir: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), prefix) {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return "", fmt.Errorf("%w: prefix %q", ErrNotExist, prefix)
	}
	sort.Strings(names)
	return names[0], nil
}
