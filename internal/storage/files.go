package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var (
	// ErrInvalidPath is returned when a path escapes the store root.
	ErrInvalidPath = errors.New("invalid path")
	// ErrNotFound is returned when the named file does not exist.
	ErrNotFound = errors.New("file not found")
	// ErrExists is returned when creating a file that already exists.
	ErrExists = errors.New("file already exists")
)

// FileStore confines file operations to a single root directory. All
// names are relative to the root; anything resolving outside it is
// rejected.
type FileStore struct {
	root string
}

// NewFileStore creates the root directory if needed.
func NewFileStore(root string) (*FileStore, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, err
	}
	return &FileStore{root: abs}, nil
}

// Root returns the absolute store root.
func (s *FileStore) Root() string {
	return s.root
}

// SafePath resolves name inside the root, rejecting traversal.
func (s *FileStore) SafePath(name string) (string, error) {
	full := filepath.Join(s.root, filepath.FromSlash(name))
	abs, err := filepath.Abs(full)
	if err != nil {
		return "", ErrInvalidPath
	}
	if abs != s.root && !strings.HasPrefix(abs, s.root+string(filepath.Separator)) {
		return "", ErrInvalidPath
	}
	return abs, nil
}

// List walks the root and returns all file names relative to it, using
// forward slashes.
func (s *FileStore) List() ([]string, error) {
	var names []string
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		names = append(names, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

// NextName returns the first unused fileN.txt name.
func (s *FileStore) NextName() (string, error) {
	existing, err := s.List()
	if err != nil {
		return "", err
	}
	taken := make(map[string]struct{}, len(existing))
	for _, name := range existing {
		taken[name] = struct{}{}
	}
	for i := 1; ; i++ {
		name := fmt.Sprintf("file%d.txt", i)
		if _, ok := taken[name]; !ok {
			return name, nil
		}
	}
}

// Exists reports whether name refers to an existing regular file.
func (s *FileStore) Exists(name string) (bool, error) {
	path, err := s.SafePath(name)
	if err != nil {
		return false, err
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.Mode().IsRegular(), nil
}

// Read returns the content of name.
func (s *FileStore) Read(name string) (string, error) {
	path, err := s.SafePath(name)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNotFound
		}
		return "", err
	}
	return string(data), nil
}

// Write stores content under name, creating parent directories.
func (s *FileStore) Write(name, content string) error {
	path, err := s.SafePath(name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}

// Create stores content under name, failing when it already exists.
func (s *FileStore) Create(name, content string) error {
	exists, err := s.Exists(name)
	if err != nil {
		return err
	}
	if exists {
		return ErrExists
	}
	return s.Write(name, content)
}

// Update overwrites an existing file, failing when it is absent.
func (s *FileStore) Update(name, content string) error {
	exists, err := s.Exists(name)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}
	return s.Write(name, content)
}

// Delete removes name from the store.
func (s *FileStore) Delete(name string) error {
	path, err := s.SafePath(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
