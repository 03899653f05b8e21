package keystore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/dmitrijs2005/passkeeper/internal/filex"
)

// FileStore keeps key material in a single owner-readable file.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Read(ctx context.Context) ([]byte, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	return b, nil
}

// Write creates the file with mode 0600. It fails if the file already exists.
func (s *FileStore) Write(ctx context.Context, b []byte) error {
	if err := filex.EnsureParentDir(s.path); err != nil {
		return err
	}
	if err := filex.WriteExclusive(s.path, b, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}

func (s *FileStore) Location() string {
	return "file://" + s.path
}
