package storage

import (
	"io"
	"os"
	"path/filepath"
)

// localStorage implements the Storage interface using the local filesystem
// All files live in a flat directory under basePath
type localStorage struct {
	basePath string
}

// NewLocalStorage creates a new localStorage instance
func NewLocalStorage(basePath string) *localStorage {
	return &localStorage{
		basePath: basePath,
	}
}

// Path returns the full on-disk path for a stored file name
func (s *localStorage) Path(name string) string {
	return filepath.Join(s.basePath, name)
}

// Create creates a new file and returns a WriteCloser
func (s *localStorage) Create(name string) (io.WriteCloser, error) {
	path := s.Path(name)

	// Ensure the directory exists
	if err := os.MkdirAll(s.basePath, 0755); err != nil {
		return nil, err
	}

	// Create the file
	return os.Create(path)
}

// OpenPath opens a stored file by its full path and returns *os.File
// for use with http.ServeContent
func (s *localStorage) OpenPath(path string) (*os.File, error) {
	return os.Open(path)
}
