package document

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Store resolves document handles against a flat upload directory. Files are
// stored as <id><ext> where the id is an opaque UUID assigned on save.
type Store struct {
	dir         string
	maxFileSize int64
}

// NewStore creates a store rooted at dir. Files larger than maxFileSize are
// rejected on save.
func NewStore(dir string, maxFileSize int64) *Store {
	return &Store{dir: dir, maxFileSize: maxFileSize}
}

// Save writes uploaded bytes under a fresh opaque id and returns the handle.
// The declared format is derived from the original filename's extension.
func (s *Store) Save(filename string, data []byte) (Handle, error) {
	format, err := ParseFormat(filepath.Ext(filename))
	if err != nil {
		return Handle{}, err
	}

	if int64(len(data)) > s.maxFileSize {
		return Handle{}, fmt.Errorf("file too large: %d bytes (limit %d)", len(data), s.maxFileSize)
	}

	id := uuid.New().String()
	path := filepath.Join(s.dir, id+format.Extension())
	if err := os.WriteFile(path, data, 0o640); err != nil {
		return Handle{}, fmt.Errorf("save upload: %w", err)
	}

	return Handle{
		ID:       id,
		Format:   format,
		Filename: filepath.Base(filename),
		Size:     int64(len(data)),
	}, nil
}

// Resolve returns the filesystem path for a handle.
func (s *Store) Resolve(h Handle) (string, error) {
	path := filepath.Join(s.dir, h.ID+h.Format.Extension())
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("resolve document %s: %w", h.ID, err)
	}
	return path, nil
}

// Lookup finds a stored document by id alone, probing the closed format set.
// It mirrors upload-route behavior where only the id round-trips to the client.
func (s *Store) Lookup(id string) (Handle, error) {
	for _, format := range []Format{FormatPDF, FormatDOCX, FormatDOC, FormatTXT} {
		path := filepath.Join(s.dir, id+format.Extension())
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		return Handle{ID: id, Format: format, Size: info.Size()}, nil
	}
	return Handle{}, fmt.Errorf("document %s not found", id)
}
