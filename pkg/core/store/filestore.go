package store

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// FileStore keeps uploaded statement files on disk, one directory per
// company. Filenames are prefixed with a UUID so repeated uploads of the
// same statement never collide.
type FileStore struct {
	baseDir string
}

// NewFileStore creates the store rooted at dir, defaulting to ./uploads.
func NewFileStore(dir string) *FileStore {
	if dir == "" {
		dir = "uploads"
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		fmt.Printf("[WARNING] Check FileStore dir: %v\n", err)
	}
	return &FileStore{baseDir: dir}
}

// Save writes the upload under the company's directory and returns the
// stored path. The original filename is sanitized but preserved for display.
func (s *FileStore) Save(companyID int, fileName string, r io.Reader) (string, error) {
	dir := filepath.Join(s.baseDir, fmt.Sprintf("company_%d", companyID))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create company dir: %w", err)
	}

	name := fmt.Sprintf("%s_%s", uuid.New().String(), sanitizeFileName(fileName))
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	return path, nil
}

// Remove deletes a stored file. Missing files are not an error; the document
// row is the source of truth and disk cleanup is best effort.
func (s *FileStore) Remove(path string) error {
	if path == "" {
		return nil
	}
	if !strings.HasPrefix(filepath.Clean(path), filepath.Clean(s.baseDir)) {
		return fmt.Errorf("path %s is outside the file store", path)
	}
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func sanitizeFileName(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, " ", "_")
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.', r == '_', r == '-':
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "upload"
	}
	return b.String()
}
