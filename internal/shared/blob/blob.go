// Package blob abstracts attachment storage. Paths are opaque strings
// persisted on the owning entity; writes and deletes are deliberately
// outside the database transaction.
package blob

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

type Storage interface {
	// Store writes the content under dir and returns the opaque path.
	Store(ctx context.Context, dir, filename string, r io.Reader) (string, error)
	// Delete removes a previously stored path. Missing files are not an
	// error; the entity write may have outlived a crashed cleanup.
	Delete(ctx context.Context, path string) error
	// URL renders a stored path for API responses.
	URL(path string) string
}

type diskStorage struct {
	root    string
	baseURL string
}

// NewDiskStorage stores files below root and serves them under baseURL.
func NewDiskStorage(root, baseURL string) Storage {
	return &diskStorage{root: root, baseURL: strings.TrimSuffix(baseURL, "/")}
}

func (s *diskStorage) Store(ctx context.Context, dir, filename string, r io.Reader) (string, error) {
	rel := filepath.Join(dir, uuid.NewString()+sanitizeExt(filename))
	abs := filepath.Join(s.root, rel)

	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", fmt.Errorf("blob store: %w", err)
	}

	f, err := os.Create(abs)
	if err != nil {
		return "", fmt.Errorf("blob store: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(abs)
		return "", fmt.Errorf("blob store: %w", err)
	}

	return filepath.ToSlash(rel), nil
}

func (s *diskStorage) Delete(ctx context.Context, path string) error {
	if path == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.root, filepath.FromSlash(path)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("blob delete: %w", err)
	}
	return nil
}

func (s *diskStorage) URL(path string) string {
	if path == "" {
		return ""
	}
	return s.baseURL + "/" + path
}

func sanitizeExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pdf", ".doc", ".docx", ".jpg", ".jpeg", ".png":
		return ext
	default:
		return ""
	}
}
