package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// ReceiptStore persists uploaded receipt images on local disk under a public
// static path. Files are written to a staging name and renamed into place so
// a crash mid-write never leaves a half-written file at a servable path.
type ReceiptStore struct {
	dir       string
	publicURL string
}

// NewReceiptStore creates a store rooted at dir. Stored files are addressed
// as publicURL + "/" + filename in API responses.
func NewReceiptStore(dir, publicURL string) (*ReceiptStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &ReceiptStore{dir: dir, publicURL: publicURL}, nil
}

// Save writes the uploaded file under a random name, returning its public URL.
func (s *ReceiptStore) Save(fh *multipart.FileHeader) (string, error) {
	ext := filepath.Ext(fh.Filename)
	if ext == "" {
		ext = extensionForContentType(fh.Header.Get("Content-Type"))
	}

	name := uuid.NewString() + ext
	final := filepath.Join(s.dir, name)
	staging := final + ".tmp"

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(staging)
	if err != nil {
		return "", fmt.Errorf("failed to create staging file: %w", err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(staging)
		return "", fmt.Errorf("failed to write receipt: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(staging)
		return "", fmt.Errorf("failed to flush receipt: %w", err)
	}

	if err := os.Rename(staging, final); err != nil {
		os.Remove(staging)
		return "", fmt.Errorf("failed to finalize receipt: %w", err)
	}

	return s.publicURL + "/" + name, nil
}

// Remove deletes a previously saved receipt by its public URL. Used as
// compensating cleanup when the settlement row update fails after the file
// is already on disk.
func (s *ReceiptStore) Remove(url string) error {
	name := filepath.Base(url)
	return os.Remove(filepath.Join(s.dir, name))
}

func extensionForContentType(contentType string) string {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ""
	}
}
