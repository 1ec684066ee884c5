// Package storage persists uploaded image files on the local
// filesystem. Files are renamed to a UUID so user-supplied names never
// touch the disk, and the stored relative path is what gets written to
// the database and served back under the static uploads route.
package storage

import (
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// extByMIME maps the accepted image MIME types to file extensions.
// Uploads with any other content type are rejected.
var extByMIME = map[string]string{
	"image/png":  "png",
	"image/jpg":  "jpg",
	"image/jpeg": "jpeg",
}

// ImageStore writes uploaded images below a base directory.
type ImageStore struct {
	dir string // base directory, e.g. uploads/images
}

// NewImageStore ensures the base directory exists and returns a store
// rooted there.
func NewImageStore(dir string) (*ImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &ImageStore{dir: dir}, nil
}

// Save stores one uploaded file under a fresh UUID name and returns
// the relative path to record in the database. The extension comes
// from the declared content type, not from the client filename.
func (s *ImageStore) Save(fh *multipart.FileHeader) (string, error) {
	ext, ok := extByMIME[fh.Header.Get("Content-Type")]
	if !ok {
		return "", fmt.Errorf("unsupported image type %q", fh.Header.Get("Content-Type"))
	}

	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	name := uuid.New().String() + "." + ext
	path := filepath.Join(s.dir, name)
	dst, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		_ = os.Remove(path)
		return "", err
	}
	return path, nil
}

// Remove deletes a stored image. It is the best-effort cleanup
// primitive: failures are logged and swallowed because by the time it
// runs the transactional part of the operation has already committed
// and the client response must not depend on it.
func (s *ImageStore) Remove(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Printf("storage: remove image %s failed: %v", path, err)
	}
}
