package storage

import (
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

const MaxFileSize = 5 * 1024 * 1024 // 5 MB

var (
	ErrInvalidFileType = errors.New("file type not allowed")
	ErrFileTooLarge    = errors.New("file exceeds size limit")
)

var allowedMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// Store writes accepted uploads into a single content directory and serves
// deletes against it. Filenames are generated, never client-controlled.
type Store struct {
	Dir string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &Store{Dir: dir}, nil
}

// Save validates and writes one uploaded file. The returned size is
// measured from the stored file, not the upload's declared length.
func (s *Store) Save(fileHeader *multipart.FileHeader) (filename string, size int64, err error) {
	if !allowedMimeTypes[fileHeader.Header.Get("Content-Type")] {
		return "", 0, ErrInvalidFileType
	}
	if fileHeader.Size > MaxFileSize {
		return "", 0, ErrFileTooLarge
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", 0, err
	}
	defer src.Close()

	filename = uuid.NewString() + filepath.Ext(fileHeader.Filename)
	destPath := filepath.Join(s.Dir, filename)

	dst, err := os.Create(destPath)
	if err != nil {
		return "", 0, err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		_ = os.Remove(destPath)
		return "", 0, err
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(destPath)
		return "", 0, err
	}

	info, err := os.Stat(destPath)
	if err != nil {
		_ = os.Remove(destPath)
		return "", 0, err
	}
	return filename, info.Size(), nil
}

// Remove deletes a stored file by generated name. Best-effort: a failure is
// logged by the caller, never escalated into a request failure.
func (s *Store) Remove(filename string) error {
	if filename == "" {
		return nil
	}
	return os.Remove(filepath.Join(s.Dir, filename))
}

// RemoveQuietly removes a stored file and logs on failure
func (s *Store) RemoveQuietly(filename string) {
	if err := s.Remove(filename); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: failed to remove stored file %s: %v", filename, err)
	}
}
