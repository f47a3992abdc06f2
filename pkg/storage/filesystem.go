package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrTooLarge is returned when an upload exceeds the configured size limit.
var ErrTooLarge = errors.New("file exceeds maximum size")

// ErrInvalidName is returned for file names that do not name a regular file.
var ErrInvalidName = errors.New("invalid file name")

// LocalStorage keeps notice attachments under a single directory. Files are
// stored flat under their original base name, so a later upload with the same
// name replaces the earlier file.
type LocalStorage struct {
	baseDir string
	maxSize int64
}

// NewLocalStorage ensures the base directory exists and returns a handle.
// maxSize <= 0 disables the size check.
func NewLocalStorage(baseDir string, maxSize int64) (*LocalStorage, error) {
	if baseDir == "" {
		baseDir = "./public/notice_files"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create attachments directory: %w", err)
	}
	return &LocalStorage{baseDir: baseDir, maxSize: maxSize}, nil
}

// Dir returns the directory attachments are served from.
func (s *LocalStorage) Dir() string {
	return s.baseDir
}

// SaveStream copies r into the file called filename and returns the stored name.
// A partially written file is removed when the copy fails.
func (s *LocalStorage) SaveStream(filename string, r io.Reader) (string, error) {
	name, err := CleanName(filename)
	if err != nil {
		return "", err
	}
	path := filepath.Join(s.baseDir, name)

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create attachment: %w", err)
	}

	src := r
	if s.maxSize > 0 {
		src = io.LimitReader(r, s.maxSize+1)
	}
	written, copyErr := io.Copy(file, src)
	closeErr := file.Close()

	switch {
	case copyErr != nil:
		_ = os.Remove(path)
		return "", fmt.Errorf("write attachment: %w", copyErr)
	case s.maxSize > 0 && written > s.maxSize:
		_ = os.Remove(path)
		return "", ErrTooLarge
	case closeErr != nil:
		_ = os.Remove(path)
		return "", fmt.Errorf("close attachment: %w", closeErr)
	}
	return name, nil
}

// Delete removes a stored attachment. Missing files are not an error.
func (s *LocalStorage) Delete(filename string) error {
	name, err := CleanName(filename)
	if err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(s.baseDir, name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete attachment: %w", err)
	}
	return nil
}

// CleanName strips any directory component from an uploaded file name.
func CleanName(filename string) (string, error) {
	name := filepath.Base(strings.ReplaceAll(filename, "\\", "/"))
	switch name {
	case "", ".", "..", "/":
		return "", ErrInvalidName
	}
	return name, nil
}
