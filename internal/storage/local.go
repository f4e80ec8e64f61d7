// Package storage holds the blob store used for resume and job-description
// uploads. Files are opaque to the rest of the system; callers only see the
// stored filename and a retrieval URL.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"time"
)

var (
	ErrFileTooLarge  = errors.New("file exceeds the maximum upload size")
	ErrEmptyFile     = errors.New("file is empty")
	ErrEmptyFilename = errors.New("filename is required")
)

// BlobStore persists uploaded file contents and returns a stable filename plus
// the URL it will be served from.
type BlobStore interface {
	Save(data []byte, originalFilename string) (filename string, url string, err error)
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// LocalStore writes blobs to a directory on disk. Stored names are
// timestamp-prefixed and sanitized so originals can never collide or escape
// the upload directory.
type LocalStore struct {
	dir     string
	baseURL string
	maxSize int64
	now     func() time.Time
}

func NewLocalStore(dir, baseURL string, maxSize int64) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStore{
		dir:     dir,
		baseURL: baseURL,
		maxSize: maxSize,
		now:     time.Now,
	}, nil
}

func (s *LocalStore) Save(data []byte, originalFilename string) (string, string, error) {
	if len(data) == 0 {
		return "", "", ErrEmptyFile
	}
	if int64(len(data)) > s.maxSize {
		return "", "", ErrFileTooLarge
	}
	if originalFilename == "" {
		return "", "", ErrEmptyFilename
	}

	safeName := unsafeChars.ReplaceAllString(filepath.Base(originalFilename), "_")
	filename := strconv.FormatInt(s.now().UnixMilli(), 10) + "-" + safeName

	if err := os.WriteFile(filepath.Join(s.dir, filename), data, 0o644); err != nil {
		return "", "", fmt.Errorf("failed to write upload: %w", err)
	}

	return filename, s.baseURL + "/" + filename, nil
}
