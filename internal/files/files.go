// Package files stores files uploaded into course sections, either below a
// local directory or in an S3 compatible bucket.
package files

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"path"
	"regexp"
	"strings"

	"github.com/mkeenan750/snapcourse/internal/config"
)

var (
	// ErrInvalidKey is returned for keys escaping the storage root.
	ErrInvalidKey = errors.New("invalid file key")
	// ErrNotFound is returned for missing files.
	ErrNotFound = errors.New("file not found")

	unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)
)

// Store keeps uploaded files by key.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// New creates the store configured in cfg.
func New(cfg config.Files) (Store, error) {
	switch cfg.Backend {
	case config.FilesLocal, "":
		return NewLocalStore(cfg.Path)
	case config.FilesMinio:
		return NewMinioStore(cfg.Minio)
	default:
		return nil, fmt.Errorf("unknown files backend %q", cfg.Backend)
	}
}

// Key builds a unique key for a file uploaded into a course section.
func Key(courseID uint64, section int, filename string) (string, error) {
	b := make([]byte, 8) //nolint:mnd
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	name := unsafeChars.ReplaceAllString(path.Base(filename), "_")
	name = strings.Trim(name, "._")

	if name == "" {
		name = "file"
	}

	return fmt.Sprintf("course/%d/section/%d/%s-%s", courseID, section, hex.EncodeToString(b), name), nil
}

// cleanKey rejects absolute keys and keys leaving the root.
func cleanKey(key string) (string, error) {
	cleaned := path.Clean("/" + key)[1:]
	if key == "" || cleaned == "" || cleaned != key {
		return "", ErrInvalidKey
	}

	return cleaned, nil
}
