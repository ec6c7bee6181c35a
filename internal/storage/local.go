package storage

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidImage signals a payload that is not decodable base64.
var ErrInvalidImage = errors.New("invalid image payload")

var dataURIPrefix = regexp.MustCompile(`^data:image/\w+;base64,`)

// LocalStore writes capture images into a directory served as static files.
type LocalStore struct {
	dir        string
	publicPath string
}

// NewLocalStore creates the upload directory if needed and returns a store.
func NewLocalStore(dir, publicPath string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &LocalStore{dir: dir, publicPath: publicPath}, nil
}

// Save decodes a raw-base64 or data-URI image payload, writes it to disk
// under a timestamp-derived name and returns the public path the file is
// served under. The short random suffix keeps same-millisecond uploads from
// colliding.
func (s *LocalStore) Save(payload string) (string, error) {
	raw := dataURIPrefix.ReplaceAllString(payload, "")
	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		data, err = base64.RawStdEncoding.DecodeString(raw)
		if err != nil {
			return "", ErrInvalidImage
		}
	}

	filename := fmt.Sprintf("capture_%d_%s.png", time.Now().UnixMilli(), uuid.NewString()[:8])
	if err := os.WriteFile(filepath.Join(s.dir, filename), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}
	return path.Join(s.publicPath, filename), nil
}

// Dir returns the filesystem directory images are written to
func (s *LocalStore) Dir() string {
	return s.dir
}
