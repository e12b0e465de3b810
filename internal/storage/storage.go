package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"fashionswap-backend/internal/logger"
)

var ErrNotFound = errors.New("image not found")

// ImageStore keeps listing photos. Keys are derived from the stored bytes,
// so uploading the same photo twice yields the same key.
type ImageStore interface {
	Save(ctx context.Context, data []byte) (key string, err error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	URL(key string) string
}

// LocalImageStore implements ImageStore on the local filesystem and serves
// images through the HTTP API.
type LocalImageStore struct {
	baseURL   string // e.g. "http://localhost:8080"
	imagesDir string
}

func NewLocalImageStore(baseURL, dir string) (*LocalImageStore, error) {
	imagesDir := filepath.Join(dir, "images")
	if err := os.MkdirAll(imagesDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create images directory: %w", err)
	}
	return &LocalImageStore{
		baseURL:   strings.TrimRight(baseURL, "/"),
		imagesDir: imagesDir,
	}, nil
}

func (s *LocalImageStore) Save(ctx context.Context, data []byte) (string, error) {
	key := contentKey(data)
	fullPath := filepath.Join(s.imagesDir, key)
	if _, err := os.Stat(fullPath); err == nil {
		return key, nil
	}

	// Write then rename so readers never see a partial file.
	tmp, err := os.CreateTemp(s.imagesDir, "upload-*")
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if err := os.Rename(tmp.Name(), fullPath); err != nil {
		return "", fmt.Errorf("failed to store file: %w", err)
	}

	logger.Debug("Image stored", "key", key, "size", len(data))
	return key, nil
}

func (s *LocalImageStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	if !validKey(key) {
		return nil, ErrNotFound
	}
	file, err := os.Open(filepath.Join(s.imagesDir, key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return file, nil
}

func (s *LocalImageStore) URL(key string) string {
	return s.baseURL + "/api/v1/images/" + key
}

// contentKey creates a URL-safe hash of the image bytes
func contentKey(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:16]) + ".jpg"
}

func validKey(key string) bool {
	name, ok := strings.CutSuffix(key, ".jpg")
	if !ok || len(name) != 32 {
		return false
	}
	_, err := hex.DecodeString(name)
	return err == nil
}
