package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"fleetrent-backend/internal/logger"
)

// LocalArchive keeps statements on the local filesystem.
type LocalArchive struct {
	baseURL string // Server URL (e.g., "http://localhost:8080")
	rootDir string
}

// NewLocalArchive creates the root directory if needed.
func NewLocalArchive(baseURL, rootDir string) (*LocalArchive, error) {
	if err := os.MkdirAll(rootDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create archive directory: %w", err)
	}
	return &LocalArchive{baseURL: strings.TrimRight(baseURL, "/"), rootDir: rootDir}, nil
}

// resolve maps a key to a path inside rootDir, rejecting anything that escapes it.
func (a *LocalArchive) resolve(key string) (string, error) {
	if key == "" || strings.HasPrefix(key, "/") || strings.Contains(key, "\\") {
		return "", ErrInvalidKey
	}
	clean := path.Clean(key)
	if clean != key || clean == "." || strings.HasPrefix(clean, "..") {
		return "", ErrInvalidKey
	}
	return filepath.Join(a.rootDir, filepath.FromSlash(clean)), nil
}

func (a *LocalArchive) Save(ctx context.Context, key string, reader io.Reader) error {
	fullPath, err := a.resolve(key)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directories: %w", err)
	}

	// write to a temp file first so readers never see a partial statement
	tmp, err := os.CreateTemp(filepath.Dir(fullPath), ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, reader); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := os.Rename(tmp.Name(), fullPath); err != nil {
		return fmt.Errorf("failed to store file: %w", err)
	}

	logger.DebugContext(ctx, "Archived object", "key", key)
	return nil
}

func (a *LocalArchive) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	fullPath, err := a.resolve(key)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return file, nil
}

func (a *LocalArchive) Exists(ctx context.Context, key string) (bool, int64, error) {
	fullPath, err := a.resolve(key)
	if err != nil {
		return false, 0, err
	}

	info, err := os.Stat(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, 0, nil
		}
		return false, 0, err
	}
	return true, info.Size(), nil
}

func (a *LocalArchive) Delete(ctx context.Context, key string) error {
	fullPath, err := a.resolve(key)
	if err != nil {
		return err
	}

	err = os.Remove(fullPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (a *LocalArchive) DownloadURL(key string) string {
	return fmt.Sprintf("%s/api/v1/statements/%s", a.baseURL, key)
}
