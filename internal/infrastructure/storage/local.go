package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"book-catalog/internal/config"
)

// LocalBackend stores cover assets on the local filesystem. It serves as the
// fallback behind the MinIO backend and is served by the web layer under
// a public base URL.
type LocalBackend struct {
	path    string
	baseURL string
}

func NewLocalBackend(cfg config.LocalStorageConfig) (*LocalBackend, error) {
	if err := os.MkdirAll(cfg.Path, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	return &LocalBackend{
		path:    cfg.Path,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
	}, nil
}

func (b *LocalBackend) filePath(name string) string {
	// Names are generated by the gateway, but never trust them as paths.
	return filepath.Join(b.path, filepath.Base(name))
}

func (b *LocalBackend) Upload(_ context.Context, name string, data []byte, _ string) error {
	if err := os.WriteFile(b.filePath(name), data, 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

func (b *LocalBackend) Delete(_ context.Context, name string) error {
	if err := os.Remove(b.filePath(name)); err != nil {
		return fmt.Errorf("failed to remove file: %w", err)
	}
	return nil
}

func (b *LocalBackend) Exists(_ context.Context, name string) (bool, error) {
	_, err := os.Stat(b.filePath(name))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat file: %w", err)
	}
	return true, nil
}

func (b *LocalBackend) PublicURL(name string) string {
	return b.baseURL + "/" + filepath.Base(name)
}
