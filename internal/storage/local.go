package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// LocalStore keeps banners on disk, served by the HTTP server under
// /static/banners/. It is the default backend.
type LocalStore struct {
	dir string
}

func NewLocal(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create banner dir: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

// Dir is the directory the HTTP server mounts at /static/banners/.
func (l *LocalStore) Dir() string {
	return l.dir
}

func (l *LocalStore) Put(_ context.Context, key string, _ string, data []byte) error {
	path := filepath.Join(l.dir, filepath.Base(key))
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write banner %s: %w", key, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("store banner %s: %w", key, err)
	}
	return nil
}

func (l *LocalStore) Delete(_ context.Context, key string) error {
	err := os.Remove(filepath.Join(l.dir, filepath.Base(key)))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete banner %s: %w", key, err)
	}
	return nil
}

// List returns every stored banner key with its modification time.
// Leftover .tmp files count as banners so the cleanup sweep can
// collect them once they age out.
func (l *LocalStore) List(_ context.Context) (map[string]time.Time, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, fmt.Errorf("list banners: %w", err)
	}
	objects := make(map[string]time.Time, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		objects[entry.Name()] = info.ModTime()
	}
	return objects, nil
}

func (l *LocalStore) PublicURL(key string) string {
	return "/static/banners/" + key
}
