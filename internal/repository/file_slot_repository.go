package repository

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
)

const (
	slotDirPerms  = 0o750
	slotFilePerms = 0o600
)

type fileSlotRepository struct {
	dir string
}

// NewFileSlotRepository stores each slot as <dir>/<key>.json, replaced atomically.
func NewFileSlotRepository(dir string) (SlotRepository, error) {
	if err := os.MkdirAll(dir, slotDirPerms); err != nil {
		return nil, fmt.Errorf("create slot dir: %w", err)
	}
	return &fileSlotRepository{dir: dir}, nil
}

func (r *fileSlotRepository) path(key string) string {
	safe := strings.NewReplacer("/", "_", `\`, "_", "..", "_").Replace(key)
	return filepath.Join(r.dir, safe+".json")
}

func (r *fileSlotRepository) Get(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(r.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read slot %s: %w", key, err)
	}
	return data, nil
}

func (r *fileSlotRepository) Put(_ context.Context, key string, value []byte) error {
	path := r.path(key)
	if err := atomic.WriteFile(path, bytes.NewReader(value)); err != nil {
		return fmt.Errorf("write slot %s: %w", key, err)
	}
	// atomic.WriteFile doesn't set permissions on new files
	if err := os.Chmod(path, slotFilePerms); err != nil {
		return fmt.Errorf("chmod slot %s: %w", key, err)
	}
	return nil
}

func (r *fileSlotRepository) Ping(context.Context) error {
	info, err := os.Stat(r.dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", r.dir)
	}
	return nil
}
