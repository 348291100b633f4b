// Package file stores persistence slots as files in a directory, one file per key.
package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mapty/workout-tracker/internal/repository"

	"github.com/spf13/afero"
)

// fileSlotRepository implements repository.SlotRepository on top of an afero filesystem.
type fileSlotRepository struct {
	fs  afero.Fs
	dir string
}

// NewFileSlotRepository stores slots under dir on the OS filesystem.
func NewFileSlotRepository(dir string) (repository.SlotRepository, error) {
	return NewFsSlotRepository(afero.NewOsFs(), dir)
}

// NewFsSlotRepository stores slots under dir on the given filesystem.
func NewFsSlotRepository(fs afero.Fs, dir string) (repository.SlotRepository, error) {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create slot directory %q: %w", dir, err)
	}
	return &fileSlotRepository{fs: fs, dir: dir}, nil
}

func (r *fileSlotRepository) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid slot key %q", key)
	}
	return filepath.Join(r.dir, key+".json"), nil
}

func (r *fileSlotRepository) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p, err := r.path(key)
	if err != nil {
		return nil, err
	}
	data, err := afero.ReadFile(r.fs, p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

// Put writes to a temp file and renames it over the slot so readers never
// observe a half-written list.
func (r *fileSlotRepository) Put(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := r.path(key)
	if err != nil {
		return err
	}
	tmp := p + ".tmp"
	if err := afero.WriteFile(r.fs, tmp, value, 0o644); err != nil {
		return err
	}
	return r.fs.Rename(tmp, p)
}

func (r *fileSlotRepository) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := r.path(key)
	if err != nil {
		return err
	}
	if err := r.fs.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
