// Package filestore keeps the state snapshot as a plain file on disk, one
// file per key, through diskv.
package filestore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/peterbourgon/diskv/v3"

	"github.com/dori/tackle/internal/store"
)

// DirName is the directory created inside the data directory
const DirName = "snapshots"

// Store is a store.Backend writing each key to its own file under a base
// directory.
type Store struct {
	d *diskv.Diskv
}

// Open returns a file backend rooted at basePath. The directory is created
// on the first write.
func Open(basePath string) *Store {
	return &Store{d: diskv.New(diskv.Options{
		BasePath:     basePath,
		TempDir:      filepath.Join(basePath, ".tmp"),
		CacheSizeMax: 1024 * 1024, // 1MB
	})}
}

// Read returns the file stored under key
func (s *Store) Read(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := s.d.Read(key)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, store.ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return b, nil
}

// Write replaces the file stored under key. diskv writes to a temporary
// file and renames it, so a crash never leaves half a snapshot behind.
func (s *Store) Write(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.d.WriteStream(key, bytes.NewReader(data), true); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}
