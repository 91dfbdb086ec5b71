// Package store persists feed documents as XML files, one per channel.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mmcdole/gofeed"
)

// ErrNotFound is returned by Load when the channel has no feed document.
var ErrNotFound = errors.New("feed document not found")

// Repository reads and writes feed documents under a single directory.
type Repository struct {
	dir string
}

func New(dir string) *Repository {
	return &Repository{dir: dir}
}

// Load reads and parses the named feed document.
func (r *Repository) Load(name string) (*gofeed.Feed, error) {
	f, err := os.Open(r.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open feed document: %w", err)
	}
	defer f.Close()

	parsed, err := gofeed.NewParser().Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed document %q: %w", name, err)
	}
	return parsed, nil
}

// Save atomically replaces the named feed document. The new content is
// written to a temporary file first and renamed into place, so a failed
// run never leaves a truncated document behind.
func (r *Repository) Save(name string, data []byte) error {
	tmp, err := os.CreateTemp(r.dir, name+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary feed file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write feed document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close feed document: %w", err)
	}
	if err := os.Rename(tmp.Name(), r.path(name)); err != nil {
		return fmt.Errorf("failed to replace feed document: %w", err)
	}
	return nil
}

func (r *Repository) path(name string) string {
	return filepath.Join(r.dir, name+".xml")
}
