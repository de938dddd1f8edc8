// Package catalog is the list container for submitted movies. It keeps them
// in submission order, gives each an opaque ID, and reads and writes them as
// YAML, JSON or TOML.
package catalog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/xid"

	"github.com/oakwood-commons/reel/internal/movie"
	"github.com/oakwood-commons/reel/pkg/logger"
)

// Entry is one stored movie.
type Entry struct {
	ID    string      `yaml:"id" json:"id" toml:"id"`
	Movie movie.Movie `yaml:"movie" json:"movie" toml:"movie"`
}

// Catalog holds submitted movies. It is safe for concurrent use.
type Catalog struct {
	mu      sync.RWMutex
	entries []Entry
}

// New returns an empty catalog.
func New() *Catalog {
	return &Catalog{}
}

// Add validates m and appends it.
func (c *Catalog) Add(ctx context.Context, m movie.Movie) (Entry, error) {
	if err := movie.Validate(m); err != nil {
		return Entry{}, err
	}
	e := Entry{ID: xid.New().String(), Movie: m}

	c.mu.Lock()
	c.entries = append(c.entries, e)
	n := len(c.entries)
	c.mu.Unlock()

	logger.FromContext(ctx).Info("movie added", "id", e.ID, "title", m.Title, "count", n)
	return e, nil
}

// Entries returns a copy of the stored entries in submission order.
func (c *Catalog) Entries() []Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Entry(nil), c.entries...)
}

// Len returns the number of stored entries.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Load appends the entries stored at path. A missing file is not an error.
// Entries without an ID get one; every movie must satisfy the record
// invariant.
func (c *Catalog) Load(ctx context.Context, path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		logger.FromContext(ctx).V(1).Info("catalog file not found, starting empty", "path", path)
		return nil
	}
	if err != nil {
		return fmt.Errorf("read catalog: %w", err)
	}
	entries, err := Decode(bytes.NewReader(data), format)
	if err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	for i := range entries {
		if err := movie.Validate(entries[i].Movie); err != nil {
			return fmt.Errorf("%s entry %d: %w", path, i, err)
		}
		if entries[i].ID == "" {
			entries[i].ID = xid.New().String()
		}
	}

	c.mu.Lock()
	c.entries = append(c.entries, entries...)
	c.mu.Unlock()

	logger.FromContext(ctx).Info("catalog loaded", "path", path, "count", len(entries))
	return nil
}

// Save writes every entry to path in the format implied by its extension.
func (c *Catalog) Save(ctx context.Context, path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := c.Encode(&buf, format); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create catalog directory: %w", err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write catalog: %w", err)
	}
	logger.FromContext(ctx).Info("catalog saved", "path", path, "count", c.Len())
	return nil
}
