// ABOUTME: Local badger-backed cache for document responses.
// ABOUTME: TTL entries keyed by document id; invalidated on every write.

package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	badger "github.com/dgraph-io/badger/v3"
	"github.com/google/uuid"

	"github.com/harper/docs-mcp/internal/models"
)

// ErrMiss is returned when a document is not cached or has expired.
var ErrMiss = errors.New("cache miss")

// Cache stores recently fetched documents so repeated MCP tool calls
// against the same document skip the network.
type Cache struct {
	db  *badger.DB
	ttl time.Duration
}

// DefaultDir returns the cache directory path.
func DefaultDir() string {
	cacheHome := os.Getenv("XDG_CACHE_HOME")
	if cacheHome == "" {
		home, _ := os.UserHomeDir()
		cacheHome = filepath.Join(home, ".cache")
	}
	return filepath.Join(cacheHome, "docs-mcp")
}

// Open opens (or creates) the cache at dir with the given entry TTL.
func Open(dir string, ttl time.Duration) (*Cache, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	return &Cache{db: db, ttl: ttl}, nil
}

func (c *Cache) Close() error {
	return c.db.Close()
}

func docKey(id uuid.UUID) []byte {
	return []byte("doc/" + id.String())
}

// GetDocument returns the cached document, or ErrMiss.
func (c *Cache) GetDocument(id uuid.UUID) (*models.Document, error) {
	var doc models.Document
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(docKey(id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &doc)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// PutDocument stores a document with the cache TTL.
func (c *Cache) PutDocument(doc *models.Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return c.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry(docKey(doc.ID), data).WithTTL(c.ttl)
		return txn.SetEntry(e)
	})
}

// Invalidate drops a document after any write to it.
func (c *Cache) Invalidate(id uuid.UUID) error {
	return c.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete(docKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		return err
	})
}
