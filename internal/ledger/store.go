// Package ledger records one outcome per game per day over an abstract
// key-value store.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrNotFound is returned by Store.Get when a key has no value.
var ErrNotFound = errors.New("ledger: key not found")

// Store is the persistence medium the ledger writes through.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Exists(ctx context.Context, key string) (bool, error)
}

// ClosableStore is a Store that owns an underlying resource.
type ClosableStore interface {
	Store
	io.Closer
}

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendBolt   = "bolt"
	BackendBadger = "badger"
	BackendSQLite = "sqlite"
)

// Backends lists every name Open understands.
var Backends = []string{BackendMemory, BackendFile, BackendBolt, BackendBadger, BackendSQLite}

// Open opens the named backend at path. path is ignored for memory.
func Open(backend, path string) (ClosableStore, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case BackendMemory, "":
		return NewMemoryStore(), nil
	case BackendFile:
		return NewFileStore(path)
	case BackendBolt:
		return OpenBolt(path)
	case BackendBadger:
		return OpenBadger(path)
	case BackendSQLite:
		return OpenSQLite(path)
	default:
		return nil, fmt.Errorf("unknown ledger backend %q (want one of %v)", backend, Backends)
	}
}

type prefixStore struct {
	inner  Store
	prefix string
}

// Prefixed scopes every key of inner under prefix.
func Prefixed(inner Store, prefix string) Store {
	return prefixStore{inner: inner, prefix: prefix}
}

func (p prefixStore) Get(ctx context.Context, key string) ([]byte, error) {
	return p.inner.Get(ctx, p.prefix+key)
}

func (p prefixStore) Set(ctx context.Context, key string, value []byte) error {
	return p.inner.Set(ctx, p.prefix+key, value)
}

func (p prefixStore) Exists(ctx context.Context, key string) (bool, error) {
	return p.inner.Exists(ctx, p.prefix+key)
}
