package likes

import (
	"context"
	"fmt"
)

const (
	KindMemory = "memory"
	KindSQLite = "sqlite"
)

// Open selects a Store implementation by kind. SQLite stores are
// initialized and checked for writability before being returned.
func Open(ctx context.Context, kind, dbPath string) (Store, error) {
	switch kind {
	case "", KindMemory:
		return NewMemoryStore(), nil
	case KindSQLite:
		store, err := NewSQLiteStore(dbPath)
		if err != nil {
			return nil, err
		}
		if err := store.Init(ctx); err != nil {
			_ = store.Close()
			return nil, err
		}
		if err := store.CheckWritable(ctx); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("storage write check failed (%w), verify the database path is writable: %s", err, dbPath)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown like store %q (use %q or %q)", kind, KindMemory, KindSQLite)
	}
}
