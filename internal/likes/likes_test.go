package likes

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/glabrego/wikiscroll/internal/content"
)

func newStores(t *testing.T) map[string]Store {
	t.Helper()

	sqliteStore, err := Open(context.Background(), KindSQLite, filepath.Join(t.TempDir(), "likes.db"))
	if err != nil {
		t.Fatalf("Open sqlite returned error: %v", err)
	}
	t.Cleanup(func() { _ = sqliteStore.Close() })

	return map[string]Store{
		"memory": NewMemoryStore(),
		"sqlite": sqliteStore,
	}
}

func TestStore_TrackMergesCounts(t *testing.T) {
	for name, store := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			items := []content.Item{
				{ID: 1, Title: "One", Body: "b", CanonicalURL: "https://example.com/1", Media: &content.Media{URL: "https://img/1", Width: 4, Height: 3}},
				{ID: 2, Title: "Two", Body: "b", CanonicalURL: "https://example.com/2"},
			}

			tracked, err := store.Track(ctx, items)
			if err != nil {
				t.Fatalf("Track returned error: %v", err)
			}
			if len(tracked) != 2 || tracked[0].LikeCount != 0 {
				t.Fatalf("unexpected tracked items: %+v", tracked)
			}

			if _, err := store.Increment(ctx, 2); err != nil {
				t.Fatalf("Increment returned error: %v", err)
			}
			count, err := store.Increment(ctx, 2)
			if err != nil {
				t.Fatalf("Increment returned error: %v", err)
			}
			if count != 2 {
				t.Fatalf("expected 2 likes, got %d", count)
			}

			again, err := store.Track(ctx, items)
			if err != nil {
				t.Fatalf("second Track returned error: %v", err)
			}
			if again[1].ID != 2 || again[1].LikeCount != 2 {
				t.Fatalf("expected existing likes merged, got %+v", again[1])
			}
		})
	}
}

func TestStore_UnknownIdentifiers(t *testing.T) {
	for name, store := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			if _, err := store.Increment(ctx, 99); !errors.Is(err, content.ErrNotFound) {
				t.Fatalf("expected ErrNotFound, got %v", err)
			}
			count, ok, err := store.Get(ctx, 99)
			if err != nil {
				t.Fatalf("Get returned error: %v", err)
			}
			if ok || count != 0 {
				t.Fatalf("expected absent count, got %d ok=%v", count, ok)
			}
		})
	}
}

func TestStore_PopularOrdersByLikes(t *testing.T) {
	for name, store := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			items := []content.Item{
				{ID: 10, Title: "Ten", Body: "b", CanonicalURL: "u10"},
				{ID: 20, Title: "Twenty", Body: "b", CanonicalURL: "u20", Media: &content.Media{URL: "https://img/20"}},
				{ID: 30, Title: "Thirty", Body: "b", CanonicalURL: "u30"},
			}
			if _, err := store.Track(ctx, items); err != nil {
				t.Fatalf("Track returned error: %v", err)
			}
			for _, id := range []int64{20, 20, 30} {
				if _, err := store.Increment(ctx, id); err != nil {
					t.Fatalf("Increment returned error: %v", err)
				}
			}

			popular, err := store.Popular(ctx, 2)
			if err != nil {
				t.Fatalf("Popular returned error: %v", err)
			}
			if len(popular) != 2 {
				t.Fatalf("expected 2 popular items, got %d", len(popular))
			}
			if popular[0].ID != 20 || popular[0].LikeCount != 2 || popular[1].ID != 30 {
				t.Fatalf("unexpected popular order: %+v", popular)
			}
			if popular[0].Media == nil || popular[0].Media.URL != "https://img/20" {
				t.Fatalf("expected media to round-trip, got %+v", popular[0].Media)
			}
		})
	}
}

func TestOpen_UnknownKind(t *testing.T) {
	if _, err := Open(context.Background(), "redis", ""); err == nil {
		t.Fatal("expected error for unknown store kind")
	}
}
