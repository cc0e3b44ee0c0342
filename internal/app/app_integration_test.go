package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/glabrego/wikiscroll/internal/acquire"
	"github.com/glabrego/wikiscroll/internal/content"
	"github.com/glabrego/wikiscroll/internal/likes"
	"github.com/glabrego/wikiscroll/internal/wikipedia"
)

func TestIntegration_BatchLikeAndPopular(t *testing.T) {
	if os.Getenv("WIKISCROLL_INTEGRATION") != "1" {
		t.Skip("set WIKISCROLL_INTEGRATION=1 to run integration tests")
	}

	baseURL := os.Getenv("WIKISCROLL_API_BASE_URL")
	if baseURL == "" {
		baseURL = wikipedia.DefaultAPIBaseURL
	}

	ctx, cancel := context.WithTimeout(context.Background(), 45*time.Second)
	defer cancel()

	store, err := likes.Open(ctx, likes.KindSQLite, filepath.Join(t.TempDir(), "wikiscroll-integration.db"))
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	client := wikipedia.NewClient(baseURL, nil, wikipedia.NewLimiter(200*time.Millisecond))
	svc := NewService(acquire.New(client, nil), client, store, nil)

	res := svc.Batch(ctx, 2)
	if res.Failed() {
		t.Fatalf("Batch failed: %s", res.Message)
	}
	for _, item := range res.Items {
		if !acquire.Qualifies(item) {
			t.Fatalf("non-qualifying item returned: %+v", item)
		}
		if item.CanonicalURL == "" {
			t.Fatalf("expected canonical URL for item %d", item.ID)
		}
	}

	liked := res.Items[0]
	resp, err := svc.Like(ctx, liked.ID)
	if err != nil {
		t.Fatalf("Like returned error: %v", err)
	}
	if resp.LikeCount != 1 {
		t.Fatalf("expected first like to count 1, got %d", resp.LikeCount)
	}

	popular, err := svc.Popular(ctx, 1)
	if err != nil {
		t.Fatalf("Popular returned error: %v", err)
	}
	if len(popular) != 1 || popular[0].ID != liked.ID {
		t.Fatalf("expected liked item on top, got %+v", content.IDs(popular))
	}

	random := svc.Random(ctx)
	if random.Failed() || len(random.Items) != 1 {
		t.Fatalf("unexpected random result: %+v", random)
	}
}
