package app

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/glabrego/wikiscroll/internal/content"
	"github.com/glabrego/wikiscroll/internal/likes"
	"github.com/glabrego/wikiscroll/internal/logging"
)

const (
	DefaultBatchSize    = 5
	MaxBatchSize        = 10
	DefaultPopularLimit = 10
	MaxPopularLimit     = 20
)

type Acquirer interface {
	AcquireInteresting(ctx context.Context, target int) content.Result
}

type Source interface {
	FetchRawBatch(ctx context.Context, count int) ([]content.Item, error)
}

// LikeResponse is the wire shape of the like endpoints.
type LikeResponse struct {
	ID        int64 `json:"id"`
	LikeCount int   `json:"likeCount"`
}

type Service struct {
	acquirer Acquirer
	source   Source
	likes    likes.Store
	logger   *log.Logger
}

func NewService(acquirer Acquirer, source Source, store likes.Store, logger *log.Logger) *Service {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Service{acquirer: acquirer, source: source, likes: store, logger: logger.WithPrefix("app")}
}

// Batch acquires up to size interesting items, clamped to [1, MaxBatchSize],
// and merges their like counts.
func (s *Service) Batch(ctx context.Context, size int) content.Result {
	size = clamp(size, 1, MaxBatchSize)
	res := s.acquirer.AcquireInteresting(ctx, size)
	if res.Failed() {
		s.logger.Warn("batch failed", "size", size, "err", res.Message)
		return res
	}
	res.Items = s.track(ctx, res.Items)
	return res
}

// Random returns one unfiltered item straight from the source.
func (s *Service) Random(ctx context.Context) content.Result {
	items, err := s.source.FetchRawBatch(ctx, 1)
	if err != nil {
		s.logger.Warn("random fetch failed", "err", err)
		return content.Failed(content.ErrorMessage(err))
	}
	if len(items) == 0 {
		return content.Failed("no article returned from upstream")
	}
	return content.OK(s.track(ctx, items[:1]))
}

func (s *Service) Like(ctx context.Context, id int64) (LikeResponse, error) {
	if id < 1 {
		return LikeResponse{}, content.Invalid("id", "must be a positive integer")
	}
	count, err := s.likes.Increment(ctx, id)
	if err != nil {
		return LikeResponse{}, fmt.Errorf("like item %d: %w", id, err)
	}
	return LikeResponse{ID: id, LikeCount: count}, nil
}

func (s *Service) Likes(ctx context.Context, id int64) (LikeResponse, error) {
	if id < 1 {
		return LikeResponse{}, content.Invalid("id", "must be a positive integer")
	}
	count, ok, err := s.likes.Get(ctx, id)
	if err != nil {
		return LikeResponse{}, fmt.Errorf("load likes for item %d: %w", id, err)
	}
	if !ok {
		return LikeResponse{}, fmt.Errorf("load likes for item %d: %w", id, content.ErrNotFound)
	}
	return LikeResponse{ID: id, LikeCount: count}, nil
}

// Popular lists the most liked items, limit clamped to [1, MaxPopularLimit].
func (s *Service) Popular(ctx context.Context, limit int) ([]content.Item, error) {
	items, err := s.likes.Popular(ctx, clamp(limit, 1, MaxPopularLimit))
	if err != nil {
		return nil, fmt.Errorf("load popular items: %w", err)
	}
	return items, nil
}

// track registers items with the like store. A store failure is logged and
// the items are returned unchanged.
func (s *Service) track(ctx context.Context, items []content.Item) []content.Item {
	tracked, err := s.likes.Track(ctx, items)
	if err != nil {
		s.logger.Error("track items", "count", len(items), "err", err)
		return items
	}
	return tracked
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
