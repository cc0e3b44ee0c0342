// Package acquire turns a noisy random-item source into a stream of
// interesting items under a bounded retry budget.
package acquire

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/glabrego/wikiscroll/internal/content"
	"github.com/glabrego/wikiscroll/internal/logging"
)

const (
	// MinExtractLength is the body length, in characters, an item must exceed.
	MinExtractLength = 200
	// BatchMultiplier oversamples each batch relative to the remaining need.
	BatchMultiplier = 3
	// MaxFetchAttempts bounds the source calls made per acquisition.
	MaxFetchAttempts = 10
)

// Source yields raw, unfiltered items.
type Source interface {
	FetchRawBatch(ctx context.Context, count int) ([]content.Item, error)
}

// Qualifies reports whether an item is worth a card: it has media and a
// real body longer than MinExtractLength.
func Qualifies(item content.Item) bool {
	return item.HasMedia() &&
		utf8.RuneCountInString(item.Body) > MinExtractLength &&
		item.Body != content.BodyUnavailable
}

// Acquirer runs the acquisition loop against one Source.
type Acquirer struct {
	source Source
	logger *log.Logger
}

// New returns an Acquirer; a nil logger discards.
func New(source Source, logger *log.Logger) *Acquirer {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Acquirer{source: source, logger: logger.WithPrefix("acquire")}
}

// AcquireInteresting oversamples the source until target qualifying items
// are collected or MaxFetchAttempts batches have been pulled.
//
// A source failure stops the loop at once. It is a hard failure only when
// nothing has been collected yet; otherwise the collected items come back as
// a partial result. Running out of attempts is always partial, even with no
// items at all.
func (a *Acquirer) AcquireInteresting(ctx context.Context, target int) content.Result {
	if target < 1 {
		target = 1
	}

	found := make([]content.Item, 0, target)
	attempts := 0
	for len(found) < target && attempts < MaxFetchAttempts {
		if err := ctx.Err(); err != nil {
			return a.abort(found, err)
		}

		batchSize := max(target-len(found), 1) * BatchMultiplier
		raw, err := a.source.FetchRawBatch(ctx, batchSize)
		if err != nil {
			return a.abort(found, err)
		}

		kept := 0
		for _, item := range raw {
			if Qualifies(item) {
				found = append(found, item)
				kept++
			}
		}
		attempts++
		a.logger.Debug("batch filtered", "attempt", attempts, "requested", batchSize, "received", len(raw), "kept", kept)
	}

	if len(found) > target {
		found = found[:target]
	}
	if len(found) < target {
		msg := fmt.Sprintf("Could only find %d interesting articles instead of %d requested", len(found), target)
		a.logger.Warn("acquisition shortfall", "found", len(found), "target", target, "attempts", attempts)
		return content.Partial(found, msg)
	}
	return content.OK(found)
}

func (a *Acquirer) abort(found []content.Item, err error) content.Result {
	msg := content.ErrorMessage(err)
	a.logger.Error("acquisition stopped", "err", err, "kept", len(found))
	if len(found) == 0 {
		return content.Failed(msg)
	}
	return content.Partial(found, msg)
}
