// Package pipeline wires discovery, extraction, and persistence into the
// sequential crawl run.
package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mvoronina/news-corpus/internal/article"
)

// Discoverer produces the bounded, deduplicated list of article URLs.
type Discoverer interface {
	Discover(ctx context.Context) ([]string, error)
}

// Extractor turns one article URL into a record. It never fails.
type Extractor interface {
	Parse(ctx context.Context, rawURL string, id int) article.Record
}

// Saver persists one record to durable storage.
type Saver interface {
	Save(rec article.Record) error
}

// Limiter paces extraction fetches per host.
type Limiter interface {
	Wait(ctx context.Context, rawURL string) error
}

// Runner executes one crawl run: discovery, then one extraction per URL,
// assigning dense 1-based identifiers in discovery order.
type Runner struct {
	discoverer Discoverer
	extractor  Extractor
	store      Saver
	limiter    Limiter
	logger     *zap.Logger
}

// NewRunner constructs a Runner.
func NewRunner(discoverer Discoverer, extractor Extractor, store Saver, limiter Limiter, logger *zap.Logger) *Runner {
	return &Runner{
		discoverer: discoverer,
		extractor:  extractor,
		store:      store,
		limiter:    limiter,
		logger:     logger,
	}
}

// Run performs the crawl and returns how many records were saved. Per-item
// extraction failures degrade to placeholder records inside the extractor;
// only cancellation and storage failures abort the run.
func (r *Runner) Run(ctx context.Context) (int, error) {
	urls, err := r.discoverer.Discover(ctx)
	if err != nil {
		return 0, fmt.Errorf("discover: %w", err)
	}

	saved := 0
	for i, url := range urls {
		if err := ctx.Err(); err != nil {
			return saved, fmt.Errorf("run stopped: %w", err)
		}
		if err := r.limiter.Wait(ctx, url); err != nil {
			return saved, fmt.Errorf("run stopped: %w", err)
		}

		rec := r.extractor.Parse(ctx, url, i+1)
		if err := r.store.Save(rec); err != nil {
			return saved, fmt.Errorf("save article %d: %w", rec.ID, err)
		}
		saved++
		r.logger.Info("article saved", zap.Int("id", rec.ID), zap.String("url", url))
	}
	return saved, nil
}
