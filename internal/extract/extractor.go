// Package extract turns one article URL into a structured record using a
// prioritized chain of selector strategies with text-quality fallbacks.
package extract

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/mvoronina/news-corpus/internal/article"
	"github.com/mvoronina/news-corpus/internal/crawler"
	"github.com/mvoronina/news-corpus/internal/metrics"
)

// Text-quality thresholds, in runes. Below the quality threshold the
// extractor retries with coarse full-text extraction; below the floor it
// synthesizes a placeholder so a record body is never near-empty.
const (
	qualityThreshold = 200
	placeholderFloor = 50
)

// Metadata selectors for the target site family.
const (
	titleSelector = "div.article__title"
	dateSelector  = "div.article__info-date a"
	topicSelector = "a[rel=tag]"
)

// Extractor fetches one article URL and extracts body text and metadata.
type Extractor struct {
	fetcher    crawler.Fetcher
	strategies []containerStrategy
	logger     *zap.Logger
}

// New constructs an Extractor with the default strategy chain.
func New(fetcher crawler.Fetcher, logger *zap.Logger) *Extractor {
	return &Extractor{
		fetcher:    fetcher,
		strategies: defaultStrategies(),
		logger:     logger,
	}
}

// Parse produces the record for rawURL. It never fails past its own
// boundary: transport errors, bad statuses, unparsable documents, and even
// a panicking selector chain all degrade to the placeholder-text record so
// one bad article cannot abort the batch.
func (e *Extractor) Parse(ctx context.Context, rawURL string, id int) (rec article.Record) {
	rec = article.New(rawURL, id)
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("article parse panicked", zap.String("url", rawURL), zap.Any("panic", r))
			if utf8.RuneCountInString(rec.Text) < placeholderFloor {
				rec.Text = placeholderText(rawURL)
				metrics.ObserveArticle(metrics.ResultPlaceholder)
			}
		}
	}()

	res, err := e.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		e.logger.Warn("article fetch failed", zap.String("url", rawURL), zap.Error(err))
		return e.placeholderRecord(rec)
	}
	if !res.OK() {
		e.logger.Warn("article returned non-2xx",
			zap.String("url", rawURL),
			zap.Int("status_code", res.StatusCode),
		)
		return e.placeholderRecord(rec)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body))
	if err != nil {
		e.logger.Warn("article parse failed", zap.String("url", rawURL), zap.Error(err))
		return e.placeholderRecord(rec)
	}

	// Metadata extraction is independent of body extraction and never
	// blocks it.
	e.fillMeta(doc, &rec)
	e.fillText(doc, &rec)
	return rec
}

func (e *Extractor) placeholderRecord(rec article.Record) article.Record {
	rec.Text = placeholderText(rec.URL)
	metrics.ObserveArticle(metrics.ResultPlaceholder)
	return rec
}

// fillText locates the content container through the strategy chain and
// applies the graded quality gate.
func (e *Extractor) fillText(doc *goquery.Document, rec *article.Record) {
	container := e.locateContainer(doc, rec.URL)
	if container == nil {
		rec.Text = placeholderText(rec.URL)
		metrics.ObserveArticle(metrics.ResultPlaceholder)
		return
	}

	text := paragraphText(container)
	result := metrics.ResultContent
	if utf8.RuneCountInString(text) < qualityThreshold {
		if coarse := collapse(container.Text()); utf8.RuneCountInString(coarse) > utf8.RuneCountInString(text) {
			text = coarse
			result = metrics.ResultCoarse
		}
	}
	if utf8.RuneCountInString(text) < placeholderFloor {
		text = placeholderText(rec.URL)
		result = metrics.ResultPlaceholder
	}

	rec.Text = text
	metrics.ObserveArticle(result)
}

func (e *Extractor) locateContainer(doc *goquery.Document, url string) *goquery.Selection {
	for _, strategy := range e.strategies {
		if sel := strategy.locate(doc); hasText(sel) {
			e.logger.Debug("content container located",
				zap.String("url", url),
				zap.String("strategy", strategy.name()),
			)
			return sel
		}
	}
	return nil
}

func (e *Extractor) fillMeta(doc *goquery.Document, rec *article.Record) {
	if title := collapse(doc.Find(titleSelector).First().Text()); title != "" {
		rec.Title = title
	}

	if raw := doc.Find(dateSelector).First().Text(); raw != "" {
		if published, ok := NormalizeDate(raw); ok {
			rec.Published = published
		}
	}

	doc.Find(topicSelector).Each(func(_ int, tag *goquery.Selection) {
		if topic := collapse(tag.Text()); topic != "" {
			rec.Topics = append(rec.Topics, topic)
		}
	})
}

// paragraphText extracts paragraph-level text from the container, falling
// back to the container's full text when no paragraph elements exist.
// Internal whitespace collapses to single spaces; blocks join with newlines.
func paragraphText(container *goquery.Selection) string {
	var blocks []string
	container.Find("p").Each(func(_ int, p *goquery.Selection) {
		if text := collapse(p.Text()); text != "" {
			blocks = append(blocks, text)
		}
	})
	if len(blocks) == 0 {
		return collapse(container.Text())
	}
	return strings.Join(blocks, "\n")
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// placeholderText synthesizes diagnostic filler long enough to satisfy the
// minimum-length invariant and embeds the source URL for later triage.
func placeholderText(url string) string {
	return fmt.Sprintf(
		"Content extraction failed for %s. The page could not be fetched or its "+
			"body was missing or too short, so this placeholder keeps the corpus "+
			"entry intact and marks the source for manual review.",
		url,
	)
}
