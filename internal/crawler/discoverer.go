package crawler

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/mvoronina/news-corpus/internal/metrics"
)

// LinkSelector names the site-specific elements that carry article links on
// a seed page: a container matched per candidate, and the anchor inside it
// whose href is the article URL. An empty Anchor means the container itself
// is the anchor.
type LinkSelector struct {
	Container string
	Anchor    string
}

// DefaultLinkSelector matches the target site family's listing markup.
func DefaultLinkSelector() LinkSelector {
	return LinkSelector{
		Container: "h1.entry-title",
		Anchor:    "a.list-item__title",
	}
}

// DiscovererConfig captures the per-run discovery parameters.
type DiscovererConfig struct {
	Seeds    []string
	Limit    int
	Selector LinkSelector
	Deny     []string
}

// Discoverer walks seed pages and collects up to Limit unique article URLs
// in first-seen order. A broken seed is skipped, never fatal.
type Discoverer struct {
	cfg     DiscovererConfig
	fetcher Fetcher
	pacer   Pacer
	robots  RobotsPolicy
	logger  *zap.Logger
}

// NewDiscoverer constructs a Discoverer.
func NewDiscoverer(cfg DiscovererConfig, fetcher Fetcher, pacer Pacer, robots RobotsPolicy, logger *zap.Logger) *Discoverer {
	if cfg.Selector.Container == "" {
		cfg.Selector = DefaultLinkSelector()
	}
	if robots == nil {
		robots = &allowAllPolicy{}
	}
	return &Discoverer{
		cfg:     cfg,
		fetcher: fetcher,
		pacer:   pacer,
		robots:  robots,
		logger:  logger,
	}
}

// discoverySession confines the mutable run state (dedup set and ordered
// result) to one Discover call. Both are mutated only by the discovery
// loop; order and the target-count cutoff depend on that single-writer
// discipline.
type discoverySession struct {
	seen  map[string]struct{}
	urls  []string
	limit int
}

func newDiscoverySession(limit int) *discoverySession {
	return &discoverySession{
		seen:  make(map[string]struct{}),
		limit: limit,
	}
}

// add records url if it was not seen before. Duplicates are dropped
// silently and do not count toward the limit.
func (s *discoverySession) add(url string) {
	if _, dup := s.seen[url]; dup {
		return
	}
	s.seen[url] = struct{}{}
	s.urls = append(s.urls, url)
}

func (s *discoverySession) full() bool {
	return len(s.urls) >= s.limit
}

// Discover iterates the seed URLs in order and returns at most Limit unique
// article URLs. The context is observed between fetches, so cancellation
// takes effect before the next request is issued. Exhausting all seeds
// before the limit is reached is not an error: the run simply produces a
// shorter corpus.
func (d *Discoverer) Discover(ctx context.Context) ([]string, error) {
	session := newDiscoverySession(d.cfg.Limit)

	for _, seed := range d.cfg.Seeds {
		if err := ctx.Err(); err != nil {
			return session.urls, fmt.Errorf("discovery stopped: %w", err)
		}
		if err := d.pacer.Pause(ctx); err != nil {
			return session.urls, fmt.Errorf("discovery stopped: %w", err)
		}
		if !d.robots.Allowed(ctx, seed) {
			d.logger.Warn("seed disallowed by robots policy", zap.String("seed", seed))
			continue
		}

		d.harvestSeed(ctx, seed, session)
		if session.full() {
			break
		}
	}

	metrics.AddDiscoveredURLs(len(session.urls))
	d.logger.Info("discovery finished",
		zap.Int("urls", len(session.urls)),
		zap.Int("limit", d.cfg.Limit),
	)
	return session.urls, nil
}

// harvestSeed fetches one seed page and feeds its candidate links into the
// session until the page or the limit is exhausted. Any per-seed failure is
// logged and absorbed.
func (d *Discoverer) harvestSeed(ctx context.Context, seed string, session *discoverySession) {
	res, err := d.fetcher.Fetch(ctx, seed)
	if err != nil {
		d.logger.Warn("seed fetch failed; skipping", zap.String("seed", seed), zap.Error(err))
		return
	}
	if !res.OK() {
		d.logger.Warn("seed returned non-2xx; skipping",
			zap.String("seed", seed),
			zap.Int("status_code", res.StatusCode),
		)
		return
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body))
	if err != nil {
		d.logger.Warn("seed parse failed; skipping", zap.String("seed", seed), zap.Error(err))
		return
	}
	origin, err := Origin(seed)
	if err != nil {
		d.logger.Warn("seed has no origin; skipping", zap.String("seed", seed), zap.Error(err))
		return
	}

	doc.Find(d.cfg.Selector.Container).EachWithBreak(func(_ int, container *goquery.Selection) bool {
		anchor := container
		if d.cfg.Selector.Anchor != "" {
			anchor = container.Find(d.cfg.Selector.Anchor).First()
		}
		href, exists := anchor.Attr("href")
		if !exists {
			return true
		}

		candidate := ResolveCandidate(href, origin)
		if candidate == "" {
			return true
		}
		normalized, err := NormalizeURL(candidate)
		if err != nil || d.denied(normalized) {
			return true
		}

		session.add(normalized)
		return !session.full()
	})
}

func (d *Discoverer) denied(url string) bool {
	for _, fragment := range d.cfg.Deny {
		if fragment != "" && strings.Contains(url, fragment) {
			return true
		}
	}
	return false
}
