// Package crawler defines the core types and interfaces of the crawl
// pipeline: fetching, pacing, robots policy, and seed-page URL discovery.
package crawler

import (
	"context"
	"time"
)

// FetchResult is the outcome of one completed HTTP exchange. It is created
// per call and consumed immediately by the caller, never cached. The body
// has already been decoded with the configured encoding.
type FetchResult struct {
	URL        string
	StatusCode int
	Body       []byte
	Encoding   string
	Duration   time.Duration
}

// OK reports whether the response carries a 2xx status. Transport failures
// never produce a FetchResult; they surface as errors from Fetch.
func (r FetchResult) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Fetcher performs a single rate-governed HTTP GET. Implementations apply
// the configured headers, timeout, certificate policy, and encoding
// override, and do not retry: discovery and extraction decide their own
// tolerance for failures.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (FetchResult, error)
}

// Pacer blocks between requests so the target site is not hit in bursts.
type Pacer interface {
	Pause(ctx context.Context) error
}

// RobotsPolicy decides whether a URL may be fetched at all.
type RobotsPolicy interface {
	Allowed(ctx context.Context, rawURL string) bool
}
