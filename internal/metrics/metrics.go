// Package metrics exposes Prometheus collectors for the corpus crawler.
package metrics

import (
	"net/url"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Fetch outcome labels.
const (
	OutcomeSuccess   = "success"
	OutcomeTransport = "transport_error"
	OutcomeStatus    = "non_2xx"
)

// Extraction result labels.
const (
	ResultContent     = "content"
	ResultCoarse      = "coarse_fallback"
	ResultPlaceholder = "placeholder"
)

var (
	fetchesTotal       *prometheus.CounterVec
	fetchBytesTotal    *prometheus.CounterVec
	articlesTotal      *prometheus.CounterVec
	discoveredURLTotal prometheus.Counter

	once sync.Once
)

// Init initializes the Prometheus metrics collectors.
// It is safe to call this function multiple times.
func Init() {
	once.Do(func() {
		fetchesTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "corpus_fetches_total",
				Help: "Total number of HTTP fetches, labeled by site and outcome.",
			},
			[]string{"site", "outcome"},
		)

		fetchBytesTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "corpus_fetch_bytes_total",
				Help: "Total number of body bytes fetched, labeled by site.",
			},
			[]string{"site"},
		)

		articlesTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "corpus_articles_total",
				Help: "Total number of article records produced, labeled by extraction result.",
			},
			[]string{"result"},
		)

		discoveredURLTotal = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "corpus_discovered_urls_total",
				Help: "Total number of unique article URLs produced by discovery.",
			},
		)
	})
}

// SanitizeSite sanitizes a URL to extract a lowercase hostname.
// It returns "unknown" if the URL is invalid.
func SanitizeSite(rawURL string) string {
	if !strings.HasPrefix(rawURL, "http") {
		rawURL = "http://" + rawURL
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return "unknown"
	}
	return strings.ToLower(u.Hostname())
}

// ObserveFetch increments the fetch counters for one HTTP exchange.
func ObserveFetch(site, outcome string, bytesFetched int) {
	Init()
	fetchesTotal.WithLabelValues(SanitizeSite(site), outcome).Inc()
	if bytesFetched > 0 {
		fetchBytesTotal.WithLabelValues(SanitizeSite(site)).Add(float64(bytesFetched))
	}
}

// ObserveArticle increments the article counter for the given extraction result.
func ObserveArticle(result string) {
	Init()
	articlesTotal.WithLabelValues(result).Inc()
}

// AddDiscoveredURLs records how many unique URLs a discovery run produced.
func AddDiscoveredURLs(count int) {
	Init()
	discoveredURLTotal.Add(float64(count))
}
