package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadValidConfig(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `{
		"seed_urls": ["https://example.test/news/"],
		"total_articles_to_find_and_parse": 10,
		"headers": {"User-Agent": "corpus-bot/1.0", "Accept": "text/html"},
		"encoding": "windows-1251",
		"timeout": 45,
		"should_verify_certificate": false,
		"headless_mode": false,
		"output_dir": "out/articles",
		"deny_substrings": ["/broken/"]
	}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(cfg.SeedURLs) != 1 || cfg.SeedURLs[0] != "https://example.test/news/" {
		t.Fatalf("unexpected seed urls: %v", cfg.SeedURLs)
	}
	if cfg.TotalArticles != 10 {
		t.Fatalf("expected 10 articles, got %d", cfg.TotalArticles)
	}
	if cfg.Headers["user-agent"] != "corpus-bot/1.0" {
		t.Fatalf("expected user agent header, got %v", cfg.Headers)
	}
	if cfg.Encoding != "windows-1251" {
		t.Fatalf("expected windows-1251 encoding, got %q", cfg.Encoding)
	}
	if cfg.Timeout != 45*time.Second {
		t.Fatalf("expected 45s timeout, got %v", cfg.Timeout)
	}
	if cfg.VerifyCertificate || cfg.HeadlessMode {
		t.Fatal("expected both boolean flags to be false")
	}
	if cfg.OutputDir != "out/articles" {
		t.Fatalf("expected output dir override, got %q", cfg.OutputDir)
	}
	if len(cfg.DenySubstrings) != 1 || cfg.DenySubstrings[0] != "/broken/" {
		t.Fatalf("expected deny substrings, got %v", cfg.DenySubstrings)
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `{
		"seed_urls": ["https://example.test/news/"],
		"total_articles_to_find_and_parse": 3
	}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Encoding != "utf-8" {
		t.Fatalf("expected utf-8 default, got %q", cfg.Encoding)
	}
	if cfg.Timeout != 30*time.Second {
		t.Fatalf("expected 30s default timeout, got %v", cfg.Timeout)
	}
	if !cfg.VerifyCertificate || !cfg.HeadlessMode {
		t.Fatal("expected both boolean flags to default to true")
	}
	if len(cfg.Headers) != 0 {
		t.Fatalf("expected empty default headers, got %v", cfg.Headers)
	}
	if cfg.OutputDir == "" {
		t.Fatal("expected a default output dir")
	}
}

func TestLoadValidationKinds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		want error
	}{
		{
			name: "seed urls not a list",
			body: `{"seed_urls": "https://example.test/", "total_articles_to_find_and_parse": 5}`,
			want: ErrSeedURL,
		},
		{
			name: "seed urls empty list",
			body: `{"seed_urls": [], "total_articles_to_find_and_parse": 5}`,
			want: ErrSeedURL,
		},
		{
			name: "seed url without path",
			body: `{"seed_urls": ["https://example.test"], "total_articles_to_find_and_parse": 5}`,
			want: ErrSeedURL,
		},
		{
			name: "seed url wrong scheme",
			body: `{"seed_urls": ["ftp://example.test/news/"], "total_articles_to_find_and_parse": 5}`,
			want: ErrSeedURL,
		},
		{
			name: "seed url non-string element",
			body: `{"seed_urls": [42], "total_articles_to_find_and_parse": 5}`,
			want: ErrSeedURL,
		},
		{
			name: "headers not a map",
			body: `{"seed_urls": ["https://example.test/news/"], "headers": ["User-Agent"], "total_articles_to_find_and_parse": 5}`,
			want: ErrHeaders,
		},
		{
			name: "header value not a string",
			body: `{"seed_urls": ["https://example.test/news/"], "headers": {"Accept": 5}, "total_articles_to_find_and_parse": 5}`,
			want: ErrHeaders,
		},
		{
			name: "header value with newline",
			body: `{"seed_urls": ["https://example.test/news/"], "headers": {"Accept": "text/html\nX-Evil: 1"}, "total_articles_to_find_and_parse": 5}`,
			want: ErrHeaders,
		},
		{
			name: "articles count as string",
			body: `{"seed_urls": ["https://example.test/news/"], "total_articles_to_find_and_parse": "10"}`,
			want: ErrArticlesType,
		},
		{
			name: "articles count as boolean",
			body: `{"seed_urls": ["https://example.test/news/"], "total_articles_to_find_and_parse": true}`,
			want: ErrArticlesType,
		},
		{
			name: "articles count fractional",
			body: `{"seed_urls": ["https://example.test/news/"], "total_articles_to_find_and_parse": 10.5}`,
			want: ErrArticlesType,
		},
		{
			name: "articles count zero",
			body: `{"seed_urls": ["https://example.test/news/"], "total_articles_to_find_and_parse": 0}`,
			want: ErrArticlesType,
		},
		{
			name: "articles count missing",
			body: `{"seed_urls": ["https://example.test/news/"]}`,
			want: ErrArticlesType,
		},
		{
			name: "articles count above limit",
			body: `{"seed_urls": ["https://example.test/news/"], "total_articles_to_find_and_parse": 151}`,
			want: ErrArticlesRange,
		},
		{
			name: "encoding not a string",
			body: `{"seed_urls": ["https://example.test/news/"], "total_articles_to_find_and_parse": 5, "encoding": 1251}`,
			want: ErrEncoding,
		},
		{
			name: "timeout zero is excluded",
			body: `{"seed_urls": ["https://example.test/news/"], "total_articles_to_find_and_parse": 5, "timeout": 0}`,
			want: ErrTimeout,
		},
		{
			name: "timeout sixty is excluded",
			body: `{"seed_urls": ["https://example.test/news/"], "total_articles_to_find_and_parse": 5, "timeout": 60}`,
			want: ErrTimeout,
		},
		{
			name: "timeout as string",
			body: `{"seed_urls": ["https://example.test/news/"], "total_articles_to_find_and_parse": 5, "timeout": "30"}`,
			want: ErrTimeout,
		},
		{
			name: "timeout fractional",
			body: `{"seed_urls": ["https://example.test/news/"], "total_articles_to_find_and_parse": 5, "timeout": 30.5}`,
			want: ErrTimeout,
		},
		{
			name: "verify flag not boolean",
			body: `{"seed_urls": ["https://example.test/news/"], "total_articles_to_find_and_parse": 5, "should_verify_certificate": "yes"}`,
			want: ErrVerify,
		},
		{
			name: "headless flag not boolean",
			body: `{"seed_urls": ["https://example.test/news/"], "total_articles_to_find_and_parse": 5, "headless_mode": 1}`,
			want: ErrVerify,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			path := writeConfig(t, tc.body)
			_, err := Load(path)
			if !errors.Is(err, tc.want) {
				t.Fatalf("Load() error = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestLoadBoundaryTimeoutAccepted(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `{
		"seed_urls": ["https://example.test/news/"],
		"total_articles_to_find_and_parse": 5,
		"timeout": 59
	}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Timeout != 59*time.Second {
		t.Fatalf("expected 59s timeout, got %v", cfg.Timeout)
	}
}

// The first failing check in document order wins, even when several fields
// are defective at once.
func TestLoadFirstDefectWins(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `{
		"seed_urls": "not-a-list",
		"total_articles_to_find_and_parse": "10",
		"timeout": 60
	}`)

	_, err := Load(path)
	if !errors.Is(err, ErrSeedURL) {
		t.Fatalf("Load() error = %v, want %v", err, ErrSeedURL)
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	if _, err := Load(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}
