// Package config loads and validates the crawl run configuration via Viper.
package config

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// NumArticlesUpperLimit bounds the size of a single corpus run.
const NumArticlesUpperLimit = 150

// Timeout bounds, both exclusive.
const (
	timeoutLowerLimit = 0
	timeoutUpperLimit = 60
)

var seedURLPattern = regexp.MustCompile(`^https?://.*/`)

// Config is the validated, immutable run configuration. It is fully
// validated before any network call is issued; Load never returns a
// partially valid Config.
type Config struct {
	SeedURLs          []string
	TotalArticles     int
	Headers           map[string]string
	Encoding          string
	Timeout           time.Duration
	VerifyCertificate bool
	HeadlessMode      bool

	// Operational knobs outside the validated document fields.
	OutputDir      string
	DenySubstrings []string
	RespectRobots  bool
}

// Load reads the JSON configuration document at path, applies defaults for
// absent fields, and validates every field in a fixed order. The first
// failing check is returned as one of the package error kinds.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	return fromViper(v)
}

// fromViper validates raw document values before any coercion so wrong-typed
// fields (a string where an integer belongs, a boolean masquerading as a
// count) are reported as distinct kinds instead of being silently cast.
func fromViper(v *viper.Viper) (Config, error) {
	seeds, ok := seedList(v.Get("seed_urls"))
	if !ok {
		return Config{}, ErrSeedURL
	}

	headers := map[string]string{}
	if v.IsSet("headers") {
		headers, ok = headerMap(v.Get("headers"))
		if !ok {
			return Config{}, ErrHeaders
		}
	}

	total, ok := integerValue(v.Get("total_articles_to_find_and_parse"))
	if !ok || total < 1 {
		return Config{}, ErrArticlesType
	}
	if total > NumArticlesUpperLimit {
		return Config{}, ErrArticlesRange
	}

	enc := "utf-8"
	if v.IsSet("encoding") {
		enc, ok = v.Get("encoding").(string)
		if !ok {
			return Config{}, ErrEncoding
		}
	}

	timeout := 30
	if v.IsSet("timeout") {
		timeout, ok = integerValue(v.Get("timeout"))
		if !ok {
			return Config{}, ErrTimeout
		}
	}
	if timeout <= timeoutLowerLimit || timeout >= timeoutUpperLimit {
		return Config{}, ErrTimeout
	}

	verify := true
	if v.IsSet("should_verify_certificate") {
		verify, ok = v.Get("should_verify_certificate").(bool)
		if !ok {
			return Config{}, ErrVerify
		}
	}

	headless := true
	if v.IsSet("headless_mode") {
		headless, ok = v.Get("headless_mode").(bool)
		if !ok {
			return Config{}, ErrVerify
		}
	}

	v.SetDefault("output_dir", "tmp/articles")

	return Config{
		SeedURLs:          seeds,
		TotalArticles:     total,
		Headers:           headers,
		Encoding:          enc,
		Timeout:           time.Duration(timeout) * time.Second,
		VerifyCertificate: verify,
		HeadlessMode:      headless,
		OutputDir:         v.GetString("output_dir"),
		DenySubstrings:    v.GetStringSlice("deny_substrings"),
		RespectRobots:     v.GetBool("respect_robots"),
	}, nil
}

// seedList accepts only a non-empty list of strings, each matching the
// absolute http(s)-with-path pattern.
func seedList(raw any) ([]string, bool) {
	items, ok := raw.([]any)
	if !ok || len(items) == 0 {
		return nil, false
	}
	seeds := make([]string, 0, len(items))
	for _, item := range items {
		s, isString := item.(string)
		if !isString || !seedURLPattern.MatchString(s) {
			return nil, false
		}
		seeds = append(seeds, s)
	}
	return seeds, true
}

// headerMap accepts only a string-to-string mapping whose values carry no
// newline characters.
func headerMap(raw any) (map[string]string, bool) {
	items, ok := raw.(map[string]any)
	if !ok {
		return nil, false
	}
	headers := make(map[string]string, len(items))
	for key, value := range items {
		s, isString := value.(string)
		if !isString || strings.ContainsAny(s, "\r\n") {
			return nil, false
		}
		headers[key] = s
	}
	return headers, true
}

// integerValue accepts whole numbers only. Booleans and fractional values
// are rejected even though JSON decoders happily coerce both.
func integerValue(raw any) (int, bool) {
	switch n := raw.(type) {
	case bool:
		return 0, false
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}
