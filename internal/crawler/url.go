package crawler

import (
	"fmt"
	"net/url"
	"strings"
)

// NormalizeURL standardizes a URL so the dedup set treats equivalent forms
// as one entry. It lowercases the scheme and host, removes default ports and
// fragments, and sorts query parameters.
func NormalizeURL(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)

	if u.Scheme == "http" {
		u.Host = strings.TrimSuffix(u.Host, ":80")
	}
	if u.Scheme == "https" {
		u.Host = strings.TrimSuffix(u.Host, ":443")
	}

	u.Fragment = ""

	q := u.Query()
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// Origin returns the scheme://host part of a URL, used to absolutize
// site-relative article links found on that site's seed pages.
func Origin(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("url %q has no origin", rawURL)
	}
	return fmt.Sprintf("%s://%s", u.Scheme, u.Host), nil
}

// ResolveCandidate turns a discovered href into an absolute article URL.
// Site-relative paths are prefixed with the origin, absolute http(s) links
// pass through, and anything else (mailto, javascript, empty) is discarded.
func ResolveCandidate(href, origin string) string {
	href = strings.TrimSpace(href)
	switch {
	case href == "", strings.HasPrefix(href, "//"):
		return ""
	case strings.HasPrefix(href, "/"):
		return origin + href
	case strings.HasPrefix(href, "http://"), strings.HasPrefix(href, "https://"):
		return href
	default:
		return ""
	}
}
