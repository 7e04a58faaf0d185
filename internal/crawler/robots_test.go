package crawler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewRobotsEnforcerDisabledAllowsEverything(t *testing.T) {
	t.Parallel()

	policy := NewRobotsEnforcer(false, "corpus-bot", zap.NewNop())
	require.True(t, policy.Allowed(context.Background(), "https://example.test/anything"))
}

func TestRobotsEnforcerAppliesDirectives(t *testing.T) {
	t.Parallel()

	var robotsFetches atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		robotsFetches.Add(1)
		_, _ = w.Write([]byte("User-agent: *\nDisallow: /private/\n"))
	}))
	defer srv.Close()

	policy := NewRobotsEnforcer(true, "corpus-bot", zap.NewNop())

	require.True(t, policy.Allowed(context.Background(), srv.URL+"/news/1.html"))
	require.False(t, policy.Allowed(context.Background(), srv.URL+"/private/draft.html"))

	// The robots document is fetched once per host and cached.
	require.Equal(t, int32(1), robotsFetches.Load())
}

func TestRobotsEnforcerFailsOpen(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	unreachable := srv.URL
	srv.Close()

	policy := NewRobotsEnforcer(true, "corpus-bot", zap.NewNop())
	require.True(t, policy.Allowed(context.Background(), unreachable+"/news/1.html"))
}

func TestRobotsEnforcerMissingRobotsAllows(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	policy := NewRobotsEnforcer(true, "corpus-bot", zap.NewNop())
	require.True(t, policy.Allowed(context.Background(), srv.URL+"/news/1.html"))
}
