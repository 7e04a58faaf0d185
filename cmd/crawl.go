package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mvoronina/news-corpus/internal/config"
	"github.com/mvoronina/news-corpus/internal/crawler"
	"github.com/mvoronina/news-corpus/internal/extract"
	collyfetcher "github.com/mvoronina/news-corpus/internal/fetcher/colly"
	"github.com/mvoronina/news-corpus/internal/logging"
	"github.com/mvoronina/news-corpus/internal/metrics"
	"github.com/mvoronina/news-corpus/internal/pacing"
	"github.com/mvoronina/news-corpus/internal/pipeline"
	"github.com/mvoronina/news-corpus/internal/storage/local"
)

// Discovery jitter bounds: at least one second between seed fetches.
const (
	jitterMin = 1 * time.Second
	jitterMax = 3 * time.Second
)

// newCrawlCmd creates and configures the 'crawl' subcommand.
func newCrawlCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "crawl",
		Short: "Runs the crawl-and-extract pipeline",
		Long: `Validates the configuration document, prepares a clean output
directory, discovers article URLs from the seed pages, and writes one
numbered article record per URL.`,
		RunE: runCrawlCommand,
	}
}

func runCrawlCommand(cmd *cobra.Command, _ []string) error {
	logger := logging.L

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	metrics.Init()

	store, err := local.New(cfg.OutputDir)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}
	if err := store.Prepare(); err != nil {
		return fmt.Errorf("prepare workspace: %w", err)
	}

	runner, err := buildRunner(cfg, store, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	saved, err := runner.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("run pipeline: %w", err)
	}

	logger.Info("crawl finished",
		zap.Int("articles", saved),
		zap.String("output_dir", store.Dir()),
	)
	return nil
}

func buildRunner(cfg config.Config, store *local.Store, logger *zap.Logger) (*pipeline.Runner, error) {
	fetcher, err := collyfetcher.New(collyfetcher.Config{
		Headers:           cfg.Headers,
		Timeout:           cfg.Timeout,
		Encoding:          cfg.Encoding,
		VerifyCertificate: cfg.VerifyCertificate,
	})
	if err != nil {
		return nil, fmt.Errorf("init fetcher: %w", err)
	}

	robots := crawler.NewRobotsEnforcer(cfg.RespectRobots, cfg.Headers["user-agent"], logger)
	discoverer := crawler.NewDiscoverer(
		crawler.DiscovererConfig{
			Seeds:    cfg.SeedURLs,
			Limit:    cfg.TotalArticles,
			Selector: crawler.DefaultLinkSelector(),
			Deny:     cfg.DenySubstrings,
		},
		fetcher,
		pacing.NewJitter(jitterMin, jitterMax),
		robots,
		logger,
	)

	extractor := extract.New(fetcher, logger)
	// One request per second per host keeps extraction within the same
	// pacing budget as the discovery jitter.
	limiter := pacing.NewHostLimiter(1, 1)

	return pipeline.NewRunner(discoverer, extractor, store, limiter, logger), nil
}
