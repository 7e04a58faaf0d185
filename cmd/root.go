// Package cmd defines and implements the CLI commands for the newscorpus
// executable.
package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mvoronina/news-corpus/internal/logging"
)

var cfgFile string

// newRootCmd creates and configures the root command.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "newscorpus",
		Short: "Builds a numbered corpus of news article records.",
		Long: `newscorpus discovers article URLs from configured seed pages, fetches
each page under rate and certificate constraints, and extracts a normalized
article record per page into a numbered corpus on local disk.`,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "config.json", "path to the crawl configuration document")

	cmd.AddCommand(newCrawlCmd())
	cmd.AddCommand(newVerifyCmd())

	return cmd
}

// Execute is the main entry point.
func Execute() {
	logging.InitLogger()

	if err := newRootCmd().Execute(); err != nil {
		logging.L.Fatal("Command execution failed", zap.Error(err))
	}
}
