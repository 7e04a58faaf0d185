package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mvoronina/news-corpus/internal/corpus"
	"github.com/mvoronina/news-corpus/internal/logging"
)

// newVerifyCmd creates the 'verify' subcommand, which checks that a corpus
// directory preserves the dense-id naming invariants.
func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <directory>",
		Short: "Validates a corpus directory's naming and id invariants",
		Args:  cobra.ExactArgs(1),
		RunE:  runVerifyCommand,
	}
}

func runVerifyCommand(_ *cobra.Command, args []string) error {
	registry, err := corpus.Open(args[0])
	if err != nil {
		return fmt.Errorf("verify corpus: %w", err)
	}

	logging.L.Info("corpus is consistent",
		zap.String("directory", args[0]),
		zap.Int("articles", registry.Count()),
	)
	return nil
}
