package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tally-dev/tally/internal/buildinfo"
	"github.com/tally-dev/tally/internal/logging"
)

// options are the persistent flags shared by every subcommand.
type options struct {
	repo     string
	logLevel string
	logger   *zap.Logger
}

func (o *options) root() (string, error) {
	abs, err := filepath.Abs(o.repo)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}
	return abs, nil
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &options{logger: zap.NewNop()}

	rootCmd := &cobra.Command{
		Use:     "tally",
		Short:   "Shared expenses and who pays whom",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := logging.New(cmd.ErrOrStderr(), opts.logLevel)
			if err != nil {
				return err
			}
			opts.logger = logger
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.repo, "repo", ".", "group directory")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", logging.DefaultLevel, "log level (debug, info, warn, error)")

	rootCmd.AddCommand(
		newInitCommand(opts),
		newMemberCommand(opts),
		newPayCommand(opts),
		newPaymentsCommand(opts),
		newBalancesCommand(opts),
		newSettleCommand(opts),
	)

	return rootCmd
}
