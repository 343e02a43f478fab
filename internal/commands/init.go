package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tally-dev/tally/internal/config"
	"github.com/tally-dev/tally/internal/gitops"
	"github.com/tally-dev/tally/internal/ledger"
	"github.com/tally-dev/tally/internal/members"
)

func newInitCommand(opts *options) *cobra.Command {
	var name string
	var currency string
	var noGit bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new expense group",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := opts.repo
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(cmd.Context(), cmd.OutOrStdout(), opts.logger, absDir, name, currency, !noGit)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "group name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&currency, "currency", "EUR", "currency code shown next to amounts")
	cmd.Flags().BoolVar(&noGit, "no-git", false, "do not create a git repository")

	return cmd
}

func runInit(ctx context.Context, out io.Writer, logger *zap.Logger, dir, name, currency string, useGit bool) error {
	if _, err := os.Stat(filepath.Join(dir, config.FileName)); err == nil {
		return fmt.Errorf("%s already contains a group", dir)
	}

	if err := os.MkdirAll(filepath.Join(dir, "logs"), 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	cfg := config.Default(name, currency)
	cfg.Git.AutoCommit = useGit
	if err := config.Save(filepath.Join(dir, config.FileName), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	if err := members.NewService(nil).Save(dir); err != nil {
		return fmt.Errorf("writing members: %w", err)
	}

	if err := ledger.Init(dir); err != nil {
		return err
	}

	if err := os.WriteFile(filepath.Join(dir, "logs", ".gitkeep"), []byte{}, 0o644); err != nil {
		return fmt.Errorf("writing .gitkeep: %w", err)
	}

	if !useGit {
		fmt.Fprintf(out, "Initialized group %q at %s\n", name, dir)
		return nil
	}
	if !gitops.Available() {
		logger.Warn("git not found, group is not versioned")
		fmt.Fprintf(out, "Initialized group %q at %s\n", name, dir)
		return nil
	}

	if err := gitops.Init(ctx, dir); err != nil {
		return fmt.Errorf("git init: %w", err)
	}

	hash, err := gitops.CommitAll(ctx, dir, "init: "+name, gitops.Author{Name: cfg.Git.AuthorName, Email: cfg.Git.AuthorEmail})
	if err != nil {
		return fmt.Errorf("initial commit: %w", err)
	}

	fmt.Fprintf(out, "Initialized group %q at %s (%s)\n", name, dir, hash)
	return nil
}
