package commands

import (
	"context"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/tally-dev/tally/internal/config"
	"github.com/tally-dev/tally/internal/gitops"
	"github.com/tally-dev/tally/internal/ledger"
	"github.com/tally-dev/tally/internal/members"
)

// group bundles the services of one group directory.
type group struct {
	root    string
	cfg     *config.Config
	members *members.Service
	ledger  *ledger.Service
}

func loadGroup(root string) (*group, error) {
	cfg, err := config.Load(filepath.Join(root, config.FileName))
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	ms, err := members.Load(root)
	if err != nil {
		return nil, fmt.Errorf("loading members: %w", err)
	}

	return &group{
		root:    root,
		cfg:     cfg,
		members: ms,
		ledger:  ledger.NewService(root, ms),
	}, nil
}

// commit records the group directory in git when auto-commit is on (or force
// is set) and the directory is a repository. Returns the short hash, or "".
func (g *group) commit(ctx context.Context, logger *zap.Logger, message string, force bool) (string, error) {
	if !force && !g.cfg.Git.AutoCommit {
		return "", nil
	}
	if !gitops.IsRepo(g.root) || !gitops.Available() {
		logger.Debug("skipping commit, not a git repository", zap.String("root", g.root))
		return "", nil
	}

	hash, err := gitops.CommitAll(ctx, g.root, message, gitops.Author{
		Name:  g.cfg.Git.AuthorName,
		Email: g.cfg.Git.AuthorEmail,
	})
	if err != nil {
		return "", fmt.Errorf("committing: %w", err)
	}
	logger.Info("committed", zap.String("hash", hash), zap.String("message", message))
	return hash, nil
}
