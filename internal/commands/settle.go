package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tally-dev/tally/internal/model"
	"github.com/tally-dev/tally/internal/notify"
	"github.com/tally-dev/tally/internal/settlelog"
	"github.com/tally-dev/tally/internal/settlement"
)

func newSettleCommand(opts *options) *cobra.Command {
	var strict bool
	var commit bool

	cmd := &cobra.Command{
		Use:   "settle",
		Short: "Suggest reimbursements that settle every balance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			root, err := opts.root()
			if err != nil {
				return err
			}
			g, err := loadGroup(root)
			if err != nil {
				return err
			}
			return runSettle(cmd.Context(), cmd.OutOrStdout(), opts.logger, g, strict, commit)
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "fail when balances do not sum to zero")
	cmd.Flags().BoolVar(&commit, "commit", false, "commit the settlement log even when auto-commit is off")

	return cmd
}

func runSettle(ctx context.Context, out io.Writer, logger *zap.Logger, g *group, strict, commit bool) error {
	balances, err := g.ledger.Balances()
	if err != nil {
		return err
	}

	if strict || g.cfg.Settlement.Strict {
		tolerance, err := g.cfg.Settlement.ToleranceAmount()
		if err != nil {
			return err
		}
		if err := settlement.CheckBalanced(balances, tolerance); err != nil {
			return err
		}
	}

	return settleBalances(ctx, out, logger, g, balances, commit)
}

// settleBalances prints and records the reimbursements for balances. The
// group is only touched once there is at least one suggestion.
func settleBalances(ctx context.Context, out io.Writer, logger *zap.Logger, g *group, balances []model.Balance, commit bool) error {
	suggestions := settlement.Resolve(balances)
	if len(suggestions) == 0 {
		left := settlement.Verify(balances, nil)
		if len(left) == 0 {
			fmt.Fprintln(out, "Everyone is settled up.")
			return nil
		}
		for _, b := range left {
			logger.Warn("balance left unsettled",
				zap.Int64("user_id", b.UserID),
				zap.String("amount", b.Amount.StringFixed(2)),
			)
		}
		fmt.Fprintf(out, "Nothing to suggest; %d balance(s) cannot be settled.\n", len(left))
		return nil
	}

	currency := g.cfg.Group.Currency
	for _, s := range suggestions {
		fmt.Fprintf(out, "%s owes %s %s %s\n",
			g.members.Name(s.DebtorUserID), g.members.Name(s.PayerUserID), s.Amount.StringFixed(2), currency)
	}

	for _, left := range settlement.Verify(balances, suggestions) {
		logger.Warn("balance left unsettled",
			zap.Int64("user_id", left.UserID),
			zap.String("amount", left.Amount.StringFixed(2)),
		)
	}

	run := settlelog.NewRun(time.Now(), suggestions)
	notifier := notify.Multi{
		notify.NewLogNotifier(logger),
		notify.NewSettleLogNotifier(g.root),
	}
	if err := notifier.Notify(ctx, notify.Event{Group: g.cfg.Group.Name, Run: run}); err != nil {
		return fmt.Errorf("notifying: %w", err)
	}

	if _, err := g.commit(ctx, logger, "settle: "+run.ID.String(), commit); err != nil {
		return err
	}
	return nil
}
