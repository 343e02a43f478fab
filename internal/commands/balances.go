package commands

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/tally-dev/tally/internal/settlement"
)

func newBalancesCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "balances",
		Short: "Show what each member is owed (+) or owes (-)",
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

			balances, err := g.ledger.Balances()
			if err != nil {
				return err
			}
			net := make(map[int64]decimal.Decimal, len(balances))
			for _, b := range balances {
				net[b.UserID] = b.Amount
			}

			out := cmd.OutOrStdout()
			for _, m := range g.members.All() {
				fmt.Fprintf(out, "%-20s %10s %s\n", m.Name, net[m.ID].StringFixed(2), g.cfg.Group.Currency)
			}
			if imb := settlement.Imbalance(balances); !imb.IsZero() {
				fmt.Fprintf(out, "imbalance: %s %s\n", imb.StringFixed(2), g.cfg.Group.Currency)
			}
			return nil
		},
	}
}
