package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newPaymentsCommand(opts *options) *cobra.Command {
	var member int64

	cmd := &cobra.Command{
		Use:   "payments",
		Short: "List recorded payments",
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

			payments, err := g.ledger.ReadAll()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, p := range payments {
				if member != 0 && !p.Involves(member) {
					continue
				}
				names := make([]string, len(p.DebtorIDs))
				for i, d := range p.DebtorIDs {
					names[i] = g.members.Name(d)
				}
				fmt.Fprintf(out, "%s  %s  %-12s %10s %s  for %s  %s\n",
					p.ID, p.Date.Format("2006-01-02"), g.members.Name(p.PayerID),
					p.Amount.StringFixed(2), g.cfg.Group.Currency, strings.Join(names, ", "), p.Description)
			}
			return nil
		},
	}

	cmd.Flags().Int64Var(&member, "member", 0, "only payments this member paid for or shared")
	return cmd
}
