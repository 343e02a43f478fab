package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tally-dev/tally/internal/ledger"
	"github.com/tally-dev/tally/internal/money"
)

func newPayCommand(opts *options) *cobra.Command {
	var payer int64
	var amount string
	var debtors string
	var all bool
	var description string
	var dateStr string

	cmd := &cobra.Command{
		Use:   "pay",
		Short: "Record a payment shared by some members",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			amt, err := money.Parse(amount)
			if err != nil {
				return err
			}

			date := time.Now().UTC().Truncate(24 * time.Hour)
			if dateStr != "" {
				date, err = time.Parse("2006-01-02", dateStr)
				if err != nil {
					return fmt.Errorf("parsing date %q: %w", dateStr, err)
				}
			}

			root, err := opts.root()
			if err != nil {
				return err
			}
			g, err := loadGroup(root)
			if err != nil {
				return err
			}

			debtorIDs, err := ledger.ParseIDList(debtors)
			if err != nil {
				return err
			}
			if all {
				debtorIDs = debtorIDs[:0]
				for _, m := range g.members.All() {
					debtorIDs = append(debtorIDs, m.ID)
				}
			}
			if len(debtorIDs) == 0 {
				return errors.New("no debtors: pass --debtors or --all")
			}

			paymentID, err := g.ledger.AddPayment(ledger.AddPaymentParams{
				Date:        date,
				PayerID:     payer,
				Amount:      amt,
				DebtorIDs:   debtorIDs,
				Description: description,
			})
			if err != nil {
				return err
			}
			opts.logger.Info("payment recorded",
				zap.String("payment_id", paymentID),
				zap.Int64("payer_id", payer),
				zap.String("amount", amt.StringFixed(2)),
			)

			if _, err := g.commit(cmd.Context(), opts.logger, fmt.Sprintf("pay: %s %s", paymentID, description), false); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Recorded %s: %s paid %s %s\n",
				paymentID, g.members.Name(payer), amt.StringFixed(2), g.cfg.Group.Currency)
			return nil
		},
	}

	cmd.Flags().Int64Var(&payer, "payer", 0, "member who paid (required)")
	_ = cmd.MarkFlagRequired("payer")
	cmd.Flags().StringVar(&amount, "amount", "", "amount paid, e.g. 42.50 (required)")
	_ = cmd.MarkFlagRequired("amount")
	cmd.Flags().StringVar(&debtors, "debtors", "", "comma-separated member ids sharing the cost")
	cmd.Flags().BoolVar(&all, "all", false, "share the cost among all members")
	cmd.MarkFlagsMutuallyExclusive("debtors", "all")
	cmd.Flags().StringVar(&description, "description", "", "what the payment was for")
	cmd.Flags().StringVar(&dateStr, "date", "", "payment date YYYY-MM-DD (default today)")

	return cmd
}
