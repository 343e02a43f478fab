package ledger

import (
	"fmt"

	"github.com/tally-dev/tally/internal/id"
	"github.com/tally-dev/tally/internal/model"
	"github.com/tally-dev/tally/internal/money"
)

// Invariants checked by ValidatePayments.
const (
	InvariantPositiveAmount = 1
	InvariantCents          = 2
	InvariantKnownPayer     = 3
	InvariantKnownDebtors   = 4
	InvariantUniqueID       = 5
)

// ValidationError describes a single invariant violation.
type ValidationError struct {
	Invariant   int
	PaymentID   string
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invariant %d [%s]: %s", e.Invariant, e.PaymentID, e.Description)
}

// MemberChecker tests whether a member ID belongs to the group.
type MemberChecker interface {
	Exists(id int64) bool
}

// ValidatePayments checks every payment against the ledger invariants.
func ValidatePayments(payments []model.Payment, members MemberChecker) []ValidationError {
	var errs []ValidationError
	seen := make(map[string]bool, len(payments))

	for _, p := range payments {
		if !p.Amount.IsPositive() {
			errs = append(errs, ValidationError{
				Invariant:   InvariantPositiveAmount,
				PaymentID:   p.ID,
				Description: fmt.Sprintf("amount %s must be positive", p.Amount),
			})
		}

		if !money.IsCents(p.Amount) {
			errs = append(errs, ValidationError{
				Invariant:   InvariantCents,
				PaymentID:   p.ID,
				Description: fmt.Sprintf("amount %s has more than %d decimal places", p.Amount, money.Places),
			})
		}

		if !members.Exists(p.PayerID) {
			errs = append(errs, ValidationError{
				Invariant:   InvariantKnownPayer,
				PaymentID:   p.ID,
				Description: fmt.Sprintf("unknown payer %d", p.PayerID),
			})
		}

		if len(p.DebtorIDs) == 0 {
			errs = append(errs, ValidationError{
				Invariant:   InvariantKnownDebtors,
				PaymentID:   p.ID,
				Description: "payment has no debtors",
			})
		}
		debtors := make(map[int64]bool, len(p.DebtorIDs))
		for _, d := range p.DebtorIDs {
			if !members.Exists(d) {
				errs = append(errs, ValidationError{
					Invariant:   InvariantKnownDebtors,
					PaymentID:   p.ID,
					Description: fmt.Sprintf("unknown debtor %d", d),
				})
			}
			if debtors[d] {
				errs = append(errs, ValidationError{
					Invariant:   InvariantKnownDebtors,
					PaymentID:   p.ID,
					Description: fmt.Sprintf("duplicate debtor %d", d),
				})
			}
			debtors[d] = true
		}

		if _, err := id.ParsePaymentID(p.ID); err != nil {
			errs = append(errs, ValidationError{
				Invariant:   InvariantUniqueID,
				PaymentID:   p.ID,
				Description: err.Error(),
			})
		} else if seen[p.ID] {
			errs = append(errs, ValidationError{
				Invariant:   InvariantUniqueID,
				PaymentID:   p.ID,
				Description: "duplicate payment ID",
			})
		}
		seen[p.ID] = true
	}

	return errs
}
