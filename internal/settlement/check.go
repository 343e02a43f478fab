package settlement

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/tally-dev/tally/internal/model"
	"github.com/tally-dev/tally/internal/money"
)

// ErrUnbalanced is returned by CheckBalanced when balances do not cancel out.
var ErrUnbalanced = errors.New("balances do not sum to zero")

// Imbalance returns the signed sum of all balances.
func Imbalance(balances []model.Balance) decimal.Decimal {
	sum := decimal.Zero
	for _, b := range balances {
		sum = sum.Add(b.Amount)
	}
	return sum
}

// CheckBalanced fails with ErrUnbalanced when |Imbalance| exceeds tolerance.
// Resolve does not call it; callers that want strict input validation do.
func CheckBalanced(balances []model.Balance, tolerance decimal.Decimal) error {
	sum := Imbalance(balances)
	if sum.Abs().GreaterThan(tolerance.Abs()) {
		return fmt.Errorf("%w: off by %s", ErrUnbalanced, money.RoundCurrency(sum).StringFixed(money.Places))
	}
	return nil
}

// Verify applies suggestions to balances and returns what is left per member,
// ordered by user ID. Members whose residual rounds to zero are omitted, so an
// empty result means everything was settled.
func Verify(balances []model.Balance, suggestions []model.Suggestion) []model.Balance {
	left := make(map[int64]decimal.Decimal, len(balances))
	for _, b := range balances {
		left[b.UserID] = left[b.UserID].Add(b.Amount)
	}
	for _, s := range suggestions {
		left[s.PayerUserID] = left[s.PayerUserID].Sub(s.Amount)
		left[s.DebtorUserID] = left[s.DebtorUserID].Add(s.Amount)
	}

	var out []model.Balance
	for id, amt := range left {
		if money.RoundCurrency(amt).IsZero() {
			continue
		}
		out = append(out, model.Balance{UserID: id, Amount: amt})
	}
	slices.SortFunc(out, func(a, b model.Balance) int {
		return cmp.Compare(a.UserID, b.UserID)
	})
	return out
}
