package settlement

import (
	"cmp"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/tally-dev/tally/internal/model"
	"github.com/tally-dev/tally/internal/money"
)

// computation tracks how much of a member's balance is still unresolved.
// remaining keeps the sign of original and only shrinks toward zero.
type computation struct {
	userID    int64
	original  decimal.Decimal
	remaining decimal.Decimal
}

func (c *computation) magnitude() decimal.Decimal {
	return c.remaining.Abs()
}

func (c *computation) creditor() bool {
	return c.original.IsPositive()
}

// consume takes amount (a magnitude) off the remaining balance.
func (c *computation) consume(amount decimal.Decimal) {
	if c.creditor() {
		c.remaining = c.remaining.Sub(amount)
	} else {
		c.remaining = c.remaining.Add(amount)
	}
}

// book owns the working records of one resolution run. Both sides are
// ordered by user ID on construction.
type book struct {
	positives []*computation
	negatives []*computation
}

// newBook copies the input into working records. Amounts are normalized to
// cents first; balances that round to zero are dropped.
func newBook(balances []model.Balance) *book {
	b := &book{}
	for _, bal := range balances {
		amt := money.RoundCurrency(bal.Amount)
		switch {
		case amt.IsPositive():
			b.positives = append(b.positives, &computation{userID: bal.UserID, original: amt, remaining: amt})
		case amt.IsNegative():
			b.negatives = append(b.negatives, &computation{userID: bal.UserID, original: amt, remaining: amt})
		}
	}
	byID := func(a, c *computation) int { return cmp.Compare(a.userID, c.userID) }
	slices.SortFunc(b.positives, byID)
	slices.SortFunc(b.negatives, byID)
	return b
}

func (b *book) size() int {
	return len(b.positives) + len(b.negatives)
}

// prune drops every record with nothing left to resolve.
func (b *book) prune() {
	settled := func(c *computation) bool { return c.remaining.IsZero() }
	b.positives = slices.DeleteFunc(b.positives, settled)
	b.negatives = slices.DeleteFunc(b.negatives, settled)
}

// sortByMagnitude orders records largest remaining magnitude first, lowest
// user ID first among equals.
func sortByMagnitude(side []*computation) {
	slices.SortStableFunc(side, func(a, c *computation) int {
		if n := c.magnitude().Cmp(a.magnitude()); n != 0 {
			return n
		}
		return cmp.Compare(a.userID, c.userID)
	})
}
