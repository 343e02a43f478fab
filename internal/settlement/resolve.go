// Package settlement turns a group's net balances into reimbursement
// suggestions. Resolve is pure and safe for concurrent use.
package settlement

import (
	"github.com/shopspring/decimal"

	"github.com/tally-dev/tally/internal/model"
	"github.com/tally-dev/tally/internal/money"
)

// Resolve computes who should pay whom so that every balance is settled.
//
// Equal and opposite balances are paired first. Whatever is left is matched
// greedily: the largest remaining balance on either side is compensated by the
// largest balances of the opposite sign. Balances that do not sum to zero are
// resolved as far as possible and the residual is left unsettled.
//
// Suggestions never carry a zero amount; the result is empty for empty or
// all-zero input.
func Resolve(balances []model.Balance) []model.Suggestion {
	b := newBook(balances)
	if len(b.positives) == 0 || len(b.negatives) == 0 {
		return nil
	}

	suggestions := matchExact(b)
	suggestions = append(suggestions, matchGreedy(b)...)
	return suggestions
}

// matchExact pairs each creditor with the first unmatched debtor of the same
// magnitude. Both records are settled and removed from the book.
func matchExact(b *book) []model.Suggestion {
	var out []model.Suggestion
	for _, pos := range b.positives {
		for _, neg := range b.negatives {
			if neg.remaining.IsZero() {
				continue
			}
			if !money.RoundCurrency(neg.magnitude()).Equal(money.RoundCurrency(pos.magnitude())) {
				continue
			}
			out = appendSuggestion(out, pos, neg, pos.magnitude())
			pos.remaining = decimal.Zero
			neg.remaining = decimal.Zero
			break
		}
	}
	b.prune()
	return out
}

// matchGreedy settles the largest remaining balance each round until one side
// of the book is empty or a round makes no progress.
func matchGreedy(b *book) []model.Suggestion {
	var out []model.Suggestion
	// Every round removes its driver, so this guard only bounds the loop if that stops being true.
	last := -1
	for len(b.positives) > 0 && len(b.negatives) > 0 {
		if b.size() == last {
			break
		}
		last = b.size()

		sortByMagnitude(b.positives)
		sortByMagnitude(b.negatives)

		driver, candidates := b.positives[0], b.negatives
		if b.negatives[0].magnitude().GreaterThan(driver.magnitude()) {
			driver, candidates = b.negatives[0], b.positives
		}

		target := driver.magnitude()
		for _, c := range candidates {
			if target.IsZero() {
				break
			}
			mag := c.magnitude()
			if mag.LessThanOrEqual(target) {
				out = appendPair(out, driver, c, mag)
				c.remaining = decimal.Zero
				target = target.Sub(mag)
				continue
			}
			c.consume(target)
			out = appendPair(out, driver, c, mag.Sub(c.magnitude()))
			target = decimal.Zero
		}

		driver.remaining = decimal.Zero
		b.prune()
	}
	return out
}

// appendPair emits a suggestion between the driver and a candidate, whichever
// of them is the creditor.
func appendPair(out []model.Suggestion, driver, candidate *computation, amount decimal.Decimal) []model.Suggestion {
	if driver.creditor() {
		return appendSuggestion(out, driver, candidate, amount)
	}
	return appendSuggestion(out, candidate, driver, amount)
}

func appendSuggestion(out []model.Suggestion, creditor, debtor *computation, amount decimal.Decimal) []model.Suggestion {
	amount = money.RoundCurrency(amount)
	if !amount.IsPositive() {
		return out
	}
	return append(out, model.Suggestion{
		Amount:       amount,
		PayerUserID:  creditor.userID,
		DebtorUserID: debtor.userID,
	})
}
