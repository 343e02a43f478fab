package ledger

import (
	"cmp"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/tally-dev/tally/internal/model"
	"github.com/tally-dev/tally/internal/money"
)

// ComputeBalances nets a group's payments into one balance per member that
// appears in them, ordered by user ID. The payer is credited the full amount
// and every debtor is charged an equal share; leftover cents go to the debtors
// listed first. The result always sums to zero.
func ComputeBalances(payments []model.Payment) []model.Balance {
	net := make(map[int64]decimal.Decimal)
	for _, p := range payments {
		if len(p.DebtorIDs) == 0 {
			continue
		}
		amount := money.RoundCurrency(p.Amount)
		net[p.PayerID] = net[p.PayerID].Add(amount)
		for i, share := range money.Split(amount, len(p.DebtorIDs)) {
			d := p.DebtorIDs[i]
			net[d] = net[d].Sub(share)
		}
	}

	balances := make([]model.Balance, 0, len(net))
	for userID, amt := range net {
		balances = append(balances, model.Balance{UserID: userID, Amount: amt})
	}
	slices.SortFunc(balances, func(a, b model.Balance) int {
		return cmp.Compare(a.UserID, b.UserID)
	})
	return balances
}
