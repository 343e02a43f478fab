package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Member is a row in members.csv.
type Member struct {
	ID    int64
	Name  string
	Email string
}

// Payment is a row in payments.csv: PayerID paid Amount on behalf of DebtorIDs.
// The payer may also appear among the debtors when they took part in the expense.
type Payment struct {
	ID          string // "P0001"
	Date        time.Time
	PayerID     int64
	Amount      decimal.Decimal
	DebtorIDs   []int64
	Description string
}

// Involves reports whether userID paid for or shared in the payment.
func (p Payment) Involves(userID int64) bool {
	if p.PayerID == userID {
		return true
	}
	for _, d := range p.DebtorIDs {
		if d == userID {
			return true
		}
	}
	return false
}
