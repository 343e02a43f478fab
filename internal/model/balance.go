package model

import "github.com/shopspring/decimal"

// Balance is the net amount of one group member.
// Positive = the member is owed money, negative = the member owes money.
type Balance struct {
	UserID int64
	Amount decimal.Decimal
}

// Suggestion recommends that DebtorUserID pays Amount to PayerUserID.
// PayerUserID is the creditor (positive balance), DebtorUserID the debtor.
type Suggestion struct {
	Amount       decimal.Decimal
	PayerUserID  int64
	DebtorUserID int64
}
