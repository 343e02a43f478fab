package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaymentInvolves(t *testing.T) {
	p := Payment{PayerID: 1, DebtorIDs: []int64{2, 3}}

	tests := []struct {
		userID int64
		want   bool
	}{
		{1, true},
		{2, true},
		{3, true},
		{4, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, p.Involves(tt.userID), "Involves(%d)", tt.userID)
	}
}
