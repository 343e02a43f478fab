package id

import (
	"fmt"
	"strconv"
	"strings"
)

const paymentPrefix = "P"

// FormatPaymentID returns a payment ID like "P0007".
func FormatPaymentID(seq int) string {
	return fmt.Sprintf("%s%04d", paymentPrefix, seq)
}

// ParsePaymentID parses "P0007" into its sequence number.
func ParsePaymentID(id string) (int, error) {
	rest, ok := strings.CutPrefix(id, paymentPrefix)
	if !ok || rest == "" {
		return 0, fmt.Errorf("invalid payment ID format: %q", id)
	}
	seq, err := strconv.Atoi(rest)
	if err != nil {
		return 0, fmt.Errorf("invalid sequence in payment ID %q: %w", id, err)
	}
	if seq <= 0 {
		return 0, fmt.Errorf("invalid sequence in payment ID %q", id)
	}
	return seq, nil
}

// NextSeq returns one past the highest sequence among ids. Malformed IDs are ignored.
func NextSeq(ids []string) int {
	maxSeq := 0
	for _, s := range ids {
		seq, err := ParsePaymentID(s)
		if err != nil {
			continue
		}
		maxSeq = max(maxSeq, seq)
	}
	return maxSeq + 1
}
