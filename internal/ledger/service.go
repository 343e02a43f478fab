package ledger

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tally-dev/tally/internal/id"
	"github.com/tally-dev/tally/internal/model"
)

// File is the ledger path relative to the group root.
const File = "payments.csv"

// Service records and reads a group's payments.
type Service struct {
	root    string
	members MemberChecker
}

// NewService creates a ledger Service rooted at a group directory.
func NewService(root string, members MemberChecker) *Service {
	return &Service{root: root, members: members}
}

// AddPaymentParams holds parameters for recording a payment.
type AddPaymentParams struct {
	Date        time.Time
	PayerID     int64
	Amount      decimal.Decimal
	DebtorIDs   []int64
	Description string
}

// AddPayment assigns the next payment ID, validates the payment together with
// the existing ledger, and appends it. Returns the payment ID.
func (s *Service) AddPayment(params AddPaymentParams) (string, error) {
	existing, err := s.ReadAll()
	if err != nil {
		return "", err
	}

	ids := make([]string, len(existing))
	for i, p := range existing {
		ids[i] = p.ID
	}

	payment := model.Payment{
		ID:          id.FormatPaymentID(id.NextSeq(ids)),
		Date:        params.Date,
		PayerID:     params.PayerID,
		Amount:      params.Amount,
		DebtorIDs:   params.DebtorIDs,
		Description: params.Description,
	}

	all := append(existing, payment)
	if verrs := ValidatePayments(all, s.members); len(verrs) > 0 {
		msgs := make([]string, len(verrs))
		for i, ve := range verrs {
			msgs[i] = ve.Error()
		}
		return "", fmt.Errorf("validation failed: %s", strings.Join(msgs, "; "))
	}

	path := s.path()
	isNew := false
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		isNew = true
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return "", fmt.Errorf("opening ledger: %w", err)
	}
	defer f.Close()

	if isNew {
		if _, err := fmt.Fprintln(f, Header); err != nil {
			return "", fmt.Errorf("writing header: %w", err)
		}
	}

	if err := AppendPayments(f, []model.Payment{payment}); err != nil {
		return "", fmt.Errorf("appending payment: %w", err)
	}
	return payment.ID, nil
}

// ReadAll returns every recorded payment. A missing ledger has no payments.
func (s *Service) ReadAll() ([]model.Payment, error) {
	f, err := os.Open(s.path())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}
	defer f.Close()

	payments, err := ReadPayments(f)
	if err != nil {
		return nil, fmt.Errorf("reading ledger %s: %w", s.path(), err)
	}
	return payments, nil
}

// Balances reads the ledger and nets it into per-member balances.
func (s *Service) Balances() ([]model.Balance, error) {
	payments, err := s.ReadAll()
	if err != nil {
		return nil, err
	}
	return ComputeBalances(payments), nil
}

// Init writes an empty ledger (header only) under root.
func Init(root string) error {
	if err := os.WriteFile(filepath.Join(root, File), []byte(Header+"\n"), 0o644); err != nil {
		return fmt.Errorf("writing ledger: %w", err)
	}
	return nil
}

func (s *Service) path() string {
	return filepath.Join(s.root, File)
}
