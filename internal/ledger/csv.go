package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tally-dev/tally/internal/model"
)

// Header is the CSV header for payments.csv.
const Header = "payment_id,date,payer_id,amount,debtor_ids,description"

const (
	numFields      = 6
	dateFormat     = "2006-01-02"
	idSeparator    = ";"
	colPaymentID   = 0
	colDate        = 1
	colPayerID     = 2
	colAmount      = 3
	colDebtorIDs   = 4
	colDescription = 5
)

// ReadPayments reads all payments from a payments.csv reader.
func ReadPayments(r io.Reader) ([]model.Payment, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading payments CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var payments []model.Payment
	for i, rec := range records[1:] {
		p, err := UnmarshalPayment(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		payments = append(payments, p)
	}
	return payments, nil
}

// WritePayments writes payments including the header.
func WritePayments(w io.Writer, payments []model.Payment) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, p := range payments {
		if err := cw.Write(MarshalPayment(p)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// AppendPayments writes payments without a header.
func AppendPayments(w io.Writer, payments []model.Payment) error {
	cw := csv.NewWriter(w)

	for i, p := range payments {
		if err := cw.Write(MarshalPayment(p)); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalPayment converts a Payment to a CSV row.
func MarshalPayment(p model.Payment) []string {
	debtors := make([]string, len(p.DebtorIDs))
	for i, d := range p.DebtorIDs {
		debtors[i] = strconv.FormatInt(d, 10)
	}

	row := make([]string, numFields)
	row[colPaymentID] = p.ID
	row[colDate] = p.Date.Format(dateFormat)
	row[colPayerID] = strconv.FormatInt(p.PayerID, 10)
	row[colAmount] = p.Amount.StringFixed(2)
	row[colDebtorIDs] = strings.Join(debtors, idSeparator)
	row[colDescription] = p.Description
	return row
}

// UnmarshalPayment converts a CSV row to a Payment.
func UnmarshalPayment(record []string) (model.Payment, error) {
	if len(record) != numFields {
		return model.Payment{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	date, err := time.Parse(dateFormat, record[colDate])
	if err != nil {
		return model.Payment{}, fmt.Errorf("parsing date %q: %w", record[colDate], err)
	}

	payerID, err := strconv.ParseInt(record[colPayerID], 10, 64)
	if err != nil {
		return model.Payment{}, fmt.Errorf("parsing payer_id %q: %w", record[colPayerID], err)
	}

	amount, err := decimal.NewFromString(record[colAmount])
	if err != nil {
		return model.Payment{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}

	debtors, err := ParseIDList(record[colDebtorIDs])
	if err != nil {
		return model.Payment{}, fmt.Errorf("parsing debtor_ids: %w", err)
	}

	return model.Payment{
		ID:          record[colPaymentID],
		Date:        date,
		PayerID:     payerID,
		Amount:      amount,
		DebtorIDs:   debtors,
		Description: record[colDescription],
	}, nil
}

// ParseIDList parses "1;2;3" (commas are accepted too) into member IDs.
func ParseIDList(s string) ([]int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ';' || r == ',' })
	ids := make([]int64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseInt(strings.TrimSpace(f), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parsing member id %q: %w", f, err)
		}
		ids = append(ids, v)
	}
	return ids, nil
}
