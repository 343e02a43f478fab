// Package settlelog keeps an append-only record of settlement runs in
// logs/settlement-log.csv, one row per suggestion.
package settlelog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tally-dev/tally/internal/model"
)

// Run is one settlement run and the suggestions it produced.
type Run struct {
	ID          uuid.UUID
	Timestamp   time.Time
	Suggestions []model.Suggestion
}

// NewRun stamps suggestions with a fresh run ID.
func NewRun(now time.Time, suggestions []model.Suggestion) Run {
	return Run{ID: uuid.New(), Timestamp: now.UTC(), Suggestions: suggestions}
}

// Header is the CSV header for settlement-log.csv.
const Header = "run_id,timestamp,payer_id,debtor_id,amount"

// File is the log path relative to the group root.
const File = "logs/settlement-log.csv"

const (
	numFields    = 5
	colRunID     = 0
	colTimestamp = 1
	colPayerID   = 2
	colDebtorID  = 3
	colAmount    = 4
)

// Append writes run to <root>/logs/settlement-log.csv, creating the file and
// header if needed. A run without suggestions is not recorded.
func Append(root string, run Run) error {
	if len(run.Suggestions) == 0 {
		return nil
	}

	path := filepath.Join(root, File)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening settlement log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	for i, s := range run.Suggestions {
		if err := cw.Write(marshalRow(run, s)); err != nil {
			return fmt.Errorf("writing suggestion %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Read returns all runs in file order. Returns nil if the log does not exist.
func Read(root string) ([]Run, error) {
	f, err := os.Open(filepath.Join(root, File))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening settlement log: %w", err)
	}
	defer f.Close()

	return readRuns(f)
}

func marshalRow(run Run, s model.Suggestion) []string {
	row := make([]string, numFields)
	row[colRunID] = run.ID.String()
	row[colTimestamp] = run.Timestamp.Format(time.RFC3339)
	row[colPayerID] = strconv.FormatInt(s.PayerUserID, 10)
	row[colDebtorID] = strconv.FormatInt(s.DebtorUserID, 10)
	row[colAmount] = s.Amount.StringFixed(2)
	return row
}

func readRuns(r io.Reader) ([]Run, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading settlement log CSV: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	var runs []Run
	for i, rec := range records[1:] {
		runID, err := uuid.Parse(rec[colRunID])
		if err != nil {
			return nil, fmt.Errorf("row %d: parsing run_id %q: %w", i+2, rec[colRunID], err)
		}
		ts, err := time.Parse(time.RFC3339, rec[colTimestamp])
		if err != nil {
			return nil, fmt.Errorf("row %d: parsing timestamp %q: %w", i+2, rec[colTimestamp], err)
		}
		s, err := unmarshalSuggestion(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}

		if n := len(runs); n > 0 && runs[n-1].ID == runID {
			runs[n-1].Suggestions = append(runs[n-1].Suggestions, s)
			continue
		}
		runs = append(runs, Run{ID: runID, Timestamp: ts, Suggestions: []model.Suggestion{s}})
	}
	return runs, nil
}

func unmarshalSuggestion(rec []string) (model.Suggestion, error) {
	payer, err := strconv.ParseInt(rec[colPayerID], 10, 64)
	if err != nil {
		return model.Suggestion{}, fmt.Errorf("parsing payer_id %q: %w", rec[colPayerID], err)
	}
	debtor, err := strconv.ParseInt(rec[colDebtorID], 10, 64)
	if err != nil {
		return model.Suggestion{}, fmt.Errorf("parsing debtor_id %q: %w", rec[colDebtorID], err)
	}
	amount, err := decimal.NewFromString(rec[colAmount])
	if err != nil {
		return model.Suggestion{}, fmt.Errorf("parsing amount %q: %w", rec[colAmount], err)
	}
	return model.Suggestion{Amount: amount, PayerUserID: payer, DebtorUserID: debtor}, nil
}
