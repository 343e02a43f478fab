// Package notify delivers the outcome of a settlement run to interested
// parties. Callers notify after the engine has returned.
package notify

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/tally-dev/tally/internal/settlelog"
)

// Event describes a finished settlement run.
type Event struct {
	Group string
	Run   settlelog.Run
}

// Notifier receives settlement events.
type Notifier interface {
	Notify(ctx context.Context, ev Event) error
}

// LogNotifier writes one structured log line per event and suggestion.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a LogNotifier.
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify implements Notifier.
func (n *LogNotifier) Notify(_ context.Context, ev Event) error {
	log := n.logger.With(zap.String("group", ev.Group), zap.Stringer("run_id", ev.Run.ID))
	log.Info("settlement computed", zap.Int("suggestions", len(ev.Run.Suggestions)))
	for _, s := range ev.Run.Suggestions {
		log.Debug("suggestion",
			zap.Int64("payer_id", s.PayerUserID),
			zap.Int64("debtor_id", s.DebtorUserID),
			zap.String("amount", s.Amount.StringFixed(2)),
		)
	}
	return nil
}

// SettleLogNotifier appends each run to the group's settlement log.
type SettleLogNotifier struct {
	root string
}

// NewSettleLogNotifier creates a SettleLogNotifier for a group directory.
func NewSettleLogNotifier(root string) *SettleLogNotifier {
	return &SettleLogNotifier{root: root}
}

// Notify implements Notifier.
func (n *SettleLogNotifier) Notify(ctx context.Context, ev Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := settlelog.Append(n.root, ev.Run); err != nil {
		return fmt.Errorf("recording run %s: %w", ev.Run.ID, err)
	}
	return nil
}

// Multi fans an event out to every notifier. All notifiers are called even
// when one fails; the errors are joined.
type Multi []Notifier

// Notify implements Notifier.
func (m Multi) Notify(ctx context.Context, ev Event) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
