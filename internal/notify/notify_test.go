package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/tally-dev/tally/internal/model"
	"github.com/tally-dev/tally/internal/settlelog"
)

func testEvent() Event {
	return Event{
		Group: "Ski Trip",
		Run: settlelog.NewRun(time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC), []model.Suggestion{
			{Amount: decimal.NewFromInt(40), PayerUserID: 1, DebtorUserID: 2},
		}),
	}
}

type failingNotifier struct{ err error }

func (f failingNotifier) Notify(context.Context, Event) error { return f.err }

type recordingNotifier struct{ events []Event }

func (r *recordingNotifier) Notify(_ context.Context, ev Event) error {
	r.events = append(r.events, ev)
	return nil
}

func TestLogNotifier(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	n := NewLogNotifier(zap.New(core))

	require.NoError(t, n.Notify(context.Background(), testEvent()))

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "settlement computed", entries[0].Message)
	assert.Equal(t, "Ski Trip", entries[0].ContextMap()["group"])
	assert.Equal(t, int64(1), entries[0].ContextMap()["suggestions"])
	assert.Equal(t, "40.00", entries[1].ContextMap()["amount"])
}

func TestSettleLogNotifier(t *testing.T) {
	dir := t.TempDir()
	ev := testEvent()
	require.NoError(t, NewSettleLogNotifier(dir).Notify(context.Background(), ev))

	runs, err := settlelog.Read(dir)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, ev.Run.ID, runs[0].ID)
}

func TestSettleLogNotifier_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewSettleLogNotifier(t.TempDir()).Notify(ctx, testEvent())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMulti_CallsEveryone(t *testing.T) {
	boom := errors.New("boom")
	rec := &recordingNotifier{}
	m := Multi{failingNotifier{err: boom}, rec}

	err := m.Notify(context.Background(), testEvent())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Len(t, rec.events, 1)
}

func TestMulti_Empty(t *testing.T) {
	assert.NoError(t, Multi{}.Notify(context.Background(), testEvent()))
}
