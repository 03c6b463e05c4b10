package scheduler_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/dompet/internal/clock"
	"github.com/MrJamesThe3rd/dompet/internal/scheduler"
	"github.com/MrJamesThe3rd/dompet/internal/transaction"
)

type stubSummarizer struct {
	got transaction.Period
	err error
}

func (s *stubSummarizer) Summarize(_ context.Context, p transaction.Period) (transaction.Summary, error) {
	s.got = p
	return transaction.Summary{Period: p, Income: 50000, Expense: 20000, Balance: 30000}, s.err
}

type stubNotifier struct {
	texts []string
	err   error
}

func (n *stubNotifier) Notify(_ context.Context, text string) error {
	n.texts = append(n.texts, text)
	return n.err
}

func TestDigest_Send(t *testing.T) {
	sum := &stubSummarizer{}
	notifier := &stubNotifier{}

	d := scheduler.NewDigest(clock.WIB, sum, notifier, zerolog.Nop())
	require.NoError(t, d.Send(context.Background()))

	assert.Equal(t, transaction.PeriodDaily, sum.got)
	require.Len(t, notifier.texts, 1)
	assert.Contains(t, notifier.texts[0], "Saldo: Rp30.000")
}

func TestDigest_SendErrors(t *testing.T) {
	d := scheduler.NewDigest(clock.WIB, &stubSummarizer{err: errors.New("db down")}, &stubNotifier{}, zerolog.Nop())
	assert.ErrorContains(t, d.Send(context.Background()), "summarizing")

	d = scheduler.NewDigest(clock.WIB, &stubSummarizer{}, &stubNotifier{err: errors.New("offline")}, zerolog.Nop())
	assert.ErrorContains(t, d.Send(context.Background()), "notifying")
}

func TestDigest_Schedule(t *testing.T) {
	d := scheduler.NewDigest(clock.WIB, &stubSummarizer{}, &stubNotifier{}, zerolog.Nop())

	assert.NoError(t, d.Schedule("0 21 * * *"))
	assert.Error(t, d.Schedule("every evening"))

	d.Start()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	d.Stop(ctx)
}
