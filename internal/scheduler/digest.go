// Package scheduler posts periodic ledger summaries.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/MrJamesThe3rd/dompet/internal/report"
	"github.com/MrJamesThe3rd/dompet/internal/transaction"
)

type Notifier interface {
	Notify(ctx context.Context, text string) error
}

type Summarizer interface {
	Summarize(ctx context.Context, period transaction.Period) (transaction.Summary, error)
}

// Digest sends the summary of a period on a cron schedule.
type Digest struct {
	cron       *cron.Cron
	summarizer Summarizer
	notifier   Notifier
	period     transaction.Period
	timeout    time.Duration
	log        zerolog.Logger
}

func NewDigest(loc *time.Location, summarizer Summarizer, notifier Notifier, log zerolog.Logger) *Digest {
	return &Digest{
		cron:       cron.New(cron.WithLocation(loc)),
		summarizer: summarizer,
		notifier:   notifier,
		period:     transaction.PeriodDaily,
		timeout:    30 * time.Second,
		log:        log,
	}
}

// Schedule registers the digest under a standard five-field cron spec,
// e.g. "0 21 * * *" for every day at 21:00.
func (d *Digest) Schedule(spec string) error {
	if _, err := d.cron.AddFunc(spec, d.run); err != nil {
		return fmt.Errorf("scheduling digest %q: %w", spec, err)
	}

	return nil
}

func (d *Digest) Start() {
	d.cron.Start()
}

// Stop prevents new runs and waits for a running digest to finish.
func (d *Digest) Stop(ctx context.Context) {
	select {
	case <-d.cron.Stop().Done():
	case <-ctx.Done():
	}
}

func (d *Digest) run() {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	if err := d.Send(ctx); err != nil {
		d.log.Error().Err(err).Str("period", string(d.period)).Msg("digest failed")
		return
	}

	d.log.Info().Str("period", string(d.period)).Msg("digest sent")
}

// Send posts the digest once.
func (d *Digest) Send(ctx context.Context) error {
	s, err := d.summarizer.Summarize(ctx, d.period)
	if err != nil {
		return fmt.Errorf("summarizing: %w", err)
	}

	if err := d.notifier.Notify(ctx, report.Summary(s)); err != nil {
		return fmt.Errorf("notifying: %w", err)
	}

	return nil
}
