// Package mirror fans ledger writes out to secondary stores.
package mirror

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/MrJamesThe3rd/dompet/internal/transaction"
)

// Store writes to primary and then, best effort, to every secondary. Reads
// come from primary only.
type Store struct {
	primary     transaction.Repository
	secondaries []transaction.Repository
	log         zerolog.Logger
}

func New(log zerolog.Logger, primary transaction.Repository, secondaries ...transaction.Repository) *Store {
	return &Store{primary: primary, secondaries: secondaries, log: log}
}

func (s *Store) Append(ctx context.Context, rec transaction.Record) error {
	if err := s.primary.Append(ctx, rec); err != nil {
		return err
	}

	for i, sec := range s.secondaries {
		if err := sec.Append(ctx, rec); err != nil {
			s.log.Warn().Err(err).Int("secondary", i).Str("timestamp", rec.Timestamp).Msg("mirror append failed")
		}
	}

	return nil
}

func (s *Store) ListAll(ctx context.Context) ([]transaction.Record, error) {
	return s.primary.ListAll(ctx)
}
