// Package csvstore keeps the ledger in a local CSV file.
package csvstore

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/rs/zerolog"

	"github.com/MrJamesThe3rd/dompet/internal/encoding"
	"github.com/MrJamesThe3rd/dompet/internal/transaction"
)

// Store appends records to a CSV file. Writes are serialised and synced to
// disk before Append returns.
type Store struct {
	path string
	log  zerolog.Logger
	mu   sync.Mutex
}

func New(path string, log zerolog.Logger) *Store {
	return &Store{path: path, log: log}
}

func (s *Store) Path() string {
	return s.path
}

func (s *Store) Append(ctx context.Context, rec transaction.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating ledger dir: %w", err)
		}
	}

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening ledger: %w", err)
	}

	if err := writeRecord(f, rec); err != nil {
		f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("closing ledger: %w", err)
	}

	return nil
}

func writeRecord(f *os.File, rec transaction.Record) error {
	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat ledger: %w", err)
	}

	w := csv.NewWriter(f)

	if info.Size() == 0 {
		if err := w.Write(transaction.Header); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	if err := w.Write(rec.Row()); err != nil {
		return fmt.Errorf("writing record: %w", err)
	}

	w.Flush()

	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing record: %w", err)
	}

	if err := f.Sync(); err != nil {
		return fmt.Errorf("syncing ledger: %w", err)
	}

	return nil
}

// ListAll returns every readable record in file order. A missing file is an
// empty ledger; malformed rows are logged and skipped.
func (s *Store) ListAll(ctx context.Context) ([]transaction.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}
	defer f.Close()

	r, err := encoding.NewUTF8Reader(f)
	if err != nil {
		return nil, fmt.Errorf("detecting ledger encoding: %w", err)
	}

	return s.readRecords(r)
}

func (s *Store) readRecords(r io.Reader) ([]transaction.Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var records []transaction.Record

	for line := 1; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			s.log.Warn().Err(err).Int("line", line).Msg("skipping unreadable ledger line")
			continue
		}

		if err != nil {
			return nil, fmt.Errorf("reading ledger: %w", err)
		}

		if line == 1 && slices.Equal(row, transaction.Header) {
			continue
		}

		rec, err := transaction.RecordFromRow(row)
		if err != nil {
			s.log.Warn().Err(err).Int("line", line).Msg("skipping malformed ledger row")
			continue
		}

		records = append(records, rec)
	}

	return records, nil
}
