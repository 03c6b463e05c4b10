// Package sheets mirrors the ledger into a Google Sheets range.
package sheets

import (
	"context"
	"fmt"
	"slices"
	"strconv"

	"github.com/rs/zerolog"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/MrJamesThe3rd/dompet/internal/transaction"
)

type Store struct {
	svc     *sheets.Service
	sheetID string
	rng     string
	log     zerolog.Logger
}

// New authenticates with a service account key (JSON).
func New(ctx context.Context, credentialsJSON []byte, sheetID, rng string, log zerolog.Logger) (*Store, error) {
	return NewWithOptions(ctx, sheetID, rng, log,
		option.WithCredentialsJSON(credentialsJSON),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
}

func NewWithOptions(ctx context.Context, sheetID, rng string, log zerolog.Logger, opts ...option.ClientOption) (*Store, error) {
	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating sheets client: %w", err)
	}

	return &Store{svc: svc, sheetID: sheetID, rng: rng, log: log}, nil
}

// Append adds one row. Values are USER_ENTERED so the sheet parses the
// amount as a number.
func (s *Store) Append(ctx context.Context, rec transaction.Record) error {
	row := rec.Row()

	values := make([]any, len(row))
	for i, v := range row {
		values[i] = v
	}

	_, err := s.svc.Spreadsheets.Values.
		Append(s.sheetID, s.rng, &sheets.ValueRange{Values: [][]any{values}}).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("appending row: %w", err)
	}

	return nil
}

// ListAll reads the range, skipping the header row and rows that do not
// parse as records.
func (s *Store) ListAll(ctx context.Context) ([]transaction.Record, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.sheetID, s.rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("reading range: %w", err)
	}

	var records []transaction.Record

	for i, raw := range resp.Values {
		row := make([]string, len(raw))
		for j, v := range raw {
			row[j] = cellString(v)
		}

		if i == 0 && slices.Equal(row, transaction.Header) {
			continue
		}

		rec, err := transaction.RecordFromRow(row)
		if err != nil {
			s.log.Warn().Err(err).Int("row", i+1).Msg("skipping malformed sheet row")
			continue
		}

		records = append(records, rec)
	}

	return records, nil
}

func cellString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprint(x)
	}
}
