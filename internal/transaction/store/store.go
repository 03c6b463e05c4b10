package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/dompet/internal/transaction"
)

// Store keeps the ledger in a Postgres "records" table.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const schema = `
	CREATE TABLE IF NOT EXISTS records (
		id          UUID PRIMARY KEY,
		recorded_at TEXT NOT NULL,
		type        TEXT NOT NULL,
		amount      BIGINT NOT NULL CHECK (amount > 0),
		category    TEXT NOT NULL,
		note        TEXT NOT NULL DEFAULT '',
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)
`

func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating records table: %w", err)
	}

	return nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanRecord expects: recorded_at, type, amount, category, note.
func scanRecord(s scanner) (transaction.Record, error) {
	var rec transaction.Record

	var typeStr, category string

	if err := s.Scan(&rec.Timestamp, &typeStr, &rec.Amount, &category, &rec.Note); err != nil {
		return transaction.Record{}, err
	}

	rec.Type = transaction.ParseType(typeStr)

	cat, err := transaction.ParseCategory(category)
	if err != nil {
		cat = transaction.CategoryOther
	}

	rec.Category = cat

	return rec, nil
}

func (s *Store) Append(ctx context.Context, rec transaction.Record) error {
	query := `
		INSERT INTO records (id, recorded_at, type, amount, category, note)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := s.db.ExecContext(ctx, query,
		uuid.New(),
		rec.Timestamp,
		rec.Type,
		rec.Amount,
		rec.Category,
		rec.Note,
	)
	if err != nil {
		return fmt.Errorf("creating record: %w", err)
	}

	return nil
}

func (s *Store) ListAll(ctx context.Context) ([]transaction.Record, error) {
	query := `
		SELECT recorded_at, type, amount, category, note
		FROM records
		ORDER BY created_at ASC, recorded_at ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}
	defer rows.Close()

	var records []transaction.Record

	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}

		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating records: %w", err)
	}

	return records, nil
}
