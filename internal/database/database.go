// Package database opens the postgres connection pool behind the postgres
// ledger store.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Pool sizes the connection pool.
type Pool struct {
	MaxConns    int
	MaxIdle     int
	MaxLifetime time.Duration
}

// PoolFor derives the pool from the configured connection cap.
func PoolFor(maxConns int) Pool {
	if maxConns <= 0 {
		maxConns = 10
	}

	return Pool{
		MaxConns:    maxConns,
		MaxIdle:     max(maxConns/5, 1),
		MaxLifetime: 5 * time.Minute,
	}
}

func New(ctx context.Context, connStr string, pool Pool) (*sql.DB, error) {
	db, err := sql.Open("pgx", connStr)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(pool.MaxConns)
	db.SetMaxIdleConns(pool.MaxIdle)
	db.SetConnMaxLifetime(pool.MaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return db, nil
}
