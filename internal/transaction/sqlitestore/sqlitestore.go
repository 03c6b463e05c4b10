// Package sqlitestore keeps the ledger in a local SQLite database via gorm.
package sqlitestore

import (
	"context"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/MrJamesThe3rd/dompet/internal/transaction"
)

// record is the stored row. ID keeps insertion order.
type record struct {
	gorm.Model
	Timestamp string `gorm:"size:19;index;not null"`
	Type      string `gorm:"size:16;not null"`
	Amount    int64  `gorm:"not null"`
	Category  string `gorm:"size:32;not null"`
	Note      string
}

func (record) TableName() string {
	return "records"
}

type Store struct {
	db *gorm.DB
}

func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to sqlite: %w", err)
	}

	if err := db.AutoMigrate(&record{}); err != nil {
		return nil, fmt.Errorf("migrating schema: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Append(ctx context.Context, rec transaction.Record) error {
	row := record{
		Timestamp: rec.Timestamp,
		Type:      string(rec.Type),
		Amount:    rec.Amount,
		Category:  string(rec.Category),
		Note:      rec.Note,
	}

	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("saving record: %w", err)
	}

	return nil
}

func (s *Store) ListAll(ctx context.Context) ([]transaction.Record, error) {
	var rows []record
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}

	out := make([]transaction.Record, 0, len(rows))

	for _, r := range rows {
		cat, err := transaction.ParseCategory(r.Category)
		if err != nil {
			cat = transaction.CategoryOther
		}

		out = append(out, transaction.Record{
			Timestamp: r.Timestamp,
			Type:      transaction.ParseType(r.Type),
			Amount:    r.Amount,
			Category:  cat,
			Note:      r.Note,
		})
	}

	return out, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}
