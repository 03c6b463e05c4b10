package transaction

import (
	"context"
	"fmt"
	"strconv"
)

// ImportResult splits a batch into records that were appended and records
// already present in the ledger (or earlier in the same batch).
type ImportResult struct {
	Imported   []Record
	Duplicates []Record
}

// Import appends records that are not already in the ledger. A record is a
// duplicate when timestamp, type, amount and note all match. On a store error
// the records appended so far are still reported.
func (s *Service) Import(ctx context.Context, records []Record) (ImportResult, error) {
	existing, err := s.List(ctx)
	if err != nil {
		return ImportResult{}, err
	}

	seen := make(map[string]struct{}, len(existing)+len(records))
	for _, r := range existing {
		seen[dedupKey(r)] = struct{}{}
	}

	var result ImportResult

	for i, r := range records {
		if r.Amount <= 0 {
			return result, fmt.Errorf("record %d: amount must be positive", i+1)
		}

		key := dedupKey(r)
		if _, ok := seen[key]; ok {
			result.Duplicates = append(result.Duplicates, r)
			continue
		}

		if err := s.repo.Append(ctx, r); err != nil {
			return result, fmt.Errorf("appending record %d: %w", i+1, err)
		}

		seen[key] = struct{}{}
		result.Imported = append(result.Imported, r)
	}

	return result, nil
}

func dedupKey(r Record) string {
	return r.Timestamp + "\x00" + string(r.Type) + "\x00" + strconv.FormatInt(r.Amount, 10) + "\x00" + r.Note
}
