// Package importer reads ledger records from CSV and xlsx files: dompet's own
// ledger or exported workbook, and bank mutation statements.
package importer

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/MrJamesThe3rd/dompet/internal/transaction"
)

// Workbooks are zip containers; anything else is read as CSV.
func isWorkbook(data []byte) bool {
	for mt := mimetype.Detect(data); mt != nil; mt = mt.Parent() {
		if mt.Is("application/zip") {
			return true
		}
	}

	return false
}

type Service struct {
	parser     *Parser
	classifier transaction.Classifier
}

// NewService returns a Service that classifies uncategorised rows with
// classifier and reads dates in loc.
func NewService(classifier transaction.Classifier, loc *time.Location) *Service {
	return &Service{
		parser:     NewParser(loc),
		classifier: classifier,
	}
}

// Import parses r, sniffing whether it is a workbook or CSV, into records in
// file order.
func (s *Service) Import(r io.Reader) ([]transaction.Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	var rows []Row
	if isWorkbook(data) {
		rows, err = s.parser.ParseWorkbook(bytes.NewReader(data))
	} else {
		rows, err = s.parser.Parse(bytes.NewReader(data))
	}

	if err != nil {
		return nil, err
	}

	records := make([]transaction.Record, 0, len(rows))
	for _, row := range rows {
		cat := row.Category
		if cat == "" {
			_, cat = s.classifier.Classify(row.Note)
		}

		records = append(records, transaction.Record{
			Timestamp: row.Time.Format(time.DateTime),
			Type:      row.Type,
			Amount:    row.Amount,
			Category:  cat,
			Note:      row.Note,
		})
	}

	return records, nil
}
