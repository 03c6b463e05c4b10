package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/MrJamesThe3rd/dompet/internal/transaction"
)

const (
	recordsSheet = "Catatan"
	summarySheet = "Ringkasan"
)

// Service builds xlsx workbooks from the ledger.
type Service struct {
	transactions *transaction.Service
}

// NewService creates a new export Service.
func NewService(txService *transaction.Service) *Service {
	return &Service{transactions: txService}
}

// Filename is the suggested download name, e.g. dompet_20240517.xlsx or
// dompet_mingguan_20240517.xlsx.
func Filename(now time.Time, period *transaction.Period) string {
	if period == nil {
		return fmt.Sprintf("dompet_%s.xlsx", now.Format("20060102"))
	}

	return fmt.Sprintf("dompet_%s_%s.xlsx", *period, now.Format("20060102"))
}

func (s *Service) Filename(period *transaction.Period) string {
	return Filename(s.transactions.Now(), period)
}

// Export writes a workbook with every record (or only those in period) and
// the totals for each period.
func (s *Service) Export(ctx context.Context, period *transaction.Period, w io.Writer) error {
	records, err := s.transactions.List(ctx)
	if err != nil {
		return err
	}

	f, err := Workbook(s.transactions.Now(), period, records)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}

	return nil
}

// ExportFile writes the workbook into outputDir and returns its path.
func (s *Service) ExportFile(ctx context.Context, period *transaction.Period, outputDir string) (string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(outputDir, s.Filename(period))

	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}

	if err := s.Export(ctx, period, out); err != nil {
		out.Close()
		os.Remove(path)

		return "", err
	}

	if err := out.Close(); err != nil {
		return "", fmt.Errorf("closing file: %w", err)
	}

	return path, nil
}

func Workbook(now time.Time, period *transaction.Period, records []transaction.Record) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", recordsSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("naming sheet: %w", err)
	}

	rows := records
	if period != nil {
		rows = transaction.Filter(*period, now, records)
	}

	if err := writeRecords(f, rows); err != nil {
		f.Close()
		return nil, err
	}

	if err := writeSummary(f, now, records); err != nil {
		f.Close()
		return nil, err
	}

	return f, nil
}

func writeRecords(f *excelize.File, records []transaction.Record) error {
	header := make([]any, len(transaction.Header))
	for i, h := range transaction.Header {
		header[i] = h
	}

	if err := f.SetSheetRow(recordsSheet, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}

		row := []any{r.Timestamp, r.Type.Label(), r.Amount, string(r.Category), r.Note}
		if err := f.SetSheetRow(recordsSheet, cell, &row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	return f.SetColWidth(recordsSheet, "A", "E", 20)
}

func writeSummary(f *excelize.File, now time.Time, records []transaction.Record) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("creating summary sheet: %w", err)
	}

	header := []any{"Periode", "Pemasukan", "Pengeluaran", "Saldo"}
	if err := f.SetSheetRow(summarySheet, "A1", &header); err != nil {
		return fmt.Errorf("writing summary header: %w", err)
	}

	for i, p := range transaction.Periods() {
		s := transaction.Summarize(p, now, records)

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}

		row := []any{string(p), s.Income, s.Expense, s.Balance}
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return fmt.Errorf("writing summary row: %w", err)
		}
	}

	return nil
}
