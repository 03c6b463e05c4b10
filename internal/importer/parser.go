package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/MrJamesThe3rd/dompet/internal/encoding"
	"github.com/MrJamesThe3rd/dompet/internal/transaction"
)

var ErrUnknownFormat = errors.New("no matching format found: expected dompet ledger or bank mutation columns")

var dateLayouts = []string{
	time.DateTime,
	time.DateOnly,
	"02/01/2006 15:04",
	"02/01/2006",
	"02-01-2006",
	"2/1/2006",
	"02/01/06",
}

// Row is one imported line. Category is empty when the layout has none.
type Row struct {
	Time     time.Time
	Type     transaction.Type
	Amount   int64
	Category transaction.Category
	Note     string
}

// Parser reads ledger and bank mutation exports. The layout is auto-detected
// by matching column headers against known profiles.
type Parser struct {
	loc *time.Location
}

// NewParser returns a Parser reading dates in loc.
func NewParser(loc *time.Location) *Parser {
	if loc == nil {
		loc = time.UTC
	}

	return &Parser{loc: loc}
}

// Parse reads a CSV file in any encoding with a comma, semicolon or tab
// delimiter.
func (p *Parser) Parse(r io.Reader) ([]Row, error) {
	utf8r, err := encoding.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	data, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = sniffDelimiter(data)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	return p.ParseRows(rows)
}

// ParseWorkbook reads the first sheet of an xlsx workbook whose header
// matches a profile.
func (p *Parser) ParseWorkbook(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
		}

		result, err := p.ParseRows(rows)
		if errors.Is(err, ErrUnknownFormat) {
			continue
		}

		return result, err
	}

	return nil, ErrUnknownFormat
}

// ParseRows finds the header row and extracts every data row below it.
// Rows without a parseable date or a non-zero amount (titles, footers,
// balances) are skipped.
func (p *Parser) ParseRows(rows [][]string) ([]Row, error) {
	profile, cols, headerIdx := detectProfile(rows)
	if profile == nil {
		return nil, ErrUnknownFormat
	}

	return p.parseRows(profile, cols, rows[headerIdx+1:], headerIdx+1)
}

// colIndex maps lowercased column names to their index in the row.
type colIndex map[string]int

func (c colIndex) get(name string) int {
	if name == "" {
		return -1
	}

	idx, ok := c[columnKey(name)]
	if !ok {
		return -1
	}

	return idx
}

func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			if name := columnKey(cell); name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if cols.get(name) < 0 {
			return false
		}
	}

	return true
}

func (p *Parser) parseRows(profile *Profile, cols colIndex, rows [][]string, headerRowNum int) ([]Row, error) {
	dateIdx := cols.get(profile.DateCol)
	descIdx := cols.get(profile.DescCol)
	catIdx := cols.get(profile.CategoryCol)

	var out []Row

	for i, row := range rows {
		rowNum := headerRowNum + i + 1 // 1-based

		t, ok := p.parseDate(cellValue(row, dateIdx))
		if !ok {
			continue
		}

		amount, txType, ok := parseAmount(profile, cols, row)
		if !ok {
			continue
		}

		desc := cellValue(row, descIdx)
		if desc == "" {
			return nil, fmt.Errorf("row %d: missing description", rowNum)
		}

		r := Row{Time: t, Type: txType, Amount: amount, Note: desc}

		if catIdx >= 0 {
			if cat, err := transaction.ParseCategory(cellValue(row, catIdx)); err == nil {
				r.Category = cat
			} else {
				r.Category = transaction.CategoryOther
			}
		}

		out = append(out, r)
	}

	return out, nil
}

func (p *Parser) parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, p.loc); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

func parseAmount(p *Profile, cols colIndex, row []string) (int64, transaction.Type, bool) {
	switch p.AmountMode {
	case amountTyped:
		return parseTypedAmount(row, cols.get(p.AmountCol), cols.get(p.TypeCol))
	case amountSingle:
		return parseSingleAmount(cellValue(row, cols.get(p.AmountCol)))
	case amountSplit:
		return parseSplitAmount(row, cols.get(p.DebitCol), cols.get(p.CreditCol))
	}

	return 0, "", false
}

func parseTypedAmount(row []string, amountIdx, typeIdx int) (int64, transaction.Type, bool) {
	n, err := parseRupiah(cellValue(row, amountIdx))
	if err != nil || n <= 0 {
		return 0, "", false
	}

	return n, transaction.ParseType(cellValue(row, typeIdx)), true
}

// parseSingleAmount handles a signed amount; a trailing DB or CR overrides
// the sign.
func parseSingleAmount(s string) (int64, transaction.Type, bool) {
	if s == "" {
		return 0, "", false
	}

	var suffix string

	upper := strings.ToUpper(s)
	for _, sfx := range []string{"DB", "CR"} {
		if strings.HasSuffix(upper, sfx) {
			suffix = sfx
			s = strings.TrimSpace(s[:len(s)-len(sfx)])

			break
		}
	}

	n, err := parseRupiah(s)
	if err != nil || n == 0 {
		return 0, "", false
	}

	switch {
	case suffix == "DB":
		return abs(n), transaction.TypeExpense, true
	case suffix == "CR":
		return abs(n), transaction.TypeIncome, true
	case n < 0:
		return -n, transaction.TypeExpense, true
	}

	return n, transaction.TypeIncome, true
}

func parseSplitAmount(row []string, debitIdx, creditIdx int) (int64, transaction.Type, bool) {
	if s := cellValue(row, debitIdx); s != "" {
		n, err := parseRupiah(s)
		if err == nil && n != 0 {
			return abs(n), transaction.TypeExpense, true
		}
	}

	if s := cellValue(row, creditIdx); s != "" {
		n, err := parseRupiah(s)
		if err == nil && n != 0 {
			return abs(n), transaction.TypeIncome, true
		}
	}

	return 0, "", false
}

// sniffDelimiter picks the most frequent of ';', '\t' and ',' in the first
// lines. Comma wins ties.
func sniffDelimiter(data []byte) rune {
	lines := bytes.SplitN(data, []byte("\n"), 21)
	if len(lines) > 20 {
		lines = lines[:20]
	}

	counts := map[rune]int{}

	for _, line := range lines {
		for _, c := range []rune{',', ';', '\t'} {
			counts[c] += bytes.Count(line, []byte(string(c)))
		}
	}

	best := ','
	for _, c := range []rune{';', '\t'} {
		if counts[c] > counts[best] {
			best = c
		}
	}

	return best
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}

	return n
}
