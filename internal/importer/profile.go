package importer

import "strings"

// amountMode determines how amounts are extracted from a row.
type amountMode int

const (
	// amountTyped means a positive amount plus a direction column (the dompet ledger).
	amountTyped amountMode = iota
	// amountSingle means one signed column, optionally suffixed with DB or CR.
	amountSingle
	// amountSplit means separate debit and credit columns.
	amountSplit
)

// Profile describes the column layout of a supported CSV export.
// Column names are matched case-insensitively.
type Profile struct {
	Name        string
	DateCol     string
	DescCol     string
	AmountMode  amountMode
	AmountCol   string // amountTyped, amountSingle
	TypeCol     string // amountTyped
	CategoryCol string // optional
	DebitCol    string // amountSplit
	CreditCol   string // amountSplit
}

func (p Profile) requiredCols() []string {
	cols := []string{p.DateCol, p.DescCol}

	switch p.AmountMode {
	case amountTyped:
		cols = append(cols, p.AmountCol, p.TypeCol)
	case amountSingle:
		cols = append(cols, p.AmountCol)
	case amountSplit:
		cols = append(cols, p.DebitCol, p.CreditCol)
	}

	return cols
}

// profiles is tried in order; more specific layouts come first.
var profiles = []Profile{
	{
		Name:        "dompet",
		DateCol:     "Waktu",
		DescCol:     "Keterangan",
		AmountMode:  amountTyped,
		AmountCol:   "Jumlah",
		TypeCol:     "Jenis",
		CategoryCol: "Kategori",
	},
	{
		Name:       "mutasi",
		DateCol:    "Tanggal",
		DescCol:    "Keterangan",
		AmountMode: amountSplit,
		DebitCol:   "Debet",
		CreditCol:  "Kredit",
	},
	{
		Name:       "mutasi-debit",
		DateCol:    "Tanggal",
		DescCol:    "Keterangan",
		AmountMode: amountSplit,
		DebitCol:   "Debit",
		CreditCol:  "Kredit",
	},
	{
		Name:       "mutasi-tunggal",
		DateCol:    "Tanggal",
		DescCol:    "Keterangan",
		AmountMode: amountSingle,
		AmountCol:  "Mutasi",
	},
}

func columnKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
