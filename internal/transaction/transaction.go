package transaction

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Type represents the direction of a transaction (income or expense).
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

// Label returns the Indonesian label stored in the ledger's "Jenis" column.
func (t Type) Label() string {
	if t == TypeIncome {
		return "Pemasukan"
	}

	return "Pengeluaran"
}

// ParseType accepts both the internal value and the ledger label. Anything
// unrecognised counts as an expense.
func ParseType(s string) Type {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(TypeIncome), "pemasukan":
		return TypeIncome
	default:
		return TypeExpense
	}
}

// Category is the spending or income bucket of a transaction.
type Category string

const (
	CategoryFood          Category = "Makanan & Minuman"
	CategoryTransport     Category = "Transport"
	CategoryBills         Category = "Tagihan"
	CategoryEntertainment Category = "Hiburan & Game"
	CategoryShopping      Category = "Belanja"
	CategoryOther         Category = "Lainnya"
)

// Categories returns every category in classification order. Other is last.
func Categories() []Category {
	return []Category{
		CategoryFood,
		CategoryTransport,
		CategoryBills,
		CategoryEntertainment,
		CategoryShopping,
		CategoryOther,
	}
}

func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	for _, c := range Categories() {
		if strings.EqualFold(s, string(c)) {
			return c, nil
		}
	}

	return "", fmt.Errorf("unknown category %q", s)
}

// Header is the column layout of a persisted record.
var Header = []string{"Waktu", "Jenis", "Jumlah", "Kategori", "Keterangan"}

// Record is one ledger entry. Amount is whole Rupiah and always positive.
type Record struct {
	Timestamp string // time.DateTime in the clock's zone
	Type      Type
	Amount    int64
	Category  Category
	Note      string
}

func (r Record) Row() []string {
	return []string{
		r.Timestamp,
		r.Type.Label(),
		strconv.FormatInt(r.Amount, 10),
		string(r.Category),
		r.Note,
	}
}

// RecordFromRow parses a row in Header layout. The note column is optional
// and an unknown category is read back as Other.
func RecordFromRow(row []string) (Record, error) {
	if len(row) < 4 {
		return Record{}, fmt.Errorf("row has %d columns, want at least 4", len(row))
	}

	amt, err := strconv.ParseInt(strings.TrimSpace(row[2]), 10, 64)
	if err != nil {
		return Record{}, fmt.Errorf("parsing amount %q: %w", row[2], err)
	}

	cat, err := ParseCategory(row[3])
	if err != nil {
		cat = CategoryOther
	}

	rec := Record{
		Timestamp: strings.TrimSpace(row[0]),
		Type:      ParseType(row[1]),
		Amount:    amt,
		Category:  cat,
	}

	if len(row) > 4 {
		rec.Note = row[4]
	}

	return rec, nil
}

// Time parses the record timestamp in loc.
func (r Record) Time(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(time.DateTime, r.Timestamp, loc)
}
