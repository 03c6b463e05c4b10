package report_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/dompet/internal/report"
	"github.com/MrJamesThe3rd/dompet/internal/transaction"
)

func TestRupiah(t *testing.T) {
	tests := map[int64]string{
		0:       "Rp0",
		999:     "Rp999",
		25000:   "Rp25.000",
		1500000: "Rp1.500.000",
		-3000:   "-Rp3.000",
	}

	for in, want := range tests {
		assert.Equal(t, want, report.Rupiah(in))
	}
}

func TestSaved(t *testing.T) {
	got := report.Saved(transaction.Record{
		Type:     transaction.TypeExpense,
		Amount:   25000,
		Category: transaction.CategoryFood,
		Note:     "Beli kopi 25 ribu",
	})

	assert.Equal(t, "✅ Dicatat!\n• Jenis: Pengeluaran\n• Jumlah: Rp25.000\n• Kategori: Makanan & Minuman\n• Keterangan: Beli kopi 25 ribu", got)
}

func TestNotFound(t *testing.T) {
	assert.Contains(t, report.NotFound(""), "Beli kopi 25 ribu")
	assert.Contains(t, report.NotFound("beli kopi"), "Teks: beli kopi")
}

func TestSummary(t *testing.T) {
	got := report.Summary(transaction.Summary{Period: transaction.PeriodDaily, Expense: 3000, Balance: -3000})
	assert.Equal(t, "📊 Ringkasan hari ini\n• Pemasukan: Rp0\n• Pengeluaran: Rp3.000\n• Saldo: -Rp3.000", got)
}

func TestHelp(t *testing.T) {
	assert.Contains(t, report.Help("!"), "!mingguan")
}
