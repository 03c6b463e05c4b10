// Package report renders Indonesian reply texts for the chat surfaces.
package report

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/MrJamesThe3rd/dompet/internal/transaction"
)

var printer = message.NewPrinter(language.Indonesian)

// Rupiah formats whole Rupiah with Indonesian grouping: Rp25.000, -Rp3.000.
func Rupiah(n int64) string {
	if n < 0 {
		return "-" + printer.Sprintf("Rp%d", -n)
	}

	return printer.Sprintf("Rp%d", n)
}

var periodTitles = map[transaction.Period]string{
	transaction.PeriodDaily:   "hari ini",
	transaction.PeriodWeekly:  "7 hari terakhir",
	transaction.PeriodMonthly: "bulan ini",
}

func PeriodTitle(p transaction.Period) string {
	if t, ok := periodTitles[p]; ok {
		return t
	}

	return string(p)
}

func Saved(rec transaction.Record) string {
	var b strings.Builder

	b.WriteString("✅ Dicatat!\n")
	fmt.Fprintf(&b, "• Jenis: %s\n", rec.Type.Label())
	fmt.Fprintf(&b, "• Jumlah: %s\n", Rupiah(rec.Amount))
	fmt.Fprintf(&b, "• Kategori: %s\n", rec.Category)
	fmt.Fprintf(&b, "• Keterangan: %s", rec.Note)

	return b.String()
}

// NotFound is the reply for text without an amount. A non-empty transcript
// is echoed so the user can see what was heard.
func NotFound(transcript string) string {
	if transcript == "" {
		return "Format teks belum jelas. Contoh: 'Beli kopi 25 ribu'."
	}

	return fmt.Sprintf("Teks: %s\n❌ Nominal tidak terdeteksi. Coba sebutkan angka dengan jelas, "+
		"misalnya \"dua puluh ribu\" atau \"20 ribu\".", transcript)
}

func Summary(s transaction.Summary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "📊 Ringkasan %s\n", PeriodTitle(s.Period))
	fmt.Fprintf(&b, "• Pemasukan: %s\n", Rupiah(s.Income))
	fmt.Fprintf(&b, "• Pengeluaran: %s\n", Rupiah(s.Expense))
	fmt.Fprintf(&b, "• Saldo: %s", Rupiah(s.Balance))

	return b.String()
}

func Help(prefix string) string {
	return "Halo! Kirim catatan keuangan dengan teks atau voice note.\n" +
		"Contoh: 'Beli kopi 25 ribu', 'Gaji 5 juta', 'bayar parkir dua ribu'.\n\n" +
		"Perintah:\n" +
		prefix + "harian - ringkasan hari ini\n" +
		prefix + "mingguan - ringkasan 7 hari terakhir\n" +
		prefix + "bulanan - ringkasan bulan ini"
}
