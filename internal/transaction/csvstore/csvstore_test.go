package csvstore_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/dompet/internal/transaction"
	"github.com/MrJamesThe3rd/dompet/internal/transaction/csvstore"
)

func coffee() transaction.Record {
	return transaction.Record{
		Timestamp: "2024-05-17 09:30:00",
		Type:      transaction.TypeExpense,
		Amount:    25000,
		Category:  transaction.CategoryFood,
		Note:      "Beli kopi, 25 ribu",
	}
}

func TestStore_AppendAndList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "catatan.csv")
	s := csvstore.New(path, zerolog.Nop())
	ctx := context.Background()

	got, err := s.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, s.Append(ctx, coffee()))

	salary := transaction.Record{
		Timestamp: "2024-05-17 10:00:00",
		Type:      transaction.TypeIncome,
		Amount:    5000000,
		Category:  transaction.CategoryOther,
		Note:      "gaji",
	}
	require.NoError(t, s.Append(ctx, salary))

	got, err = s.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []transaction.Record{coffee(), salary}, got)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"Waktu,Jenis,Jumlah,Kategori,Keterangan\n"+
			"2024-05-17 09:30:00,Pengeluaran,25000,Makanan & Minuman,\"Beli kopi, 25 ribu\"\n"+
			"2024-05-17 10:00:00,Pemasukan,5000000,Lainnya,gaji\n",
		string(raw))
}

func TestStore_SkipsMalformedRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catatan.csv")
	content := "Waktu,Jenis,Jumlah,Kategori,Keterangan\n" +
		"2024-05-17 09:30:00,Pengeluaran,abc,Belanja,rusak\n" +
		"pendek\n" +
		"2024-05-17 09:31:00,Pengeluaran,3000,Transport\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	got, err := csvstore.New(path, zerolog.Nop()).ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(3000), got[0].Amount)
	assert.Equal(t, transaction.CategoryTransport, got[0].Category)
}

func TestStore_ConcurrentAppends(t *testing.T) {
	s := csvstore.New(filepath.Join(t.TempDir(), "catatan.csv"), zerolog.Nop())
	ctx := context.Background()

	var wg sync.WaitGroup

	for range 20 {
		wg.Go(func() {
			assert.NoError(t, s.Append(ctx, coffee()))
		})
	}

	wg.Wait()

	got, err := s.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 20)
}

func TestStore_CanceledContext(t *testing.T) {
	s := csvstore.New(filepath.Join(t.TempDir(), "catatan.csv"), zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, s.Append(ctx, coffee()), context.Canceled)
}
