package transaction_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/dompet/internal/transaction"
)

func TestSummarize(t *testing.T) {
	now := time.Date(2024, 1, 8, 20, 0, 0, 0, jakarta)

	records := []transaction.Record{
		{Timestamp: "2024-01-08 07:00:00", Type: transaction.TypeExpense, Amount: 3000},
		{Timestamp: "2024-01-01 23:59:59", Type: transaction.TypeIncome, Amount: 100000},
		{Timestamp: "2023-12-31 10:00:00", Type: transaction.TypeExpense, Amount: 5000},
		{Timestamp: "2024-01-10 10:00:00", Type: transaction.TypeIncome, Amount: 7000},
		{Timestamp: "not a date", Type: transaction.TypeIncome, Amount: 999999},
	}

	tests := []struct {
		name   string
		period transaction.Period
		want   transaction.Summary
	}{
		{
			name:   "Daily",
			period: transaction.PeriodDaily,
			want:   transaction.Summary{Period: transaction.PeriodDaily, Expense: 3000, Balance: -3000},
		},
		{
			// Day 7 is included and the future-dated record counts.
			name:   "Weekly",
			period: transaction.PeriodWeekly,
			want:   transaction.Summary{Period: transaction.PeriodWeekly, Income: 107000, Expense: 3000, Balance: 104000},
		},
		{
			name:   "Monthly",
			period: transaction.PeriodMonthly,
			want:   transaction.Summary{Period: transaction.PeriodMonthly, Income: 107000, Expense: 3000, Balance: 104000},
		},
		{
			name:   "UnknownPeriod",
			period: transaction.Period("tahunan"),
			want:   transaction.Summary{Period: transaction.Period("tahunan")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, transaction.Summarize(tt.period, now, records))
		})
	}

	t.Run("Empty", func(t *testing.T) {
		assert.Equal(t, transaction.Summary{Period: transaction.PeriodDaily}, transaction.Summarize(transaction.PeriodDaily, now, nil))
	})
}

func TestPeriod_WeeklyBoundary(t *testing.T) {
	now := time.Date(2024, 3, 10, 0, 5, 0, 0, jakarta)

	assert.True(t, transaction.PeriodWeekly.Contains(now, time.Date(2024, 3, 3, 23, 59, 0, 0, jakarta)))
	assert.False(t, transaction.PeriodWeekly.Contains(now, time.Date(2024, 3, 2, 23, 59, 0, 0, jakarta)))
}

func TestParsePeriod(t *testing.T) {
	for in, want := range map[string]transaction.Period{
		"harian":   transaction.PeriodDaily,
		"Daily":    transaction.PeriodDaily,
		"mingguan": transaction.PeriodWeekly,
		"weekly":   transaction.PeriodWeekly,
		" bulanan": transaction.PeriodMonthly,
		"monthly":  transaction.PeriodMonthly,
	} {
		got, err := transaction.ParsePeriod(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := transaction.ParsePeriod("tahunan")
	assert.ErrorIs(t, err, transaction.ErrInvalidPeriod)
}
