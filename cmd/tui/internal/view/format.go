package view

import (
	"context"
	"time"

	"github.com/MrJamesThe3rd/dompet/internal/report"
	"github.com/MrJamesThe3rd/dompet/internal/transaction"
)

const dbTimeout = 5 * time.Second

// FormatAmount renders whole Rupiah with a sign for the direction.
func FormatAmount(t transaction.Type, amount int64) string {
	if t == transaction.TypeIncome {
		return "+" + report.Rupiah(amount)
	}

	return "-" + report.Rupiah(amount)
}

// DbCtx returns a context with a standard timeout for store operations.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}
