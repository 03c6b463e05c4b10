package transaction

import (
	"fmt"
	"strings"
	"time"
)

// Period is a reporting window relative to "now".
type Period string

const (
	PeriodDaily   Period = "harian"
	PeriodWeekly  Period = "mingguan"
	PeriodMonthly Period = "bulanan"
)

func Periods() []Period {
	return []Period{PeriodDaily, PeriodWeekly, PeriodMonthly}
}

func ParsePeriod(s string) (Period, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "harian", "daily":
		return PeriodDaily, nil
	case "mingguan", "weekly":
		return PeriodWeekly, nil
	case "bulanan", "monthly":
		return PeriodMonthly, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
	}
}

// Contains reports whether t falls inside the window ending at now.
//
// The weekly window counts calendar days: anything dated up to seven days
// before now is included, and so are future-dated entries.
func (p Period) Contains(now, t time.Time) bool {
	switch p {
	case PeriodDaily:
		return sameDay(now, t)
	case PeriodWeekly:
		return daysBetween(now, t) <= 7
	case PeriodMonthly:
		return now.Year() == t.Year() && now.Month() == t.Month()
	default:
		return false
	}
}

type Summary struct {
	Period  Period
	Income  int64
	Expense int64
	Balance int64
}

// Filter returns the records inside period. Records whose timestamp cannot be
// parsed in now's location are dropped.
func Filter(period Period, now time.Time, records []Record) []Record {
	out := make([]Record, 0, len(records))

	for _, r := range records {
		t, err := r.Time(now.Location())
		if err != nil {
			continue
		}

		if period.Contains(now, t) {
			out = append(out, r)
		}
	}

	return out
}

func Summarize(period Period, now time.Time, records []Record) Summary {
	s := Summary{Period: period}

	for _, r := range Filter(period, now, records) {
		if r.Type == TypeIncome {
			s.Income += r.Amount
		} else {
			s.Expense += r.Amount
		}
	}

	s.Balance = s.Income - s.Expense

	return s
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()

	return ay == by && am == bm && ad == bd
}

// daysBetween is the calendar-day difference a - b, ignoring clock time.
func daysBetween(a, b time.Time) int {
	ad := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bd := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)

	return int(ad.Sub(bd).Hours() / 24)
}
