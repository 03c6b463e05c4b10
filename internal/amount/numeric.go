package amount

import (
	"errors"
	"math"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// digitRun matches the first number written with digits, optionally followed
// by a magnitude word. The magnitude must end on a word boundary so "25 kopi"
// is not read as 25k.
var digitRun = regexp.MustCompile(`(?i)(\d[\d.,]*)(?:\s*(k|rb|ribu|jt|juta)\b)?`)

// ErrOutOfRange reports an amount too large to store.
var ErrOutOfRange = errors.New("amount out of range")

var (
	errNoDigits = errors.New("no digit amount")
	maxAmount   = decimal.NewFromInt(math.MaxInt64)
)

var magnitudes = map[string]int64{
	"k":    1_000,
	"rb":   1_000,
	"ribu": 1_000,
	"jt":   1_000_000,
	"juta": 1_000_000,
}

// ParseDigits extracts the first digit-written amount from text, e.g.
// "25.000" -> 25000, "25k" -> 25000, "1.2 jt" -> 1200000.
//
// It reports false when the text has no digit run, the run cannot be read
// as a number ("1.2.3"), or the amount does not fit in an int64.
func ParseDigits(text string) (int64, bool) {
	v, err := parseDigits(text)
	if err != nil {
		return 0, false
	}

	return v, true
}

func parseDigits(text string) (int64, error) {
	m := digitRun.FindStringSubmatch(text)
	if m == nil {
		return 0, errNoDigits
	}

	value, err := parseNumber(m[1])
	if err != nil {
		return 0, errNoDigits
	}

	if mult, ok := magnitudes[strings.ToLower(m[2])]; ok {
		value = value.Mul(decimal.NewFromInt(mult))
	}

	// Round is half away from zero; amounts are never negative here.
	value = value.Round(0)
	if value.GreaterThan(maxAmount) {
		return 0, ErrOutOfRange
	}

	return value.IntPart(), nil
}

// parseNumber reads a digit run that may contain "." and "," separators.
// A separator followed by exactly three digits groups thousands and is
// dropped; any other separator is a decimal mark.
func parseNumber(raw string) (decimal.Decimal, error) {
	raw = strings.TrimRight(raw, ".,")

	var b strings.Builder

	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c != '.' && c != ',' {
			b.WriteByte(c)
			continue
		}

		if groupsThousands(raw[i+1:]) {
			continue
		}

		b.WriteByte('.')
	}

	return decimal.NewFromString(b.String())
}

func groupsThousands(rest string) bool {
	n := 0
	for n < len(rest) && rest[n] >= '0' && rest[n] <= '9' {
		n++
	}

	if n != 3 {
		return false
	}

	return n == len(rest) || rest[n] == '.' || rest[n] == ','
}
