package importer

import (
	"errors"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

var maxRupiah = decimal.NewFromInt(math.MaxInt64)

var amountCleaner = strings.NewReplacer("Rp", "", "rp", "", "RP", "", "IDR", "", " ", "", "\u00a0", "")

// parseRupiah parses a formatted amount into whole Rupiah, rounding half away
// from zero. Both "1.234.567,89" and "1,234,567.89" are accepted; a lone
// separator followed by exactly three digits is a thousands separator.
func parseRupiah(s string) (int64, error) {
	clean := amountCleaner.Replace(strings.TrimSpace(s))
	if clean == "" {
		return 0, errors.New("empty amount")
	}

	lastDot := strings.LastIndex(clean, ".")
	lastComma := strings.LastIndex(clean, ",")

	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastComma > lastDot {
			clean = strings.ReplaceAll(clean, ".", "")
			clean = strings.Replace(clean, ",", ".", 1)
		} else {
			clean = strings.ReplaceAll(clean, ",", "")
		}
	case lastComma >= 0:
		clean = normalizeSeparator(clean, ",")
	case lastDot >= 0:
		clean = normalizeSeparator(clean, ".")
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, err
	}

	d = d.Round(0)
	if d.Abs().GreaterThan(maxRupiah) {
		return 0, errors.New("amount out of range")
	}

	return d.IntPart(), nil
}

func normalizeSeparator(s, sep string) string {
	if strings.Count(s, sep) > 1 || len(s)-strings.LastIndex(s, sep)-1 == 3 {
		return strings.ReplaceAll(s, sep, "")
	}

	return strings.Replace(s, sep, ".", 1)
}
