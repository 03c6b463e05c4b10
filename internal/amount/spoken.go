package amount

import (
	"math"
	"strings"
	"unicode"
)

// digitWords are the unit words that add to the current scale group.
// "sebelas" is absent on purpose: it is expanded to "satu belas" first.
var digitWords = map[string]int64{
	"nol":      0,
	"kosong":   0,
	"satu":     1,
	"se":       1,
	"dua":      2,
	"tiga":     3,
	"empat":    4,
	"lima":     5,
	"enam":     6,
	"tujuh":    7,
	"delapan":  8,
	"sembilan": 9,
	"sepuluh":  10,
}

// groupScales multiply the current group in place.
var groupScales = map[string]int64{
	"puluh": 10,
	"ratus": 100,
}

// commitScales close the current group and add it to the total.
var commitScales = map[string]int64{
	"ribu": 1_000,
	"juta": 1_000_000,
}

// contractions are expanded per whole token, so no expansion can be
// re-expanded or corrupt a neighbouring word.
var contractions = map[string][]string{
	"seratus": {"satu", "ratus"},
	"seribu":  {"satu", "ribu"},
	"sejuta":  {"satu", "juta"},
	"sebelas": {"satu", "belas"},
}

// ParseWords reads an amount spelled out in Indonesian number words, e.g.
// "dua puluh lima ribu" -> 25000. It reports false when the words add up to
// zero or to more than an int64 holds.
func ParseWords(text string) (int64, bool) {
	var total, current int64

	for _, tok := range tokenize(text) {
		var ok bool

		switch {
		case digitWords[tok] > 0:
			current, ok = addChecked(current, digitWords[tok])
		case tok == "belas":
			current, ok = addChecked(current, 10)
		case commitScales[tok] > 0:
			var group int64

			group, ok = mulChecked(max(current, 1), commitScales[tok])
			if ok {
				total, ok = addChecked(total, group)
			}

			current = 0
		case groupScales[tok] > 0:
			current, ok = mulChecked(max(current, 1), groupScales[tok])
		default:
			// "rupiah", "rp", "nol" and every other word carry no value.
			continue
		}

		if !ok {
			return 0, false
		}
	}

	result, ok := addChecked(total, current)
	if !ok || result <= 0 {
		return 0, false
	}

	return result, true
}

// addChecked and mulChecked take non-negative operands.
func addChecked(a, b int64) (int64, bool) {
	if a > math.MaxInt64-b {
		return 0, false
	}

	return a + b, true
}

func mulChecked(a, b int64) (int64, bool) {
	if a != 0 && b > math.MaxInt64/a {
		return 0, false
	}

	return a * b, true
}

func tokenize(text string) []string {
	fields := strings.Fields(strings.ReplaceAll(strings.ToLower(text), "-", " "))
	tokens := make([]string, 0, len(fields))

	for _, f := range fields {
		f = strings.TrimFunc(f, unicode.IsPunct)
		if f == "" {
			continue
		}

		if expanded, ok := contractions[f]; ok {
			tokens = append(tokens, expanded...)
			continue
		}

		tokens = append(tokens, f)
	}

	return tokens
}
