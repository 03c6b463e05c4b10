// Package amount extracts Rupiah amounts from free-form Indonesian text.
//
// Amounts written with digits ("25.000", "25rb", "1,5 jt") always win over
// amounts spelled out in words ("dua puluh lima ribu") because they are less
// ambiguous. All functions are pure and safe for concurrent use.
package amount

import "errors"

// Resolve returns the amount mentioned in text, or false when there is none.
// A digit amount too large to store is unresolved; it does not fall back to
// the number words around it.
func Resolve(text string) (int64, bool) {
	v, err := parseDigits(text)

	switch {
	case err == nil:
		return v, true
	case errors.Is(err, ErrOutOfRange):
		return 0, false
	}

	return ParseWords(text)
}
