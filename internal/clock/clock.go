// Package clock supplies the local time used to stamp ledger records.
package clock

import (
	"fmt"
	"time"
	_ "time/tzdata"
)

// WIB is Western Indonesia Time, used when no zone database entry is found.
var WIB = time.FixedZone("WIB", 7*60*60)

type Clock interface {
	Now() time.Time
}

// Local is the wall clock in a fixed location.
type Local struct {
	loc *time.Location
}

func NewLocal(loc *time.Location) Local {
	if loc == nil {
		loc = WIB
	}

	return Local{loc: loc}
}

func (c Local) Now() time.Time {
	return time.Now().In(c.loc)
}

func (c Local) Location() *time.Location {
	if c.loc == nil {
		return WIB
	}

	return c.loc
}

// Fixed always returns the same instant.
type Fixed struct {
	T time.Time
}

func (c Fixed) Now() time.Time {
	return c.T
}

// LoadLocation resolves an IANA zone name. An empty name means WIB. On failure
// it still returns WIB along with the error so callers can log and carry on.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" {
		return WIB, nil
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return WIB, fmt.Errorf("loading location %q: %w", name, err)
	}

	return loc, nil
}
