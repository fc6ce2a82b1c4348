package calendar

import "github.com/roach88/yearspans/internal/span"

// DefaultPresent is the Before Present epoch used when none is configured.
const DefaultPresent = 2000

// Calendar performs era-aware year arithmetic.
type Calendar struct {
	// Present is the epoch BP years count back from.
	Present int
}

// New returns a Calendar with the given BP epoch. A non-positive present
// falls back to DefaultPresent.
func New(present int) Calendar {
	if present <= 0 {
		present = DefaultPresent
	}
	return Calendar{Present: present}
}

// Year converts a year number stated in era to the internal year model.
// BC years become negative; BP years are subtracted from Present.
func (c Calendar) Year(year int, era Era) int {
	switch era {
	case EraBC:
		return -year
	case EraBP:
		return c.Present - year
	default:
		return year
	}
}

// Point is Year wrapped as a single-year span.
func (c Calendar) Point(year int, era Era) span.YearSpan {
	return span.Point(c.Year(year, era))
}

// Range applies era to both ends of a year range.
func (c Calendar) Range(from, to int, era Era) span.YearSpan {
	return span.New(c.Year(from, era), c.Year(to, era))
}

// Century returns the years of the nth century, narrowed by precision.
// It returns an unresolved span for n < 1.
func (c Calendar) Century(n int, p Precision, era Era) span.YearSpan {
	return c.block(n, 100, p, era)
}

// Millennium returns the years of the nth millennium, narrowed by precision.
// It returns an unresolved span for n < 1.
func (c Calendar) Millennium(n int, p Precision, era Era) span.YearSpan {
	return c.block(n, 1000, p, era)
}

func (c Calendar) block(n, size int, p Precision, era Era) span.YearSpan {
	if n < 1 {
		return span.Unresolved()
	}
	var start int
	switch era {
	case EraBC:
		start = -size * n
	case EraBP:
		start = c.Present - size*n + 1
	default:
		start = size*n - size + 1
	}
	w := windowFor(size, p, era)
	return span.New(start+w.from, start+w.to)
}

// Decade returns the ten years starting at decade.
func Decade(decade int) span.YearSpan {
	return span.New(decade, decade+9)
}

// Tolerance returns year widened by signed offsets: "1600-25+17" is
// Tolerance(1600, -25, 17).
func Tolerance(year, lower, upper int) span.YearSpan {
	return span.New(year+lower, year+upper)
}

// PlusMinus returns year ± t.
func PlusMinus(year, t int) span.YearSpan {
	return span.New(year-t, year+t)
}

// Compose joins two spans into one running from the start of first to the
// end of second. When second ends before first starts ("12th to 11th
// century") the result is the hull of both spans instead, so no year named
// by either side is dropped. It is unresolved if either side is.
func Compose(first, second span.YearSpan) span.YearSpan {
	lo, ok := first.Min()
	if !ok {
		return span.Unresolved()
	}
	hi, ok := second.Max()
	if !ok {
		return span.Unresolved()
	}
	if lo <= hi {
		return span.New(lo, hi)
	}
	firstHi, _ := first.Max()
	secondLo, _ := second.Min()
	return span.New(min(lo, secondLo), max(hi, firstHi))
}

// ExpandShortYear fills in the elided leading digits of the second half of
// a short range such as "1250-57" or "1255-7".
func ExpandShortYear(from, to int) int {
	if to < 10 {
		return from - from%10 + to
	}
	return from - from%100 + to
}
