package span

import "fmt"

// YearSpan is an inclusive range of signed years with an optional label.
//
// A YearSpan is immutable. The zero value is the unresolved span: it has
// neither bound and prints as the empty string. Constructors normalize so
// that a span with any bound has both, ordered min <= max.
type YearSpan struct {
	min, max int
	resolved bool
	label    string
}

// New returns the span covering a and b in either order.
func New(a, b int) YearSpan {
	if a > b {
		a, b = b, a
	}
	return YearSpan{min: a, max: b, resolved: true}
}

// Point returns the single-year span year/year.
func Point(year int) YearSpan {
	return YearSpan{min: year, max: year, resolved: true}
}

// FromBounds builds a span from zero, one, or two optional years.
// A single present bound becomes both ends.
func FromBounds(a, b *int) YearSpan {
	switch {
	case a != nil && b != nil:
		return New(*a, *b)
	case a != nil:
		return Point(*a)
	case b != nil:
		return Point(*b)
	default:
		return YearSpan{}
	}
}

// Unresolved returns the span with no bounds.
func Unresolved() YearSpan {
	return YearSpan{}
}

// WithLabel returns a copy of s carrying label.
func (s YearSpan) WithLabel(label string) YearSpan {
	s.label = label
	return s
}

// Label returns the descriptive text attached to the span, if any.
func (s YearSpan) Label() string {
	return s.label
}

// IsResolved reports whether the span has bounds.
func (s YearSpan) IsResolved() bool {
	return s.resolved
}

// Min returns the lower bound and whether it is present.
func (s YearSpan) Min() (int, bool) {
	return s.min, s.resolved
}

// Max returns the upper bound and whether it is present.
func (s YearSpan) Max() (int, bool) {
	return s.max, s.resolved
}

// Duration is the number of years covered, counting both ends.
// Unresolved spans have duration 0.
func (s YearSpan) Duration() int {
	if !s.resolved {
		return 0
	}
	d := s.max - s.min
	if d < 0 {
		d = -d
	}
	return d + 1
}

// Equal reports whether s and other cover the same years. Labels are ignored.
func (s YearSpan) Equal(other YearSpan) bool {
	if s.resolved != other.resolved {
		return false
	}
	return !s.resolved || (s.min == other.min && s.max == other.max)
}

// SpanString renders the span as "min/max" using canonical year strings.
// Unresolved spans render as "".
func (s YearSpan) SpanString() string {
	if !s.resolved {
		return ""
	}
	return CanonicalYear(s.min) + "/" + CanonicalYear(s.max)
}

// String renders the span string followed by the label in parentheses.
func (s YearSpan) String() string {
	if s.label == "" {
		return s.SpanString()
	}
	return fmt.Sprintf("%s (%s)", s.SpanString(), s.label)
}
