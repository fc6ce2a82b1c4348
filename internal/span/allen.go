package span

// Relation is one of the thirteen Allen interval relations between two spans.
// Spans are inclusive integer ranges, so "meets" means the second span starts
// the year after the first ends.
type Relation string

const (
	RelBefore       Relation = "before"
	RelMeets        Relation = "meets"
	RelOverlaps     Relation = "overlaps"
	RelStarts       Relation = "starts"
	RelDuring       Relation = "during"
	RelFinishes     Relation = "finishes"
	RelEquals       Relation = "equals"
	RelFinishedBy   Relation = "finished-by"
	RelContains     Relation = "contains"
	RelStartedBy    Relation = "started-by"
	RelOverlappedBy Relation = "overlapped-by"
	RelMetBy        Relation = "met-by"
	RelAfter        Relation = "after"
)

// Inverse returns the relation seen from the other span.
func (r Relation) Inverse() Relation {
	switch r {
	case RelBefore:
		return RelAfter
	case RelMeets:
		return RelMetBy
	case RelOverlaps:
		return RelOverlappedBy
	case RelStarts:
		return RelStartedBy
	case RelDuring:
		return RelContains
	case RelFinishes:
		return RelFinishedBy
	case RelFinishedBy:
		return RelFinishes
	case RelContains:
		return RelDuring
	case RelStartedBy:
		return RelStarts
	case RelOverlappedBy:
		return RelOverlaps
	case RelMetBy:
		return RelMeets
	case RelAfter:
		return RelBefore
	default:
		return r
	}
}

// Relate returns the Allen relation of a to b. It reports false when either
// span is unresolved.
func Relate(a, b YearSpan) (Relation, bool) {
	if !a.resolved || !b.resolved {
		return "", false
	}
	switch {
	case a.min == b.min && a.max == b.max:
		return RelEquals, true
	case a.max+1 < b.min:
		return RelBefore, true
	case a.max+1 == b.min:
		return RelMeets, true
	case b.max+1 < a.min:
		return RelAfter, true
	case b.max+1 == a.min:
		return RelMetBy, true
	case a.min == b.min:
		if a.max < b.max {
			return RelStarts, true
		}
		return RelStartedBy, true
	case a.max == b.max:
		if a.min > b.min {
			return RelFinishes, true
		}
		return RelFinishedBy, true
	case a.min > b.min && a.max < b.max:
		return RelDuring, true
	case a.min < b.min && a.max > b.max:
		return RelContains, true
	case a.min < b.min:
		return RelOverlaps, true
	default:
		return RelOverlappedBy, true
	}
}

// Contains reports whether every year of b lies within a.
func (s YearSpan) Contains(b YearSpan) bool {
	if !s.resolved || !b.resolved {
		return false
	}
	return s.min <= b.min && b.max <= s.max
}

// Intersects reports whether a and b share at least one year.
func (s YearSpan) Intersects(b YearSpan) bool {
	if !s.resolved || !b.resolved {
		return false
	}
	return s.min <= b.max && b.min <= s.max
}
