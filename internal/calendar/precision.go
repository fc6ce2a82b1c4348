package calendar

import (
	"fmt"
	"strings"
)

// Precision narrows a century or millennium to part of its block.
type Precision int

const (
	PrecisionNone Precision = iota
	PrecisionEarly
	PrecisionEarlyMid
	PrecisionMid
	PrecisionMidLate
	PrecisionLate
	PrecisionHalf1
	PrecisionHalf2
	PrecisionThird1
	PrecisionThird2
	PrecisionThird3
	PrecisionQuarter1
	PrecisionQuarter2
	PrecisionQuarter3
	PrecisionQuarter4
	// PrecisionCirca marks an approximate date. It does not narrow a block.
	PrecisionCirca
)

var precisionNames = []string{
	PrecisionNone:     "none",
	PrecisionEarly:    "early",
	PrecisionEarlyMid: "early-mid",
	PrecisionMid:      "mid",
	PrecisionMidLate:  "mid-late",
	PrecisionLate:     "late",
	PrecisionHalf1:    "half1",
	PrecisionHalf2:    "half2",
	PrecisionThird1:   "third1",
	PrecisionThird2:   "third2",
	PrecisionThird3:   "third3",
	PrecisionQuarter1: "quarter1",
	PrecisionQuarter2: "quarter2",
	PrecisionQuarter3: "quarter3",
	PrecisionQuarter4: "quarter4",
	PrecisionCirca:    "circa",
}

func (p Precision) String() string {
	if p >= 0 && int(p) < len(precisionNames) {
		return precisionNames[p]
	}
	return fmt.Sprintf("Precision(%d)", int(p))
}

// ParsePrecision is the inverse of Precision.String. The empty string is
// PrecisionNone.
func ParsePrecision(s string) (Precision, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return PrecisionNone, nil
	}
	for i, n := range precisionNames {
		if n == name {
			return Precision(i), nil
		}
	}
	return PrecisionNone, fmt.Errorf("unknown precision %q", s)
}

// Precisions lists every precision value in declaration order.
func Precisions() []Precision {
	out := make([]Precision, len(precisionNames))
	for i := range precisionNames {
		out[i] = Precision(i)
	}
	return out
}

// MarshalText implements encoding.TextMarshaler.
func (p Precision) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Precision) UnmarshalText(text []byte) error {
	v, err := ParsePrecision(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}
