package span

import "encoding/json"

// spanJSON is the wire shape of a YearSpan. Field names use camelCase to
// match the period data consumers already exchange.
type spanJSON struct {
	Label    string `json:"label,omitempty"`
	MinYear  *int   `json:"minYear"`
	MaxYear  *int   `json:"maxYear"`
	ISOSpan  string `json:"isoSpan"`
	Duration int    `json:"duration"`
}

// MarshalJSON encodes the span with raw internal bounds, the canonical span
// string and the duration. Unresolved spans encode null bounds.
func (s YearSpan) MarshalJSON() ([]byte, error) {
	out := spanJSON{
		Label:    s.label,
		ISOSpan:  s.SpanString(),
		Duration: s.Duration(),
	}
	if s.resolved {
		lo, hi := s.min, s.max
		out.MinYear = &lo
		out.MaxYear = &hi
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the shape written by MarshalJSON. Only label and the
// raw bounds are read; the derived fields are recomputed.
func (s *YearSpan) UnmarshalJSON(data []byte) error {
	var in spanJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*s = FromBounds(in.MinYear, in.MaxYear).WithLabel(in.Label)
	return nil
}
