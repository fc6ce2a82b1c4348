package calendar

import (
	"fmt"
	"strings"
)

// Era is the reference frame a year number is counted in.
type Era int

const (
	// EraNone means no era was stated; years are read as AD.
	EraNone Era = iota
	EraAD
	EraBC
	// EraBP counts years before the calendar's present epoch.
	EraBP
)

var eraNames = map[Era]string{
	EraNone: "none",
	EraAD:   "AD",
	EraBC:   "BC",
	EraBP:   "BP",
}

func (e Era) String() string {
	if s, ok := eraNames[e]; ok {
		return s
	}
	return fmt.Sprintf("Era(%d)", int(e))
}

// ParseEra accepts the era names used in vocabulary files and flags.
// CE and BCE are accepted as synonyms.
func ParseEra(s string) (Era, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "NONE":
		return EraNone, nil
	case "AD", "CE":
		return EraAD, nil
	case "BC", "BCE":
		return EraBC, nil
	case "BP":
		return EraBP, nil
	default:
		return EraNone, fmt.Errorf("unknown era %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (e Era) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (e *Era) UnmarshalText(text []byte) error {
	v, err := ParseEra(string(text))
	if err != nil {
		return err
	}
	*e = v
	return nil
}
