package timeslot

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Period is the half-day bucket of a slot.
type Period string

const (
	PeriodMorning   Period = "AM"
	PeriodAfternoon Period = "PM"
	PeriodUnknown   Period = ""
)

// Slot is a normalized time-of-day. A canonical slot carries a valid
// hour/minute pair; anything the parser does not recognize is kept as a raw
// fallback so filtering stays total instead of erroring.
type Slot struct {
	Hour      int
	Minute    int
	Canonical bool
	Raw       string // uppercased original input, set only when not canonical
}

var (
	hhmmPattern     = regexp.MustCompile(`^\d{2}:\d{2}$`)
	hmmPattern      = regexp.MustCompile(`^\d:\d{2}$`)
	meridiemPattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})\s?(AM|PM)$`)
)

// Normalize parses "9:00", "09:00", "9:00 AM", "09:00 PM" (case-insensitive)
// into a canonical slot. 12 AM maps to hour 0 and 12 PM stays 12.
// Unrecognized or out-of-range input becomes a raw slot holding the trimmed,
// uppercased text.
func Normalize(raw string) Slot {
	s := strings.ToUpper(strings.TrimSpace(raw))

	switch {
	case hhmmPattern.MatchString(s), hmmPattern.MatchString(s):
		parts := strings.SplitN(s, ":", 2)
		h, _ := strconv.Atoi(parts[0])
		m, _ := strconv.Atoi(parts[1])
		return canonical(h, m, s)

	case meridiemPattern.MatchString(s):
		groups := meridiemPattern.FindStringSubmatch(s)
		h, _ := strconv.Atoi(groups[1])
		m, _ := strconv.Atoi(groups[2])
		if groups[3] == "PM" && h < 12 {
			h += 12
		}
		if groups[3] == "AM" && h == 12 {
			h = 0
		}
		return canonical(h, m, s)
	}

	return Slot{Raw: s}
}

func canonical(h, m int, raw string) Slot {
	if h > 23 || m > 59 {
		return Slot{Raw: raw}
	}
	return Slot{Hour: h, Minute: m, Canonical: true}
}

// FromTime builds a canonical slot from a clock reading.
func FromTime(t time.Time) Slot {
	return Slot{Hour: t.Hour(), Minute: t.Minute(), Canonical: true}
}

// String renders a canonical slot as zero-padded "HH:MM"; raw slots render
// their original (uppercased) text.
func (s Slot) String() string {
	if !s.Canonical {
		return s.Raw
	}
	return fmt.Sprintf("%02d:%02d", s.Hour, s.Minute)
}

// Period classifies the slot: morning iff the canonical hour is before noon.
// Raw slots fall back to a literal AM/PM token if one is present, otherwise
// they belong to no period and never match half-day filters.
func (s Slot) Period() Period {
	if s.Canonical {
		if s.Hour < 12 {
			return PeriodMorning
		}
		return PeriodAfternoon
	}
	if strings.Contains(s.Raw, "AM") {
		return PeriodMorning
	}
	if strings.Contains(s.Raw, "PM") {
		return PeriodAfternoon
	}
	return PeriodUnknown
}

// Compare orders slots chronologically within a day. Canonical slots compare
// on their zero-padded form, raw slots compare case-insensitively among
// themselves and sort after every canonical slot.
func (s Slot) Compare(o Slot) int {
	switch {
	case s.Canonical && o.Canonical:
		return strings.Compare(s.String(), o.String())
	case s.Canonical:
		return -1
	case o.Canonical:
		return 1
	default:
		return strings.Compare(strings.ToLower(s.Raw), strings.ToLower(o.Raw))
	}
}
