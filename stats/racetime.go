package stats

import (
	"fmt"
	"strconv"
	"strings"
)

// RaceTime is a mile time parsed from its "M:SS.hh" display form. Comparing
// parsed times avoids the trap of string ordering, which only happens to work
// when every time shares the same minute-prefix length.
type RaceTime struct {
	Minutes    int
	Seconds    int
	Hundredths int
}

// ParseRaceTime parses "1:53.20" style times. Hundredths may be one or two
// digits; a missing fractional part parses as zero.
func ParseRaceTime(s string) (RaceTime, error) {
	mins, rest, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return RaceTime{}, fmt.Errorf("race time %q: missing minute separator", s)
	}

	secs, frac, hasFrac := strings.Cut(rest, ".")

	m, err := strconv.Atoi(mins)
	if err != nil || m < 0 {
		return RaceTime{}, fmt.Errorf("race time %q: bad minutes", s)
	}
	sec, err := strconv.Atoi(secs)
	if err != nil || sec < 0 || sec > 59 {
		return RaceTime{}, fmt.Errorf("race time %q: bad seconds", s)
	}

	h := 0
	if hasFrac {
		if len(frac) == 1 {
			frac += "0"
		}
		if h, err = strconv.Atoi(frac); err != nil || h < 0 || h > 99 {
			return RaceTime{}, fmt.Errorf("race time %q: bad hundredths", s)
		}
	}

	return RaceTime{Minutes: m, Seconds: sec, Hundredths: h}, nil
}

// Hundredths returns the total time in hundredths of a second.
func (t RaceTime) TotalHundredths() int {
	return (t.Minutes*60+t.Seconds)*100 + t.Hundredths
}

// BestTime picks the fastest time from a list of display strings. Strings
// that do not parse are ignored; if nothing parses, the lexicographically
// smallest string wins so that legacy oddly-formatted data still yields a
// result. Returns "" for an empty list.
func BestTime(times []string) string {
	best := ""
	bestParsed := -1

	for _, s := range times {
		t, err := ParseRaceTime(s)
		if err != nil {
			continue
		}
		if h := t.TotalHundredths(); bestParsed < 0 || h < bestParsed {
			bestParsed = h
			best = s
		}
	}
	if best != "" {
		return best
	}

	for _, s := range times {
		if s == "" {
			continue
		}
		if best == "" || s < best {
			best = s
		}
	}
	return best
}
