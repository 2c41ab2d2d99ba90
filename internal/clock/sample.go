// Package clock turns wall-clock time into analog hand angles.
//
// Angles are radians in the mathematical convention: 12 o'clock is π/2 and
// angles decrease clockwise. All three hands derive from a single continuous
// seconds-since-midnight value, so the minute and hour hands sweep smoothly
// instead of jumping.
package clock

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	secondsPerMinute   = 60.0
	secondsPerHour     = 3600.0
	secondsPerHalfDay  = 43200.0
	radiansPerTick     = math.Pi / 30 // one minute or one second on the dial
	radiansPerHourMark = math.Pi / 6
	twelveOClock       = math.Pi / 2
)

// TimeState holds the three hand angles for one instant.
type TimeState struct {
	Hour   float64 `yaml:"hour"   json:"hour"`
	Minute float64 `yaml:"minute" json:"minute"`
	Second float64 `yaml:"second" json:"second"`
}

// Canonical returns the state with every angle reduced to [0, 2π).
func (s TimeState) Canonical() TimeState {
	return TimeState{
		Hour:   normalizeAngle(s.Hour),
		Minute: normalizeAngle(s.Minute),
		Second: normalizeAngle(s.Second),
	}
}

// Sample converts t to hand angles using t's own location.
func Sample(t time.Time) TimeState {
	return FromSeconds(SecondsOfDay(t))
}

// FromSeconds derives hand angles from seconds since midnight. Values outside
// a single day, including negative ones, wrap onto the dial.
func FromSeconds(total float64) TimeState {
	if math.IsNaN(total) || math.IsInf(total, 0) {
		total = 0
	}
	return TimeState{
		Hour:   twelveOClock - (floorMod(total, secondsPerHalfDay)/secondsPerHour)*radiansPerHourMark,
		Minute: twelveOClock - (floorMod(total, secondsPerHour)/secondsPerMinute)*radiansPerTick,
		Second: twelveOClock - floorMod(total, secondsPerMinute)*radiansPerTick,
	}
}

// SecondsOfDay returns the continuous seconds since midnight of t.
func SecondsOfDay(t time.Time) float64 {
	h, m, s := t.Clock()
	return float64(h)*secondsPerHour + float64(m)*secondsPerMinute + float64(s) +
		float64(t.Nanosecond())/1e9
}

// Sampler samples in a fixed location. A nil Location means time.Local.
type Sampler struct {
	Location *time.Location
}

// Sample converts t to hand angles in the sampler's location.
func (s Sampler) Sample(t time.Time) TimeState {
	loc := s.Location
	if loc == nil {
		loc = time.Local
	}
	return Sample(t.In(loc))
}

// LoadLocation resolves a timezone name. Empty and "Local" mean time.Local.
func LoadLocation(name string) (*time.Location, error) {
	switch name {
	case "", "Local", "local":
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", name, err)
	}
	return loc, nil
}

// DemoTime returns 10:10:30 on an arbitrary fixed date in loc. It is the
// time shown on exported icons.
func DemoTime(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(2024, time.January, 1, 10, 10, 30, 0, loc)
}

// ParseClockTime parses "HH:MM", "HH:MM:SS" or "HH:MM:SS.fff" into a time on
// the same fixed date DemoTime uses.
func ParseClockTime(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return time.Time{}, fmt.Errorf("invalid clock time %q: expected HH:MM[:SS[.fff]]", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return time.Time{}, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return time.Time{}, fmt.Errorf("invalid minute in %q", s)
	}
	var sec, nsec int
	if len(parts) == 3 {
		var ok bool
		if sec, nsec, ok = parseSeconds(parts[2]); !ok {
			return time.Time{}, fmt.Errorf("invalid second in %q", s)
		}
	}
	return time.Date(2024, time.January, 1, h, m, sec, nsec, loc), nil
}

// parseSeconds parses "SS" or "SS.fff". Fractions finer than a nanosecond
// are truncated, so a time never rolls over into the next second.
func parseSeconds(s string) (sec, nsec int, ok bool) {
	whole, frac, hasFrac := strings.Cut(s, ".")
	if !isDigits(whole) || len(whole) > 2 || (hasFrac && !isDigits(frac)) {
		return 0, 0, false
	}
	sec, _ = strconv.Atoi(whole)
	if sec > 59 {
		return 0, 0, false
	}
	if len(frac) > 9 {
		frac = frac[:9]
	}
	if frac != "" {
		nsec, _ = strconv.Atoi(frac + strings.Repeat("0", 9-len(frac)))
	}
	return sec, nsec, true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// floorMod returns x mod n in [0, n).
func floorMod(x, n float64) float64 {
	r := math.Mod(x, n)
	if r < 0 {
		r += n
	}
	if r >= n {
		r = 0
	}
	return r
}

func normalizeAngle(a float64) float64 {
	return floorMod(a, 2*math.Pi)
}
