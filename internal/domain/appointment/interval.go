package appointment

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/glowbookhq/stylist-scheduler/internal/httperr"
)

// Interval is a half-open [Start, End) range in minutes from midnight.
type Interval struct {
	StartMin int
	EndMin   int
}

func (i Interval) Duration() int {
	return i.EndMin - i.StartMin
}

// Overlaps uses half-open semantics: touching endpoints do not conflict and
// zero-length intervals never conflict with anything.
func Overlaps(a, b Interval) bool {
	return a.StartMin < b.EndMin && b.StartMin < a.EndMin
}

// ParseClock parses an HH:MM wall-clock string into minutes from midnight.
func ParseClock(hm string) (int, error) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return 0, httperr.ErrBusiness(httperr.CodeInvalidDateOrTime)
	}
	return t.Hour()*60 + t.Minute(), nil
}

func FormatClock(min int) string {
	return fmt.Sprintf("%02d:%02d", min/60, min%60)
}

// ParseServiceDuration normalizes the duration strings carried on
// portfolios and appointments ("1h", "90m", "1h30m", bare "45") into
// minutes. Every interval computation in the engine goes through here;
// malformed input is a boundary validation error, never a silent zero.
func ParseServiceDuration(s string) (int, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return 0, httperr.ErrBusiness(httperr.CodeInvalidDuration)
	}

	// Bare integer means minutes (legacy form).
	if n, err := strconv.Atoi(s); err == nil {
		if n <= 0 {
			return 0, httperr.ErrBusiness(httperr.CodeInvalidDuration)
		}
		return n, nil
	}

	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 || d%time.Minute != 0 {
		return 0, httperr.ErrBusiness(httperr.CodeInvalidDuration)
	}
	return int(d / time.Minute), nil
}

// IntervalFor builds the busy interval of an appointment from its stored
// wall-clock start and duration string.
func IntervalFor(appointmentTime, duration string) (Interval, error) {
	start, err := ParseClock(appointmentTime)
	if err != nil {
		return Interval{}, err
	}
	mins, err := ParseServiceDuration(duration)
	if err != nil {
		return Interval{}, err
	}
	return Interval{StartMin: start, EndMin: start + mins}, nil
}
