package models

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseTimeOfDay parses a HH:mm or HH:mm:ss string into minutes past
// midnight. Hours 24-47 are accepted for trips that run past midnight,
// following the GTFS convention of counting hours from the start of the
// service day. Seconds are accepted but truncated; the timetable wire
// format is minute-grained.
func ParseTimeOfDay(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("invalid time %q, use HH:mm or HH:mm:ss", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 47 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	if len(parts) == 3 {
		sec, err := strconv.Atoi(parts[2])
		if err != nil || sec < 0 || sec > 59 {
			return 0, fmt.Errorf("invalid second in %q", s)
		}
	}
	return h*60 + m, nil
}

// FormatTimeOfDay renders minutes past midnight as HH:mm:ss. Values past
// midnight keep counting hours upward (25:30:00, not 01:30:00) so a
// timetable that crosses midnight stays monotonic.
func FormatTimeOfDay(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%02d:%02d:00", minutes/60, minutes%60)
}

// NormalizeTimeOfDay re-renders a valid time string in canonical
// HH:mm:ss form, appending the seconds component when absent. Invalid
// input is returned unchanged.
func NormalizeTimeOfDay(s string) string {
	if s == "" {
		return ""
	}
	minutes, err := ParseTimeOfDay(s)
	if err != nil {
		return s
	}
	return FormatTimeOfDay(minutes)
}
