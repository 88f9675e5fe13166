package loader

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/tealeg/xlsx/v2"
)

// maxExcelSerial is 9999-12-31 in the 1900 date system.
const maxExcelSerial = 2958466

// ParseTimestamp parses a dialer timestamp. Text forms go through dateparse
// in UTC; slash dates are month-first, matching how the dialer exports them.
// Plain numbers are Excel serial day numbers from exports that lost their
// cell formatting.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		if serial < 1 || serial >= maxExcelSerial {
			return time.Time{}, false
		}
		return xlsx.TimeFromExcelTime(serial, false).Round(time.Second), true
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t.UTC(), true
}

// ParseQueueSeconds reads the dialer's queue duration. The export stores an
// elapsed duration as a time-of-day value (00:00:10 means ten seconds of
// queueing), so the clock reading is reinterpreted as h*3600 + m*60 + s.
// Fractional seconds are dropped.
//
// Accepted forms:
//   - H:MM:SS, where hours may exceed 23.
//   - H:MM. Two parts are always hours and minutes, so "00:10" is 600 seconds,
//     never ten seconds.
//   - A bare integer, read as whole seconds ("10" is ten seconds).
//   - A non-integral number, read as an Excel serial whose fractional day is
//     the clock reading (0.5 is 12:00:00).
//   - A full timestamp, whose clock part is used.
func ParseQueueSeconds(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if secs, ok := parseClock(s); ok {
		return secs, true
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		if v < 0 || math.IsInf(v, 0) || math.IsNaN(v) {
			return 0, false
		}
		if v == math.Trunc(v) {
			return v, true
		}
		secs := math.Mod(math.Floor((v-math.Floor(v))*86400+0.5), 86400)
		return secs, true
	}
	if t, ok := ParseTimestamp(s); ok {
		return float64(t.Hour()*3600 + t.Minute()*60 + t.Second()), true
	}
	return 0, false
}

// parseClock parses H:MM:SS or H:MM with an optional fractional second.
func parseClock(s string) (float64, bool) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, false
	}

	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 {
		return 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 || len(parts[1]) != 2 {
		return 0, false
	}
	var sec int
	if len(parts) == 3 {
		whole, _, _ := strings.Cut(parts[2], ".")
		sec, err = strconv.Atoi(whole)
		if err != nil || sec < 0 || sec > 59 || len(whole) != 2 {
			return 0, false
		}
	}
	return float64(h*3600 + m*60 + sec), true
}
