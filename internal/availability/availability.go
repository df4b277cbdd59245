// Package availability holds the pure calendar logic behind date blocking:
// day enumeration, range-overlap checks against a known blocked set, and the
// forward scan that bounds how late a guest may check out. Persistence of
// block records lives in the repository layer.
package availability

import (
	"fmt"
	"math"
	"time"
)

const dateLayout = "2006-01-02"

// MaxLookaheadMonths bounds the forward scan in MaxCheckoutDate.
const MaxLookaheadMonths = 3

// ParseDay accepts either a plain YYYY-MM-DD date or an RFC 3339 timestamp
// and returns the calendar day in UTC.
func ParseDay(s string) (time.Time, error) {
	if len(s) >= len(dateLayout) {
		if d, err := time.ParseInLocation(dateLayout, s[:len(dateLayout)], time.UTC); err == nil {
			return d, nil
		}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC().Truncate(24 * time.Hour), nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD or RFC 3339", s)
}

// Day truncates an ISO timestamp or date string to its YYYY-MM-DD prefix.
// ISO date strings compare correctly as plain strings, which several range
// checks below rely on.
func Day(s string) string {
	if len(s) >= len(dateLayout) {
		return s[:len(dateLayout)]
	}
	return s
}

// Nights returns the stay length as the ceiling of checkOut-checkIn in whole
// days, with a minimum of one night. checkOut must be strictly after checkIn.
func Nights(checkIn, checkOut string) (int32, error) {
	in, err := parsePoint(checkIn)
	if err != nil {
		return 0, err
	}
	out, err := parsePoint(checkOut)
	if err != nil {
		return 0, err
	}
	if !out.After(in) {
		return 0, fmt.Errorf("checkout %s must be after checkin %s", checkOut, checkIn)
	}
	nights := int32(math.Ceil(out.Sub(in).Hours() / 24))
	if nights < 1 {
		nights = 1
	}
	return nights, nil
}

// DatesInRange enumerates the occupied calendar days of a stay: every day
// from checkIn inclusive to checkOut exclusive. The checkout day is not
// occupied, so back-to-back stays can share it.
func DatesInRange(checkIn, checkOut string) ([]string, error) {
	start, err := ParseDay(checkIn)
	if err != nil {
		return nil, err
	}
	end, err := ParseDay(checkOut)
	if err != nil {
		return nil, err
	}
	var dates []string
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(dateLayout))
	}
	return dates, nil
}

// IsRangeBlocked reports whether any occupied day of [checkIn, checkOut)
// intersects the blocked set. Keys in blocked are YYYY-MM-DD strings.
func IsRangeBlocked(checkIn, checkOut string, blocked map[string]bool) bool {
	dates, err := DatesInRange(checkIn, checkOut)
	if err != nil {
		// An unparseable range cannot be proven free.
		return true
	}
	for _, d := range dates {
		if blocked[d] {
			return true
		}
	}
	return false
}

// MaxCheckoutDate scans forward from the day after check-in and returns the
// latest allowed checkout given the blocked set: the day before the first
// blocked date found, or the look-ahead boundary (check-in plus three
// months) when no block exists in the window. When the very next day is
// already blocked there is no checkout strictly after check-in, and ok is
// false.
func MaxCheckoutDate(checkIn string, blocked map[string]bool) (string, bool) {
	start, err := ParseDay(checkIn)
	if err != nil {
		return "", false
	}
	boundary := start.AddDate(0, MaxLookaheadMonths, 0)
	for d := start.AddDate(0, 0, 1); !d.After(boundary); d = d.AddDate(0, 0, 1) {
		if blocked[d.Format(dateLayout)] {
			last := d.AddDate(0, 0, -1)
			if !last.After(start) {
				return "", false
			}
			return last.Format(dateLayout), true
		}
	}
	return boundary.Format(dateLayout), true
}

// parsePoint parses a date or timestamp without truncating the time of day,
// so Nights can round partial days up.
func parsePoint(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	if d, err := time.ParseInLocation(dateLayout, s, time.UTC); err == nil {
		return d, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD or RFC 3339", s)
}
