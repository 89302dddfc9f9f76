// Package datemask turns raw keystrokes into a DD/MM/YYYY display string and
// decides whether a complete string names a real calendar date.
package datemask

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// Length is the size of a complete mask, "DD/MM/YYYY".
	Length = 10

	maxDigits = 8
	minYear   = 1980
	yearAhead = 10
	layout    = "02/01/2006"
)

var ErrInvalidDate = errors.New("datemask: invalid date")

// FormatInput keeps the first eight digits of raw and re-inserts the
// separators after the day and month digits once more digits follow them.
func FormatInput(raw string) string {
	digits := make([]byte, 0, maxDigits)
	for i := 0; i < len(raw) && len(digits) < maxDigits; i++ {
		if c := raw[i]; c >= '0' && c <= '9' {
			digits = append(digits, c)
		}
	}

	var b strings.Builder
	b.Grow(Length)
	for i, c := range digits {
		if i == 2 || i == 4 {
			b.WriteByte('/')
		}
		b.WriteByte(c)
	}
	return b.String()
}

// IsValidDate reports whether formatted is a real date with a year between
// 1980 and ten years after the current one.
func IsValidDate(formatted string) bool {
	return IsValidDateAt(formatted, time.Now())
}

func IsValidDateAt(formatted string, now time.Time) bool {
	_, _, _, ok := split(formatted, now)
	return ok
}

func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func DaysInMonth(year, month int) int {
	switch month {
	case 2:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	case 4, 6, 9, 11:
		return 30
	default:
		return 31
	}
}

// Parse converts a complete, valid mask into the date at UTC midnight.
func Parse(formatted string) (time.Time, error) {
	return ParseAt(formatted, time.Now())
}

func ParseAt(formatted string, now time.Time) (time.Time, error) {
	day, month, year, ok := split(formatted, now)
	if !ok {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, formatted)
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), nil
}

// ParseInput parses a submitted date. It accepts the complete mask or its
// eight bare digits and rejects anything the mask would have to rewrite.
func ParseInput(raw string, now time.Time) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if len(s) == maxDigits && strings.Trim(s, "0123456789") == "" {
		s = FormatInput(s)
	}
	if len(s) != Length || FormatInput(s) != s {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
	}
	return ParseAt(s, now)
}

// Format renders a stored date back into its mask form.
func Format(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(layout)
}

func split(formatted string, now time.Time) (day, month, year int, ok bool) {
	parts := strings.Split(formatted, "/")
	if len(parts) != 3 {
		return 0, 0, 0, false
	}
	nums := [3]int{}
	for i, part := range parts {
		n, valid := atoi(part)
		if !valid {
			return 0, 0, 0, false
		}
		nums[i] = n
	}
	day, month, year = nums[0], nums[1], nums[2]
	if month < 1 || month > 12 {
		return 0, 0, 0, false
	}
	if day < 1 || day > DaysInMonth(year, month) {
		return 0, 0, 0, false
	}
	if year < minYear || year > now.Year()+yearAhead {
		return 0, 0, 0, false
	}
	return day, month, year, true
}

// atoi accepts only unsigned decimal digits.
func atoi(s string) (int, bool) {
	if s == "" || len(s) > 9 {
		return 0, false
	}
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}
