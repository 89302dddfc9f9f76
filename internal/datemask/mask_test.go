package datemask

import (
	"errors"
	"strings"
	"testing"
	"time"
)

var fixedNow = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func TestFormatInputProgressive(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"abc", ""},
		{"1", "1"},
		{"12", "12"},
		{"123", "12/3"},
		{"1234", "12/34"},
		{"12345", "12/34/5"},
		{"12345678", "12/34/5678"},
		{"123456789", "12/34/5678"},
		{"29-02-2024", "29/02/2024"},
		{"dia 1 mes 5 ano 2026", "15/20/26"},
		{"29/02/2024", "29/02/2024"},
	}
	for _, tc := range cases {
		if got := FormatInput(tc.in); got != tc.want {
			t.Fatalf("FormatInput(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatInputKeepsDigitsAndLength(t *testing.T) {
	digits := "31122025"
	for n := 0; n <= len(digits); n++ {
		in := digits[:n]
		got := FormatInput(in)
		if stripped := strings.ReplaceAll(got, "/", ""); stripped != in {
			t.Fatalf("FormatInput(%q) dropped digits: %q", in, got)
		}
		seps := 0
		if n > 2 {
			seps++
			if got[2] != '/' {
				t.Fatalf("FormatInput(%q) = %q, want separator at 2", in, got)
			}
		}
		if n > 4 {
			seps++
			if got[5] != '/' {
				t.Fatalf("FormatInput(%q) = %q, want separator at 5", in, got)
			}
		}
		if len(got) != n+seps {
			t.Fatalf("FormatInput(%q) length = %d, want %d", in, len(got), n+seps)
		}
	}
}

func TestFormatInputIdempotent(t *testing.T) {
	for _, in := range []string{"01/01/2024", "12/3", "12/34/5", "07"} {
		once := FormatInput(in)
		if twice := FormatInput(once); twice != once {
			t.Fatalf("FormatInput not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestIsValidDateAt(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"29/02/2024", true},
		{"29/02/2023", false},
		{"29/02/2000", true},
		{"29/02/2100", false},
		{"31/04/2024", false},
		{"30/04/2024", true},
		{"15/13/2024", false},
		{"15/00/2024", false},
		{"00/01/2024", false},
		{"01/01/1979", false},
		{"01/01/1980", true},
		{"31/12/2036", true},
		{"01/01/2037", false},
		{"aa/01/2024", false},
		{"+1/01/2024", false},
		{"01/01", false},
		{"01/01/2024/1", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := IsValidDateAt(tc.in, fixedNow); got != tc.want {
			t.Fatalf("IsValidDateAt(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestIsValidDateUsesCurrentYear(t *testing.T) {
	next := time.Now().Year() + 10
	if !IsValidDate(Format(time.Date(next, 1, 1, 0, 0, 0, 0, time.UTC))) {
		t.Fatalf("expected year %d to be inside the window", next)
	}
	if IsValidDate(Format(time.Date(next+1, 1, 1, 0, 0, 0, 0, time.UTC))) {
		t.Fatalf("expected year %d to be outside the window", next+1)
	}
}

func TestDaysInMonth(t *testing.T) {
	if DaysInMonth(2024, 2) != 29 || DaysInMonth(2023, 2) != 28 {
		t.Fatal("unexpected february length")
	}
	if DaysInMonth(2024, 4) != 30 || DaysInMonth(2024, 12) != 31 {
		t.Fatal("unexpected month length")
	}
	if !IsLeapYear(2000) || IsLeapYear(1900) || !IsLeapYear(2024) || IsLeapYear(2023) {
		t.Fatal("unexpected leap year rule")
	}
}

func TestParseAndFormat(t *testing.T) {
	got, err := ParseAt("09/02/2026", fixedNow)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	want := time.Date(2026, 2, 9, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("parse got %s want %s", got, want)
	}
	if Format(got) != "09/02/2026" {
		t.Fatalf("format got %q", Format(got))
	}
	if Format(time.Time{}) != "" {
		t.Fatal("zero time should format as empty string")
	}

	_, err = ParseAt("31/02/2026", fixedNow)
	if !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}

func TestParseInputRejectsRewrittenInput(t *testing.T) {
	want := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	for _, raw := range []string{"15/03/2026", " 15/03/2026 ", "15032026"} {
		got, err := ParseInput(raw, fixedNow)
		if err != nil || !got.Equal(want) {
			t.Fatalf("ParseInput(%q) = %s, %v", raw, got, err)
		}
	}
	for _, raw := range []string{"15/03/2026999", "1503202612", "15.03.2026 extra 42", "15-03-2026", "1/3/2026", "15/03", ""} {
		if _, err := ParseInput(raw, fixedNow); !errors.Is(err, ErrInvalidDate) {
			t.Fatalf("ParseInput(%q): expected ErrInvalidDate, got %v", raw, err)
		}
	}
}
