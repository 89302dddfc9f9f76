package datemask

import (
	"testing"
	"time"
)

func TestStateValidatesOnlyWhenComplete(t *testing.T) {
	s := NewStateWithClock(func() time.Time { return fixedNow })

	s.Type("2902")
	if s.Display != "29/02" {
		t.Fatalf("unexpected display %q", s.Display)
	}
	if s.Valid || s.Invalid() || s.Complete() {
		t.Fatalf("partial input must be neither valid nor invalid: %+v", s)
	}

	s.Type("29022023")
	if !s.Complete() || s.Valid || !s.Invalid() {
		t.Fatalf("expected complete invalid date: %+v", s)
	}

	s.Type("29022024")
	if !s.Valid || s.Invalid() {
		t.Fatalf("expected valid date: %+v", s)
	}

	s.Reset()
	if s.Display != "" || s.Valid {
		t.Fatalf("expected reset state, got %+v", s)
	}
}

func TestZeroStateUsesWallClock(t *testing.T) {
	var s State
	s.Type(Format(time.Now()))
	if !s.Valid {
		t.Fatalf("expected today's date to be valid: %+v", s)
	}
}
