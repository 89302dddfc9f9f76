package datemask

import "time"

// State is the transient date field of an entry form.
type State struct {
	Display string
	Valid   bool

	now func() time.Time
}

func NewState() State {
	return State{now: time.Now}
}

// NewStateWithClock is NewState with a fixed source for the current year.
func NewStateWithClock(now func() time.Time) State {
	return State{now: now}
}

// Type recomputes the mask from raw. Validation only runs once the display
// holds a complete DD/MM/YYYY string.
func (s *State) Type(raw string) {
	s.Display = FormatInput(raw)
	s.Valid = false
	if s.Complete() {
		now := time.Now
		if s.now != nil {
			now = s.now
		}
		s.Valid = IsValidDateAt(s.Display, now())
	}
}

func (s State) Complete() bool {
	return len(s.Display) == Length
}

// Invalid is true only for a complete display that failed validation.
func (s State) Invalid() bool {
	return s.Complete() && !s.Valid
}

func (s *State) Reset() {
	s.Display = ""
	s.Valid = false
}
