package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// MaxTextLength is the longest reminder text accepted, in characters.
const MaxTextLength = 500

var (
	ErrInvalidPriority = errors.New("model: invalid reminder priority")
	ErrTextRequired    = errors.New("model: reminder text is required")
	ErrTextTooLong     = errors.New("model: reminder text is too long")
	ErrDueDateRequired = errors.New("model: reminder due date is required")
)

type Priority int

const (
	PriorityLow    Priority = 0
	PriorityMedium Priority = 1
	PriorityHigh   Priority = 2
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

func (p Priority) Label() string {
	switch p {
	case PriorityLow:
		return "baixa"
	case PriorityMedium:
		return "média"
	case PriorityHigh:
		return "alta"
	default:
		return fmt.Sprintf("prioridade(%d)", int(p))
	}
}

type Reminder struct {
	ID          int64     `json:"id"`
	Text        string    `json:"text"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"due_date"`
	Priority    Priority  `json:"priority"`
	Completed   bool      `json:"completed"`
	CategoryID  *int64    `json:"category_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (r Reminder) Validate() error {
	if strings.TrimSpace(r.Text) == "" {
		return ErrTextRequired
	}
	if n := utf8.RuneCountInString(r.Text); n > MaxTextLength {
		return fmt.Errorf("%w: %d characters", ErrTextTooLong, n)
	}
	if r.DueDate.IsZero() {
		return ErrDueDateRequired
	}
	if !r.Priority.IsValid() {
		return fmt.Errorf("%w: %d", ErrInvalidPriority, int(r.Priority))
	}
	return nil
}

// Overdue reports whether a pending reminder's due date is before the day of now.
func (r Reminder) Overdue(now time.Time) bool {
	if r.Completed || r.DueDate.IsZero() {
		return false
	}
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return r.DueDate.UTC().Before(today)
}
