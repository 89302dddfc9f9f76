package storage

import "time"

type Reminder struct {
	ID          int64
	Text        string
	Description string
	DueDate     time.Time
	Priority    int
	Completed   bool
	CategoryID  *int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Category struct {
	ID        int64
	Name      string
	Color     string
	CreatedAt time.Time
}

type ReminderListFilter struct {
	Completed  *bool
	CategoryID *int64
	DueFrom    *time.Time
	Limit      int
}
