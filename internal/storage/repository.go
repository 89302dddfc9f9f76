package storage

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("storage: not found")
	ErrConflict = errors.New("storage: conflict")
)

type Repository interface {
	CreateReminder(ctx context.Context, in Reminder) (int64, error)
	GetReminder(ctx context.Context, id int64) (Reminder, error)
	UpdateReminder(ctx context.Context, in Reminder) error
	SetReminderCompleted(ctx context.Context, id int64, completed bool) error
	DeleteReminder(ctx context.Context, id int64) error
	ListReminders(ctx context.Context, filter ReminderListFilter) ([]Reminder, error)
	ListReminderTexts(ctx context.Context, limit int) ([]string, error)

	CreateCategory(ctx context.Context, in Category) (int64, error)
	GetCategory(ctx context.Context, id int64) (Category, error)
	GetCategoryByName(ctx context.Context, name string) (Category, error)
	UpdateCategory(ctx context.Context, in Category) error
	DeleteCategory(ctx context.Context, id int64) error
	ListCategories(ctx context.Context) ([]Category, error)
}
