package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"
)

const (
	sqliteTimeLayout = time.RFC3339Nano
	sqliteDateLayout = "2006-01-02"
	reminderColumns  = `id, text, description, due_date, priority, completed, category_id, created_at, updated_at`
)

type SQLiteRepository struct {
	db  *sql.DB
	now func() time.Time
}

var _ Repository = (*SQLiteRepository)(nil)

// NewSQLiteRepository pins db to a single connection so the foreign_keys
// pragma applies to every statement.
func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return &SQLiteRepository{db: db, now: time.Now}, nil
}

func OpenSQLite(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) DB() *sql.DB {
	return r.db
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) CreateReminder(ctx context.Context, in Reminder) (int64, error) {
	now := r.now()
	if in.CreatedAt.IsZero() {
		in.CreatedAt = now
	}
	in.UpdatedAt = now
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO reminders (text, description, due_date, priority, completed, category_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		in.Text, in.Description, formatDate(in.DueDate), in.Priority, boolInt(in.Completed),
		nullInt(in.CategoryID), mustTime(in.CreatedAt), mustTime(in.UpdatedAt),
	)
	if err != nil {
		return 0, mapError(err)
	}
	return res.LastInsertId()
}

func (r *SQLiteRepository) GetReminder(ctx context.Context, id int64) (Reminder, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+reminderColumns+` FROM reminders WHERE id = ?`, id)
	item, err := scanReminder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Reminder{}, ErrNotFound
		}
		return Reminder{}, err
	}
	return item, nil
}

func (r *SQLiteRepository) UpdateReminder(ctx context.Context, in Reminder) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE reminders
		SET text = ?, description = ?, due_date = ?, priority = ?, completed = ?, category_id = ?, updated_at = ?
		WHERE id = ?`,
		in.Text, in.Description, formatDate(in.DueDate), in.Priority, boolInt(in.Completed),
		nullInt(in.CategoryID), mustTime(r.now()), in.ID,
	)
	if err != nil {
		return mapError(err)
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) SetReminderCompleted(ctx context.Context, id int64, completed bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE reminders SET completed = ?, updated_at = ? WHERE id = ?`,
		boolInt(completed), mustTime(r.now()), id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) DeleteReminder(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reminders WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) ListReminders(ctx context.Context, filter ReminderListFilter) ([]Reminder, error) {
	query := `SELECT ` + reminderColumns + ` FROM reminders`
	clauses := make([]string, 0, 3)
	args := make([]any, 0, 4)
	if filter.Completed != nil {
		clauses = append(clauses, "completed = ?")
		args = append(args, boolInt(*filter.Completed))
	}
	if filter.CategoryID != nil {
		clauses = append(clauses, "category_id = ?")
		args = append(args, *filter.CategoryID)
	}
	if filter.DueFrom != nil {
		clauses = append(clauses, "due_date >= ?")
		args = append(args, formatDate(*filter.DueFrom))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += ` ORDER BY completed ASC, due_date ASC, priority DESC, id ASC`
	query += applyLimit(&args, filter.Limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Reminder, 0)
	for rows.Next() {
		item, scanErr := scanReminder(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

// ListReminderTexts returns reminder texts oldest first.
func (r *SQLiteRepository) ListReminderTexts(ctx context.Context, limit int) ([]string, error) {
	args := make([]any, 0, 1)
	query := `SELECT text FROM (SELECT id, text FROM reminders ORDER BY id DESC` + applyLimit(&args, limit) + `) ORDER BY id ASC`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return nil, err
		}
		out = append(out, text)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) CreateCategory(ctx context.Context, in Category) (int64, error) {
	if in.CreatedAt.IsZero() {
		in.CreatedAt = r.now()
	}
	res, err := r.db.ExecContext(ctx, `INSERT INTO categories (name, color, created_at) VALUES (?, ?, ?)`,
		in.Name, in.Color, mustTime(in.CreatedAt))
	if err != nil {
		return 0, mapError(err)
	}
	return res.LastInsertId()
}

func (r *SQLiteRepository) GetCategory(ctx context.Context, id int64) (Category, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, color, created_at FROM categories WHERE id = ?`, id)
	return getCategory(row)
}

func (r *SQLiteRepository) GetCategoryByName(ctx context.Context, name string) (Category, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, color, created_at FROM categories WHERE name = ? COLLATE NOCASE`, name)
	return getCategory(row)
}

func (r *SQLiteRepository) UpdateCategory(ctx context.Context, in Category) error {
	res, err := r.db.ExecContext(ctx, `UPDATE categories SET name = ?, color = ? WHERE id = ?`, in.Name, in.Color, in.ID)
	if err != nil {
		return mapError(err)
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) DeleteCategory(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, color, created_at FROM categories ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Category, 0)
	for rows.Next() {
		item, scanErr := scanCategory(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func getCategory(row *sql.Row) (Category, error) {
	item, err := scanCategory(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Category{}, ErrNotFound
		}
		return Category{}, err
	}
	return item, nil
}

func mustTime(v time.Time) string {
	return v.UTC().Format(sqliteTimeLayout)
}

func formatDate(v time.Time) string {
	return v.Format(sqliteDateLayout)
}

func parseRequiredTime(v string) (time.Time, error) {
	return time.Parse(sqliteTimeLayout, v)
}

func nullInt(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

func applyLimit(args *[]any, limit int) string {
	if limit <= 0 {
		return ""
	}
	*args = append(*args, limit)
	return " LIMIT ?"
}

type scanner interface {
	Scan(dest ...any) error
}

func scanReminder(s scanner) (Reminder, error) {
	var out Reminder
	var due string
	var completed int
	var category sql.NullInt64
	var created, updated string
	if err := s.Scan(&out.ID, &out.Text, &out.Description, &due, &out.Priority, &completed, &category, &created, &updated); err != nil {
		return Reminder{}, err
	}
	dueDate, err := time.Parse(sqliteDateLayout, due)
	if err != nil {
		return Reminder{}, err
	}
	createdAt, err := parseRequiredTime(created)
	if err != nil {
		return Reminder{}, err
	}
	updatedAt, err := parseRequiredTime(updated)
	if err != nil {
		return Reminder{}, err
	}
	if category.Valid {
		id := category.Int64
		out.CategoryID = &id
	}
	out.DueDate = dueDate
	out.Completed = completed == 1
	out.CreatedAt = createdAt
	out.UpdatedAt = updatedAt
	return out, nil
}

func scanCategory(s scanner) (Category, error) {
	var out Category
	var created string
	if err := s.Scan(&out.ID, &out.Name, &out.Color, &created); err != nil {
		return Category{}, err
	}
	createdAt, err := parseRequiredTime(created)
	if err != nil {
		return Category{}, err
	}
	out.CreatedAt = createdAt
	return out, nil
}

func checkRowsAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// mapError turns unique and foreign key violations into ErrConflict and ErrNotFound.
func mapError(err error) error {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return err
	}
	switch sqliteErr.ExtendedCode {
	case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
		return fmt.Errorf("%w: %v", ErrConflict, err)
	case sqlite3.ErrConstraintForeignKey:
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	default:
		return err
	}
}
