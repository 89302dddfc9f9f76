// Package reminders is the application layer shared by the web server, the
// MCP tools and the terminal UI. It turns form input into validated domain
// values and keeps the storage entities out of the transports.
package reminders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sandeepkv93/lembrete/internal/datemask"
	"github.com/sandeepkv93/lembrete/internal/model"
	"github.com/sandeepkv93/lembrete/internal/storage"
	"github.com/sandeepkv93/lembrete/internal/suggest"
)

var (
	ErrNotFound = storage.ErrNotFound
	ErrConflict = storage.ErrConflict
)

// ValidationError reports a rejected input field.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Input is a reminder as typed into a form. DueDate is the DD/MM/YYYY mask.
type Input struct {
	Text        string `json:"text" form:"text"`
	DueDate     string `json:"due_date" form:"due_date"`
	Priority    int    `json:"priority" form:"priority"`
	CategoryID  *int64 `json:"category_id" form:"category_id"`
	Description string `json:"description" form:"description"`
}

type CategoryInput struct {
	Name  string `json:"name" form:"name"`
	Color string `json:"color" form:"color"`
}

type Status string

const (
	StatusAll     Status = "all"
	StatusPending Status = "pending"
	StatusDone    Status = "done"
)

func ParseStatus(s string) (Status, bool) {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case "", StatusAll:
		return StatusAll, true
	case StatusPending:
		return StatusPending, true
	case StatusDone:
		return StatusDone, true
	default:
		return StatusAll, false
	}
}

type Filter struct {
	Status     Status
	CategoryID *int64
}

// DateResult is what a date field shows after a keystroke.
type DateResult struct {
	Formatted string `json:"formatted"`
	Complete  bool   `json:"complete"`
	Valid     bool   `json:"valid"`
}

type Service struct {
	repo         storage.Repository
	suggester    *suggest.Engine
	logger       *log.Logger
	now          func() time.Time
	historyLimit int
}

type Option func(*Service)

func WithSuggester(e *suggest.Engine) Option {
	return func(s *Service) { s.suggester = e }
}

func WithLogger(l *log.Logger) Option {
	return func(s *Service) { s.logger = l }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithHistoryLimit caps the texts fed to suggestion frequency analysis; 0 means all.
func WithHistoryLimit(n int) Option {
	return func(s *Service) { s.historyLimit = n }
}

func NewService(repo storage.Repository, opts ...Option) *Service {
	s := &Service{
		repo:      repo,
		suggester: suggest.New(),
		logger:    log.Default(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) List(ctx context.Context, f Filter) ([]model.Reminder, error) {
	filter := storage.ReminderListFilter{CategoryID: f.CategoryID}
	switch f.Status {
	case StatusPending:
		done := false
		filter.Completed = &done
	case StatusDone:
		done := true
		filter.Completed = &done
	}
	rows, err := s.repo.ListReminders(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list reminders: %w", err)
	}
	out := make([]model.Reminder, 0, len(rows))
	for _, row := range rows {
		out = append(out, toModel(row))
	}
	return out, nil
}

// Upcoming returns pending reminders due today or later.
func (s *Service) Upcoming(ctx context.Context) ([]model.Reminder, error) {
	done := false
	y, m, d := s.now().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	rows, err := s.repo.ListReminders(ctx, storage.ReminderListFilter{Completed: &done, DueFrom: &today})
	if err != nil {
		return nil, fmt.Errorf("list upcoming reminders: %w", err)
	}
	out := make([]model.Reminder, 0, len(rows))
	for _, row := range rows {
		out = append(out, toModel(row))
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id int64) (model.Reminder, error) {
	row, err := s.repo.GetReminder(ctx, id)
	if err != nil {
		return model.Reminder{}, fmt.Errorf("get reminder %d: %w", id, err)
	}
	return toModel(row), nil
}

func (s *Service) Create(ctx context.Context, in Input) (model.Reminder, error) {
	rem, err := s.fromInput(ctx, in)
	if err != nil {
		return model.Reminder{}, err
	}
	id, err := s.repo.CreateReminder(ctx, toEntity(rem))
	if err != nil {
		return model.Reminder{}, fmt.Errorf("create reminder: %w", err)
	}
	s.logger.Debug("reminder created", "id", id, "due", datemask.Format(rem.DueDate))
	return s.Get(ctx, id)
}

// Update replaces every editable field; the completed flag is kept.
func (s *Service) Update(ctx context.Context, id int64, in Input) (model.Reminder, error) {
	current, err := s.repo.GetReminder(ctx, id)
	if err != nil {
		return model.Reminder{}, fmt.Errorf("get reminder %d: %w", id, err)
	}
	rem, err := s.fromInput(ctx, in)
	if err != nil {
		return model.Reminder{}, err
	}
	rem.ID = id
	rem.Completed = current.Completed
	if err := s.repo.UpdateReminder(ctx, toEntity(rem)); err != nil {
		return model.Reminder{}, fmt.Errorf("update reminder %d: %w", id, err)
	}
	s.logger.Debug("reminder updated", "id", id)
	return s.Get(ctx, id)
}

func (s *Service) SetCompleted(ctx context.Context, id int64, completed bool) (model.Reminder, error) {
	if err := s.repo.SetReminderCompleted(ctx, id, completed); err != nil {
		return model.Reminder{}, fmt.Errorf("mark reminder %d: %w", id, err)
	}
	return s.Get(ctx, id)
}

func (s *Service) Toggle(ctx context.Context, id int64) (model.Reminder, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return model.Reminder{}, err
	}
	return s.SetCompleted(ctx, id, !current.Completed)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.DeleteReminder(ctx, id); err != nil {
		return fmt.Errorf("delete reminder %d: %w", id, err)
	}
	s.logger.Debug("reminder deleted", "id", id)
	return nil
}

// Suggest feeds the stored reminder texts and the current input to the engine.
func (s *Service) Suggest(ctx context.Context, input string) ([]string, error) {
	history, err := s.repo.ListReminderTexts(ctx, s.historyLimit)
	if err != nil {
		return nil, fmt.Errorf("load suggestion history: %w", err)
	}
	return s.suggester.Suggest(history, input), nil
}

// MaskDate runs one keystroke of the date field.
func (s *Service) MaskDate(raw string) DateResult {
	state := datemask.NewStateWithClock(s.now)
	state.Type(raw)
	return DateResult{Formatted: state.Display, Complete: state.Complete(), Valid: state.Valid}
}

func (s *Service) fromInput(ctx context.Context, in Input) (model.Reminder, error) {
	due, err := datemask.ParseInput(in.DueDate, s.now())
	if err != nil {
		return model.Reminder{}, &ValidationError{Field: "due_date", Err: err}
	}
	rem := model.Reminder{
		Text:        strings.TrimSpace(in.Text),
		Description: strings.TrimSpace(in.Description),
		DueDate:     due,
		Priority:    model.Priority(in.Priority),
		CategoryID:  in.CategoryID,
	}
	if err := rem.Validate(); err != nil {
		return model.Reminder{}, &ValidationError{Field: fieldFor(err), Err: err}
	}
	if rem.CategoryID != nil {
		if _, err := s.repo.GetCategory(ctx, *rem.CategoryID); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return model.Reminder{}, &ValidationError{Field: "category_id", Err: fmt.Errorf("category %d does not exist", *rem.CategoryID)}
			}
			return model.Reminder{}, fmt.Errorf("get category %d: %w", *rem.CategoryID, err)
		}
	}
	return rem, nil
}

func fieldFor(err error) string {
	switch {
	case errors.Is(err, model.ErrTextRequired), errors.Is(err, model.ErrTextTooLong):
		return "text"
	case errors.Is(err, model.ErrDueDateRequired):
		return "due_date"
	case errors.Is(err, model.ErrInvalidPriority):
		return "priority"
	case errors.Is(err, model.ErrCategoryNameRequired):
		return "name"
	case errors.Is(err, model.ErrInvalidColor):
		return "color"
	default:
		return "input"
	}
}

func toModel(in storage.Reminder) model.Reminder {
	return model.Reminder{
		ID:          in.ID,
		Text:        in.Text,
		Description: in.Description,
		DueDate:     in.DueDate,
		Priority:    model.Priority(in.Priority),
		Completed:   in.Completed,
		CategoryID:  in.CategoryID,
		CreatedAt:   in.CreatedAt,
		UpdatedAt:   in.UpdatedAt,
	}
}

func toEntity(in model.Reminder) storage.Reminder {
	return storage.Reminder{
		ID:          in.ID,
		Text:        in.Text,
		Description: in.Description,
		DueDate:     in.DueDate,
		Priority:    int(in.Priority),
		Completed:   in.Completed,
		CategoryID:  in.CategoryID,
	}
}
