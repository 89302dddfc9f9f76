package update

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/log"

	"github.com/sandeepkv93/lembrete/internal/datemask"
	"github.com/sandeepkv93/lembrete/internal/model"
	"github.com/sandeepkv93/lembrete/internal/reminders"
	"github.com/sandeepkv93/lembrete/internal/scheduler"
)

// Store is the part of the reminder service the terminal UI drives.
type Store interface {
	List(ctx context.Context, f reminders.Filter) ([]model.Reminder, error)
	Create(ctx context.Context, in reminders.Input) (model.Reminder, error)
	Update(ctx context.Context, id int64, in reminders.Input) (model.Reminder, error)
	SetCompleted(ctx context.Context, id int64, completed bool) (model.Reminder, error)
	Delete(ctx context.Context, id int64) error
	Suggest(ctx context.Context, input string) ([]string, error)
	ListCategories(ctx context.Context) ([]model.Category, error)
	FindCategory(ctx context.Context, name string) (model.Category, error)
	CreateCategory(ctx context.Context, in reminders.CategoryInput) (model.Category, error)
}

type Mode string

const (
	ModeList Mode = "list"
	ModeForm Mode = "form"
)

type FormField int

const (
	FieldText FormField = iota
	FieldDate
	FieldPriority
	FieldCategory
	FieldDescription
	fieldCount
)

func (f FormField) String() string {
	switch f {
	case FieldText:
		return "texto"
	case FieldDate:
		return "data"
	case FieldPriority:
		return "prioridade"
	case FieldCategory:
		return "categoria"
	case FieldDescription:
		return "descrição"
	default:
		return ""
	}
}

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	New    string
	Edit   string
	Toggle string
	Delete string
	Filter string
	Help   string
	Quit   string
}

// FormState is the add/edit form. EditingID is zero for a new reminder.
type FormState struct {
	EditingID       int64
	Focus           FormField
	Date            datemask.State
	Priority        model.Priority
	CategoryIndex   int
	Suggestions     []string
	SuggestionIndex int
	Err             string
	text            textinput.Model
	description     textarea.Model
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Notification struct {
	Title string
	Body  string
	Level string
	At    time.Time
}

type DesktopNotifier interface {
	Send(Notification) error
}

type NoopDesktopNotifier struct{}

func (NoopDesktopNotifier) Send(Notification) error { return nil }

type ExecDesktopNotifier struct{}

func (ExecDesktopNotifier) Send(n Notification) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("notify-send", n.Title, n.Body).Run()
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(n.Body), escapeAppleScript(n.Title))
		return exec.Command("osascript", "-e", script).Run()
	default:
		return nil
	}
}

func escapeAppleScript(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}

type Options struct {
	Scheduler   *scheduler.Engine
	TriggerHour int
	Desktop     bool
	Notifier    DesktopNotifier
	Logger      *log.Logger
	Now         func() time.Time
}

type Model struct {
	Mode           Mode
	Filter         reminders.Filter
	FilterCategory string
	Reminders      []model.Reminder
	Categories     []model.Category
	Cursor         int
	Form           FormState
	Palette        CommandPaletteState
	HelpVisible    bool
	Status         StatusBar
	DueLog         []scheduler.DueEvent
	Notifications  []Notification
	Keys           GlobalKeyMap
	Quitting       bool
	Width          int

	ctx          context.Context
	store        Store
	scheduler    *scheduler.Engine
	triggerHour  int
	desktop      bool
	notifier     DesktopNotifier
	logger       *log.Logger
	now          func() time.Time
	commandInput textinput.Model
	helpModel    help.Model
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ReminderDueMsg struct {
	Event scheduler.DueEvent
}

type ReloadMsg struct{}

func NewModel(store Store, opts Options) Model {
	m := Model{
		Mode:        ModeList,
		Filter:      reminders.Filter{Status: reminders.StatusAll},
		ctx:         context.Background(),
		store:       store,
		scheduler:   opts.Scheduler,
		triggerHour: opts.TriggerHour,
		desktop:     opts.Desktop,
		notifier:    opts.Notifier,
		logger:      opts.Logger,
		now:         opts.Now,
		Keys: GlobalKeyMap{
			New:    "n",
			Edit:   "e",
			Toggle: " ",
			Delete: "d",
			Filter: "f",
			Help:   "?",
			Quit:   "q",
		},
	}
	if m.notifier == nil {
		m.notifier = NoopDesktopNotifier{}
	}
	if m.logger == nil {
		m.logger = log.Default()
	}
	if m.now == nil {
		m.now = time.Now
	}
	m.initBubbleComponents()
	m.reload()
	m.scheduleAll()
	return m
}

func (m *Model) initBubbleComponents() {
	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.helpModel = help.New()
	m.Form = newForm(m.now)
}

func newForm(now func() time.Time) FormState {
	text := textinput.New()
	text.Prompt = ""
	text.Placeholder = "Pagar conta de luz"
	text.CharLimit = model.MaxTextLength
	text.Width = 40

	desc := textarea.New()
	desc.SetWidth(54)
	desc.SetHeight(4)
	desc.ShowLineNumbers = false
	desc.Placeholder = "Descrição (markdown)"

	return FormState{
		Date:        datemask.NewStateWithClock(now),
		text:        text,
		description: desc,
	}
}

// reload fetches reminders for the active filter and keeps the selection when it survives.
func (m *Model) reload() {
	selected := m.SelectedID()
	list, err := m.store.List(m.ctx, m.Filter)
	if err != nil {
		m.logger.Error("load reminders", "err", err)
		m.Status = StatusBar{Text: fmt.Sprintf("load failed: %v", err), IsError: true}
		return
	}
	cats, err := m.store.ListCategories(m.ctx)
	if err != nil {
		m.logger.Error("load categories", "err", err)
		m.Status = StatusBar{Text: fmt.Sprintf("load failed: %v", err), IsError: true}
		return
	}
	m.Reminders = list
	m.Categories = cats
	m.Cursor = 0
	for i, rem := range list {
		if rem.ID == selected {
			m.Cursor = i
			break
		}
	}
}

func (m Model) SelectedID() int64 {
	if rem, ok := m.selected(); ok {
		return rem.ID
	}
	return 0
}

func (m Model) selected() (model.Reminder, bool) {
	if m.Cursor < 0 || m.Cursor >= len(m.Reminders) {
		return model.Reminder{}, false
	}
	return m.Reminders[m.Cursor], true
}

func (m Model) categoryName(id *int64) string {
	if id == nil {
		return ""
	}
	for _, cat := range m.Categories {
		if cat.ID == *id {
			return cat.Name
		}
	}
	return ""
}
