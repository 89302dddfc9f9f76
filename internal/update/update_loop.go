package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/lembrete/internal/datemask"
	"github.com/sandeepkv93/lembrete/internal/model"
	"github.com/sandeepkv93/lembrete/internal/reminders"
	"github.com/sandeepkv93/lembrete/internal/views"
)

func (m Model) Init() tea.Cmd {
	if m.scheduler != nil {
		return waitForDueCmd(m.scheduler.C())
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if typed.String() == "ctrl+c" {
			m.Quitting = true
			return m, tea.Quit
		}
		if m.Palette.Active {
			return m.handlePaletteKey(typed), nil
		}
		if m.Mode == ModeForm {
			return m.handleFormKey(typed), nil
		}
		return m.handleListKey(typed)
	case tea.WindowSizeMsg:
		m.Width = typed.Width
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ReloadMsg:
		m.reload()
		return m, nil
	case ReminderDueMsg:
		m.onReminderDue(typed.Event)
		if m.scheduler != nil {
			return m, waitForDueCmd(m.scheduler.C())
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "/":
		return m.openPalette(), nil
	case m.Keys.Quit:
		m.Quitting = true
		return m, tea.Quit
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
		return m, nil
	case m.Keys.New:
		return m.openNewForm(), nil
	case m.Keys.Edit:
		return m.openEditForm(), nil
	case "j", "down":
		if m.Cursor < len(m.Reminders)-1 {
			m.Cursor++
		}
	case "k", "up":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case m.Keys.Toggle, "x":
		rem, ok := m.selected()
		if !ok {
			return m, nil
		}
		res, err := m.setCompleted(rem.ID, !rem.Completed)
		if err != nil {
			m.Status = StatusBar{Text: commandErrorText(err), IsError: true}
			return m, nil
		}
		m.Status = StatusBar{Text: res.Message}
	case m.Keys.Delete:
		rem, ok := m.selected()
		if !ok {
			return m, nil
		}
		if err := m.store.Delete(m.ctx, rem.ID); err != nil {
			m.Status = StatusBar{Text: commandErrorText(err), IsError: true}
			return m, nil
		}
		m.unschedule(rem.ID)
		m.reload()
		m.Status = StatusBar{Text: fmt.Sprintf("deleted #%d", rem.ID)}
	case m.Keys.Filter:
		m.Filter.Status = nextStatus(m.Filter.Status)
		m.reload()
		m.Status = StatusBar{Text: "showing " + m.filterLabel()}
	}
	return m, nil
}

func nextStatus(s reminders.Status) reminders.Status {
	switch s {
	case reminders.StatusPending:
		return reminders.StatusDone
	case reminders.StatusDone:
		return reminders.StatusAll
	default:
		return reminders.StatusPending
	}
}

func (m Model) filterLabel() string {
	label := string(m.Filter.Status)
	if m.FilterCategory != "" {
		label += " cat:" + m.FilterCategory
	}
	return label
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		status = "status: " + m.Status.Text
	}

	rows := make([]views.ReminderRowData, 0, len(m.Reminders))
	for _, rem := range m.Reminders {
		rows = append(rows, m.rowData(rem))
	}
	left := views.RenderListPanel(views.ListPanelData{
		Filter:     m.filterLabel(),
		Rows:       rows,
		SelectedID: m.SelectedID(),
	})

	var right string
	if m.Mode == ModeForm {
		right = m.renderForm()
	} else {
		detail := views.DetailPanelData{}
		if rem, ok := m.selected(); ok {
			row := m.rowData(rem)
			detail.Row = &row
			detail.Description = views.RenderMarkdown(rem.Description)
		}
		right = views.RenderDetailPanel(detail)
	}
	right = strings.TrimSpace(strings.Join([]string{
		right,
		views.RenderCommandPalette(m.Palette.Active, m.Palette.Input),
		m.renderHelpIfVisible(),
	}, "\n"))

	notification := ""
	if len(m.DueLog) > 0 {
		last := m.DueLog[len(m.DueLog)-1]
		notification = fmt.Sprintf("last-due: #%d %s @ %s", last.ReminderID, last.Text, last.DueAt.Format("02/01 15:04"))
	}
	if len(m.Notifications) > 0 {
		n := m.Notifications[len(m.Notifications)-1]
		notification = strings.TrimSpace(notification + "\n" + views.RenderNotification(n.Level, n.Body))
	}

	return views.RenderApp(views.AppData{
		Width:        m.Width,
		Header:       fmt.Sprintf("lembrete | mode: %s | filter: %s | selected: #%d", m.Mode, m.filterLabel(), m.SelectedID()),
		LeftPane:     left,
		RightPane:    right,
		StatusLine:   status,
		StatusError:  m.Status.IsError,
		Notification: notification,
		Footer:       fmt.Sprintf("keys: %s new | %s edit | space done | %s delete | %s filter | / cmd | %s help | %s quit", m.Keys.New, m.Keys.Edit, m.Keys.Delete, m.Keys.Filter, m.Keys.Help, m.Keys.Quit),
	})
}

func (m Model) renderForm() string {
	f := m.Form
	title := "novo lembrete"
	if f.EditingID != 0 {
		title = fmt.Sprintf("editar #%d", f.EditingID)
	}
	category := "nenhuma"
	if f.CategoryIndex > 0 && f.CategoryIndex <= len(m.Categories) {
		category = m.Categories[f.CategoryIndex-1].Name
	}
	return views.RenderFormPanel(views.FormPanelData{
		Title:           title,
		TextView:        f.text.View(),
		DateView:        f.Date.Display,
		DateComplete:    f.Date.Complete(),
		DateValid:       f.Date.Valid,
		Priority:        f.Priority.Label(),
		Category:        category,
		DescriptionView: f.description.View(),
		Focus:           f.Focus.String(),
		Suggestions:     f.Suggestions,
		SuggestionIndex: f.SuggestionIndex,
		Error:           f.Err,
	})
}

func (m Model) rowData(rem model.Reminder) views.ReminderRowData {
	return views.ReminderRowData{
		ID:        rem.ID,
		Text:      rem.Text,
		DueDate:   datemask.Format(rem.DueDate),
		Priority:  rem.Priority.Label(),
		Category:  m.categoryName(rem.CategoryID),
		Completed: rem.Completed,
		Overdue:   rem.Overdue(m.now()),
	}
}
