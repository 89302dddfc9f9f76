package update

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/lembrete/internal/commands"
	"github.com/sandeepkv93/lembrete/internal/reminders"
)

func (m Model) openPalette() Model {
	m.Palette.Active = true
	m.Palette.Input = ""
	m.commandInput.Focus()
	m.commandInput.SetValue("")
	m.Status = StatusBar{Text: "command palette active"}
	return m
}

func (m Model) handlePaletteKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.Palette.Active = false
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Blur()
		m.Status = StatusBar{Text: "command palette closed"}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		m = m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m
		}
		m.commandInput, _ = m.commandInput.Update(msg)
		m.Palette.Input = m.commandInput.Value()
	}
	return m
}

func (m Model) executePaletteCommand() Model {
	raw := strings.TrimSpace(m.Palette.Input)
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.closePalette()
		return m
	}

	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			rem, err := m.store.Create(m.ctx, reminders.Input{Text: a.Text, DueDate: a.DueDate})
			if err != nil {
				return commands.Result{}, err
			}
			m.syncSchedule(rem)
			m.reload()
			m.selectID(rem.ID)
			return commands.Result{Message: fmt.Sprintf("added #%d for %s", rem.ID, a.DueDate)}, nil
		},
		Done: func(t commands.TargetArgs) (commands.Result, error) {
			return m.setCompleted(t.ID, true)
		},
		Undo: func(t commands.TargetArgs) (commands.Result, error) {
			return m.setCompleted(t.ID, false)
		},
		Delete: func(t commands.TargetArgs) (commands.Result, error) {
			if err := m.store.Delete(m.ctx, t.ID); err != nil {
				return commands.Result{}, err
			}
			m.unschedule(t.ID)
			m.reload()
			return commands.Result{Message: fmt.Sprintf("deleted #%d", t.ID)}, nil
		},
		Show: func(s commands.ShowArgs) (commands.Result, error) {
			status, _ := reminders.ParseStatus(s.Status)
			filter := reminders.Filter{Status: status}
			if s.Category != "" {
				cat, err := m.store.FindCategory(m.ctx, s.Category)
				if err != nil {
					return commands.Result{}, err
				}
				filter.CategoryID = &cat.ID
				m.FilterCategory = cat.Name
			} else {
				m.FilterCategory = ""
			}
			m.Filter = filter
			m.reload()
			return commands.Result{Message: fmt.Sprintf("showing %s (%d)", m.filterLabel(), len(m.Reminders))}, nil
		},
		Category: func(c commands.CategoryArgs) (commands.Result, error) {
			cat, err := m.store.CreateCategory(m.ctx, reminders.CategoryInput{Name: c.Name, Color: c.Color})
			if err != nil {
				return commands.Result{}, err
			}
			m.reload()
			return commands.Result{Message: fmt.Sprintf("category created: %s", cat.Name)}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: commandErrorText(err), IsError: true}
		m.notify("Command Failed", m.Status.Text, "error")
	} else {
		m.Status = StatusBar{Text: res.Message}
	}
	m.closePalette()
	return m
}

func (m *Model) closePalette() {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
}

func (m *Model) setCompleted(id int64, completed bool) (commands.Result, error) {
	rem, err := m.store.SetCompleted(m.ctx, id, completed)
	if err != nil {
		return commands.Result{}, err
	}
	m.syncSchedule(rem)
	m.reload()
	if completed {
		return commands.Result{Message: fmt.Sprintf("#%d done", id)}, nil
	}
	return commands.Result{Message: fmt.Sprintf("#%d pending again", id)}, nil
}

func commandErrorText(err error) string {
	var verr *reminders.ValidationError
	switch {
	case errors.As(err, &verr):
		return validationText(verr)
	case errors.Is(err, reminders.ErrNotFound):
		return "not found"
	case errors.Is(err, reminders.ErrConflict):
		return "already exists"
	default:
		return err.Error()
	}
}
