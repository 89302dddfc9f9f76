package update

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/lembrete/internal/datemask"
	"github.com/sandeepkv93/lembrete/internal/model"
	"github.com/sandeepkv93/lembrete/internal/reminders"
)

func (m Model) openNewForm() Model {
	m.Form = newForm(m.now)
	m.Mode = ModeForm
	m.focusField(FieldText)
	m.refreshSuggestions()
	m.Status = StatusBar{Text: "new reminder"}
	return m
}

func (m Model) openEditForm() Model {
	rem, ok := m.selected()
	if !ok {
		m.Status = StatusBar{Text: "no reminder selected", IsError: true}
		return m
	}
	m.Form = newForm(m.now)
	m.Form.EditingID = rem.ID
	m.Form.text.SetValue(rem.Text)
	m.Form.Date.Type(datemask.Format(rem.DueDate))
	m.Form.Priority = rem.Priority
	m.Form.description.SetValue(rem.Description)
	if rem.CategoryID != nil {
		for i, cat := range m.Categories {
			if cat.ID == *rem.CategoryID {
				m.Form.CategoryIndex = i + 1
			}
		}
	}
	m.Mode = ModeForm
	m.focusField(FieldText)
	m.refreshSuggestions()
	m.Status = StatusBar{Text: fmt.Sprintf("editing #%d", rem.ID)}
	return m
}

func (m Model) handleFormKey(msg tea.KeyMsg) Model {
	f := &m.Form
	switch msg.String() {
	case "esc":
		m.Mode = ModeList
		m.Form = newForm(m.now)
		m.Status = StatusBar{Text: "edit cancelled"}
		return m
	case "ctrl+s":
		return m.submitForm()
	case "enter":
		if f.Focus != FieldDescription {
			return m.submitForm()
		}
		f.description.InsertString("\n")
		return m
	case "tab":
		if f.Focus == FieldText && len(f.Suggestions) > 0 {
			m.acceptSuggestion()
			return m
		}
		m.focusField((f.Focus + 1) % fieldCount)
		return m
	case "shift+tab":
		m.focusField((f.Focus + fieldCount - 1) % fieldCount)
		return m
	}

	switch f.Focus {
	case FieldText:
		m.handleTextKey(msg)
	case FieldDate:
		m.handleDateKey(msg)
	case FieldPriority:
		switch msg.String() {
		case "left", "h":
			f.Priority = (f.Priority + 2) % 3
		case "right", "l":
			f.Priority = (f.Priority + 1) % 3
		}
	case FieldCategory:
		n := len(m.Categories) + 1
		switch msg.String() {
		case "left", "h":
			f.CategoryIndex = (f.CategoryIndex + n - 1) % n
		case "right", "l":
			f.CategoryIndex = (f.CategoryIndex + 1) % n
		}
	case FieldDescription:
		if r, ok := typedRunes(msg); ok {
			f.description.InsertString(string(r))
			return m
		}
		f.description, _ = f.description.Update(msg)
	}
	return m
}

func (m *Model) handleTextKey(msg tea.KeyMsg) {
	f := &m.Form
	switch msg.String() {
	case "up":
		if n := len(f.Suggestions); n > 0 {
			f.SuggestionIndex = (f.SuggestionIndex + n - 1) % n
		}
		return
	case "down":
		if n := len(f.Suggestions); n > 0 {
			f.SuggestionIndex = (f.SuggestionIndex + 1) % n
		}
		return
	case "backspace":
		f.text.SetValue(dropLastRune(f.text.Value()))
		f.text.CursorEnd()
	default:
		r, ok := typedRunes(msg)
		if !ok {
			f.text, _ = f.text.Update(msg)
			break
		}
		f.text.SetValue(f.text.Value() + string(r))
		f.text.CursorEnd()
	}
	m.refreshSuggestions()
}

// handleDateKey re-applies the mask to the whole field after every keystroke.
func (m *Model) handleDateKey(msg tea.KeyMsg) {
	f := &m.Form
	if msg.String() == "backspace" {
		f.Date.Type(dropLastRune(f.Date.Display))
		return
	}
	if r, ok := typedRunes(msg); ok {
		f.Date.Type(f.Date.Display + string(r))
	}
}

func (m *Model) refreshSuggestions() {
	list, err := m.store.Suggest(m.ctx, m.Form.text.Value())
	if err != nil {
		m.logger.Error("suggest", "err", err)
		list = nil
	}
	m.Form.Suggestions = list
	m.Form.SuggestionIndex = 0
}

// acceptSuggestion replaces the word being typed with the highlighted suggestion.
func (m *Model) acceptSuggestion() {
	f := &m.Form
	if f.SuggestionIndex >= len(f.Suggestions) {
		return
	}
	words := strings.Split(f.text.Value(), " ")
	words[len(words)-1] = f.Suggestions[f.SuggestionIndex]
	f.text.SetValue(strings.Join(words, " ") + " ")
	f.text.CursorEnd()
	m.refreshSuggestions()
}

func (m *Model) focusField(field FormField) {
	f := &m.Form
	f.Focus = field
	f.text.Blur()
	f.description.Blur()
	switch field {
	case FieldText:
		f.text.Focus()
	case FieldDescription:
		f.description.Focus()
	}
}

func (m Model) submitForm() Model {
	f := &m.Form
	in := reminders.Input{
		Text:        f.text.Value(),
		DueDate:     f.Date.Display,
		Priority:    int(f.Priority),
		Description: f.description.Value(),
	}
	if f.CategoryIndex > 0 && f.CategoryIndex <= len(m.Categories) {
		id := m.Categories[f.CategoryIndex-1].ID
		in.CategoryID = &id
	}

	var (
		rem model.Reminder
		err error
	)
	if f.EditingID == 0 {
		rem, err = m.store.Create(m.ctx, in)
	} else {
		rem, err = m.store.Update(m.ctx, f.EditingID, in)
	}
	if err != nil {
		var verr *reminders.ValidationError
		if errors.As(err, &verr) {
			f.Err = validationText(verr)
			m.Status = StatusBar{Text: f.Err, IsError: true}
			return m
		}
		m.logger.Error("save reminder", "err", err)
		f.Err = err.Error()
		m.Status = StatusBar{Text: fmt.Sprintf("save failed: %v", err), IsError: true}
		return m
	}

	m.Form = newForm(m.now)
	m.Mode = ModeList
	m.syncSchedule(rem)
	m.reload()
	m.selectID(rem.ID)
	m.Status = StatusBar{Text: fmt.Sprintf("saved #%d", rem.ID)}
	return m
}

func (m *Model) selectID(id int64) {
	for i, rem := range m.Reminders {
		if rem.ID == id {
			m.Cursor = i
			return
		}
	}
}

func validationText(verr *reminders.ValidationError) string {
	switch {
	case errors.Is(verr, datemask.ErrInvalidDate):
		return "data inválida, use DD/MM/AAAA"
	case errors.Is(verr, model.ErrTextRequired):
		return "texto obrigatório"
	case errors.Is(verr, model.ErrTextTooLong):
		return fmt.Sprintf("texto acima de %d caracteres", model.MaxTextLength)
	default:
		return verr.Error()
	}
}

func typedRunes(msg tea.KeyMsg) ([]rune, bool) {
	switch msg.Type {
	case tea.KeyRunes:
		return msg.Runes, len(msg.Runes) > 0
	case tea.KeySpace:
		return []rune{' '}, true
	default:
		return nil, false
	}
}

func dropLastRune(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	return string(r[:len(r)-1])
}
