package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"

	"github.com/sandeepkv93/lembrete/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	bindings := m.helpBindings()
	plain := make([]string, 0, len(bindings))
	for _, kb := range m.modeBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		Mode:     string(m.Mode),
		Bindings: plain,
		HelpView: m.helpModel.View(helpKeyMap{
			short: bindings,
			full:  [][]key.Binding{bindings},
		}),
	})
}

func (m Model) modeBindings() []KeyBinding {
	if m.Mode == ModeForm {
		return []KeyBinding{
			{Key: "tab", Action: "accept suggestion / next field"},
			{Key: "shift+tab", Action: "previous field"},
			{Key: "up/down", Action: "highlight suggestion"},
			{Key: "left/right", Action: "change priority or category"},
			{Key: "ctrl+s", Action: "save"},
			{Key: "esc", Action: "cancel"},
		}
	}
	return []KeyBinding{
		{Key: "j/k", Action: "move selection"},
		{Key: m.Keys.New, Action: "new reminder"},
		{Key: m.Keys.Edit, Action: "edit selected"},
		{Key: "space", Action: "toggle done"},
		{Key: m.Keys.Delete, Action: "delete selected"},
		{Key: m.Keys.Filter, Action: "cycle pending/done/all"},
		{Key: "/", Action: "open command palette"},
		{Key: m.Keys.Help, Action: "toggle help panel"},
		{Key: m.Keys.Quit, Action: "quit"},
	}
}

func (m Model) helpBindings() []key.Binding {
	modes := m.modeBindings()
	out := make([]key.Binding, 0, len(modes))
	for _, kb := range modes {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
