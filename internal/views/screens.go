package views

import (
	"fmt"
	"strings"
)

type ReminderRowData struct {
	ID        int64
	Text      string
	DueDate   string
	Priority  string
	Category  string
	Completed bool
	Overdue   bool
}

type ListPanelData struct {
	Filter     string
	Rows       []ReminderRowData
	SelectedID int64
}

type DetailPanelData struct {
	Row         *ReminderRowData
	Description string
}

type FormPanelData struct {
	Title           string
	TextView        string
	DateView        string
	DateComplete    bool
	DateValid       bool
	Priority        string
	Category        string
	DescriptionView string
	Focus           string
	Suggestions     []string
	SuggestionIndex int
	Error           string
}

type HelpPanelData struct {
	Mode     string
	Bindings []string
	HelpView string
}

// RenderListPanel groups rows into overdue, pending and done sections, keeping input order inside each.
func RenderListPanel(data ListPanelData) string {
	overdue := make([]ReminderRowData, 0)
	pending := make([]ReminderRowData, 0)
	done := make([]ReminderRowData, 0)
	for _, row := range data.Rows {
		switch {
		case row.Completed:
			done = append(done, row)
		case row.Overdue:
			overdue = append(overdue, row)
		default:
			pending = append(pending, row)
		}
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("lembretes (%s):\n", data.Filter))
	b.WriteString("actions: [j/k]move [n]new [e]edit [space]done [d]delete [/]cmd\n")
	if len(data.Rows) == 0 {
		b.WriteString("\n(nenhum lembrete)")
		return b.String()
	}
	renderSection(&b, "Atrasados", overdue, data.SelectedID)
	renderSection(&b, "Pendentes", pending, data.SelectedID)
	renderSection(&b, "Concluídos", done, data.SelectedID)
	return strings.TrimSpace(b.String())
}

func RenderDetailPanel(data DetailPanelData) string {
	if data.Row == nil {
		return "detalhes:\n(nenhuma seleção)"
	}
	row := data.Row
	var b strings.Builder
	b.WriteString("detalhes:\n")
	b.WriteString(fmt.Sprintf("id: %d\n", row.ID))
	b.WriteString(fmt.Sprintf("texto: %s\n", row.Text))
	b.WriteString(fmt.Sprintf("data: %s\n", row.DueDate))
	b.WriteString(fmt.Sprintf("prioridade: %s\n", row.Priority))
	if row.Category != "" {
		b.WriteString(fmt.Sprintf("categoria: %s\n", row.Category))
	}
	b.WriteString(fmt.Sprintf("situação: %s\n", situation(*row)))
	if data.Description != "" {
		b.WriteString("\n" + data.Description)
	}
	return strings.TrimSpace(b.String())
}

func RenderFormPanel(data FormPanelData) string {
	var b strings.Builder
	b.WriteString(data.Title + ":\n")
	b.WriteString("keys: [tab]accept/next [shift+tab]prev [up/down]suggestion [ctrl+s]save [esc]cancel\n\n")

	b.WriteString(fieldLabel("texto", data.Focus) + data.TextView + "\n")
	if len(data.Suggestions) > 0 {
		chips := make([]string, 0, len(data.Suggestions))
		for i, s := range data.Suggestions {
			if i == data.SuggestionIndex {
				chips = append(chips, activeStyle.Render("["+s+"]"))
				continue
			}
			chips = append(chips, " "+s+" ")
		}
		b.WriteString("  sugestões: " + strings.Join(chips, " ") + "\n")
	}

	marker := ""
	if data.DateComplete {
		if data.DateValid {
			marker = " ✓"
		} else {
			marker = " " + overdueStyle.Render("data inválida")
		}
	}
	b.WriteString(fieldLabel("data", data.Focus) + data.DateView + marker + "\n")
	b.WriteString(fieldLabel("prioridade", data.Focus) + "< " + data.Priority + " >\n")
	b.WriteString(fieldLabel("categoria", data.Focus) + "< " + data.Category + " >\n")
	b.WriteString(fieldLabel("descrição", data.Focus) + "\n" + data.DescriptionView + "\n")
	if data.Error != "" {
		b.WriteString("\n" + overdueStyle.Render("erro: "+data.Error))
	}
	return strings.TrimSpace(b.String())
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("notification: [%s] %s", strings.ToUpper(level), body)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("\nhelp (%s):\n%s\n%s",
		strings.ToLower(data.Mode),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}

func renderSection(b *strings.Builder, title string, rows []ReminderRowData, selectedID int64) {
	if len(rows) == 0 {
		return
	}
	b.WriteString(fmt.Sprintf("\n%s:\n", title))
	for _, row := range rows {
		cursor := " "
		if row.ID == selectedID {
			cursor = ">"
		}
		line := fmt.Sprintf("%s %s #%d %s %s", cursor, badge(row), row.ID, row.DueDate, row.Text)
		switch {
		case row.Completed:
			line = doneStyle.Render(line)
		case row.Overdue:
			line = overdueStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
}

func badge(row ReminderRowData) string {
	switch {
	case row.Completed:
		return "[x]"
	case row.Priority == "alta":
		return "[!]"
	default:
		return "[ ]"
	}
}

func situation(row ReminderRowData) string {
	switch {
	case row.Completed:
		return "concluído"
	case row.Overdue:
		return "atrasado"
	default:
		return "pendente"
	}
}

func fieldLabel(name, focus string) string {
	if name == focus {
		return activeStyle.Render("> "+name+": ")
	}
	return "  " + name + ": "
}
