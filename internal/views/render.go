package views

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

const (
	defaultPaneWidth = 58
	minPaneWidth     = 30
	// Below this terminal width the detail pane goes under the list.
	stackBelow = 2*minPaneWidth + 8
)

// AppData is one full frame. Width is the terminal width; zero means unknown.
type AppData struct {
	Width        int
	Header       string
	LeftPane     string
	RightPane    string
	StatusLine   string
	StatusError  bool
	Footer       string
	Notification string
}

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	paneStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	noticeStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("11")).Padding(0, 1)
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	overdueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Strikethrough(true)
	activeStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
)

// PaneWidth is the content width of one pane for a terminal of the given width.
func PaneWidth(termWidth int) int {
	switch {
	case termWidth <= 0:
		return defaultPaneWidth
	case termWidth < stackBelow:
		return max(termWidth-4, minPaneWidth)
	default:
		return max(termWidth/2-4, minPaneWidth)
	}
}

func RenderApp(data AppData) string {
	w := PaneWidth(data.Width)
	list := paneStyle.Width(w).Render(data.LeftPane)
	detail := paneStyle.Width(w).Render(data.RightPane)

	var body string
	if data.Width > 0 && data.Width < stackBelow {
		body = lipgloss.JoinVertical(lipgloss.Left, list, detail)
	} else {
		body = lipgloss.JoinHorizontal(lipgloss.Top, list, detail)
	}

	status := statusStyle
	if data.StatusError {
		status = errorStyle
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(data.Header))
	b.WriteString("\n" + body)
	b.WriteString("\n" + status.Render(data.StatusLine))
	if data.Notification != "" {
		b.WriteString("\n" + noticeStyle.Render(data.Notification))
	}
	if data.Footer != "" {
		b.WriteString("\n" + hintStyle.Render(data.Footer))
	}
	return b.String()
}

var (
	mdOnce     sync.Once
	mdRenderer *glamour.TermRenderer
)

// RenderMarkdown renders a reminder description for the detail pane. The raw
// text is returned when glamour cannot render it.
func RenderMarkdown(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	mdOnce.Do(func() {
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle("dark"),
			glamour.WithWordWrap(defaultPaneWidth-4),
		)
		if err == nil {
			mdRenderer = r
		}
	})
	if mdRenderer == nil {
		return md
	}
	out, err := mdRenderer.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
