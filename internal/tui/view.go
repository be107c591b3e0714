package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).MarginBottom(1)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1)
	bodyStyle  = lipgloss.NewStyle().MarginLeft(2)
)

// previewLines caps how much of the document the result view shows.
const previewLines = 24

// View renders the current phase.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("scoresync"))
	b.WriteString("\n")

	switch m.phase {
	case phaseForm:
		for i, in := range m.inputs {
			b.WriteString(labelStyle.Render(fieldLabels[i]))
			b.WriteString("\n")
			b.WriteString(in.View())
			b.WriteString("\n")
		}
		if m.err != nil {
			b.WriteString(errStyle.Render("error: " + m.err.Error()))
			b.WriteString("\n")
		}
		b.WriteString(helpStyle.Render("tab next field • enter fuse • esc quit"))

	case phaseRunning:
		b.WriteString(m.spinner.View())
		b.WriteString(" fetching and fusing...")

	case phaseResult:
		preview := strings.Split(string(m.document), "\n")
		if len(preview) > previewLines {
			preview = append(preview[:previewLines], "  ...")
		}
		b.WriteString(bodyStyle.Render(strings.Join(preview, "\n")))
		b.WriteString("\n")
		if m.status != "" {
			b.WriteString(okStyle.Render(m.status))
			b.WriteString("\n")
		}
		b.WriteString(helpStyle.Render("c copy • s save • esc back • q quit"))
	}

	b.WriteString("\n")
	return b.String()
}
