package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/watchfour/shiftlog/internal/constants"
	"github.com/watchfour/shiftlog/internal/tui/components/daylist"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case constants.StateCalendar:
		content = m.viewCalendar()
	case constants.StateLeave:
		content = docStyle.Render(m.leaveTable.View())
	case constants.StateNotes:
		content = docStyle.Render(m.notesList.View())
	case constants.StateLog:
		content = docStyle.Render(m.logList.View())
	case constants.StateNoteForm, constants.StateEntryForm:
		content = m.form.View()
	case constants.StateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	sections := []string{m.viewTabs()}
	if m.alertInfo != nil && (m.state == constants.StateCalendar || m.state == constants.StateLeave) {
		sections = append(sections, alertBannerStyle.Render("⚠ "+m.alertInfo.Message))
	}
	sections = append(sections, content)
	if m.statusMsg != "" {
		sections = append(sections, statusStyle.Render(m.statusMsg))
	}
	sections = append(sections, m.help.View(m))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range []string{"Calendar", "Leave", "Notes", "Log"} {
		if m.state == constants.SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewCalendar() string {
	return docStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		m.grid.View(),
		m.viewDayDetail(),
	))
}

func (m Model) viewDayDetail() string {
	var b strings.Builder

	day := m.grid.Selected()
	b.WriteString(detailHeaderStyle.Render(day.Format("2006-01-02 Monday")))
	b.WriteString("\n")

	if len(m.dayNotes) == 0 && len(m.dayEntries) == 0 {
		b.WriteString(detailDimStyle.Render("  nothing recorded ('n' note, 'e' log time)"))
		return b.String()
	}

	for _, e := range m.dayEntries {
		b.WriteString(fmt.Sprintf("  %s-%s %-9s %.2fh", e.Start, e.End, e.Code, e.Hours()))
		if e.Comment != "" {
			b.WriteString("  " + detailDimStyle.Render(e.Comment))
		}
		b.WriteString("\n")
	}
	for _, n := range m.dayNotes {
		b.WriteString("  " + detailDimStyle.Render("note:") + " " + n.Body + "\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

func (m Model) viewConfirmDelete() string {
	kind := "note"
	if m.deleteKind == daylist.KindEntry {
		kind = "timesheet entry"
	}
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(fmt.Sprintf("Delete this %s?", kind)),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
