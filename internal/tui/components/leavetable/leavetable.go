package leavetable

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/watchfour/shiftlog/internal/leave"
	"github.com/watchfour/shiftlog/internal/rotation"
	"github.com/watchfour/shiftlog/internal/utils"
)

var (
	groupStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("248"))

	setStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(7)

	ongoingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("114")).
			Bold(true)
)

type Model struct {
	viewport viewport.Model
	letter   rotation.Platoon
	ref      time.Time
	width    int
	height   int
}

func New(letter rotation.Platoon, ref time.Time, width, height int) Model {
	m := Model{
		viewport: viewport.New(width, height),
		letter:   letter,
		ref:      utils.Normalize(ref),
	}
	m.render()
	return m
}

func (m Model) Platoon() rotation.Platoon {
	return m.letter
}

func (m *Model) SetPlatoon(letter rotation.Platoon) {
	m.letter = letter
	m.render()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch strings.ToUpper(keyMsg.String()) {
		case "A", "B", "C", "D":
			if p, err := rotation.Parse(keyMsg.String()); err == nil {
				m.SetPlatoon(p)
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.viewport.View()
}

func (m *Model) render() {
	schedule := leave.Schedule(m.letter, m.ref)

	var b strings.Builder
	fmt.Fprintf(&b, "Projected leave for platoon %s (press a-d to switch)\n\n", m.letter)
	for _, id := range leave.GroupIDs(m.letter) {
		b.WriteString(groupStyle.Render(id))
		b.WriteString("\n")
		for _, p := range schedule[id] {
			line := fmt.Sprintf("  %s %s",
				setStyle.Render(string(p.SetType)),
				dateStyle.Render(fmt.Sprintf("%s -> leave %s -> back %s",
					utils.FormatDate(p.StartsOn),
					utils.FormatDate(p.LeaveDate),
					utils.FormatDate(p.ReturnDate))))
			if p.Ongoing(m.ref) {
				line += "  " + ongoingStyle.Render("ongoing")
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	m.viewport.SetContent(b.String())
}
