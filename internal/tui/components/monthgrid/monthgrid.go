package monthgrid

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/watchfour/shiftlog/internal/calendar"
	"github.com/watchfour/shiftlog/internal/rotation"
	"github.com/watchfour/shiftlog/internal/utils"
)

type SelectionChangedMsg struct {
	Day time.Time
}

type AddNoteMsg struct {
	Day string
}

type AddEntryMsg struct {
	Day string
}

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	selectedStyle = lipgloss.NewStyle().
			Reverse(true)

	todayStyle = lipgloss.NewStyle().
			Underline(true)

	payStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220"))

	leaveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("114"))

	platoonStyles = map[rotation.Platoon]lipgloss.Style{
		rotation.PlatoonA: lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		rotation.PlatoonB: lipgloss.NewStyle().Foreground(lipgloss.Color("75")),
		rotation.PlatoonC: lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
		rotation.PlatoonD: lipgloss.NewStyle().Foreground(lipgloss.Color("179")),
	}
)

type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	PrevMonth key.Binding
	NextMonth key.Binding
	Today     key.Binding
	AddNote   key.Binding
	AddEntry  key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "week back"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "week forward"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "day back"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "day forward"),
		),
		PrevMonth: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "prev month"),
		),
		NextMonth: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next month"),
		),
		Today: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "today"),
		),
		AddNote: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "add note"),
		),
		AddEntry: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "log time"),
		),
	}
}

type Model struct {
	keys      KeyMap
	mine      rotation.Platoon
	showPay   bool
	showLeave bool
	today     time.Time
	selected  time.Time
	month     calendar.Month
	width     int
	height    int
}

func New(mine rotation.Platoon, showPay, showLeave bool, now time.Time) Model {
	today := utils.Normalize(now)
	m := Model{
		keys:      DefaultKeyMap(),
		mine:      mine,
		showPay:   showPay,
		showLeave: showLeave,
		today:     today,
		selected:  today,
	}
	m.rebuild()
	return m
}

func (m Model) Keys() KeyMap {
	return m.keys
}

func (m Model) Selected() time.Time {
	return m.selected
}

func (m *Model) SetPlatoon(p rotation.Platoon) {
	m.mine = p
}

func (m *Model) SetOverlays(showPay, showLeave bool) {
	m.showPay = showPay
	m.showLeave = showLeave
	m.rebuild()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) rebuild() {
	m.month = calendar.MonthOf(m.selected.Year(), m.selected.Month(), m.today, m.showLeave)
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Left):
		return m.moveSelection(-1)
	case key.Matches(keyMsg, m.keys.Right):
		return m.moveSelection(1)
	case key.Matches(keyMsg, m.keys.Up):
		return m.moveSelection(-7)
	case key.Matches(keyMsg, m.keys.Down):
		return m.moveSelection(7)
	case key.Matches(keyMsg, m.keys.PrevMonth):
		return m.moveMonth(-1)
	case key.Matches(keyMsg, m.keys.NextMonth):
		return m.moveMonth(1)
	case key.Matches(keyMsg, m.keys.Today):
		m.selected = m.today
		m.rebuild()
		return m, selectionChanged(m.selected)
	case key.Matches(keyMsg, m.keys.AddNote):
		day := utils.FormatDate(m.selected)
		return m, func() tea.Msg { return AddNoteMsg{Day: day} }
	case key.Matches(keyMsg, m.keys.AddEntry):
		day := utils.FormatDate(m.selected)
		return m, func() tea.Msg { return AddEntryMsg{Day: day} }
	}

	return m, nil
}

func (m Model) moveSelection(days int) (Model, tea.Cmd) {
	m.selected = utils.AddDays(m.selected, days)
	m.rebuild()
	return m, selectionChanged(m.selected)
}

func (m Model) moveMonth(months int) (Model, tea.Cmd) {
	first := time.Date(m.selected.Year(), m.selected.Month(), 1, 0, 0, 0, 0, m.selected.Location())
	target := first.AddDate(0, months, 0)

	// Clamp the day-of-month so Jan 31 -> Feb 28, not Mar 3.
	day := m.selected.Day()
	if last := target.AddDate(0, 1, -1).Day(); day > last {
		day = last
	}
	m.selected = time.Date(target.Year(), target.Month(), day, 0, 0, 0, 0, target.Location())
	m.rebuild()
	return m, selectionChanged(m.selected)
}

func selectionChanged(day time.Time) tea.Cmd {
	return func() tea.Msg { return SelectionChangedMsg{Day: day} }
}

func (m Model) View() string {
	var b strings.Builder

	title := fmt.Sprintf("%s %d", m.month.Month, m.month.Year)
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(headerStyle.Render(" Mon   Tue   Wed   Thu   Fri   Sat   Sun"))
	b.WriteString("\n")

	for _, week := range m.month.Weeks {
		for i := 0; i < 7; i++ {
			if i >= len(week) || week[i].Date.IsZero() {
				b.WriteString("      ")
				continue
			}
			b.WriteString(m.renderCell(week[i]))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) renderCell(d calendar.Day) string {
	letter := strings.ToLower(string(d.Platoon))
	style := platoonStyles[d.Platoon]
	if d.Platoon == m.mine {
		letter = string(d.Platoon)
		style = style.Bold(true)
	}

	marker := " "
	markerStyle := lipgloss.NewStyle()
	if m.showPay && d.PayDay {
		marker = "$"
		markerStyle = payStyle
	}
	if len(d.OnLeave) > 0 {
		marker = "+"
		markerStyle = leaveStyle
	}

	cell := fmt.Sprintf("%2d%s%s", d.Date.Day(), style.Render(letter), markerStyle.Render(marker))
	switch {
	case d.Date.Equal(m.selected):
		return " " + selectedStyle.Render(fmt.Sprintf("%2d", d.Date.Day())) + style.Render(letter) + markerStyle.Render(marker) + "  "
	case d.Date.Equal(m.today):
		return " " + todayStyle.Render(fmt.Sprintf("%2d", d.Date.Day())) + style.Render(letter) + markerStyle.Render(marker) + "  "
	default:
		return " " + cell + "  "
	}
}
