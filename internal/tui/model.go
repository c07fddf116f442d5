package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/watchfour/shiftlog/internal/alert"
	"github.com/watchfour/shiftlog/internal/constants"
	"github.com/watchfour/shiftlog/internal/models"
	"github.com/watchfour/shiftlog/internal/rotation"
	"github.com/watchfour/shiftlog/internal/storage"
	"github.com/watchfour/shiftlog/internal/tui/components/daylist"
	"github.com/watchfour/shiftlog/internal/tui/components/leavetable"
	"github.com/watchfour/shiftlog/internal/tui/components/monthgrid"
	"github.com/watchfour/shiftlog/internal/utils"
)

// listWindowBack and listWindowAhead bound the rolling window the Notes and
// Log tabs load, in days around today.
const (
	listWindowBack  = 60
	listWindowAhead = 14
)

type Model struct {
	store    storage.Provider
	alerts   *alert.Calculator
	settings models.Settings
	mine     rotation.Platoon

	state         constants.SessionState
	previousState constants.SessionState
	keys          KeyMap
	help          help.Model

	grid       monthgrid.Model
	leaveTable leavetable.Model
	notesList  daylist.Model
	logList    daylist.Model

	form      *huh.Form
	noteForm  *NoteFormModel
	entryForm *EntryFormModel

	alertInfo  *alert.Info
	dayNotes   []models.Note
	dayEntries []models.ShiftEntry

	deleteKind daylist.Kind
	deleteID   string

	statusMsg string
	quitting  bool
	width     int
	height    int
}

func NewModel(store storage.Provider, alerts *alert.Calculator) Model {
	settings, err := store.GetSettings()
	if err != nil {
		models.ApplyDefaultSettings(&settings)
	}
	mine, err := rotation.Parse(settings.Platoon)
	if err != nil {
		mine = rotation.PlatoonA
	}

	now := utils.NowInRosterZone()

	m := Model{
		store:      store,
		alerts:     alerts,
		settings:   settings,
		mine:       mine,
		state:      constants.StateCalendar,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		grid:       monthgrid.New(mine, settings.ShowPayDays, settings.ShowLeave, now),
		leaveTable: leavetable.New(mine, now, 0, 0),
		notesList:  daylist.New(daylist.KindNote, "\n  No notes in the last two months.\n  Press 'a' to add one.", nil, 0, 0),
		logList:    daylist.New(daylist.KindEntry, "\n  Nothing logged in the last two months.\n  Press 'a' to log time.", nil, 0, 0),
		alertInfo:  alerts.ForDate(now, mine),
	}

	m.refreshDayDetail()
	m.refreshLists()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	if m.state == constants.StateCalendar {
		gk := m.grid.Keys()
		keys = append(keys, gk.Today, gk.AddNote, gk.AddEntry)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	gk := m.grid.Keys()
	navigation := []key.Binding{gk.Up, gk.Down, gk.Left, gk.Right, gk.PrevMonth, gk.NextMonth, gk.Today}
	actions := []key.Binding{gk.AddNote, gk.AddEntry}
	return [][]key.Binding{global, navigation, actions}
}

// refreshDayDetail reloads the notes and entries shown under the calendar for
// the selected day.
func (m *Model) refreshDayDetail() {
	day := utils.FormatDate(m.grid.Selected())
	notes, err := m.store.GetNotesForDay(day)
	if err != nil {
		notes = nil
	}
	entries, err := m.store.GetEntriesForDay(day)
	if err != nil {
		entries = nil
	}
	m.dayNotes = notes
	m.dayEntries = entries
}

// refreshLists reloads the rolling-window Notes and Log tabs.
func (m *Model) refreshLists() {
	today := utils.Normalize(utils.NowInRosterZone())
	from := utils.FormatDate(utils.AddDays(today, -listWindowBack))
	to := utils.FormatDate(utils.AddDays(today, listWindowAhead))

	// Deleted rows stay listed inside the window so they can be restored.
	var noteItems []daylist.Item
	if notes, err := m.store.GetAllNotes(true); err == nil {
		for _, n := range notes {
			if n.Day < from || n.Day > to {
				continue
			}
			noteItems = append(noteItems, daylist.Item{
				ID:      n.ID,
				Day:     n.Day,
				Text:    n.Body,
				Deleted: n.DeletedAt != nil,
			})
		}
	}
	m.notesList.SetItems(noteItems)

	var entryItems []daylist.Item
	if entries, err := m.store.GetAllEntries(true); err == nil {
		for _, e := range entries {
			if e.Day < from || e.Day > to {
				continue
			}
			entryItems = append(entryItems, daylist.Item{
				ID:      e.ID,
				Day:     e.Day,
				Text:    fmt.Sprintf("%s-%s %s", e.Start, e.End, e.Code),
				Detail:  fmt.Sprintf("%.2fh worked", e.Hours()),
				Deleted: e.DeletedAt != nil,
			})
		}
	}
	m.logList.SetItems(entryItems)
}

// refreshAlert re-evaluates today's banner, e.g. after settings change.
func (m *Model) refreshAlert() {
	m.alertInfo = m.alerts.ForDate(utils.NowInRosterZone(), m.mine)
}
