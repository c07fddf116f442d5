package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/watchfour/shiftlog/internal/constants"
	"github.com/watchfour/shiftlog/internal/models"
	"github.com/watchfour/shiftlog/internal/tui/components/daylist"
	"github.com/watchfour/shiftlog/internal/tui/components/monthgrid"
	"github.com/watchfour/shiftlog/internal/utils"
)

const tabCount = 4

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.state {
	case constants.StateNoteForm:
		return m.updateNoteForm(msg)
	case constants.StateEntryForm:
		return m.updateEntryForm(msg)
	case constants.StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		contentHeight := msg.Height - 6
		if contentHeight < 1 {
			contentHeight = 1
		}
		m.grid.SetSize(msg.Width, contentHeight)
		m.leaveTable.SetSize(msg.Width-4, contentHeight)
		m.notesList.SetSize(msg.Width-4, contentHeight)
		m.logList.SetSize(msg.Width-4, contentHeight)

	case monthgrid.SelectionChangedMsg:
		m.refreshDayDetail()
		return m, nil

	case monthgrid.AddNoteMsg:
		return m.openNoteForm(msg.Day)

	case monthgrid.AddEntryMsg:
		return m.openEntryForm(msg.Day)

	case daylist.AddMsg:
		today := utils.Today()
		if msg.Kind == daylist.KindNote {
			return m.openNoteForm(today)
		}
		return m.openEntryForm(today)

	case daylist.DeleteMsg:
		m.deleteKind = msg.Kind
		m.deleteID = msg.ID
		m.previousState = m.state
		m.state = constants.StateConfirmDelete
		return m, nil

	case daylist.RestoreMsg:
		var err error
		if msg.Kind == daylist.KindNote {
			err = m.store.RestoreNote(msg.ID)
		} else {
			err = m.store.RestoreEntry(msg.ID)
		}
		if err != nil {
			m.statusMsg = fmt.Sprintf("Restore failed: %v", err)
		} else {
			m.statusMsg = "Restored."
			m.refreshLists()
			m.refreshDayDetail()
		}
		return m, nil

	case tea.KeyMsg:
		m.statusMsg = ""
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + tabCount) % tabCount
			return m, nil
		}
	}

	// Route everything else to the active tab's component.
	var cmd tea.Cmd
	switch m.state {
	case constants.StateCalendar:
		m.grid, cmd = m.grid.Update(msg)
	case constants.StateLeave:
		m.leaveTable, cmd = m.leaveTable.Update(msg)
	case constants.StateNotes:
		m.notesList, cmd = m.notesList.Update(msg)
	case constants.StateLog:
		m.logList, cmd = m.logList.Update(msg)
	}
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m Model) openNoteForm(day string) (tea.Model, tea.Cmd) {
	m.noteForm = &NoteFormModel{Day: day}
	m.form = NewNoteForm(m.noteForm)
	m.previousState = m.state
	m.state = constants.StateNoteForm
	return m, m.form.Init()
}

func (m Model) openEntryForm(day string) (tea.Model, tea.Cmd) {
	m.entryForm = &EntryFormModel{
		Day:      day,
		Code:     constants.EntryCodeShift,
		Start:    m.settings.ShiftStart,
		End:      m.settings.ShiftEnd,
		BreakMin: "0",
	}
	m.form = NewEntryForm(m.entryForm)
	m.previousState = m.state
	m.state = constants.StateEntryForm
	return m, m.form.Init()
}

func (m Model) updateNoteForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = m.previousState
		return m, nil
	}

	var cmds []tea.Cmd
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	switch m.form.State {
	case huh.StateCompleted:
		now := time.Now()
		note := models.Note{
			ID:        uuid.New().String(),
			Day:       m.noteForm.Day,
			Body:      strings.TrimSpace(m.noteForm.Body),
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := m.store.AddNote(note); err != nil {
			m.statusMsg = fmt.Sprintf("Save failed: %v", err)
		} else {
			m.statusMsg = "Note saved."
			m.refreshDayDetail()
			m.refreshLists()
		}
		m.state = m.previousState
	case huh.StateAborted:
		m.state = m.previousState
	}
	return m, tea.Batch(cmds...)
}

func (m Model) updateEntryForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = m.previousState
		return m, nil
	}

	var cmds []tea.Cmd
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	switch m.form.State {
	case huh.StateCompleted:
		breakMin, err := strconv.Atoi(strings.TrimSpace(m.entryForm.BreakMin))
		if err != nil {
			breakMin = 0
		}
		now := time.Now()
		entry := models.ShiftEntry{
			ID:        uuid.New().String(),
			Day:       m.entryForm.Day,
			Code:      m.entryForm.Code,
			Start:     m.entryForm.Start,
			End:       m.entryForm.End,
			BreakMin:  breakMin,
			Comment:   strings.TrimSpace(m.entryForm.Comment),
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := m.store.AddEntry(entry); err != nil {
			m.statusMsg = fmt.Sprintf("Save failed: %v", err)
		} else {
			m.statusMsg = fmt.Sprintf("Logged %.2fh.", entry.Hours())
			m.refreshDayDetail()
			m.refreshLists()
		}
		m.state = m.previousState
	case huh.StateAborted:
		m.state = m.previousState
	}
	return m, tea.Batch(cmds...)
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "y", "Y":
		var err error
		if m.deleteKind == daylist.KindNote {
			err = m.store.DeleteNote(m.deleteID)
		} else {
			err = m.store.DeleteEntry(m.deleteID)
		}
		if err != nil {
			m.statusMsg = fmt.Sprintf("Delete failed: %v", err)
		} else {
			m.statusMsg = "Deleted. Select it and press 'r' to restore."
			m.refreshLists()
			m.refreshDayDetail()
		}
		m.state = m.previousState
	case "n", "N", "esc", "q":
		m.state = m.previousState
	}
	return m, nil
}
