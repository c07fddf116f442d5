package daylist

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

// Kind distinguishes whose items a list holds, so the parent model can route
// delete and restore messages to the right store calls.
type Kind string

const (
	KindNote  Kind = "note"
	KindEntry Kind = "entry"
)

type AddMsg struct {
	Kind Kind
}

type DeleteMsg struct {
	Kind Kind
	ID   string
}

type RestoreMsg struct {
	Kind Kind
	ID   string
}

type Item struct {
	ID      string
	Day     string
	Text    string
	Detail  string
	Deleted bool
}

func (i Item) Title() string {
	if i.Deleted {
		return "👻 " + i.Text + " (deleted)"
	}
	return i.Text
}

func (i Item) Description() string {
	desc := i.Day
	if i.Detail != "" {
		desc += " | " + i.Detail
	}
	if i.Deleted {
		desc += " | can restore with 'r'"
	}
	return desc
}

func (i Item) FilterValue() string { return i.Text }

type KeyMap struct {
	Add     key.Binding
	Delete  key.Binding
	Restore key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Restore: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restore"),
		),
	}
}

type Model struct {
	list  list.Model
	keys  KeyMap
	kind  Kind
	empty string
}

func New(kind Kind, empty string, items []Item, width, height int) Model {
	listItems := make([]list.Item, len(items))
	for i, it := range items {
		listItems[i] = it
	}

	l := list.New(listItems, list.NewDefaultDelegate(), width, height)
	l.SetShowTitle(false)
	l.SetShowHelp(false) // We handle help globally in the main model

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Delete, keys.Restore}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Delete, keys.Restore}
	}

	return Model{list: l, keys: keys, kind: kind, empty: empty}
}

func (m *Model) SetItems(items []Item) {
	listItems := make([]list.Item, len(items))
	for i, it := range items {
		listItems[i] = it
	}
	m.list.SetItems(listItems)
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Add):
			kind := m.kind
			return m, func() tea.Msg { return AddMsg{Kind: kind} }
		case key.Matches(msg, m.keys.Delete):
			if i, ok := m.list.SelectedItem().(Item); ok && !i.Deleted {
				kind := m.kind
				return m, func() tea.Msg { return DeleteMsg{Kind: kind, ID: i.ID} }
			}
		case key.Matches(msg, m.keys.Restore):
			if i, ok := m.list.SelectedItem().(Item); ok && i.Deleted {
				kind := m.kind
				return m, func() tea.Msg { return RestoreMsg{Kind: kind, ID: i.ID} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return m.empty
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
