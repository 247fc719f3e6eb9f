// Package ui provides terminal UI components using Bubbletea.
package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle        = lipgloss.NewStyle().MarginLeft(2)
	itemStyle         = lipgloss.NewStyle().PaddingLeft(4)
	selectedItemStyle = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("170"))
	paginationStyle   = list.DefaultStyles().PaginationStyle.PaddingLeft(4)
	helpStyle         = list.DefaultStyles().HelpStyle.PaddingLeft(4).PaddingBottom(1)
)

// MenuItem is one numbered entry in a menu.
type MenuItem struct {
	key   string
	title string
}

// NewMenuItem creates a new menu item. key is what the menu reports when the item is chosen.
func NewMenuItem(key, title string) MenuItem {
	return MenuItem{key: key, title: title}
}

// Key returns the value reported when this item is chosen.
func (i MenuItem) Key() string { return i.key }

// Title returns the menu item title.
func (i MenuItem) Title() string { return i.title }

// Description returns the menu item description.
func (i MenuItem) Description() string { return "" }

// FilterValue returns the value to filter on.
func (i MenuItem) FilterValue() string { return i.title }

// Label renders the item the way the line-mode menu prints it: "<key> - <title>".
func (i MenuItem) Label() string {
	return fmt.Sprintf("%s - %s", i.key, i.title)
}

// MenuModel is a numbered menu. Typing an item's key selects it at once; Enter selects
// the highlighted item; Esc, q and Ctrl-C choose the cancel key.
type MenuModel struct {
	list      list.Model
	cancelKey string
	choice    string
}

// NewMenu creates a new menu model.
func NewMenu(title string, items []MenuItem, cancelKey string) MenuModel {
	const defaultWidth = 60
	const defaultHeight = 14

	listItems := make([]list.Item, len(items))
	for i, item := range items {
		listItems[i] = item
	}

	l := list.New(listItems, menuItemDelegate{}, defaultWidth, defaultHeight)
	l.Title = title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = titleStyle
	l.Styles.PaginationStyle = paginationStyle
	l.Styles.HelpStyle = helpStyle

	return MenuModel{list: l, cancelKey: cancelKey}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles menu updates.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		return m, nil

	case tea.KeyMsg:
		switch keypress := msg.String(); keypress {
		case "q", keyCtrlC, keyEsc:
			m.choice = m.cancelKey

			return m, tea.Quit

		case keyEnter:
			if i, ok := m.list.SelectedItem().(MenuItem); ok {
				m.choice = i.Key()
			}

			return m, tea.Quit

		default:
			for idx, item := range m.list.Items() {
				if i, ok := item.(MenuItem); ok && i.Key() == keypress {
					m.list.Select(idx)
					m.choice = i.Key()

					return m, tea.Quit
				}
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.choice != "" {
		return ""
	}

	return "\n" + m.list.View()
}

// Choice returns the chosen key, or "" if the menu is still open.
func (m MenuModel) Choice() string {
	return m.choice
}

// menuItemDelegate is a custom delegate for menu items.
type menuItemDelegate struct{}

func (d menuItemDelegate) Height() int                             { return 1 }
func (d menuItemDelegate) Spacing() int                            { return 0 }
func (d menuItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d menuItemDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(MenuItem)
	if !ok {
		return
	}

	str := i.Label()

	fn := itemStyle.Render
	if index == m.Index() {
		fn = func(s ...string) string {
			return selectedItemStyle.Render("▸ " + s[0])
		}
	}

	//nolint:errcheck // Error writing to writer is not actionable in render function
	fmt.Fprint(w, fn(str))
}
