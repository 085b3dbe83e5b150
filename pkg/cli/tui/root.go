package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// rootModel is the Bubble Tea model that acts as an app shell. It presents a
// menu and then hands control to the chosen flow.
type rootModel struct {
	newForm func() tea.Model
	lister  ToolLister

	showHelp bool
	// Current active flow (when nil, we are in the main menu)
	current tea.Model
}

// NewRootModel constructs the app shell. newForm builds a fresh submission
// form; lister may be nil when there is no directory to browse.
func NewRootModel(newForm func() tea.Model, lister ToolLister) tea.Model {
	return &rootModel{newForm: newForm, lister: lister}
}

func (m *rootModel) Init() tea.Cmd {
	return nil
}

func (m *rootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// If we have an active flow, delegate all messages to it.
	if m.current != nil {
		var cmd tea.Cmd
		m.current, cmd = m.current.Update(msg)
		return m, cmd
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit
	case "?":
		m.showHelp = !m.showHelp
		return m, nil
	case "1":
		m.current = m.newForm()
		return m, m.current.Init()
	case "2":
		if m.lister == nil {
			return m, nil
		}
		m.current = NewListToolsModel(m.lister)
		return m, m.current.Init()
	}

	return m, nil
}

func (m *rootModel) View() string {
	if m.current != nil {
		return m.current.View()
	}

	var b strings.Builder
	b.WriteString(renderTitle("Tool Directory"))
	b.WriteString(renderDivider(60))
	b.WriteString("\n\n")
	b.WriteString(boldStyle.Render("Select an action:") + "\n\n")
	b.WriteString("  " + selectedMarkerStyle.Render("1)") + " Submit a tool\n")
	if m.lister != nil {
		b.WriteString("  " + selectedMarkerStyle.Render("2)") + " Browse the directory\n")
	}
	b.WriteString("\n")
	if m.showHelp {
		b.WriteString(RootMenuHelpContent(m.lister != nil))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("Press the number of an option, '?' for help, or 'q' / Esc to quit.") + "\n")

	return b.String()
}
